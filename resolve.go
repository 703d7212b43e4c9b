//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package rootpath

import (
	"os"

	"github.com/nestybox/rootpath/internal/resolve"
	"github.com/nestybox/rootpath/internal/sysx"
)

// Resolve locates path -- absolute or relative, reinterpreted relative to
// the Root either way -- and returns a Handle to the resolved inode. The
// resolution backend used is whichever Selector the Root currently holds.
func (r *Root) Resolve(path string) (*Handle, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	f, err := r.resolveRaw(path)
	if err != nil {
		return nil, r.translateResolveErr(path, err)
	}
	return newHandle(f), nil
}

// resolveRaw dispatches to the selected backend. When the selector is Kernel
// but openat2 is unavailable, the call is served by the Emulated backend
// instead; the openat2 probe is cached, so the kernel is never asked again,
// and the Root's selector is left as it is.
func (r *Root) resolveRaw(path string) (*os.File, error) {
	switch r.resolver {
	case Kernel:
		f, err := resolve.KernelResolve(r.fd, path)
		if _, notSupported := err.(*resolve.NotSupportedError); notSupported {
			return resolve.EmulatedResolve(r.fd, r.path, path)
		}
		return f, err
	default:
		return resolve.EmulatedResolve(r.fd, r.path, path)
	}
}

// translateResolveErr folds the internal/resolve sentinel error shapes
// into the public Kind taxonomy. Mount-crossing, loop-detection, too-big
// and readback-mismatch are all varieties of "the system detected a
// condition that might indicate an active attacker", i.e. SafetyViolation
// (spec §7); LoopDetected/TooBig are not distinct public kinds since the
// taxonomy names exactly the seven kinds in errors.go.
func (r *Root) translateResolveErr(path string, err error) error {
	switch e := err.(type) {
	case *resolve.NotSupportedError:
		return NotSupported(e.Feature)
	case *resolve.MountCrossingError:
		msg := e.Error()
		if desc := r.mounts.describe(e.EncounteredDev); desc != "" {
			msg = msg + ": " + desc
		}
		return SafetyViolation(msg)
	case *resolve.LoopDetectedError:
		return SafetyViolation(e.Error())
	case *resolve.TooBigError:
		return SafetyViolation(e.Error())
	case *resolve.ReadbackMismatchError:
		return SafetyViolation(e.Error())
	case *sysx.Error:
		return RawOsErrorf("resolve "+path, e)
	default:
		return RawOsErrorf("resolve "+path, err)
	}
}
