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
	"github.com/nestybox/rootpath/internal/pathutil"
	"github.com/nestybox/rootpath/internal/sysx"
)

// RenameFlags is a bitfield passed straight through to renameat2(2). Zero
// is always supported; any non-zero value requires runtime support, probed
// once via internal/sysx.
type RenameFlags uint

const (
	RenameExchange  RenameFlags = 1 << 1
	RenameNoReplace RenameFlags = 1 << 0
	RenameWhiteout  RenameFlags = 1 << 2
)

// RenameFlagsSupported reports whether the running kernel accepts non-zero
// renameat2(2) flags.
func RenameFlagsSupported() bool {
	return sysx.RenameFlagsSupported()
}

// Rename renames src to dst using renameat2(2), passing flags straight
// through. Both parents are resolved before the syscall, source first.
// Error rules are exactly those of the kernel call.
func (r *Root) Rename(src, dst string, flags RenameFlags) error {
	if err := r.check(); err != nil {
		return err
	}

	srcParent, srcName, err := pathutil.Split(src)
	if err != nil {
		return splitErr(src, err)
	}
	dstParent, dstName, err := pathutil.Split(dst)
	if err != nil {
		return splitErr(dst, err)
	}

	srcHandle, err := r.Resolve(srcParent)
	if err != nil {
		return Wrap(err, "resolve source parent of "+src)
	}
	defer srcHandle.Close()

	dstHandle, err := r.Resolve(dstParent)
	if err != nil {
		return Wrap(err, "resolve dest parent of "+dst)
	}
	defer dstHandle.Close()

	if err := sysx.Renameat2(int(srcHandle.Fd()), srcName, int(dstHandle.Fd()), dstName, uint(flags)); err != nil {
		return RawOsErrorf("rename "+src+" -> "+dst, err)
	}
	return nil
}
