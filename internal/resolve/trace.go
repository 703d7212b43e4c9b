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

package resolve

// Bounds on symlink expansion during an emulated walk (spec-mandated).
const (
	maxSymlinkExpansions = 40
	maxSymlinkBytes      = 4096
)

// trace carries the mutable state of one emulated walk: the components not
// yet consumed, and the running symlink-expansion counters. The current
// directory descriptor is owned by the caller (emulated.go), not by trace,
// since its lifetime crosses error paths that trace itself doesn't manage.
type trace struct {
	remaining         []string
	symlinkExpansions int
	symlinkBytes      int
}

func newTrace(components []string) *trace {
	return &trace{remaining: components}
}

// next pops the next unprocessed component, if any.
func (t *trace) next() (string, bool) {
	if len(t.remaining) == 0 {
		return "", false
	}
	c := t.remaining[0]
	t.remaining = t.remaining[1:]
	return c, true
}

// prepend inserts components at the front of the unprocessed list, as a
// symlink target expansion must be walked before whatever followed the
// symlink in the original path.
func (t *trace) prepend(components []string) {
	t.remaining = append(append([]string{}, components...), t.remaining...)
}

// expandSymlink records one symlink expansion of the given target length
// (target bytes plus the wire NUL terminator, per the spec's byte-budget
// tie-break) and reports whether either bound was exceeded.
func (t *trace) expandSymlink(targetLen int) error {
	t.symlinkExpansions++
	if t.symlinkExpansions > maxSymlinkExpansions {
		return &LoopDetectedError{Expansions: t.symlinkExpansions}
	}
	t.symlinkBytes += targetLen + 1
	if t.symlinkBytes > maxSymlinkBytes {
		return &TooBigError{Bytes: t.symlinkBytes}
	}
	return nil
}
