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

import "os"

// Handle is an opaque owning reference to an inode that was reachable from
// its originating Root at some instant between the resolving call and its
// return -- not necessarily still reachable. A Handle owns exactly one
// descriptor and is not shared; closing it is the caller's responsibility.
type Handle struct {
	f *os.File
}

func newHandle(f *os.File) *Handle {
	return &Handle{f: f}
}

// Fd returns the underlying descriptor. The descriptor is owned by the
// Handle; callers must not close it directly.
func (h *Handle) Fd() uintptr {
	return h.f.Fd()
}

// Close releases the underlying descriptor. Safe to call more than once.
func (h *Handle) Close() error {
	return h.f.Close()
}

// file returns the underlying *os.File for package-internal use.
func (h *Handle) file() *os.File {
	return h.f
}
