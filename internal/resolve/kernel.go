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

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/nestybox/rootpath/internal/sysx"
)

// kernelResolveFlags is IN_ROOT | NO_MAGICLINKS | NO_XDEV: the root is
// never escaped, "magic" proc-style symlinks are never followed, and a
// mount-point crossing fails the lookup outright.
const kernelResolveFlags = sysx.ResolveInRoot | sysx.ResolveNoMagicLinks | sysx.ResolveNoXdev

// KernelResolve performs the entire scoped lookup in a single openat2(2)
// call, letting the kernel enforce containment instead of walking
// component-by-component in userspace. Callers must check
// KernelAvailable() first; on a kernel without openat2 this returns
// *NotSupportedError and is never retried here.
func KernelResolve(rootFd *os.File, path string) (*os.File, error) {
	if !sysx.Openat2Supported() {
		return nil, &NotSupportedError{Feature: "openat2"}
	}
	if path == "" {
		path = "."
	}
	return sysx.Openat2(int(rootFd.Fd()), path, unix.O_PATH, kernelResolveFlags, 0)
}

// KernelAvailable reports whether the kernel backend can be selected at
// all, i.e. whether openat2(2) exists on the running kernel.
func KernelAvailable() bool {
	return sysx.Openat2Supported()
}
