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

package sysx

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Openat wraps openat(2), always adding O_CLOEXEC so resolved descriptors
// never leak across exec boundaries.
func Openat(dirfd int, path string, flags int, mode uint32) (*os.File, error) {
	fd, err := unix.Openat(dirfd, path, flags|unix.O_CLOEXEC, mode)
	if err != nil {
		return nil, newError("openat", fmt.Sprintf("dirfd=%d path=%q flags=%#x", dirfd, path, flags), toErrno(err))
	}
	return os.NewFile(uintptr(fd), path), nil
}

// RESOLVE_* flags for openat2(2), as described in linux/openat2.h. Defined
// locally rather than relied upon from golang.org/x/sys/unix so this package
// does not depend on a specific vendored copy exporting them.
const (
	ResolveNoXdev       = 0x01
	ResolveNoMagicLinks = 0x02
	ResolveNoSymlinks   = 0x04
	ResolveBeneath      = 0x08
	ResolveInRoot       = 0x10
	ResolveCached       = 0x20
)

// Openat2 wraps openat2(2). Callers must have checked Openat2Supported()
// first; on a kernel without openat2, this returns an *Error wrapping
// ENOSYS, and that outcome is never retried with the legacy openat(2) here
// -- the caller is the one that decides whether to fall back to the
// emulated resolver.
func Openat2(dirfd int, path string, flags int, resolve uint64, mode uint32) (*os.File, error) {
	how := unix.OpenHow{
		Flags:   uint64(flags) | unix.O_CLOEXEC,
		Mode:    uint64(mode),
		Resolve: resolve,
	}
	fd, err := unix.Openat2(dirfd, path, &how)
	if err != nil {
		return nil, newError("openat2", fmt.Sprintf("dirfd=%d path=%q resolve=%#x", dirfd, path, resolve), toErrno(err))
	}
	return os.NewFile(uintptr(fd), path), nil
}

// Dup duplicates a directory descriptor with O_CLOEXEC set atomically,
// grounded on the repeated "clone root fd" step of the emulated resolver's
// walk (every jump back to root needs an independent descriptor lifetime).
func Dup(f *os.File) (*os.File, error) {
	newFd, err := unix.FcntlInt(f.Fd(), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, newError("fcntl(F_DUPFD_CLOEXEC)", fmt.Sprintf("fd=%d", f.Fd()), toErrno(err))
	}
	return os.NewFile(uintptr(newFd), f.Name()), nil
}
