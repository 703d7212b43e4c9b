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

// Package sysx wraps the directory-relative Linux syscalls this module
// builds on (the *at family, plus /proc/self/fd readback) with a uniform
// error shape so that callers further up the stack never have to sniff
// multiple error representations to find the errno.
package sysx

import (
	"errors"
	"fmt"
	"syscall"
)

// Error is the uniform shape every wrapper in this package returns on
// failure: the syscall name, a short diagnostic rendering of its arguments,
// and the errno the kernel returned.
type Error struct {
	Syscall string
	Args    string
	Errno   syscall.Errno
}

func (e *Error) Error() string {
	if e.Args == "" {
		return fmt.Sprintf("%s: %s", e.Syscall, e.Errno)
	}
	return fmt.Sprintf("%s(%s): %s", e.Syscall, e.Args, e.Errno)
}

// Unwrap exposes the underlying errno so that errors.Is(err, os.ErrNotExist)
// and friends work through syscall.Errno's own Is() implementation.
func (e *Error) Unwrap() error {
	return e.Errno
}

func newError(syscallName, args string, errno syscall.Errno) *Error {
	return &Error{Syscall: syscallName, Args: args, Errno: errno}
}

// toErrno recovers the errno from whatever error shape a golang.org/x/sys/unix
// call returned. Every unix.* wrapper in this package hands back its raw
// syscall error as a syscall.Errno (unix.Errno is a type alias of it on
// Linux), but we go through errors.As rather than a bare type assertion so a
// wrapped errno is still found and a non-errno failure is reported as EINVAL
// instead of panicking.
func toErrno(err error) syscall.Errno {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno
	}
	return syscall.EINVAL
}

