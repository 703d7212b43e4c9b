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
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/nestybox/rootpath/internal/resolve"
	"github.com/nestybox/rootpath/internal/sysx"
)

// Selector names the two interchangeable resolution backends a Root can
// use. Kernel delegates scoped resolution to a single openat2(2) call;
// Emulated walks the path component-by-component in userspace, proving
// scope with open directory descriptors as it goes.
type Selector int

const (
	Kernel Selector = iota
	Emulated
)

func (s Selector) String() string {
	if s == Kernel {
		return "Kernel"
	}
	return "Emulated"
}

// Root is a captured directory intended as the logical filesystem root for
// every operation performed through it. Its descriptor is path-only
// (O_PATH): no read/write, no implicit content access.
//
// A Root may be used from multiple goroutines concurrently. The one
// exception is reassigning its resolver field via SetResolver, which is not
// synchronized and must not race with other calls into the Root.
type Root struct {
	fd       *os.File
	path     string
	resolver Selector
	mounts   *mountSnapshot
}

// Open opens path as a new Root. path must be absolute and must already
// name an existing directory. The default resolver is Kernel iff the
// scoped-open syscall is available on the running kernel; otherwise
// Emulated.
func Open(path string) (*Root, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, InvalidArgument("path", "root path must be absolute")
	}

	f, err := sysx.Openat(unix.AT_FDCWD, path, unix.O_PATH|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, RawOsErrorf("open root", err)
	}

	selector := Emulated
	if resolve.KernelAvailable() {
		selector = Kernel
	}

	r := &Root{fd: f, path: path, resolver: selector, mounts: newMountSnapshot()}
	if err := r.check(); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// check readbacks /proc/self/fd/<root-fd> and compares it to the path the
// Root was opened with. A mismatch means the root directory itself was
// moved or replaced out from under us -- treated as an attack, not a
// transient condition, and never retried.
func (r *Root) check() error {
	got, err := sysx.ReadProcSelfFd(int(r.fd.Fd()))
	if err != nil {
		return RawOsErrorf("check root", err)
	}
	if got != r.path {
		logrus.Errorf("root check failed: descriptor now resolves to %q, expected %q", got, r.path)
		return SafetyViolation("root directory doesn't match original path")
	}
	return nil
}

// Resolver returns the Root's current backend selector.
func (r *Root) Resolver() Selector {
	return r.resolver
}

// SetResolver reassigns the Root's backend selector. Not synchronized:
// callers must not race this against concurrent operations on the same
// Root.
func (r *Root) SetResolver(s Selector) {
	r.resolver = s
}

// Path returns the absolute path the Root was opened with.
func (r *Root) Path() string {
	return r.path
}

// Close releases the Root's underlying descriptor. Safe to call more than
// once.
func (r *Root) Close() error {
	return r.fd.Close()
}

// Clone returns a new Root referring to the same directory, with an
// independent descriptor and the same resolver selector.
func (r *Root) Clone() (*Root, error) {
	if err := r.check(); err != nil {
		return nil, err
	}
	dup, err := sysx.Dup(r.fd)
	if err != nil {
		return nil, RawOsErrorf("clone root", err)
	}
	return &Root{fd: dup, path: r.path, resolver: r.resolver, mounts: r.mounts}, nil
}
