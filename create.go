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
	"golang.org/x/sys/unix"

	"github.com/nestybox/rootpath/internal/pathutil"
	"github.com/nestybox/rootpath/internal/sysx"
)

// Create makes a new inode of the given InodeType at path. The parent
// directory is resolved exactly once; exactly one creation syscall follows
// on that directory's descriptor and the split-off, separator-free name.
// An existing target is reported exactly as the kernel reports it (EEXIST).
func (r *Root) Create(path string, inode InodeType) error {
	if err := r.check(); err != nil {
		return err
	}

	parent, name, err := pathutil.Split(path)
	if err != nil {
		return splitErr(path, err)
	}

	parentHandle, err := r.Resolve(parent)
	if err != nil {
		return Wrap(err, "resolve parent of "+path)
	}
	defer parentHandle.Close()
	dirfd := int(parentHandle.Fd())

	switch inode.kind {
	case kindFile:
		h, err := r.createFileAt(dirfd, name, inode.mode)
		if err != nil {
			return err
		}
		h.Close()
		return nil

	case kindDirectory:
		if err := sysx.Mkdirat(dirfd, name, inode.mode&^uint32(unix.S_IFMT)); err != nil {
			return RawOsErrorf("create "+path, err)
		}
		return nil

	case kindSymlink:
		if err := sysx.Symlinkat(inode.target, dirfd, name); err != nil {
			return RawOsErrorf("create "+path, err)
		}
		return nil

	case kindHardlink:
		oldParent, oldName, err := pathutil.Split(inode.existing)
		if err != nil {
			return splitErr(inode.existing, err)
		}
		oldParentHandle, err := r.Resolve(oldParent)
		if err != nil {
			return Wrap(err, "resolve hardlink source parent of "+inode.existing)
		}
		defer oldParentHandle.Close()
		if err := sysx.Linkat(int(oldParentHandle.Fd()), oldName, dirfd, name, 0); err != nil {
			return RawOsErrorf("create "+path, err)
		}
		return nil

	case kindFifo:
		if err := sysx.Mknodat(dirfd, name, unix.S_IFIFO|(inode.mode&^uint32(unix.S_IFMT)), 0); err != nil {
			return RawOsErrorf("create "+path, err)
		}
		return nil

	case kindCharDevice:
		if err := sysx.Mknodat(dirfd, name, unix.S_IFCHR|(inode.mode&^uint32(unix.S_IFMT)), inode.dev); err != nil {
			return RawOsErrorf("create "+path, err)
		}
		return nil

	case kindBlockDevice:
		if err := sysx.Mknodat(dirfd, name, unix.S_IFBLK|(inode.mode&^uint32(unix.S_IFMT)), inode.dev); err != nil {
			return RawOsErrorf("create "+path, err)
		}
		return nil

	default:
		return NotImplemented("unknown inode type")
	}
}

// CreateFile creates a new regular file and returns a Handle to it. Unlike
// Create(path, File(mode)), the returned Handle is guaranteed to be the
// exact inode just created: it comes straight from the O_CREAT|O_EXCL
// openat call, never from a second, racy lookup.
func (r *Root) CreateFile(path string, mode uint32) (*Handle, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	parent, name, err := pathutil.Split(path)
	if err != nil {
		return nil, splitErr(path, err)
	}

	parentHandle, err := r.Resolve(parent)
	if err != nil {
		return nil, Wrap(err, "resolve parent of "+path)
	}
	defer parentHandle.Close()

	return r.createFileAt(int(parentHandle.Fd()), name, mode)
}

func (r *Root) createFileAt(dirfd int, name string, mode uint32) (*Handle, error) {
	f, err := sysx.Openat(dirfd, name, unix.O_CREAT|unix.O_EXCL, mode&^uint32(unix.S_IFMT))
	if err != nil {
		return nil, RawOsErrorf("create_file "+name, err)
	}
	return newHandle(f), nil
}

// splitErr maps internal/pathutil's split errors onto the public taxonomy:
// a no-trailing-component path is a caller precondition failure
// (InvalidArgument), while an embedded separator in the trailing name is a
// potential smuggling attempt (SafetyViolation), per spec §4.1.
func splitErr(path string, err error) error {
	switch err {
	case pathutil.ErrNoTrailingComponent:
		return InvalidArgument("path", "path has no trailing component: "+path)
	case pathutil.ErrEmbeddedSeparator:
		return SafetyViolation("embedded '/' in split trailing name: " + path)
	default:
		return Wrap(err, "split "+path)
	}
}
