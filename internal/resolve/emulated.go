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
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/nestybox/rootpath/internal/pathutil"
	"github.com/nestybox/rootpath/internal/sysx"
)

// EmulatedResolve walks path component-by-component anchored at rootFd,
// proving containment with open directory descriptors rather than trusting
// a single syscall to do it. rootPath is the root's cached absolute path,
// used for the final /proc/self/fd readback verification.
//
// On success the returned *os.File is an O_PATH descriptor owned by the
// caller. On failure no descriptor is leaked: every transient fd opened
// during the walk is closed before returning.
func EmulatedResolve(rootFd *os.File, rootPath string, path string) (*os.File, error) {
	rootSt, err := sysx.Fstatat(int(rootFd.Fd()), "", unix.AT_EMPTY_PATH)
	if err != nil {
		return nil, err
	}

	cur, err := sysx.Dup(rootFd)
	if err != nil {
		return nil, err
	}

	tr := newTrace(pathutil.Components(path))

	for {
		name, ok := tr.next()
		if !ok {
			break
		}

		logrus.Debugf("emulated resolve: component %q (dirfd=%d)", name, cur.Fd())

		switch {
		case name == ".":
			continue

		case name == "..":
			curSt, err := sysx.Fstatat(int(cur.Fd()), "", unix.AT_EMPTY_PATH)
			if err != nil {
				cur.Close()
				return nil, err
			}
			if curSt.Dev == rootSt.Dev && curSt.Ino == rootSt.Ino {
				// Already at root: the classic chroot-style clamp, ".."
				// is absorbed rather than escaping upward.
				continue
			}
			parent, err := sysx.Openat(int(cur.Fd()), "..", unix.O_PATH|unix.O_DIRECTORY, 0)
			if err != nil {
				cur.Close()
				return nil, err
			}
			if err := checkNoCrossing(parent, rootSt.Dev, ".."); err != nil {
				parent.Close()
				cur.Close()
				return nil, err
			}
			cur.Close()
			cur = parent

		default:
			next, err := sysx.Openat(int(cur.Fd()), name, unix.O_PATH|unix.O_NOFOLLOW, 0)
			if err != nil {
				cur.Close()
				return nil, err
			}

			st, err := sysx.Fstatat(int(next.Fd()), "", unix.AT_EMPTY_PATH)
			if err != nil {
				next.Close()
				cur.Close()
				return nil, err
			}

			if st.Mode&unix.S_IFMT == unix.S_IFLNK {
				target, err := sysx.Readlinkat(int(next.Fd()), "")
				next.Close()
				if err != nil {
					cur.Close()
					return nil, err
				}
				if err := tr.expandSymlink(len(target)); err != nil {
					logrus.Warnf("emulated resolve: symlink expansion bound exceeded at %q: %v", name, err)
					cur.Close()
					return nil, err
				}
				logrus.Debugf("emulated resolve: expanded symlink %q -> %q", name, target)
				if strings.HasPrefix(target, "/") {
					// An absolute symlink target is reinterpreted relative
					// to the root, exactly like an absolute input path:
					// discard walk progress and reset to the root anchor.
					fresh, err := sysx.Dup(rootFd)
					if err != nil {
						cur.Close()
						return nil, err
					}
					cur.Close()
					cur = fresh
				}
				tr.prepend(pathutil.Components(target))
				continue
			}

			if st.Dev != rootSt.Dev {
				logrus.Warnf("emulated resolve: mount crossing detected at %q (root dev=%#x, encountered dev=%#x)", name, rootSt.Dev, st.Dev)
				next.Close()
				cur.Close()
				return nil, &MountCrossingError{Path: name, RootDev: rootSt.Dev, EncounteredDev: st.Dev}
			}
			cur.Close()
			cur = next
		}
	}

	got, err := sysx.ReadProcSelfFd(int(cur.Fd()))
	if err != nil {
		cur.Close()
		return nil, err
	}
	if !strings.HasPrefix(got, rootPath) {
		logrus.Warnf("emulated resolve: readback %q does not begin with root path %q", got, rootPath)
		cur.Close()
		return nil, &ReadbackMismatchError{Got: got, Want: rootPath}
	}

	return cur, nil
}

func checkNoCrossing(fd *os.File, rootDev uint64, step string) error {
	st, err := sysx.Fstatat(int(fd.Fd()), "", unix.AT_EMPTY_PATH)
	if err != nil {
		return err
	}
	if st.Dev != rootDev {
		return &MountCrossingError{Path: step, RootDev: rootDev, EncounteredDev: st.Dev}
	}
	return nil
}
