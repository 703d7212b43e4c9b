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
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/nestybox/rootpath/internal/pathutil"
	"github.com/nestybox/rootpath/internal/sysx"
)

// maxRemoveAttempts bounds the fstatat/unlinkat retry loop: the target
// inode may be replaced (file <-> directory) between the type check and
// the removal call, and each iteration refetches the type rather than
// trusting a stale one.
const maxRemoveAttempts = 16

// Remove deletes the inode at path. Because the inode's type can change
// between the type check and the removal syscall (an attacker, or just an
// unlucky concurrent process, swapping a file for a directory), this
// retries up to maxRemoveAttempts times, refetching the type on every
// attempt. On persistent failure the last syscall error observed -- from
// either the fstatat or the unlinkat branch -- is surfaced.
func (r *Root) Remove(path string) error {
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

	var lastErr error
	for attempt := 0; attempt < maxRemoveAttempts; attempt++ {
		st, err := sysx.Fstatat(dirfd, name, unix.AT_SYMLINK_NOFOLLOW)
		if err != nil {
			lastErr = err
			continue
		}

		removeFlags := 0
		if st.Mode&unix.S_IFMT == unix.S_IFDIR {
			removeFlags = unix.AT_REMOVEDIR
		}

		if err := sysx.Unlinkat(dirfd, name, removeFlags); err != nil {
			lastErr = err
			logrus.Debugf("remove %q: attempt %d failed, inode type may have changed: %v", path, attempt, err)
			continue
		}
		return nil
	}

	logrus.Warnf("remove %q: exhausted %d attempts, last error: %v", path, maxRemoveAttempts, lastErr)
	return RawOsErrorf("remove "+path, lastErr)
}
