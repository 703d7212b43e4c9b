package sysx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Fstatat wraps fstatat(2). Passing an empty name together with
// unix.AT_EMPTY_PATH stats the descriptor itself, used throughout the
// resolver to learn an already-open directory's device/inode without a
// second path-based lookup.
func Fstatat(dirfd int, name string, flags int) (unix.Stat_t, error) {
	var st unix.Stat_t
	if err := unix.Fstatat(dirfd, name, &st, flags); err != nil {
		return unix.Stat_t{}, newError("fstatat", fmt.Sprintf("dirfd=%d name=%q flags=%#x", dirfd, name, flags), toErrno(err))
	}
	return st, nil
}
