package sysx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Mkdirat wraps mkdirat(2).
func Mkdirat(dirfd int, name string, mode uint32) error {
	if err := unix.Mkdirat(dirfd, name, mode); err != nil {
		return newError("mkdirat", fmt.Sprintf("dirfd=%d name=%q mode=%#o", dirfd, name, mode), toErrno(err))
	}
	return nil
}
