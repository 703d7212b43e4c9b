package sysx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Unlinkat wraps unlinkat(2).
func Unlinkat(dirfd int, name string, flags int) error {
	if err := unix.Unlinkat(dirfd, name, flags); err != nil {
		return newError("unlinkat", fmt.Sprintf("dirfd=%d name=%q flags=%#x", dirfd, name, flags), toErrno(err))
	}
	return nil
}
