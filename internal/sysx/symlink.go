package sysx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Symlinkat wraps symlinkat(2). The target is passed through unchanged --
// it is an opaque byte string, never validated or rewritten as a path.
func Symlinkat(target string, dirfd int, name string) error {
	if err := unix.Symlinkat(target, dirfd, name); err != nil {
		return newError("symlinkat", fmt.Sprintf("target=%q dirfd=%d name=%q", target, dirfd, name), toErrno(err))
	}
	return nil
}
