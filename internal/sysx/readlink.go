package sysx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// symlinkBufSize is generous enough for any real-world target; readlinkat
// never tells us the size up front, so we read once, and a result that
// fills the buffer exactly (an ambiguous "maybe truncated" signal for
// readlinkat specifically) is reported as ENAMETOOLONG.
const symlinkBufSize = 4096

// Readlinkat wraps readlinkat(2) and returns the link target as a string
// (target bytes are opaque, never interpreted as anything but bytes, per
// the data model -- this wrapper does not clean or validate the result).
func Readlinkat(dirfd int, name string) (string, error) {
	buf := make([]byte, symlinkBufSize)
	n, err := unix.Readlinkat(dirfd, name, buf)
	if err != nil {
		return "", newError("readlinkat", fmt.Sprintf("dirfd=%d name=%q", dirfd, name), toErrno(err))
	}
	if n == len(buf) {
		return "", newError("readlinkat", fmt.Sprintf("dirfd=%d name=%q", dirfd, name), unix.ENAMETOOLONG)
	}
	return string(buf[:n]), nil
}
