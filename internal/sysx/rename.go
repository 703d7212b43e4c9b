package sysx

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Rename flag values accepted by renameat2(2). Defined locally for the same
// reason as the RESOLVE_* flags in openat.go.
const (
	RenameExchange  = 1 << 1
	RenameNoReplace = 1 << 0
	RenameWhiteout  = 1 << 2
)

// Renameat2 wraps renameat2(2). Callers are responsible for checking
// RenameFlagsSupported() before passing a non-zero flags value -- flags==0
// is always supported and falls back to a plain renameat(2) on kernels
// without renameat2.
func Renameat2(olddirfd int, oldname string, newdirfd int, newname string, flags uint) error {
	err := unix.Renameat2(olddirfd, oldname, newdirfd, newname, int(flags))
	if err == nil {
		return nil
	}
	if flags == 0 && errors.Is(err, unix.ENOSYS) {
		// Kernel predates renameat2(2) entirely; flags==0 never needed it.
		if err := unix.Renameat(olddirfd, oldname, newdirfd, newname); err != nil {
			return newError("renameat", fmt.Sprintf("olddirfd=%d oldname=%q newdirfd=%d newname=%q", olddirfd, oldname, newdirfd, newname), toErrno(err))
		}
		return nil
	}
	return newError("renameat2", fmt.Sprintf("olddirfd=%d oldname=%q newdirfd=%d newname=%q flags=%#x", olddirfd, oldname, newdirfd, newname, flags), toErrno(err))
}
