package sysx

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Linkat wraps linkat(2).
func Linkat(olddirfd int, oldname string, newdirfd int, newname string, flags int) error {
	if err := unix.Linkat(olddirfd, oldname, newdirfd, newname, flags); err != nil {
		return newError("linkat", fmt.Sprintf("olddirfd=%d oldname=%q newdirfd=%d newname=%q flags=%#x", olddirfd, oldname, newdirfd, newname, flags), toErrno(err))
	}
	return nil
}

// Mknodat wraps mknodat(2), used for FIFOs and character/block devices.
func Mknodat(dirfd int, name string, mode uint32, dev uint64) error {
	if err := unix.Mknodat(dirfd, name, mode, int(dev)); err != nil {
		return newError("mknodat", fmt.Sprintf("dirfd=%d name=%q mode=%#o dev=%d", dirfd, name, mode, dev), toErrno(err))
	}
	return nil
}
