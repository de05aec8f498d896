//go:build unix

package flock

import "syscall"

// Exclusive takes a non-blocking exclusive lock on fd.
// It fails immediately if another descriptor holds the lock.
func Exclusive(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_EX|syscall.LOCK_NB)
}

// Unlock releases the lock on fd.
func Unlock(fd uintptr) error {
	return syscall.Flock(int(fd), syscall.LOCK_UN)
}
