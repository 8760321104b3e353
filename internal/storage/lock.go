package storage

import (
	"os"
	"path/filepath"
	"syscall"
)

// FileLock is an exclusive flock on a ".lock" file next to a state file.
// It serializes read-modify-write cycles between concurrent treehop processes.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unlocked lock guarding the state file at path.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path + ".lock"}
}

// Lock blocks until the lock is held. The lock file is created if missing.
func (l *FileLock) Lock() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return err
	}

	l.file = f
	return nil
}

// Unlock releases the lock. Unlocking an unlocked lock is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	f := l.file
	l.file = nil
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Update runs fn while holding the lock for the state file at path.
func Update(path string, fn func() error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if unlockErr := lock.Unlock(); err == nil {
			err = unlockErr
		}
	}()
	return fn()
}
