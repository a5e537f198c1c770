package filler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// File is a filler file staged on local disk.
type File struct {
	Name string
	Path string
	Size int64
}

// FileName returns the name of the filler file for the index'th (1-based)
// size token. The index keeps repeated tokens from overwriting each other.
func FileName(prefix, token string, index int) string {
	return fmt.Sprintf("%s_%s_%d", prefix, token, index)
}

// CreateSparse creates or truncates path so that it is exactly size bytes
// long. Only the last byte is written, leaving the rest of the file as a hole
// on filesystems that support it.
func CreateSparse(path string, size int64) (err error) {
	if size <= 0 {
		return fmt.Errorf("%w: %d bytes", ErrInvalidSize, size)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()
	if _, err := f.Seek(size-1, io.SeekStart); err != nil {
		return err
	}
	_, err = f.Write([]byte{0})
	return err
}

// Remove deletes the file at path. It reports whether a file was removed; a
// missing file is not an error.
func Remove(path string) (bool, error) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
