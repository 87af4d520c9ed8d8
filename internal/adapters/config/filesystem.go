package config

import (
	"io"
	"io/fs"
	"os"

	"go.trai.ch/zerr"
)

// maxConfigBytes bounds how much of courseware.yaml is read.
const maxConfigBytes = 1 << 20

var (
	errNotRegular = zerr.New("configuration is not a regular file")
	errTooLarge   = zerr.New("configuration file is too large")
)

// FileSystem is the part of the filesystem the loader reads.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// OSFS reads configuration from the host filesystem.
type OSFS struct{}

// NewOSFS creates a new OSFS instance.
func NewOSFS() *OSFS {
	return &OSFS{}
}

// Stat returns file info for the given path.
func (o *OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads a regular file of at most maxConfigBytes.
func (o *OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path is the discovered or user-given config file
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, zerr.With(errNotRegular, "mode", info.Mode().String())
	}
	if info.Size() > maxConfigBytes {
		return nil, zerr.With(errTooLarge, "size", info.Size())
	}

	return io.ReadAll(io.LimitReader(f, maxConfigBytes+1))
}
