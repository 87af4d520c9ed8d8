package domain

import "path/filepath"

const (
	// HomeDirName is the name of the per-project state directory.
	HomeDirName = ".courseware"

	// StorageFileName is the name of the key-value storage file.
	StorageFileName = "storage.json"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "courseware.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultHomePath returns the default root directory for courseware state.
func DefaultHomePath() string {
	return HomeDirName
}

// DefaultStoragePath returns the default path for the key-value storage file.
// It joins .courseware and storage.json.
func DefaultStoragePath() string {
	return filepath.Join(HomeDirName, StorageFileName)
}
