package filesystem

import (
	"fmt"
	"io"
)

type NotFoundError struct {
	err error
}

func (nf *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %v", nf.err)
}

func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// FilePutOptions represents options specified by user for FilePut call
type FilePutOptions struct {
	Progress    io.Reader
	ContentType string
}

// FileGetOptions represents options specified by user for FileGet call
type FileGetOptions struct {
	VersionID string
}

type FolderCreateOptions struct {
	ObjectLocking bool
}

// FileSystem is the output target of a conversion run. Artifacts are built
// completely in memory first, FilePut writes them in one piece.
type FileSystem interface {
	FolderCreate(folder string, opts FolderCreateOptions) error
	FileExists(folder, name string) (bool, error)
	FileGet(folder, name string, opts FileGetOptions) ([]byte, error)
	FilePut(folder, name string, data []byte, opts FilePutOptions) error
	String() string
	Protocol() string
}
