package listing

import "errors"

var (
	ErrNotFound   = errors.New("folder does not exist")
	ErrReadFailed = errors.New("failed to read folder")
	ErrMetadata   = errors.New("failed to read file metadata")
)
