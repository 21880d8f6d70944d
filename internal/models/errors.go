package models

import "errors"

var (
	// ErrMissingFile is returned when a request carries no file or an empty filename.
	ErrMissingFile = errors.New("no file selected")
	// ErrInvalidFileType is returned when a file extension is not whitelisted.
	ErrInvalidFileType = errors.New("invalid file type")
	// ErrDuplicatePhoto is returned when a batch upload would overwrite an existing photo.
	ErrDuplicatePhoto = errors.New("photo already exists")
	// ErrNotFound is returned when a person or stored file does not exist.
	ErrNotFound = errors.New("not found")
)
