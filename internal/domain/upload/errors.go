package upload

import "errors"

var (
	ErrFileRequired         = errors.New("file is required")
	ErrInvalidFileType      = errors.New("invalid file type: only pdf allowed")
	ErrFileTooLarge         = errors.New("file too large")
	ErrFolderNotFound       = errors.New("folder not found for contractor")
	ErrParentNotSharedDrive = errors.New("configured parent folder is not in a shared drive")
	ErrMissingCredentials   = errors.New("missing drive credentials")
	ErrMissingParentFolder  = errors.New("missing drive parent folder id")
)
