package upload

import "skilllink/internal/pkg/errs"

var (
	ErrUploadNotFound  = errs.NotFound("upload not found")
	ErrNotOwner        = errs.Authorization("you do not own this upload")
	ErrFileTooLarge    = errs.Validation("file exceeds maximum allowed size")
	ErrInvalidMimeType = errs.Validation("file type is not allowed")
	ErrEmptyFile       = errs.Validation("file is empty")
	ErrNoFile          = errs.Validation("no file provided")
)
