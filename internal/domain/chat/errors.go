package chat

import "skilllink/internal/pkg/errs"

var (
	ErrContentRequired = errs.Validation("message content must not be empty")
	ErrContentTooLong  = errs.Validation("message content is too long")
)
