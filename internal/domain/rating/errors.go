package rating

import "skilllink/internal/pkg/errs"

var (
	ErrInvalidScore   = errs.Validation("score must be between 1 and 5")
	ErrCommentTooLong = errs.Validation("comment is too long")
	ErrNotRateable    = errs.Conflict("request cannot be rated in its current state")
	ErrAlreadyRated   = errs.Conflict("request has already been rated")
)
