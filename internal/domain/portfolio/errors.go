package portfolio

import "skilllink/internal/pkg/errs"

var (
	ErrTitleRequired  = errs.Validation("title must not be empty")
	ErrItemNotFound   = errs.NotFound("portfolio item not found")
	ErrWorkerNotFound = errs.NotFound("worker not found")
	ErrNotItemOwner   = errs.Authorization("portfolio item belongs to another worker")
)
