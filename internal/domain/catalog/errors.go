package catalog

import "skilllink/internal/pkg/errs"

var (
	ErrServiceNotFound  = errs.NotFound("service not found")
	ErrCategoryNotFound = errs.NotFound("category not found")
	ErrWorkerNotFound   = errs.NotFound("worker not found")
	ErrServiceUnowned   = errs.NotFound("service has no worker")
	ErrNotServiceOwner  = errs.Authorization("service belongs to another worker")
	ErrTitleRequired    = errs.Validation("title must not be empty")
	ErrInvalidState     = errs.Validation("state must be A or I")
)
