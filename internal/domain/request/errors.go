package request

import "skilllink/internal/pkg/errs"

var (
	ErrMessageRequired   = errs.Validation("message must not be empty")
	ErrWorkerMismatch    = errs.Validation("worker does not own the service")
	ErrSelfRequest       = errs.Validation("cannot contact your own service")
	ErrRequestNotFound   = errs.NotFound("request not found")
	ErrClientNotFound    = errs.NotFound("client not found")
	ErrNotParticipant    = errs.Authorization("not a participant of this request")
	ErrNotClient         = errs.Authorization("only the client can do this")
	ErrNotWorker         = errs.Authorization("only the worker can do this")
	ErrDuplicateRequest  = errs.Conflict("an open request for this service already exists")
	ErrInvalidTransition = errs.Conflict("request is not in a state that allows this action")
)
