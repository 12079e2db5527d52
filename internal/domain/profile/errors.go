package profile

import "skilllink/internal/pkg/errs"

var (
	ErrPersonNotFound = errs.NotFound("person not found")
	ErrWorkerNotFound = errs.NotFound("worker not found")
	ErrEmailTaken     = errs.Conflict("email already registered")
	ErrNameRequired   = errs.Validation("name must not be empty")
)

const (
	DefaultDescription = "Profesional registrado en SkillLink"
	DefaultCategory    = "General"
)
