package subscription

import (
	"fmt"

	"skilllink/internal/pkg/errs"
)

const (
	ReasonNoActivePlan = "No active plan"
	ReasonLimitReached = "Limit reached"
)

var (
	ErrPlanNotFound     = errs.NotFound("plan not found")
	ErrPersonNotFound   = errs.NotFound("person not found")
	ErrNoMembership     = errs.NotFound("no active membership")
	ErrNoActivePlan     = errs.LimitExceeded(ReasonNoActivePlan)
	ErrPublicationLimit = errs.LimitExceeded(ReasonLimitReached)
)

// PortfolioLimitError names the cap the worker ran into.
func PortfolioLimitError(limit int) error {
	return errs.LimitExceeded(fmt.Sprintf(
		"Has alcanzado el límite de %d items en tu portafolio. Actualiza tu plan para agregar más.", limit))
}
