package subscription

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
)

// Service manages plans, memberships and the quota gates built on them.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *Service) ListPlans(ctx context.Context) ([]Plan, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []Plan{}
	}
	return plans, nil
}

// CurrentMembership returns the user's ACTIVA membership with its plan.
func (s *Service) CurrentMembership(ctx context.Context, userID int64) (*Membership, error) {
	return s.repo.GetActiveMembership(ctx, userID)
}

// Subscribe replaces any ACTIVA membership with a new one on planID. The
// person row is locked so concurrent calls for one user serialise.
func (s *Service) Subscribe(ctx context.Context, userID, planID int64) (*Membership, error) {
	var created *Membership
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		plan, err := tx.GetPlan(ctx, planID)
		if err != nil {
			return err
		}
		found, err := tx.LockPerson(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return ErrPersonNotFound
		}
		if _, err := tx.CancelActive(ctx, userID); err != nil {
			return err
		}

		start := s.now()
		m := &Membership{
			UserID:    userID,
			PlanID:    plan.ID,
			StartDate: start,
			EndDate:   start.Add(MembershipTerm),
			State:     StateActive,
		}
		if err := tx.CreateMembership(ctx, m); err != nil {
			return err
		}
		m.Plan = plan
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("subscription: user_id=%d plan_id=%d membership_id=%d", userID, planID, created.ID)
	return created, nil
}

// CanPublish reports whether the worker may publish one more active service.
func (s *Service) CanPublish(ctx context.Context, workerID int64) (*Decision, error) {
	return decide(ctx, s.repo, workerID, publicationCap)
}

// CanAddPortfolioItem reports whether the worker may add one more portfolio item.
func (s *Service) CanAddPortfolioItem(ctx context.Context, workerID int64) (*Decision, error) {
	return decide(ctx, s.repo, workerID, portfolioCap)
}

// CheckPublish evaluates CanPublish inside tx and converts a denial into an error.
func (s *Service) CheckPublish(ctx context.Context, tx *gorm.DB, workerID int64) error {
	d, err := decide(ctx, s.repo.WithTx(tx), workerID, publicationCap)
	if err != nil {
		return err
	}
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonNoActivePlan:
		return ErrNoActivePlan
	default:
		return ErrPublicationLimit
	}
}

// CheckPortfolio is CheckPublish for portfolio items.
func (s *Service) CheckPortfolio(ctx context.Context, tx *gorm.DB, workerID int64) error {
	d, err := decide(ctx, s.repo.WithTx(tx), workerID, portfolioCap)
	if err != nil {
		return err
	}
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonNoActivePlan:
		return ErrNoActivePlan
	default:
		return PortfolioLimitError(d.Limit)
	}
}

// ExpireMemberships marks ACTIVA rows whose end date has passed as VENCIDA.
func (s *Service) ExpireMemberships(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.ExpireMemberships(ctx, now)
}

type quota struct {
	limit func(*Plan) int
	count func(context.Context, Repository, int64) (int64, error)
}

var (
	publicationCap = quota{
		limit: func(p *Plan) int { return p.MaxPublications },
		count: func(ctx context.Context, r Repository, id int64) (int64, error) {
			return r.CountActiveServices(ctx, id)
		},
	}
	portfolioCap = quota{
		limit: func(p *Plan) int { return p.MaxPortfolioItems },
		count: func(ctx context.Context, r Repository, id int64) (int64, error) {
			return r.CountPortfolioItems(ctx, id)
		},
	}
)

func decide(ctx context.Context, repo Repository, workerID int64, q quota) (*Decision, error) {
	m, err := repo.GetActiveMembership(ctx, workerID)
	if errors.Is(err, ErrNoMembership) {
		return &Decision{Allowed: false, Reason: ReasonNoActivePlan}, nil
	}
	if err != nil {
		return nil, err
	}
	if m.Plan == nil {
		return &Decision{Allowed: false, Reason: ReasonNoActivePlan}, nil
	}

	limit := q.limit(m.Plan)
	if limit == Unlimited {
		return &Decision{Allowed: true, Limit: Unlimited}, nil
	}
	n, err := q.count(ctx, repo, workerID)
	if err != nil {
		return nil, err
	}
	if n >= int64(limit) {
		return &Decision{Allowed: false, Reason: ReasonLimitReached, Limit: limit, Current: n}, nil
	}
	return &Decision{Allowed: true, Limit: limit, Current: n}, nil
}
