package subscription

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"skilllink/internal/database"
	"skilllink/internal/pkg/errs"
)

// Repository handles persistence for plans and memberships
type Repository interface {
	// WithTx binds the repository to an open transaction.
	WithTx(tx *gorm.DB) Repository
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// Plans
	ListPlans(ctx context.Context) ([]Plan, error)
	GetPlan(ctx context.Context, id int64) (*Plan, error)

	// Memberships
	GetActiveMembership(ctx context.Context, userID int64) (*Membership, error)
	LockPerson(ctx context.Context, userID int64) (bool, error)
	CancelActive(ctx context.Context, userID int64) (int64, error)
	CreateMembership(ctx context.Context, m *Membership) error
	ExpireMemberships(ctx context.Context, now time.Time) (int64, error)

	// Usage
	CountActiveServices(ctx context.Context, workerID int64) (int64, error)
	CountPortfolioItems(ctx context.Context, workerID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) ListPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	err := r.db.WithContext(ctx).Order("price ASC, id ASC").Find(&plans).Error
	if err != nil {
		return nil, errs.Remote("list plans", err)
	}
	return plans, nil
}

func (r *repository) GetPlan(ctx context.Context, id int64) (*Plan, error) {
	var plan Plan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, errs.Remote("get plan", err)
	}
	return &plan, nil
}

func (r *repository) GetActiveMembership(ctx context.Context, userID int64) (*Membership, error) {
	var m Membership
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND state = ?", userID, StateActive).
		Order("start_date DESC, id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoMembership
	}
	if err != nil {
		return nil, errs.Remote("get membership", err)
	}
	return &m, nil
}

func (r *repository) LockPerson(ctx context.Context, userID int64) (bool, error) {
	ok, err := database.LockRow(r.db.WithContext(ctx), "persons", "id", userID)
	if err != nil {
		return false, errs.Remote("lock person", err)
	}
	return ok, nil
}

func (r *repository) CancelActive(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Membership{}).
		Where("user_id = ? AND state = ?", userID, StateActive).
		Update("state", StateCancelled)
	return res.RowsAffected, errs.Remote("cancel membership", res.Error)
}

func (r *repository) CreateMembership(ctx context.Context, m *Membership) error {
	return errs.Remote("create membership", r.db.WithContext(ctx).Create(m).Error)
}

func (r *repository) ExpireMemberships(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Membership{}).
		Where("state = ? AND end_date < ?", StateActive, now).
		Update("state", StateExpired)
	return res.RowsAffected, errs.Remote("expire memberships", res.Error)
}

func (r *repository) CountActiveServices(ctx context.Context, workerID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("services").
		Joins("JOIN worker_services ON worker_services.service_id = services.id").
		Where("worker_services.worker_id = ? AND services.state = ?", workerID, "A").
		Count(&n).Error
	return n, errs.Remote("count services", err)
}

func (r *repository) CountPortfolioItems(ctx context.Context, workerID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("portfolio_items").Where("worker_id = ?", workerID).Count(&n).Error
	return n, errs.Remote("count portfolio items", err)
}
