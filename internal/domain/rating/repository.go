package rating

import (
	"context"
	"math"

	"gorm.io/gorm"

	"skilllink/internal/database"
	"skilllink/internal/domain/request"
	"skilllink/internal/pkg/errs"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error
	Requests() request.Repository

	LockRequest(ctx context.Context, requestID int64) (bool, error)
	ExistsFor(ctx context.Context, requestID int64) (bool, error)
	Create(ctx context.Context, r *Rating) error
	RecomputeWorker(ctx context.Context, workerID int64) (*Aggregate, error)
	ListByWorker(ctx context.Context, workerID int64, limit int) ([]View, error)
}

type repository struct {
	db       *gorm.DB
	requests request.Repository
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, requests: request.NewRepository(db)}
}

func (r *repository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx, requests: r.requests.WithTx(tx)})
	})
}

func (r *repository) Requests() request.Repository {
	return r.requests
}

func (r *repository) LockRequest(ctx context.Context, requestID int64) (bool, error) {
	ok, err := database.LockRow(r.db.WithContext(ctx), "service_requests", "id", requestID)
	return ok, errs.Remote("lock request", err)
}

func (r *repository) ExistsFor(ctx context.Context, requestID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Rating{}).Where("request_id = ?", requestID).Count(&n).Error
	if err != nil {
		return false, errs.Remote("check rating", err)
	}
	return n > 0, nil
}

func (r *repository) Create(ctx context.Context, rt *Rating) error {
	err := r.db.WithContext(ctx).Create(rt).Error
	if database.IsUniqueViolation(err) {
		return ErrAlreadyRated
	}
	return errs.Remote("create rating", err)
}

// RecomputeWorker derives the worker's average and count from every rating
// on the worker's requests and stores them on the worker row.
func (r *repository) RecomputeWorker(ctx context.Context, workerID int64) (*Aggregate, error) {
	var row struct {
		Count int64
		Total int64
	}
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("COUNT(*) AS count, COALESCE(SUM(ratings.score), 0) AS total").
		Joins("JOIN service_requests ON service_requests.id = ratings.request_id").
		Where("service_requests.worker_id = ?", workerID).
		Scan(&row).Error
	if err != nil {
		return nil, errs.Remote("aggregate ratings", err)
	}

	agg := &Aggregate{WorkerID: workerID, RatingCount: row.Count}
	if row.Count > 0 {
		agg.AverageRating = math.Round(float64(row.Total)/float64(row.Count)*100) / 100
	}
	err = r.db.WithContext(ctx).
		Table("workers").
		Where("person_id = ?", workerID).
		Updates(map[string]any{"average_rating": agg.AverageRating, "rating_count": agg.RatingCount}).Error
	if err != nil {
		return nil, errs.Remote("update worker rating", err)
	}
	return agg, nil
}

func (r *repository) ListByWorker(ctx context.Context, workerID int64, limit int) ([]View, error) {
	var out []View
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select(`ratings.id, ratings.request_id, ratings.score, ratings.comment, ratings.created_at,
			COALESCE(services.title, '') AS service_title,
			COALESCE(persons.first_name, '') AS client_first_name, COALESCE(persons.last_name, '') AS client_last_name`).
		Joins("JOIN service_requests ON service_requests.id = ratings.request_id").
		Joins("LEFT JOIN services ON services.id = service_requests.service_id").
		Joins("LEFT JOIN persons ON persons.id = service_requests.client_id").
		Where("service_requests.worker_id = ?", workerID).
		Order("ratings.created_at DESC, ratings.id DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, errs.Remote("list ratings", err)
	}
	for i := range out {
		out[i].fill()
	}
	if out == nil {
		out = []View{}
	}
	return out, nil
}
