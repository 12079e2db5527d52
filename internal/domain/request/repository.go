package request

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skilllink/internal/database"
	"skilllink/internal/pkg/errs"
)

// Repository handles persistence for service requests
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, r *ServiceRequest) error
	Get(ctx context.Context, id int64) (*ServiceRequest, error)
	GetView(ctx context.Context, id int64) (*View, error)
	HasOpen(ctx context.Context, clientID, serviceID int64) (bool, error)
	LockPerson(ctx context.Context, personID int64) (bool, error)
	// Transition moves the request to `to` only if it is currently in one of
	// `from`. It reports whether a row changed.
	Transition(ctx context.Context, id int64, from []State, to State) (bool, error)
	ListFor(ctx context.Context, personID int64, clientOnly bool) ([]View, error)
	CountByState(ctx context.Context, column string, personID int64) (map[State]int64, error)
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

func (r *repository) Create(ctx context.Context, sr *ServiceRequest) error {
	return errs.Remote("create request", r.db.WithContext(ctx).Create(sr).Error)
}

func (r *repository) Get(ctx context.Context, id int64) (*ServiceRequest, error) {
	var sr ServiceRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, errs.Remote("get request", err)
	}
	return &sr, nil
}

func (r *repository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("service_requests").
		Select(`service_requests.id, service_requests.service_id, COALESCE(services.title, '') AS service_title,
			service_requests.client_id, cp.first_name AS client_first_name, cp.last_name AS client_last_name,
			service_requests.worker_id, wp.first_name AS worker_first_name, wp.last_name AS worker_last_name,
			service_requests.message, service_requests.state, service_requests.created_at, service_requests.updated_at`).
		Joins("LEFT JOIN services ON services.id = service_requests.service_id").
		Joins("LEFT JOIN persons AS cp ON cp.id = service_requests.client_id").
		Joins("LEFT JOIN persons AS wp ON wp.id = service_requests.worker_id")
}

func (r *repository) GetView(ctx context.Context, id int64) (*View, error) {
	var out []View
	if err := r.views(ctx).Where("service_requests.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, errs.Remote("get request", err)
	}
	if len(out) == 0 {
		return nil, ErrRequestNotFound
	}
	out[0].fill()
	return &out[0], nil
}

func (r *repository) HasOpen(ctx context.Context, clientID, serviceID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&ServiceRequest{}).
		Where("client_id = ? AND service_id = ? AND state IN ?", clientID, serviceID, []State{StatePending, StateAccepted}).
		Count(&n).Error
	if err != nil {
		return false, errs.Remote("check open request", err)
	}
	return n > 0, nil
}

func (r *repository) LockPerson(ctx context.Context, personID int64) (bool, error) {
	ok, err := database.LockRow(r.db.WithContext(ctx), "persons", "id", personID)
	return ok, errs.Remote("lock person", err)
}

func (r *repository) Transition(ctx context.Context, id int64, from []State, to State) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&ServiceRequest{}).
		Where("id = ? AND state IN ?", id, from).
		Update("state", to)
	if res.Error != nil {
		return false, errs.Remote("update request", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListFor(ctx context.Context, personID int64, clientOnly bool) ([]View, error) {
	q := r.views(ctx)
	if clientOnly {
		q = q.Where("service_requests.client_id = ?", personID)
	} else {
		q = q.Where("service_requests.client_id = ? OR service_requests.worker_id = ?", personID, personID)
	}
	var out []View
	err := q.Order("service_requests.created_at DESC, service_requests.id DESC").Scan(&out).Error
	if err != nil {
		return nil, errs.Remote("list requests", err)
	}
	for i := range out {
		out[i].fill()
	}
	if out == nil {
		out = []View{}
	}
	return out, nil
}

func (r *repository) CountByState(ctx context.Context, column string, personID int64) (map[State]int64, error) {
	if column != "client_id" && column != "worker_id" {
		return nil, errs.Validation("invalid participant column")
	}
	var rows []struct {
		State State
		N     int64
	}
	err := r.db.WithContext(ctx).
		Model(&ServiceRequest{}).
		Select("state, COUNT(*) AS n").
		Where(column+" = ?", personID).
		Group("state").
		Scan(&rows).Error
	if err != nil {
		return nil, errs.Remote("count requests", err)
	}
	out := make(map[State]int64, len(rows))
	for _, row := range rows {
		out[row.State] = row.N
	}
	return out, nil
}
