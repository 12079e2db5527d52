package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"skilllink/internal/pkg/errs"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListCategories returns categories with their active service count.
func (r *Repository) ListCategories(ctx context.Context, byCount bool, limit int) ([]CategoryWithCount, error) {
	q := r.db.WithContext(ctx).
		Table("categories").
		Select("categories.id, categories.name, categories.icon, COUNT(services.id) AS service_count").
		Joins("LEFT JOIN services ON services.category_id = categories.id AND services.state = ?", StateActive).
		Group("categories.id, categories.name, categories.icon")
	if byCount {
		q = q.Order("service_count DESC, categories.id ASC")
	} else {
		q = q.Order("categories.id ASC")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []CategoryWithCount
	if err := q.Scan(&out).Error; err != nil {
		return nil, errs.Remote("list categories", err)
	}
	return out, nil
}

func (r *Repository) listings(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("services").
		Select(`services.id, services.title, services.description, services.price, services.category_id,
			categories.name AS category_name, services.state, services.created_at,
			worker_services.worker_id, persons.first_name AS worker_first_name, persons.last_name AS worker_last_name,
			COALESCE(workers.average_rating, 0) AS worker_rating`).
		Joins("LEFT JOIN categories ON categories.id = services.category_id").
		Joins("LEFT JOIN worker_services ON worker_services.service_id = services.id").
		Joins("LEFT JOIN persons ON persons.id = worker_services.worker_id").
		Joins("LEFT JOIN workers ON workers.person_id = worker_services.worker_id")
}

func (r *Repository) ListServices(ctx context.Context, f ServiceFilter) ([]Listing, error) {
	q := r.listings(ctx).Where("services.state = ?", StateActive)
	if f.CategoryID > 0 {
		q = q.Where("services.category_id = ?", f.CategoryID)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Query)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(services.title) LIKE ? OR LOWER(COALESCE(services.description, '')) LIKE ?", like, like)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	return scanListings(q.Order("services.created_at DESC, services.id DESC"))
}

func (r *Repository) ListByWorker(ctx context.Context, workerID int64) ([]Listing, error) {
	q := r.listings(ctx).
		Where("worker_services.worker_id = ?", workerID).
		Order("services.created_at DESC, services.id DESC")
	return scanListings(q)
}

func (r *Repository) GetListing(ctx context.Context, id int64) (*Listing, error) {
	out, err := scanListings(r.listings(ctx).Where("services.id = ?", id).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrServiceNotFound
	}
	return &out[0], nil
}

func scanListings(q *gorm.DB) ([]Listing, error) {
	var out []Listing
	if err := q.Scan(&out).Error; err != nil {
		return nil, errs.Remote("list services", err)
	}
	for i := range out {
		out[i].fill()
	}
	if out == nil {
		out = []Listing{}
	}
	return out, nil
}

// OwnerOf resolves the worker linked to a service.
func (r *Repository) OwnerOf(ctx context.Context, tx *gorm.DB, serviceID int64) (int64, *Service, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var svc Service
	err := db.WithContext(ctx).Where("id = ?", serviceID).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, ErrServiceNotFound
	}
	if err != nil {
		return 0, nil, errs.Remote("get service", err)
	}
	var link WorkerService
	err = db.WithContext(ctx).Where("service_id = ?", serviceID).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, &svc, ErrServiceUnowned
	}
	if err != nil {
		return 0, nil, errs.Remote("get service owner", err)
	}
	return link.WorkerID, &svc, nil
}

func (r *Repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}
