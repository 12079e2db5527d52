package portfolio

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skilllink/internal/database"
	"skilllink/internal/pkg/errs"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	LockWorker(ctx context.Context, workerID int64) (bool, error)
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, id int64) (*Item, error)
	Delete(ctx context.Context, id int64) error
	ListByWorker(ctx context.Context, workerID int64) ([]Item, error)
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

func (r *repository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *repository) LockWorker(ctx context.Context, workerID int64) (bool, error) {
	ok, err := database.LockRow(r.db.WithContext(ctx), "workers", "person_id", workerID)
	return ok, errs.Remote("lock worker", err)
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return errs.Remote("create portfolio item", r.db.WithContext(ctx).Create(item).Error)
}

func (r *repository) Get(ctx context.Context, id int64) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, errs.Remote("get portfolio item", err)
	}
	return &item, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return errs.Remote("delete portfolio item", r.db.WithContext(ctx).Delete(&Item{}, id).Error)
}

func (r *repository) ListByWorker(ctx context.Context, workerID int64) ([]Item, error) {
	items := []Item{}
	err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, errs.Remote("list portfolio", err)
	}
	return items, nil
}
