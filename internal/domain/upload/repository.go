package upload

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"skilllink/internal/pkg/errs"
)

type Repository interface {
	Create(ctx context.Context, u *Upload) error
	GetByID(ctx context.Context, id string) (*Upload, error)
	Delete(ctx context.Context, id string) error
	ListByPerson(ctx context.Context, personID int64) ([]Upload, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *Upload) error {
	return errs.Remote("create upload", r.db.WithContext(ctx).Create(u).Error)
}

func (r *repository) GetByID(ctx context.Context, id string) (*Upload, error) {
	var u Upload
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUploadNotFound
	}
	if err != nil {
		return nil, errs.Remote("get upload", err)
	}
	return &u, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return errs.Remote("delete upload", r.db.WithContext(ctx).Where("id = ?", id).Delete(&Upload{}).Error)
}

func (r *repository) ListByPerson(ctx context.Context, personID int64) ([]Upload, error) {
	uploads := []Upload{}
	err := r.db.WithContext(ctx).Where("person_id = ?", personID).Order("created_at DESC").Find(&uploads).Error
	if err != nil {
		return nil, errs.Remote("list uploads", err)
	}
	return uploads, nil
}
