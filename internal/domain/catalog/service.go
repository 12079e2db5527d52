package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"skilllink/internal/database"
	"skilllink/internal/pkg/errs"
	"skilllink/internal/pkg/utils"
)

// PublishGate decides inside a transaction whether a worker may publish.
type PublishGate interface {
	CheckPublish(ctx context.Context, tx *gorm.DB, workerID int64) error
}

// Catalog implements listing queries and the publish workflow.
type Catalog struct {
	repo *Repository
	gate PublishGate
}

func New(repo *Repository, gate PublishGate) *Catalog {
	return &Catalog{repo: repo, gate: gate}
}

func (s *Catalog) ListCategories(ctx context.Context) ([]CategoryWithCount, error) {
	return s.repo.ListCategories(ctx, false, 0)
}

// FeaturedCategories returns the categories with most active services.
func (s *Catalog) FeaturedCategories(ctx context.Context, limit int) ([]CategoryWithCount, error) {
	return s.repo.ListCategories(ctx, true, limit)
}

func (s *Catalog) ListServices(ctx context.Context, f ServiceFilter) ([]Listing, error) {
	return s.repo.ListServices(ctx, f)
}

func (s *Catalog) GetService(ctx context.Context, id int64) (*Listing, error) {
	return s.repo.GetListing(ctx, id)
}

func (s *Catalog) ListByWorker(ctx context.Context, workerID int64) ([]Listing, error) {
	return s.repo.ListByWorker(ctx, workerID)
}

// LookupOwner resolves an active service to the worker who answers for it.
func (s *Catalog) LookupOwner(ctx context.Context, serviceID int64) (*Owner, error) {
	workerID, svc, err := s.repo.OwnerOf(ctx, nil, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.State != StateActive {
		return nil, ErrServiceNotFound
	}
	return &Owner{ServiceID: svc.ID, ServiceTitle: svc.Title, WorkerID: workerID}, nil
}

// CreateService publishes a listing. The worker row is locked and the quota
// evaluated in the same transaction as the insert.
func (s *Catalog) CreateService(ctx context.Context, workerID int64, req *CreateServiceRequest) (*Listing, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	svc := &Service{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Price:       priceOrDefault(req.Price),
		CategoryID:  req.CategoryID,
		State:       StateActive,
	}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		found, err := database.LockRow(tx, "workers", "person_id", workerID)
		if err != nil {
			return errs.Remote("lock worker", err)
		}
		if !found {
			return ErrWorkerNotFound
		}
		if err := s.checkCategory(tx, svc.CategoryID); err != nil {
			return err
		}
		if err := s.gate.CheckPublish(ctx, tx, workerID); err != nil {
			return err
		}
		if err := tx.Create(svc).Error; err != nil {
			return errs.Remote("create service", err)
		}
		link := &WorkerService{WorkerID: workerID, ServiceID: svc.ID}
		return errs.Remote("link service", tx.Create(link).Error)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("catalog: published service_id=%d worker_id=%d", svc.ID, workerID)
	return s.repo.GetListing(ctx, svc.ID)
}

// UpdateService patches a listing owned by workerID. Reactivating an inactive
// listing goes through the publication gate again.
func (s *Catalog) UpdateService(ctx context.Context, workerID, serviceID int64, req *UpdateServiceRequest) (*Listing, error) {
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		svc, err := s.owned(ctx, tx, workerID, serviceID)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return ErrTitleRequired
			}
			updates["title"] = title
		}
		if req.Description != nil {
			updates["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Price != nil {
			updates["price"] = priceOrDefault(*req.Price)
		}
		if req.CategoryID != nil {
			if err := s.checkCategory(tx, req.CategoryID); err != nil {
				return err
			}
			updates["category_id"] = *req.CategoryID
		}
		if req.State != nil {
			switch *req.State {
			case StateActive, StateInactive:
			default:
				return ErrInvalidState
			}
			if *req.State == StateActive && svc.State != StateActive {
				if _, err := database.LockRow(tx, "workers", "person_id", workerID); err != nil {
					return errs.Remote("lock worker", err)
				}
				if err := s.gate.CheckPublish(ctx, tx, workerID); err != nil {
					return err
				}
			}
			updates["state"] = *req.State
		}
		if len(updates) == 0 {
			return nil
		}
		return errs.Remote("update service", tx.Model(&Service{}).Where("id = ?", serviceID).Updates(updates).Error)
	})
	if err != nil {
		return nil, err
	}
	return s.repo.GetListing(ctx, serviceID)
}

// DeleteService removes the worker link and the listing.
func (s *Catalog) DeleteService(ctx context.Context, workerID, serviceID int64) error {
	return s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.owned(ctx, tx, workerID, serviceID); err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", serviceID).Delete(&WorkerService{}).Error; err != nil {
			return errs.Remote("unlink service", err)
		}
		return errs.Remote("delete service", tx.Delete(&Service{}, serviceID).Error)
	})
}

func (s *Catalog) owned(ctx context.Context, tx *gorm.DB, workerID, serviceID int64) (*Service, error) {
	owner, svc, err := s.repo.OwnerOf(ctx, tx, serviceID)
	if errors.Is(err, ErrServiceUnowned) {
		return nil, ErrNotServiceOwner
	}
	if err != nil {
		return nil, err
	}
	if owner != workerID {
		return nil, ErrNotServiceOwner
	}
	return svc, nil
}

func (s *Catalog) checkCategory(tx *gorm.DB, id *int64) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.Model(&Category{}).Where("id = ?", *id).Count(&n).Error; err != nil {
		return errs.Remote("get category", err)
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func priceOrDefault(p string) string {
	return utils.OrDefault(strings.TrimSpace(p), DefaultPrice)
}
