package portfolio

import (
	"context"
	"log"
	"strings"

	"gorm.io/gorm"
)

// QuotaGate decides inside a transaction whether a worker may add an item.
type QuotaGate interface {
	CheckPortfolio(ctx context.Context, tx *gorm.DB, workerID int64) error
}

type Service struct {
	repo Repository
	gate QuotaGate
}

func NewService(repo Repository, gate QuotaGate) *Service {
	return &Service{repo: repo, gate: gate}
}

// List returns the worker's items, newest first.
func (s *Service) List(ctx context.Context, workerID int64) ([]Item, error) {
	return s.repo.ListByWorker(ctx, workerID)
}

// Add stores a new item if the worker's plan leaves room for it.
func (s *Service) Add(ctx context.Context, workerID int64, req *AddItemRequest) (*Item, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	item := &Item{
		WorkerID:    workerID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		PhotoURL:    strings.TrimSpace(req.PhotoURL),
	}

	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		found, err := repo.LockWorker(ctx, workerID)
		if err != nil {
			return err
		}
		if !found {
			return ErrWorkerNotFound
		}
		if err := s.gate.CheckPortfolio(ctx, tx, workerID); err != nil {
			return err
		}
		return repo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("portfolio: added item_id=%d worker_id=%d", item.ID, workerID)
	return item, nil
}

// Delete removes an item owned by workerID.
func (s *Service) Delete(ctx context.Context, workerID, itemID int64) error {
	item, err := s.repo.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.WorkerID != workerID {
		return ErrNotItemOwner
	}
	return s.repo.Delete(ctx, itemID)
}
