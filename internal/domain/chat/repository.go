package chat

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"skilllink/internal/pkg/errs"
)

// Repository handles all DB operations for the chat domain
type Repository interface {
	Create(ctx context.Context, msg *Message) error
	List(ctx context.Context, requestID int64) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *Message) error {
	return errs.Remote("create message", r.db.WithContext(ctx).Create(msg).Error)
}

func (r *repository) List(ctx context.Context, requestID int64) ([]Entry, error) {
	var out []Entry
	err := r.db.WithContext(ctx).
		Table("messages").
		Select(`messages.id, messages.request_id, messages.sender_id, messages.content, messages.sent_at,
			COALESCE(persons.first_name, '') || ' ' || COALESCE(persons.last_name, '') AS sender_name`).
		Joins("LEFT JOIN persons ON persons.id = messages.sender_id").
		Where("messages.request_id = ?", requestID).
		Order("messages.sent_at ASC, messages.id ASC").
		Scan(&out).Error
	if err != nil {
		return nil, errs.Remote("list messages", err)
	}
	for i := range out {
		out[i].SenderName = strings.TrimSpace(out[i].SenderName)
	}
	if out == nil {
		out = []Entry{}
	}
	return out, nil
}
