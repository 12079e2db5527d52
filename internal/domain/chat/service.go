package chat

import (
	"context"
	"strings"
	"unicode/utf8"

	"skilllink/internal/domain/request"
)

// RequestReader loads the request a conversation belongs to.
type RequestReader interface {
	GetView(ctx context.Context, id int64) (*request.View, error)
}

// Publisher pushes events to live listeners of a request.
type Publisher interface {
	Publish(requestID int64, event *Event)
}

type Service struct {
	repo     Repository
	requests RequestReader
	pub      Publisher
}

// NewService wires the message log. pub may be nil.
func NewService(repo Repository, requests RequestReader, pub Publisher) *Service {
	return &Service{repo: repo, requests: requests, pub: pub}
}

// Authorize loads the request and checks that actorID takes part in it.
func (s *Service) Authorize(ctx context.Context, actorID, requestID int64) (*request.View, error) {
	v, err := s.requests.GetView(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if actorID != v.ClientID && actorID != v.WorkerID {
		return nil, request.ErrNotParticipant
	}
	return v, nil
}

// SendMessage appends a message from one of the two participants.
func (s *Service) SendMessage(ctx context.Context, requestID, senderID int64, content string) (*Entry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return nil, ErrContentTooLong
	}
	v, err := s.Authorize(ctx, senderID, requestID)
	if err != nil {
		return nil, err
	}

	msg := &Message{RequestID: requestID, SenderID: senderID, Content: content}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:         msg.ID,
		RequestID:  requestID,
		SenderID:   senderID,
		SenderName: v.ClientName,
		Content:    msg.Content,
		SentAt:     msg.SentAt,
	}
	if senderID == v.WorkerID {
		entry.SenderName = v.WorkerName
	}
	if s.pub != nil {
		s.pub.Publish(requestID, NewMessageEvent(requestID, entry))
	}
	return entry, nil
}

// ListMessages returns the inquiry and the messages in send order.
func (s *Service) ListMessages(ctx context.Context, actorID, requestID int64) (*Thread, error) {
	v, err := s.Authorize(ctx, actorID, requestID)
	if err != nil {
		return nil, err
	}
	msgs, err := s.repo.List(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return &Thread{
		Inquiry: Entry{
			RequestID:  v.ID,
			SenderID:   v.ClientID,
			SenderName: v.ClientName,
			Content:    v.Message,
			SentAt:     v.CreatedAt,
			IsInquiry:  true,
		},
		Messages: msgs,
	}, nil
}
