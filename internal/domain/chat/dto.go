package chat

import "time"

const maxContentLength = 4000

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

// Entry is a message as rendered in a thread.
type Entry struct {
	ID         int64     `gorm:"column:id" json:"id"`
	RequestID  int64     `gorm:"column:request_id" json:"request_id"`
	SenderID   int64     `gorm:"column:sender_id" json:"sender_id"`
	SenderName string    `gorm:"column:sender_name" json:"sender_name"`
	Content    string    `gorm:"column:content" json:"content"`
	SentAt     time.Time `gorm:"column:sent_at" json:"sent_at"`
	IsInquiry  bool      `gorm:"-" json:"is_inquiry"`
}

// Thread is the request's original inquiry followed by its messages.
type Thread struct {
	Inquiry  Entry   `json:"inquiry"`
	Messages []Entry `json:"messages"`
}
