package chat

import "time"

// Message is one entry of a request's append-only conversation.
type Message struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RequestID int64     `gorm:"column:request_id;index;not null" json:"request_id"`
	SenderID  int64     `gorm:"column:sender_id;not null" json:"sender_id"`
	Content   string    `gorm:"column:content;not null" json:"content"`
	SentAt    time.Time `gorm:"column:sent_at;autoCreateTime;index" json:"sent_at"`
}

func (Message) TableName() string { return "messages" }

func Models() []any {
	return []any{&Message{}}
}
