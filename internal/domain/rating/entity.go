package rating

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Rating closes out a request. At most one exists per request.
type Rating struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RequestID int64     `gorm:"column:request_id;uniqueIndex;not null" json:"request_id"`
	Score     int       `gorm:"column:score;not null" json:"score"`
	Comment   string    `gorm:"column:comment" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Rating) TableName() string { return "ratings" }

func Models() []any {
	return []any{&Rating{}}
}
