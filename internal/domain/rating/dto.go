package rating

import (
	"strings"
	"time"
)

const maxCommentLength = 1000

type RateRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// Aggregate is the worker's rating summary after a change.
type Aggregate struct {
	WorkerID      int64   `json:"worker_id"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int64   `json:"rating_count"`
}

type Result struct {
	Rating *Rating    `json:"rating"`
	Worker *Aggregate `json:"worker"`
}

// View is a rating as shown on a worker's public page.
type View struct {
	ID           int64     `gorm:"column:id" json:"id"`
	RequestID    int64     `gorm:"column:request_id" json:"request_id"`
	Score        int       `gorm:"column:score" json:"score"`
	Comment      string    `gorm:"column:comment" json:"comment,omitempty"`
	ServiceTitle string    `gorm:"column:service_title" json:"service_title"`
	ClientFirst  string    `gorm:"column:client_first_name" json:"-"`
	ClientLast   string    `gorm:"column:client_last_name" json:"-"`
	ClientName   string    `gorm:"-" json:"client_name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (v *View) fill() {
	v.ClientName = strings.TrimSpace(v.ClientFirst + " " + v.ClientLast)
}
