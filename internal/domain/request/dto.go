package request

import (
	"strings"
	"time"
)

type CreateRequestInput struct {
	ServiceID int64  `json:"service_id" validate:"required,gt=0"`
	WorkerID  int64  `json:"worker_id" validate:"omitempty,gt=0"`
	Message   string `json:"message" validate:"required,max=2000"`
}

// View is a request annotated for list and detail screens.
type View struct {
	ID           int64     `gorm:"column:id" json:"id"`
	ServiceID    int64     `gorm:"column:service_id" json:"service_id"`
	ServiceTitle string    `gorm:"column:service_title" json:"service_title"`
	ClientID     int64     `gorm:"column:client_id" json:"client_id"`
	ClientFirst  string    `gorm:"column:client_first_name" json:"-"`
	ClientLast   string    `gorm:"column:client_last_name" json:"-"`
	ClientName   string    `gorm:"-" json:"client_name"`
	WorkerID     int64     `gorm:"column:worker_id" json:"worker_id"`
	WorkerFirst  string    `gorm:"column:worker_first_name" json:"-"`
	WorkerLast   string    `gorm:"column:worker_last_name" json:"-"`
	WorkerName   string    `gorm:"-" json:"worker_name"`
	Message      string    `gorm:"column:message" json:"message"`
	State        State     `gorm:"column:state" json:"state"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (v *View) fill() {
	v.ClientName = strings.TrimSpace(v.ClientFirst + " " + v.ClientLast)
	v.WorkerName = strings.TrimSpace(v.WorkerFirst + " " + v.WorkerLast)
}

// Dashboard counts a worker's requests per state.
type Dashboard struct {
	Pending   int64 `json:"pending"`
	Accepted  int64 `json:"accepted"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}
