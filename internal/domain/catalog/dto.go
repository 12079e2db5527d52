package catalog

import (
	"strings"
	"time"
)

type CategoryWithCount struct {
	ID           int64  `gorm:"column:id" json:"id"`
	Name         string `gorm:"column:name" json:"name"`
	Icon         string `gorm:"column:icon" json:"icon"`
	ServiceCount int64  `gorm:"column:service_count" json:"service_count"`
}

// Listing is a service row annotated with its category and worker.
type Listing struct {
	ID           int64        `gorm:"column:id" json:"id"`
	Title        string       `gorm:"column:title" json:"title"`
	Description  string       `gorm:"column:description" json:"description"`
	Price        string       `gorm:"column:price" json:"price"`
	CategoryID   *int64       `gorm:"column:category_id" json:"category_id,omitempty"`
	CategoryName string       `gorm:"column:category_name" json:"category_name"`
	State        ServiceState `gorm:"column:state" json:"state"`
	WorkerID     *int64       `gorm:"column:worker_id" json:"worker_id,omitempty"`
	WorkerFirst  string       `gorm:"column:worker_first_name" json:"-"`
	WorkerLast   string       `gorm:"column:worker_last_name" json:"-"`
	WorkerName   string       `gorm:"-" json:"worker_name"`
	WorkerRating float64      `gorm:"column:worker_rating" json:"worker_rating"`
	CreatedAt    time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (l *Listing) fill() {
	if l.CategoryName == "" {
		l.CategoryName = DefaultCategoryName
	}
	name := strings.TrimSpace(l.WorkerFirst + " " + l.WorkerLast)
	if l.WorkerID == nil || name == "" {
		name = UnassignedWorker
	}
	l.WorkerName = name
}

type ServiceFilter struct {
	CategoryID int64
	Query      string
	Limit      int
	Offset     int
}

type CreateServiceRequest struct {
	Title       string `json:"title" validate:"required,max=160"`
	Description string `json:"description" validate:"max=4000"`
	Price       string `json:"price" validate:"max=60"`
	CategoryID  *int64 `json:"category_id" validate:"omitempty,gt=0"`
}

type UpdateServiceRequest struct {
	Title       *string       `json:"title" validate:"omitempty,max=160"`
	Description *string       `json:"description" validate:"omitempty,max=4000"`
	Price       *string       `json:"price" validate:"omitempty,max=60"`
	CategoryID  *int64        `json:"category_id" validate:"omitempty,gt=0"`
	State       *ServiceState `json:"state" validate:"omitempty,oneof=A I"`
}

// Owner identifies who answers requests for a service.
type Owner struct {
	ServiceID    int64
	ServiceTitle string
	WorkerID     int64
}
