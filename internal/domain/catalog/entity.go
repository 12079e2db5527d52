package catalog

import "time"

// ServiceState is the publication state of a listing.
type ServiceState string

const (
	StateActive   ServiceState = "A"
	StateInactive ServiceState = "I"
)

const (
	DefaultPrice        = "A convenir"
	DefaultCategoryName = "General"
	UnassignedWorker    = "Disponible"
)

type Category struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"id"`
	Name string `gorm:"column:name;uniqueIndex;not null" json:"name" yaml:"name"`
	Icon string `gorm:"column:icon" json:"icon" yaml:"icon"`
}

func (Category) TableName() string { return "categories" }

// Service is a listing published by a worker. The owning worker is recorded
// in WorkerService, not on the row itself.
type Service struct {
	ID          int64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string       `gorm:"column:title;not null" json:"title"`
	Description string       `gorm:"column:description" json:"description"`
	Price       string       `gorm:"column:price;not null" json:"price"`
	CategoryID  *int64       `gorm:"column:category_id;index" json:"category_id,omitempty"`
	State       ServiceState `gorm:"column:state;type:varchar(1);index;not null" json:"state"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"column:updated_at" json:"updated_at"`
}

func (Service) TableName() string { return "services" }

type WorkerService struct {
	WorkerID  int64 `gorm:"column:worker_id;primaryKey;autoIncrement:false" json:"worker_id"`
	ServiceID int64 `gorm:"column:service_id;primaryKey;autoIncrement:false;uniqueIndex" json:"service_id"`
}

func (WorkerService) TableName() string { return "worker_services" }

func Models() []any {
	return []any{&Category{}, &Service{}, &WorkerService{}}
}
