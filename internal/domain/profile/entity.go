package profile

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Role is derived once from whether a Worker row exists for the person.
type Role string

const (
	RoleClient Role = "client"
	RoleWorker Role = "worker"
)

func (r Role) IsWorker() bool { return r == RoleWorker }

// Person is any registered account. Clients are plain persons.
type Person struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FirstName    string    `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name" json:"last_name"`
	Email        string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Comuna       string    `gorm:"column:comuna" json:"comuna"`
	Phone        string    `gorm:"column:phone" json:"phone"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Person) TableName() string { return "persons" }

// DisplayName joins first and last name.
func (p *Person) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Worker marks a person as a service provider and holds the rating aggregate.
type Worker struct {
	PersonID      int64     `gorm:"column:person_id;primaryKey;autoIncrement:false" json:"person_id"`
	Verified      bool      `gorm:"column:verified;not null;default:false" json:"verified"`
	AverageRating float64   `gorm:"column:average_rating;not null;default:0" json:"average_rating"`
	RatingCount   int       `gorm:"column:rating_count;not null;default:0" json:"rating_count"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Worker) TableName() string { return "workers" }

// WorkerProfile is the public page customisation of a worker.
type WorkerProfile struct {
	WorkerID    int64     `gorm:"column:worker_id;primaryKey;autoIncrement:false" json:"worker_id"`
	Description string    `gorm:"column:description" json:"description"`
	BannerURL   string    `gorm:"column:banner_url" json:"banner_url"`
	ThemeColor  string    `gorm:"column:theme_color" json:"theme_color"`
	CategoryID  *int64    `gorm:"column:category_id;index" json:"category_id,omitempty"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (WorkerProfile) TableName() string { return "worker_profiles" }

type Certification struct {
	ID       int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorkerID int64      `gorm:"column:worker_id;index;not null" json:"worker_id"`
	Name     string     `gorm:"column:name;not null" json:"name"`
	Issuer   string     `gorm:"column:issuer" json:"issuer"`
	IssuedAt *time.Time `gorm:"column:issued_at" json:"issued_at,omitempty"`
}

func (Certification) TableName() string { return "certifications" }

// Curriculum stores a batch of experience entries as a JSON array.
type Curriculum struct {
	ID         int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorkerID   int64          `gorm:"column:worker_id;index;not null" json:"worker_id"`
	Experience datatypes.JSON `gorm:"column:experience" json:"experience"`
	CreatedAt  time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Curriculum) TableName() string { return "curricula" }

type Experience struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description"`
}

// Profile is the resolved identity of an authenticated person.
type Profile struct {
	Person   Person `json:"person"`
	Role     Role   `json:"role"`
	WorkerID *int64 `json:"worker_id,omitempty"`
}

// Models lists the tables owned by this package, in migration order.
func Models() []any {
	return []any{&Person{}, &Worker{}, &WorkerProfile{}, &Certification{}, &Curriculum{}}
}
