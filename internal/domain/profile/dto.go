package profile

import "time"

type UpdatePersonRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=120"`
	Phone  *string `json:"phone" validate:"omitempty,max=30"`
	Comuna *string `json:"comuna" validate:"omitempty,max=80"`
}

type UpdateThemeRequest struct {
	BannerURL  string `json:"banner_url" validate:"omitempty,max=500"`
	ThemeColor string `json:"theme_color" validate:"omitempty,hexcolor"`
}

type AddCertificationRequest struct {
	Name     string     `json:"name" validate:"required,max=160"`
	Issuer   string     `json:"issuer" validate:"max=160"`
	IssuedAt *time.Time `json:"issued_at"`
}

type AddExperienceRequest struct {
	Entries []Experience `json:"entries" validate:"required,min=1,dive"`
}

// ServiceSummary is a worker's active listing as shown on the public page.
type ServiceSummary struct {
	ID           int64  `gorm:"column:id" json:"id"`
	Title        string `gorm:"column:title" json:"title"`
	Description  string `gorm:"column:description" json:"description"`
	Price        string `gorm:"column:price" json:"price"`
	CategoryName string `gorm:"column:category_name" json:"category_name"`
}

// WorkerCard is one row in worker listings and search results.
type WorkerCard struct {
	WorkerID      int64   `gorm:"column:worker_id" json:"worker_id"`
	FirstName     string  `gorm:"column:first_name" json:"-"`
	LastName      string  `gorm:"column:last_name" json:"-"`
	Name          string  `gorm:"-" json:"name"`
	Comuna        string  `gorm:"column:comuna" json:"comuna"`
	Verified      bool    `gorm:"column:verified" json:"verified"`
	AverageRating float64 `gorm:"column:average_rating" json:"average_rating"`
	RatingCount   int     `gorm:"column:rating_count" json:"rating_count"`
	Description   string  `gorm:"column:description" json:"description"`
	CategoryID    *int64  `gorm:"column:category_id" json:"category_id,omitempty"`
}

type PublicProfile struct {
	WorkerID       int64            `json:"worker_id"`
	Name           string           `json:"name"`
	Comuna         string           `json:"comuna"`
	Phone          string           `json:"phone"`
	Verified       bool             `json:"verified"`
	AverageRating  float64          `json:"average_rating"`
	RatingCount    int              `json:"rating_count"`
	Description    string           `json:"description"`
	BannerURL      string           `json:"banner_url"`
	ThemeColor     string           `json:"theme_color"`
	CategoryID     *int64           `json:"category_id,omitempty"`
	Services       []ServiceSummary `json:"services"`
	Certifications []Certification  `json:"certifications"`
	Experience     []Experience     `json:"experience"`
	CompletedJobs  int64            `json:"completed_jobs"`
}

// WorkerFilter drives worker listings. Zero values disable a criterion.
type WorkerFilter struct {
	Query        string
	CategoryID   int64
	VerifiedOnly bool
	Limit        int
}
