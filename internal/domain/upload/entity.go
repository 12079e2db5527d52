package upload

import "time"

// Upload is an image stored on local disk and served under the static prefix.
// Portfolio items and profile banners reference it by URL.
type Upload struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	PersonID     int64     `gorm:"column:person_id;index;not null" json:"person_id"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FilePath     string    `gorm:"column:file_path" json:"-"`
	FileURL      string    `gorm:"column:file_url" json:"url"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	Size         int64     `gorm:"column:size" json:"size"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Upload) TableName() string { return "uploads" }

func Models() []any {
	return []any{&Upload{}}
}
