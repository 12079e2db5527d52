package portfolio

import "time"

// Item is one showcase entry on a worker's public page.
type Item struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	WorkerID    int64     `gorm:"column:worker_id;index;not null" json:"worker_id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	PhotoURL    string    `gorm:"column:photo_url" json:"photo_url"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Item) TableName() string { return "portfolio_items" }

func Models() []any {
	return []any{&Item{}}
}
