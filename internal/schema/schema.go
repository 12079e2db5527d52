// Package schema collects every persisted model for migration.
package schema

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"skilllink/internal/domain/catalog"
	"skilllink/internal/domain/chat"
	"skilllink/internal/domain/portfolio"
	"skilllink/internal/domain/profile"
	"skilllink/internal/domain/rating"
	"skilllink/internal/domain/request"
	"skilllink/internal/domain/subscription"
	"skilllink/internal/domain/upload"
)

// Models lists the tables in dependency order.
func Models() []any {
	var out []any
	for _, group := range [][]any{
		profile.Models(),
		catalog.Models(),
		subscription.Models(),
		request.Models(),
		chat.Models(),
		rating.Models(),
		portfolio.Models(),
		upload.Models(),
	} {
		out = append(out, group...)
	}
	return out
}

func Migrate(db *gorm.DB) error {
	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Printf("schema: migrated %d tables", len(models))
	return nil
}
