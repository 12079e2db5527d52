// Package seed loads the reference catalog and plan tiers.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skilllink/internal/domain/catalog"
	"skilllink/internal/domain/subscription"
)

//go:embed seed.yaml
var defaultData []byte

// Data is the seed file layout.
type Data struct {
	Categories []catalog.Category  `yaml:"categories"`
	Plans      []subscription.Plan `yaml:"plans"`
}

// Parse decodes a seed file.
func Parse(raw []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &d, nil
}

// Default returns the embedded seed data.
func Default() (*Data, error) {
	return Parse(defaultData)
}

// Apply upserts categories and plans by name. Running it again leaves the
// same rows behind.
func Apply(ctx context.Context, db *gorm.DB, d *Data) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range d.Categories {
			c := d.Categories[i]
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"icon"}),
			}).Create(&c).Error
			if err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
		}
		for i := range d.Plans {
			p := d.Plans[i]
			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"price", "max_publications", "max_portfolio_items", "publication_duration_days", "description",
				}),
			}).Create(&p).Error
			if err != nil {
				return fmt.Errorf("seed plan %q: %w", p.Name, err)
			}
		}
		log.Printf("seed: categories=%d plans=%d", len(d.Categories), len(d.Plans))
		return nil
	})
}
