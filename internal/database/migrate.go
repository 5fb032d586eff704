package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/zelenmun/EvalUp/internal/catalog"
	"github.com/zelenmun/EvalUp/internal/config"
	"github.com/zelenmun/EvalUp/internal/exam"
	"github.com/zelenmun/EvalUp/internal/user"
)

func models() []any {
	var all []any
	all = append(all, catalog.Models()...)
	all = append(all, user.Models()...)
	all = append(all, exam.Models()...)
	return all
}

// Migrate creates or updates every table and seeds the fixed catalogs.
func Migrate(ctx context.Context, db *gorm.DB) error {
	log := config.WithContext(ctx)

	if err := db.WithContext(ctx).AutoMigrate(models()...); err != nil {
		log.WithError(err).Error("AutoMigrate failed")
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := catalog.Seed(ctx, db); err != nil {
		return err
	}

	log.Info("Database migrated")
	return nil
}
