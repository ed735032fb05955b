package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Migration is one ordered schema upgrade. Run receives a transaction-scoped
// handle; returning an error rolls that migration back. The runner guarantees
// correct selection and ordering only; re-run safety is up to the author.
type Migration struct {
	Version     int
	Description string
	Run         func(ctx context.Context, tx *Store) error
}

// Schema is everything Open needs to bring the database to the target
// version: collection definitions, the first-run seed loader, and the
// ordered upgrade list.
type Schema struct {
	Version     int
	Collections []Collection
	Seed        func(ctx context.Context, s *Store) error
	Migrations  []Migration
}

type schemaInfo struct {
	ID        uint `gorm:"primaryKey"`
	Version   int  `gorm:"not null"`
	UpdatedAt time.Time
}

func (schemaInfo) TableName() string {
	return "schema_info"
}

// migrate moves the stored version up to sc.Version. On a fresh store the
// seed loader runs first, then every migration with version in
// (stored, target], strictly ascending, each in its own transaction.
// When failOnError is false a failed migration is logged and skipped,
// leaving its target state partially applied.
func migrate(ctx context.Context, s *Store, sc Schema, failOnError bool) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&schemaInfo{}); err != nil {
		return &SchemaError{Version: sc.Version, Err: fmt.Errorf("automigrate schema_info -> %w", err)}
	}

	info := schemaInfo{ID: 1}
	result := s.db.WithContext(ctx).Limit(1).Find(&info)
	if result.Error != nil {
		return &SchemaError{Version: sc.Version, Err: result.Error}
	}
	stored := 0
	if result.RowsAffected > 0 {
		stored = info.Version
	}

	if stored > sc.Version {
		return &SchemaError{
			Version: sc.Version,
			Err:     fmt.Errorf("stored version %v is newer than requested %v", stored, sc.Version),
		}
	}
	if stored == sc.Version {
		return nil
	}

	if stored == 0 && sc.Seed != nil {
		if err := sc.Seed(ctx, s); err != nil {
			return &SchemaError{Version: sc.Version, Err: fmt.Errorf("seed -> %w", err)}
		}
		zap.L().Info("store seeded with initial data")
	}

	pending := make([]Migration, 0, len(sc.Migrations))
	for _, m := range sc.Migrations {
		if m.Version > stored && m.Version <= sc.Version {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Version < pending[j].Version
	})

	for _, m := range pending {
		if err := s.Tx(ctx, func(tx *Store) error {
			return m.Run(ctx, tx)
		}); err != nil {
			if failOnError {
				return &SchemaError{Version: m.Version, Err: fmt.Errorf("%v -> %w", m.Description, err)}
			}

			zap.L().Warn("migration failed, skipping",
				zap.Int("version", m.Version),
				zap.String("description", m.Description),
				zap.Error(err))
		}
	}

	info = schemaInfo{ID: 1, Version: sc.Version, UpdatedAt: time.Now()}
	if err := s.db.WithContext(ctx).Save(&info).Error; err != nil {
		return &SchemaError{Version: sc.Version, Err: fmt.Errorf("record version -> %w", err)}
	}

	return nil
}
