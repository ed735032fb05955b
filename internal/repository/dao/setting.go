package dao

import (
	"context"
	"errors"
	"time"

	"github.com/vietanh2810/resto-ops/internal/store"
)

var ErrSettingNotFound = errors.New("setting not found")

type Setting struct {
	ID uint `gorm:"primaryKey"`

	Category string `gorm:"not null;index:idx_settings_category_name,unique,priority:1"`
	Name     string `gorm:"not null;index:idx_settings_category_name,unique,priority:2"`
	Value    string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Setting) TableName() string {
	return "settings"
}

type SettingDAO struct {
	store *store.Store
}

func NewSettingDAO(s *store.Store) *SettingDAO {
	return &SettingDAO{
		store: s,
	}
}

func (d *SettingDAO) Insert(ctx context.Context, setting Setting) (Setting, error) {
	if err := store.Add(ctx, d.store, &setting); err != nil {
		return Setting{}, err
	}

	return setting, nil
}

func (d *SettingDAO) FindAll(ctx context.Context) ([]Setting, error) {
	return store.GetAll[Setting](ctx, d.store)
}

func (d *SettingDAO) FindByCategory(ctx context.Context, category string) ([]Setting, error) {
	return store.GetByIndex[Setting](ctx, d.store, "category", category)
}

func (d *SettingDAO) Update(ctx context.Context, setting Setting) (Setting, error) {
	if err := store.Update(ctx, d.store, &setting); err != nil {
		return Setting{}, err
	}

	return setting, nil
}
