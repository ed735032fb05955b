package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
)

var ErrSettingNotFound = dao.ErrSettingNotFound

type SettingDAO interface {
	Insert(ctx context.Context, setting dao.Setting) (dao.Setting, error)
	FindAll(ctx context.Context) ([]dao.Setting, error)
	FindByCategory(ctx context.Context, category string) ([]dao.Setting, error)
	Update(ctx context.Context, setting dao.Setting) (dao.Setting, error)
}

type SettingRepository struct {
	dao SettingDAO
}

func NewSettingRepository(dao SettingDAO) *SettingRepository {
	return &SettingRepository{
		dao: dao,
	}
}

func (r *SettingRepository) FindAll(ctx context.Context) ([]domain.Setting, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return settingsDaoToDomain(found), nil
}

func (r *SettingRepository) FindByCategory(ctx context.Context, category string) ([]domain.Setting, error) {
	found, err := r.dao.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByCategory -> %w", err)
	}

	return settingsDaoToDomain(found), nil
}

// Upsert writes one named value, inserting it when absent.
func (r *SettingRepository) Upsert(ctx context.Context, setting domain.Setting) (domain.Setting, error) {
	existing, err := r.dao.FindByCategory(ctx, setting.Category)
	if err != nil {
		return domain.Setting{}, fmt.Errorf("r.dao.FindByCategory -> %w", err)
	}

	for _, s := range existing {
		if s.Name == setting.Name {
			s.Value = setting.Value
			updated, err := r.dao.Update(ctx, s)
			if err != nil {
				return domain.Setting{}, fmt.Errorf("r.dao.Update -> %w", err)
			}

			return settingDaoToDomain(updated), nil
		}
	}

	created, err := r.dao.Insert(ctx, dao.Setting{
		Category: setting.Category,
		Name:     setting.Name,
		Value:    setting.Value,
	})
	if err != nil {
		return domain.Setting{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return settingDaoToDomain(created), nil
}

func settingDaoToDomain(s dao.Setting) domain.Setting {
	return domain.Setting{
		ID:        s.ID,
		Category:  s.Category,
		Name:      s.Name,
		Value:     s.Value,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func settingsDaoToDomain(settings []dao.Setting) []domain.Setting {
	result := make([]domain.Setting, len(settings))
	for i, s := range settings {
		result[i] = settingDaoToDomain(s)
	}

	return result
}
