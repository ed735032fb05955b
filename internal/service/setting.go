package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
)

var ErrSettingNotFound = repository.ErrSettingNotFound

type SettingRepository interface {
	FindAll(ctx context.Context) ([]domain.Setting, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Setting, error)
	Upsert(ctx context.Context, setting domain.Setting) (domain.Setting, error)
}

type SettingService struct {
	repo SettingRepository
}

func NewSettingService(repo SettingRepository) *SettingService {
	return &SettingService{
		repo: repo,
	}
}

func (s *SettingService) GetSettings(ctx context.Context) ([]domain.Setting, error) {
	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return settings, nil
}

func (s *SettingService) GetSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error) {
	if category == "" {
		return nil, domain.NewValidationError("category", "is required")
	}

	settings, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByCategory -> %w", err)
	}

	return settings, nil
}

func (s *SettingService) PutSetting(ctx context.Context, setting domain.Setting) (domain.Setting, error) {
	if setting.Category == "" {
		return domain.Setting{}, domain.NewValidationError("category", "is required")
	}
	if setting.Name == "" {
		return domain.Setting{}, domain.NewValidationError("name", "is required")
	}

	saved, err := s.repo.Upsert(ctx, setting)
	if err != nil {
		return domain.Setting{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	return saved, nil
}
