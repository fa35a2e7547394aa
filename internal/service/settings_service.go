package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
)

type SettingsService interface {
	GetSettings(ctx context.Context, rc *transfer.RequestContext) (*models.Settings, error)
	SaveSettings(ctx context.Context, rc *transfer.RequestContext, su *transfer.SettingsUpdate) error
}

type settingsService struct {
	s repository.SettingsRepository
}

func NewSettingsService(s repository.SettingsRepository) SettingsService {
	return &settingsService{s: s}
}

// GetSettings returns stored brand defaults, or the built-in defaults when
// the brand never saved any.
func (s *settingsService) GetSettings(ctx context.Context, rc *transfer.RequestContext) (*models.Settings, error) {
	settings, isExist, err := s.s.GetByUserID(ctx, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	if !isExist {
		return &models.Settings{
			UserID:      rc.UserID,
			PostingTime: defaultPostingTime,
			Timezone:    "UTC",
		}, nil
	}

	return settings, nil
}

// SaveSettings upserts the brand's defaults.
func (s *settingsService) SaveSettings(ctx context.Context, rc *transfer.RequestContext, su *transfer.SettingsUpdate) error {
	if su == nil {
		return apperr.Validation("settings data is nil")
	}

	if su.PostingTime != "" {
		if _, err := time.Parse("15:04", su.PostingTime); err != nil {
			return apperr.Validation("posting time must be in HH:MM format")
		}
	}
	if su.Timezone != "" {
		if _, err := time.LoadLocation(su.Timezone); err != nil {
			return apperr.Validation(fmt.Sprintf("unknown timezone %q", su.Timezone))
		}
	}

	settings := models.Settings{
		UserID:        rc.UserID,
		PostingTime:   su.PostingTime,
		DefaultFooter: su.DefaultFooter,
		Timezone:      su.Timezone,
	}
	if settings.PostingTime == "" {
		settings.PostingTime = defaultPostingTime
	}
	if settings.Timezone == "" {
		settings.Timezone = "UTC"
	}

	_, isExist, err := s.s.GetByUserID(ctx, rc.UserID)
	if err != nil {
		return fmt.Errorf("error getting settings: %w", err)
	}

	if !isExist {
		if _, err := s.s.Create(ctx, &settings); err != nil {
			return fmt.Errorf("error creating settings: %w", err)
		}
		return nil
	}

	if err := s.s.UpdateSettings(ctx, &settings, rc.UserID); err != nil {
		return fmt.Errorf("error updating settings: %w", err)
	}
	return nil
}
