package service

import (
	"context"
	"fmt"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
	"github.com/brandsync/api/pkg/utils"
)

type ApiKeyService interface {
	Create(ctx context.Context, rc *transfer.RequestContext) (string, error)
	List(ctx context.Context, rc *transfer.RequestContext) ([]*models.ApiKey, error)
	Remove(ctx context.Context, rc *transfer.RequestContext, keyID int64) error
	// GetUserID resolves an API key to its owner for request authentication.
	GetUserID(ctx context.Context, apiKey string) (int64, bool, error)
}

type apiKeyService struct {
	ak repository.ApiKeyRepository
}

func NewApiKeyService(ak repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{ak: ak}
}

func (s *apiKeyService) Create(ctx context.Context, rc *transfer.RequestContext) (string, error) {
	key, err := utils.GenerateRandomKey(32)
	if err != nil {
		return "", fmt.Errorf("error generating api key: %w", err)
	}

	apiKey := models.ApiKey{
		UserID: rc.UserID,
		ApiKey: key,
	}

	if _, err := s.ak.Create(ctx, &apiKey); err != nil {
		return "", fmt.Errorf("error saving api key: %w", err)
	}

	return key, nil
}

func (s *apiKeyService) List(ctx context.Context, rc *transfer.RequestContext) ([]*models.ApiKey, error) {
	keys, err := s.ak.GetByUserID(ctx, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing api keys: %w", err)
	}
	return keys, nil
}

func (s *apiKeyService) Remove(ctx context.Context, rc *transfer.RequestContext, keyID int64) error {
	if keyID == 0 {
		return apperr.Validation("key id is not valid")
	}

	isValid, err := s.ak.CheckByUserID(ctx, keyID, rc.UserID)
	if err != nil {
		return err
	}
	if !isValid {
		return apperr.NotFound("api key doesn't exist")
	}

	if err := s.ak.Remove(ctx, keyID); err != nil {
		return fmt.Errorf("error removing api key: %w", err)
	}
	return nil
}

func (s *apiKeyService) GetUserID(ctx context.Context, apiKey string) (int64, bool, error) {
	if apiKey == "" {
		return 0, false, nil
	}

	userID, isExist, err := s.ak.GetByKey(ctx, apiKey)
	if err != nil {
		return 0, false, err
	}
	if !isExist {
		return 0, false, nil
	}

	return *userID, true, nil
}
