package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
)

// TargetingService resolves a targeting specification into the concrete
// partner list a scheduling operation will fan out to.
type TargetingService interface {
	ResolveByIDs(ctx context.Context, brandID int64, ids []int64) ([]*models.RetailPartner, error)
	ResolveByTag(ctx context.Context, brandID int64, tag string) ([]*models.RetailPartner, error)
}

type targetingService struct {
	rp repository.RetailPartnerRepository
}

func NewTargetingService(rp repository.RetailPartnerRepository) TargetingService {
	return &targetingService{rp: rp}
}

// ResolveByIDs verifies every id belongs to the requesting brand. A single
// foreign id fails the whole resolution; no partial result is returned.
func (s *targetingService) ResolveByIDs(ctx context.Context, brandID int64, ids []int64) ([]*models.RetailPartner, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make(map[int64]struct{}, len(ids))
	deduped := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := unique[id]; ok {
			continue
		}
		unique[id] = struct{}{}
		deduped = append(deduped, id)
	}

	partners, err := s.rp.ListByIDs(ctx, brandID, deduped)
	if err != nil {
		return nil, fmt.Errorf("error resolving partners: %w", err)
	}

	if len(partners) != len(deduped) {
		slog.Info("partner id outside requesting brand", "brand_id", brandID)
		return nil, apperr.Forbidden("one or more partners do not belong to this brand")
	}

	return partners, nil
}

// ResolveByTag matches metadata tags exactly and case-sensitively against
// the brand's active partners. An empty result is valid here; the caller
// decides whether an empty target list is an error.
func (s *targetingService) ResolveByTag(ctx context.Context, brandID int64, tag string) ([]*models.RetailPartner, error) {
	if tag == "" {
		return nil, apperr.Validation("tag cannot be empty")
	}

	partners, err := s.rp.ListActiveByTag(ctx, brandID, tag)
	if err != nil {
		return nil, fmt.Errorf("error resolving partners by tag: %w", err)
	}

	return partners, nil
}
