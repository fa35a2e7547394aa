package service

import (
	"context"
	"fmt"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
)

type PartnerService interface {
	Create(ctx context.Context, rc *transfer.RequestContext, pc *transfer.PartnerCreation) (int64, error)
	List(ctx context.Context, rc *transfer.RequestContext) ([]*models.RetailPartner, error)
	PartnerInfo(ctx context.Context, rc *transfer.RequestContext, partnerID int64) (*models.RetailPartner, error)
	Update(ctx context.Context, rc *transfer.RequestContext, pu *transfer.PartnerUpdate) error
	Remove(ctx context.Context, rc *transfer.RequestContext, partnerID int64) error
}

type partnerService struct {
	rp repository.RetailPartnerRepository
}

func NewPartnerService(rp repository.RetailPartnerRepository) PartnerService {
	return &partnerService{rp: rp}
}

func (s *partnerService) Create(ctx context.Context, rc *transfer.RequestContext, pc *transfer.PartnerCreation) (int64, error) {
	if pc == nil {
		return 0, apperr.Validation("partner creation data is nil")
	}
	if pc.Name == "" {
		return 0, apperr.Validation("partner name cannot be empty")
	}

	partner := models.RetailPartner{
		UserID:  rc.UserID,
		Name:    pc.Name,
		Email:   pc.Email,
		Phone:   pc.Phone,
		Address: pc.Address,
		Status:  models.PartnerStatusPending,
		Tags:    pc.Tags,
	}

	partnerID, err := s.rp.Create(ctx, nil, &partner)
	if err != nil {
		return 0, fmt.Errorf("error creating partner: %w", err)
	}

	return partnerID, nil
}

func (s *partnerService) List(ctx context.Context, rc *transfer.RequestContext) ([]*models.RetailPartner, error) {
	partners, err := s.rp.GetByUserID(ctx, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing partners: %w", err)
	}
	return partners, nil
}

func (s *partnerService) PartnerInfo(ctx context.Context, rc *transfer.RequestContext, partnerID int64) (*models.RetailPartner, error) {
	if partnerID == 0 {
		return nil, apperr.Validation("partner id is not valid")
	}

	isValid, err := s.rp.CheckByUserID(ctx, partnerID, rc.UserID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		return nil, apperr.NotFound("partner doesn't exist")
	}

	partner, err := s.rp.GetByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("error getting partner info: %w", err)
	}

	return partner, nil
}

func (s *partnerService) Update(ctx context.Context, rc *transfer.RequestContext, pu *transfer.PartnerUpdate) error {
	if pu == nil || pu.ID == 0 {
		return apperr.Validation("partner id is not valid")
	}

	switch pu.Status {
	case "", models.PartnerStatusPending, models.PartnerStatusActive, models.PartnerStatusNeedsAttention, models.PartnerStatusInactive:
	default:
		return apperr.Validation(fmt.Sprintf("unknown partner status %q", pu.Status))
	}

	isValid, err := s.rp.CheckByUserID(ctx, pu.ID, rc.UserID)
	if err != nil {
		return err
	}
	if !isValid {
		return apperr.NotFound("partner doesn't exist")
	}

	partner, err := s.rp.GetByID(ctx, pu.ID)
	if err != nil {
		return fmt.Errorf("error getting partner info: %w", err)
	}

	partner.Name = pu.Name
	partner.Email = pu.Email
	partner.Phone = pu.Phone
	partner.Address = pu.Address
	partner.Tags = pu.Tags
	if pu.Status != "" {
		partner.Status = pu.Status
	}

	if err := s.rp.Update(ctx, partner); err != nil {
		return fmt.Errorf("error updating partner: %w", err)
	}

	return nil
}

func (s *partnerService) Remove(ctx context.Context, rc *transfer.RequestContext, partnerID int64) error {
	if partnerID == 0 {
		return apperr.Validation("partner id is not valid")
	}

	isValid, err := s.rp.CheckByUserID(ctx, partnerID, rc.UserID)
	if err != nil {
		return err
	}
	if !isValid {
		return apperr.NotFound("partner doesn't exist")
	}

	if err := s.rp.Remove(ctx, partnerID); err != nil {
		return fmt.Errorf("error removing partner: %w", err)
	}

	return nil
}
