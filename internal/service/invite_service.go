package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const inviteTTL = 7 * 24 * time.Hour

type InviteService interface {
	Create(ctx context.Context, rc *transfer.RequestContext, ic *transfer.InviteCreation) (*models.Invite, error)
	List(ctx context.Context, rc *transfer.RequestContext) ([]*models.Invite, error)
	// Accept consumes the invite: it creates an active retail partner for the
	// inviting brand and deletes the token.
	Accept(ctx context.Context, token string) (int64, error)
}

type inviteService struct {
	ir repository.InviteRepository
	rp repository.RetailPartnerRepository
}

func NewInviteService(ir repository.InviteRepository, rp repository.RetailPartnerRepository) InviteService {
	return &inviteService{
		ir: ir,
		rp: rp,
	}
}

func (s *inviteService) Create(ctx context.Context, rc *transfer.RequestContext, ic *transfer.InviteCreation) (*models.Invite, error) {
	if ic == nil || ic.Email == "" {
		return nil, apperr.Validation("invite email cannot be empty")
	}

	token, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error generating invite token: %w", err)
	}

	invite := models.Invite{
		Token:     token,
		BrandID:   rc.UserID,
		Email:     ic.Email,
		Name:      ic.Name,
		ExpiresAt: time.Now().Add(inviteTTL),
	}

	if err := s.ir.Create(ctx, &invite); err != nil {
		return nil, fmt.Errorf("error saving invite: %w", err)
	}

	return &invite, nil
}

func (s *inviteService) List(ctx context.Context, rc *transfer.RequestContext) ([]*models.Invite, error) {
	invites, err := s.ir.ListByBrandID(ctx, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing invites: %w", err)
	}
	return invites, nil
}

func (s *inviteService) Accept(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, apperr.Validation("invite token cannot be empty")
	}

	invite, err := s.ir.GetByToken(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("error looking up invite: %w", err)
	}
	if invite == nil {
		return 0, apperr.NotFound("invite doesn't exist")
	}

	if time.Now().After(invite.ExpiresAt) {
		if err := s.ir.Remove(ctx, token); err != nil {
			slog.Info(err.Error())
		}
		return 0, apperr.Validation("invite has expired")
	}

	partner := models.RetailPartner{
		UserID: invite.BrandID,
		Name:   invite.Name,
		Email:  invite.Email,
		Status: models.PartnerStatusActive,
	}

	partnerID, err := s.rp.Create(ctx, nil, &partner)
	if err != nil {
		return 0, fmt.Errorf("error creating partner from invite: %w", err)
	}

	if err := s.ir.Remove(ctx, token); err != nil {
		slog.Info(err.Error())
	}

	return partnerID, nil
}
