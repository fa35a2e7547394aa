package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	config "github.com/brandsync/api/configs"
	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
	"github.com/brandsync/api/pkg/utils"
)

const (
	FACEBOOK_AUTH_URL = "https://www.facebook.com/v19.0/dialog/oauth"
	GOOGLE_AUTH_URL   = "https://accounts.google.com/o/oauth2/v2/auth"
)

// PlatformService owns the connection lifecycle surface that is not
// platform specific: issuing auth URLs, listing a partner's accounts and
// disconnecting one.
type PlatformService interface {
	GetAuthURL(ctx context.Context, partnerID int64, platform string) (string, error)
	List(ctx context.Context, rc *transfer.RequestContext, partnerID int64) ([]*models.SocialAccount, error)
	Delete(ctx context.Context, rc *transfer.RequestContext, accountID int64) error
}

type platformService struct {
	cfg config.Config
	rp  repository.RetailPartnerRepository
	sa  repository.SocialAccountRepository
}

func NewPlatformService(cfg config.Config, rp repository.RetailPartnerRepository, sa repository.SocialAccountRepository) PlatformService {
	return &platformService{
		cfg: cfg,
		rp:  rp,
		sa:  sa,
	}
}

// GetAuthURL builds the provider authorization URL. The state parameter is a
// signed, short-lived token bound to the partner and platform; the callback
// rejects anything it cannot verify.
func (s *platformService) GetAuthURL(ctx context.Context, partnerID int64, platform string) (string, error) {
	partner, err := s.rp.GetByID(ctx, partnerID)
	if err != nil {
		return "", fmt.Errorf("error getting partner: %w", err)
	}
	if partner == nil {
		return "", apperr.NotFound("partner doesn't exist")
	}

	state, err := utils.GenerateConnectState(s.cfg.SecretKey, fmt.Sprintf("%d", partnerID), platform)
	if err != nil {
		return "", fmt.Errorf("error generating state: %w", err)
	}

	switch platform {
	case models.PlatformFacebook, models.PlatformInstagram:
		params := url.Values{}
		params.Add("client_id", s.cfg.FacebookClientID)
		params.Add("redirect_uri", s.cfg.FacebookRedirectURI)
		params.Add("response_type", "code")
		params.Add("scope", "pages_show_list,pages_manage_posts,pages_read_engagement,instagram_basic,instagram_content_publish")
		params.Add("state", state)

		return fmt.Sprintf("%s?%s", FACEBOOK_AUTH_URL, params.Encode()), nil

	case models.PlatformGoogle:
		params := url.Values{}
		params.Add("client_id", s.cfg.GoogleClientID)
		params.Add("redirect_uri", s.cfg.GoogleRedirectURI)
		params.Add("response_type", "code")
		params.Add("scope", "https://www.googleapis.com/auth/userinfo.profile https://www.googleapis.com/auth/userinfo.email https://www.googleapis.com/auth/business.manage")
		params.Add("state", state)
		params.Add("access_type", "offline")

		return fmt.Sprintf("%s?%s", GOOGLE_AUTH_URL, params.Encode()), nil

	default:
		return "", apperr.Validation(fmt.Sprintf("unknown platform %q", platform))
	}
}

func (s *platformService) List(ctx context.Context, rc *transfer.RequestContext, partnerID int64) ([]*models.SocialAccount, error) {
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

	accounts, err := s.sa.ListByPartnerID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("error getting social accounts: %w", err)
	}

	return accounts, nil
}

// Delete disconnects the account by removing its row. Facebook tokens are
// not revoked remotely; they expire on their own or the user revokes them on
// the provider side. Google access is revoked best effort.
func (s *platformService) Delete(ctx context.Context, rc *transfer.RequestContext, accountID int64) error {
	if accountID == 0 {
		return apperr.Validation("account id is not valid")
	}

	isValid, err := s.sa.CheckByBrandID(ctx, accountID, rc.UserID)
	if err != nil {
		return err
	}
	if !isValid {
		return apperr.NotFound("social account doesn't exist")
	}

	accountInfo, err := s.sa.GetByID(ctx, accountID)
	if err != nil || accountInfo == nil {
		return fmt.Errorf("unable to get social account info")
	}

	if accountInfo.Platform == models.PlatformGoogle {
		decryptedAccessToken, err := utils.Decrypt(accountInfo.AccessToken, []byte(s.cfg.SecretKey))
		if err == nil {
			// Disconnect proceeds regardless; the row is the source of truth.
			if err := RevokeGoogleAccess(decryptedAccessToken); err != nil {
				slog.Info(err.Error())
			}
		}
	}

	if err := s.sa.Remove(ctx, accountID); err != nil {
		return fmt.Errorf("error removing account: %w", err)
	}

	return nil
}
