package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	config "github.com/brandsync/api/configs"
	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
	"github.com/brandsync/api/pkg/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const mybusinessAPIBase = "https://mybusiness.googleapis.com/v4"

type GoogleService interface {
	GoogleCallback(ctx context.Context, code, state string) (int64, error)
	RefreshGoogleToken(ctx context.Context, account *models.SocialAccount) error
	PublishLocalPost(ctx context.Context, account *models.SocialAccount, summary, mediaURL string) (string, error)
}

type googleService struct {
	cfg config.Config
	rp  repository.RetailPartnerRepository
	sa  repository.SocialAccountRepository
}

func NewGoogleService(
	cfg config.Config,
	rp repository.RetailPartnerRepository,
	sa repository.SocialAccountRepository) GoogleService {
	return &googleService{
		cfg: cfg,
		rp:  rp,
		sa:  sa,
	}
}

func (g *googleService) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     g.cfg.GoogleClientID,
		ClientSecret: g.cfg.GoogleClientSecret,
		RedirectURL:  g.cfg.GoogleRedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/business.manage",
		},
		Endpoint: google.Endpoint,
	}
}

// GoogleCallback completes a pending Business Profile connection. The state
// must verify against the signing key and carry the google platform; tokens
// are stored encrypted.
func (g *googleService) GoogleCallback(ctx context.Context, code, state string) (int64, error) {
	if code == "" {
		return 0, apperr.Auth("authorization code is empty")
	}

	claims, err := utils.ValidateConnectState(g.cfg.SecretKey, state)
	if err != nil {
		return 0, apperr.Auth("state verification failed")
	}
	if claims.Platform != models.PlatformGoogle {
		return 0, apperr.Auth("state platform mismatch")
	}

	partnerID, err := strconv.ParseInt(claims.PartnerID, 10, 64)
	if err != nil {
		slog.Info(err.Error())
		return 0, apperr.Auth("state verification failed")
	}

	partner, err := g.rp.GetByID(ctx, partnerID)
	if err != nil {
		return 0, fmt.Errorf("error getting partner: %w", err)
	}
	if partner == nil {
		return 0, apperr.NotFound("partner doesn't exist")
	}

	token, err := g.oauthConfig().Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, apperr.External("google code exchange failed", err)
	}

	userInfo, err := g.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return 0, err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(g.cfg.SecretKey))
	if err != nil {
		return 0, err
	}

	encryptedRefreshToken := ""
	if token.RefreshToken != "" {
		encryptedRefreshToken, err = utils.Encrypt([]byte(token.RefreshToken), []byte(g.cfg.SecretKey))
		if err != nil {
			return 0, err
		}
	}

	account := &models.SocialAccount{
		PartnerID:      partnerID,
		Platform:       models.PlatformGoogle,
		AccountID:      userInfo.ID,
		AccountName:    userInfo.Name,
		AccessToken:    encryptedAccessToken,
		RefreshToken:   encryptedRefreshToken,
		TokenExpiresAt: token.Expiry,
		AccountStatus:  models.AccountStatusActive,
	}

	if _, err := g.sa.Upsert(ctx, nil, account); err != nil {
		return 0, err
	}

	if err := g.rp.SetConnected(ctx, partnerID, time.Now()); err != nil {
		slog.Info(err.Error())
	}

	return partnerID, nil
}

func (g *googleService) fetchUserInfo(ctx context.Context, accessToken string) (*transfer.GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, apperr.External("google api unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		slog.Info(string(body))
		return nil, apperr.External(fmt.Sprintf("unexpected status code from google: %d", resp.StatusCode), nil)
	}

	var userInfo transfer.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		slog.Info(err.Error())
		return nil, apperr.External("failed to decode google response", err)
	}
	if userInfo.ID == "" {
		return nil, apperr.External("google userinfo returned no id", nil)
	}

	return &userInfo, nil
}

// RefreshGoogleToken exchanges the stored refresh token for a fresh access
// token. Failures mark the account expired.
func (g *googleService) RefreshGoogleToken(ctx context.Context, account *models.SocialAccount) error {
	if account.RefreshToken == "" {
		if err := g.sa.SetStatus(ctx, models.AccountStatusExpired, account.ID); err != nil {
			slog.Info(err.Error())
		}
		return apperr.Auth("no refresh token stored for account")
	}

	decryptedRefreshToken, err := utils.Decrypt(account.RefreshToken, []byte(g.cfg.SecretKey))
	if err != nil {
		return err
	}

	tokenSource := g.oauthConfig().TokenSource(ctx, &oauth2.Token{
		RefreshToken: decryptedRefreshToken,
	})

	token, err := tokenSource.Token()
	if err != nil {
		slog.Info(err.Error())
		if statusErr := g.sa.SetStatus(ctx, models.AccountStatusExpired, account.ID); statusErr != nil {
			slog.Info(statusErr.Error())
		}
		return apperr.External("google token refresh failed", err)
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(g.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefreshToken := ""
	if token.RefreshToken != "" && token.RefreshToken != decryptedRefreshToken {
		encryptedRefreshToken, err = utils.Encrypt([]byte(token.RefreshToken), []byte(g.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	refreshed := models.SocialAccount{
		AccessToken:    encryptedAccessToken,
		RefreshToken:   encryptedRefreshToken,
		TokenExpiresAt: token.Expiry,
	}

	return g.sa.SetToken(ctx, account.ID, &refreshed)
}

// PublishLocalPost creates a local post on the connected Business Profile
// location and returns its search URL.
func (g *googleService) PublishLocalPost(ctx context.Context, account *models.SocialAccount, summary, mediaURL string) (string, error) {
	decryptedToken, err := utils.Decrypt(account.AccessToken, []byte(g.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	body := map[string]interface{}{
		"languageCode": "en",
		"topicType":    "STANDARD",
		"summary":      summary,
	}
	if mediaURL != "" {
		body["media"] = []map[string]string{
			{"mediaFormat": "PHOTO", "sourceUrl": mediaURL},
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/%s/localPosts", mybusinessAPIBase, account.AccountID)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+decryptedToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", apperr.External("google api unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		slog.Info(string(respBody))
		return "", apperr.External(fmt.Sprintf("unexpected status code from google: %d", resp.StatusCode), nil)
	}

	var result struct {
		Name      string `json:"name"`
		SearchURL string `json:"searchUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", apperr.External("failed to decode google response", err)
	}

	if result.SearchURL != "" {
		return result.SearchURL, nil
	}
	return result.Name, nil
}

// RevokeGoogleAccess invalidates the token on Google's side.
func RevokeGoogleAccess(accessToken string) error {
	revokeURL := "https://oauth2.googleapis.com/revoke"

	resp, err := http.PostForm(revokeURL, url.Values{"token": {accessToken}})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code from google revoke: %d", resp.StatusCode)
	}

	return nil
}
