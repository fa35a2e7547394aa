package service

import (
	"context"
	"encoding/json"
	"fmt"
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
)

const graphAPIBase = "https://graph.facebook.com/v19.0"

type FacebookService interface {
	FacebookCallback(ctx context.Context, code, state string) (int64, error)
	RefreshFacebookToken(ctx context.Context, account *models.SocialAccount) error
	PublishPagePost(ctx context.Context, account *models.SocialAccount, message, mediaURL string) (string, error)
	PublishInstagramPost(ctx context.Context, account *models.SocialAccount, caption, imageURL string) (string, error)
}

type facebookService struct {
	cfg config.Config
	rp  repository.RetailPartnerRepository
	sa  repository.SocialAccountRepository
}

func NewFacebookService(
	cfg config.Config,
	rp repository.RetailPartnerRepository,
	sa repository.SocialAccountRepository) FacebookService {
	return &facebookService{
		cfg: cfg,
		rp:  rp,
		sa:  sa,
	}
}

// FacebookCallback completes a pending connection. The state must verify
// against the signing key and carry a facebook/instagram platform; the code
// goes through the two-step exchange (the short-lived token is never
// stored). Every page the user granted becomes one SocialAccount row, plus
// one instagram row per page with a linked business account.
func (fb *facebookService) FacebookCallback(ctx context.Context, code, state string) (int64, error) {
	if code == "" {
		return 0, apperr.Auth("authorization code is empty")
	}

	claims, err := utils.ValidateConnectState(fb.cfg.SecretKey, state)
	if err != nil {
		return 0, apperr.Auth("state verification failed")
	}
	if claims.Platform != models.PlatformFacebook && claims.Platform != models.PlatformInstagram {
		return 0, apperr.Auth("state platform mismatch")
	}

	partnerID, err := strconv.ParseInt(claims.PartnerID, 10, 64)
	if err != nil {
		slog.Info(err.Error())
		return 0, apperr.Auth("state verification failed")
	}

	partner, err := fb.rp.GetByID(ctx, partnerID)
	if err != nil {
		return 0, fmt.Errorf("error getting partner: %w", err)
	}
	if partner == nil {
		return 0, apperr.NotFound("partner doesn't exist")
	}

	token, err := fb.exchangeCodeForToken(ctx, code)
	if err != nil {
		return 0, err
	}

	pages, err := fb.fetchPages(ctx, token.AccessToken)
	if err != nil {
		return 0, err
	}
	if len(pages.Data) == 0 {
		return 0, apperr.External("no facebook pages granted", nil)
	}

	for _, page := range pages.Data {
		encryptedPageToken, err := utils.Encrypt([]byte(page.AccessToken), []byte(fb.cfg.SecretKey))
		if err != nil {
			return 0, err
		}

		// Page access tokens derived from a long-lived user token do not
		// expire on their own; the sweep still refreshes them periodically.
		account := &models.SocialAccount{
			PartnerID:      partnerID,
			Platform:       models.PlatformFacebook,
			AccountID:      page.ID,
			AccountName:    page.Name,
			AccessToken:    encryptedPageToken,
			RefreshToken:   encryptedPageToken,
			TokenExpiresAt: token.ExpiresAt,
			AccountStatus:  models.AccountStatusActive,
		}

		if _, err := fb.sa.Upsert(ctx, nil, account); err != nil {
			return 0, err
		}

		igUserID, err := fb.fetchInstagramAccount(ctx, page.ID, page.AccessToken)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		if igUserID == "" {
			continue
		}

		igAccount := &models.SocialAccount{
			PartnerID:      partnerID,
			Platform:       models.PlatformInstagram,
			AccountID:      igUserID,
			AccountName:    page.Name,
			AccessToken:    encryptedPageToken,
			RefreshToken:   encryptedPageToken,
			TokenExpiresAt: token.ExpiresAt,
			AccountStatus:  models.AccountStatusActive,
		}
		if _, err := fb.sa.Upsert(ctx, nil, igAccount); err != nil {
			return 0, err
		}
	}

	if err := fb.rp.SetConnected(ctx, partnerID, time.Now()); err != nil {
		slog.Info(err.Error())
	}

	return partnerID, nil
}

func (fb *facebookService) exchangeCodeForToken(ctx context.Context, code string) (*transfer.FacebookToken, error) {
	shortLived, err := fb.getShortLivedToken(ctx, code)
	if err != nil {
		return nil, err
	}

	longLived, err := fb.getLongLivedToken(ctx, shortLived)
	if err != nil {
		return nil, err
	}

	return longLived, nil
}

func (fb *facebookService) getShortLivedToken(ctx context.Context, code string) (string, error) {
	params := url.Values{}
	params.Set("client_id", fb.cfg.FacebookClientID)
	params.Set("client_secret", fb.cfg.FacebookClientSecret)
	params.Set("redirect_uri", fb.cfg.FacebookRedirectURI)
	params.Set("code", code)

	reqURL := fmt.Sprintf("%s/oauth/access_token?%s", graphAPIBase, params.Encode())

	var result struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := fb.graphGet(ctx, reqURL, &result); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", apperr.Auth("code exchange returned no token")
	}

	return result.AccessToken, nil
}

func (fb *facebookService) getLongLivedToken(ctx context.Context, shortLivedToken string) (*transfer.FacebookToken, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", fb.cfg.FacebookClientID)
	params.Set("client_secret", fb.cfg.FacebookClientSecret)
	params.Set("fb_exchange_token", shortLivedToken)

	reqURL := fmt.Sprintf("%s/oauth/access_token?%s", graphAPIBase, params.Encode())

	var result struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := fb.graphGet(ctx, reqURL, &result); err != nil {
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, apperr.Auth("long-lived token exchange returned no token")
	}

	// Facebook omits expires_in once the token is already long-lived; the
	// documented 60 days is the fallback.
	expiresAt := time.Now().Add(60 * 24 * time.Hour)
	if result.ExpiresIn > 0 {
		expiresAt = GetExpiresAt(int(result.ExpiresIn))
	}

	return &transfer.FacebookToken{
		AccessToken: result.AccessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (fb *facebookService) fetchPages(ctx context.Context, accessToken string) (*transfer.FacebookPageList, error) {
	reqURL := fmt.Sprintf("%s/me/accounts?fields=id,name,access_token,category&access_token=%s", graphAPIBase, url.QueryEscape(accessToken))

	var pages transfer.FacebookPageList
	if err := fb.graphGet(ctx, reqURL, &pages); err != nil {
		return nil, err
	}
	return &pages, nil
}

func (fb *facebookService) fetchInstagramAccount(ctx context.Context, pageID, pageToken string) (string, error) {
	reqURL := fmt.Sprintf("%s/%s?fields=instagram_business_account&access_token=%s", graphAPIBase, pageID, url.QueryEscape(pageToken))

	var result struct {
		InstagramBusinessAccount struct {
			ID string `json:"id"`
		} `json:"instagram_business_account"`
	}
	if err := fb.graphGet(ctx, reqURL, &result); err != nil {
		return "", err
	}
	return result.InstagramBusinessAccount.ID, nil
}

// RefreshFacebookToken re-runs the long-lived exchange with the stored
// token. Failures mark the account expired so the next publish fails fast.
func (fb *facebookService) RefreshFacebookToken(ctx context.Context, account *models.SocialAccount) error {
	decryptedToken, err := utils.Decrypt(account.AccessToken, []byte(fb.cfg.SecretKey))
	if err != nil {
		return err
	}

	token, err := fb.getLongLivedToken(ctx, decryptedToken)
	if err != nil {
		if statusErr := fb.sa.SetStatus(ctx, models.AccountStatusExpired, account.ID); statusErr != nil {
			slog.Info(statusErr.Error())
		}
		return err
	}

	encryptedToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(fb.cfg.SecretKey))
	if err != nil {
		return err
	}

	refreshed := models.SocialAccount{
		AccessToken:    encryptedToken,
		RefreshToken:   encryptedToken,
		TokenExpiresAt: token.ExpiresAt,
	}

	return fb.sa.SetToken(ctx, account.ID, &refreshed)
}

// PublishPagePost posts the message (and optional photo) to the page feed
// and returns the public post URL.
func (fb *facebookService) PublishPagePost(ctx context.Context, account *models.SocialAccount, message, mediaURL string) (string, error) {
	decryptedToken, err := utils.Decrypt(account.AccessToken, []byte(fb.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	var reqURL string
	payload := url.Values{}
	payload.Set("access_token", decryptedToken)

	if mediaURL != "" {
		reqURL = fmt.Sprintf("%s/%s/photos", graphAPIBase, account.AccountID)
		payload.Set("url", mediaURL)
		payload.Set("caption", message)
	} else {
		reqURL = fmt.Sprintf("%s/%s/feed", graphAPIBase, account.AccountID)
		payload.Set("message", message)
	}

	var result struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := fb.graphPost(ctx, reqURL, payload, &result); err != nil {
		return "", err
	}

	postID := result.PostID
	if postID == "" {
		postID = result.ID
	}
	if postID == "" {
		return "", apperr.External("no post id returned from facebook", nil)
	}

	return fmt.Sprintf("https://www.facebook.com/%s", postID), nil
}

// PublishInstagramPost runs the container-then-publish flow against the
// instagram business account linked to the page.
func (fb *facebookService) PublishInstagramPost(ctx context.Context, account *models.SocialAccount, caption, imageURL string) (string, error) {
	if imageURL == "" {
		return "", apperr.Validation("instagram posts require media")
	}

	decryptedToken, err := utils.Decrypt(account.AccessToken, []byte(fb.cfg.SecretKey))
	if err != nil {
		return "", err
	}

	containerURL := fmt.Sprintf("%s/%s/media", graphAPIBase, account.AccountID)
	containerPayload := url.Values{}
	containerPayload.Set("image_url", imageURL)
	containerPayload.Set("caption", caption)
	containerPayload.Set("access_token", decryptedToken)

	var container struct {
		ID string `json:"id"`
	}
	if err := fb.graphPost(ctx, containerURL, containerPayload, &container); err != nil {
		return "", err
	}
	if container.ID == "" {
		return "", apperr.External("no media container id returned from instagram", nil)
	}

	publishURL := fmt.Sprintf("%s/%s/media_publish", graphAPIBase, account.AccountID)
	publishPayload := url.Values{}
	publishPayload.Set("creation_id", container.ID)
	publishPayload.Set("access_token", decryptedToken)

	var published struct {
		ID string `json:"id"`
	}
	if err := fb.graphPost(ctx, publishURL, publishPayload, &published); err != nil {
		return "", err
	}
	if published.ID == "" {
		return "", apperr.External("no media id returned from instagram", nil)
	}

	return fmt.Sprintf("https://www.instagram.com/p/%s", published.ID), nil
}

func (fb *facebookService) graphGet(ctx context.Context, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return apperr.External("facebook api unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return graphError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Info(err.Error())
		return apperr.External("failed to decode facebook response", err)
	}
	return nil
}

func (fb *facebookService) graphPost(ctx context.Context, reqURL string, payload url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.URL.RawQuery = payload.Encode()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return apperr.External("facebook api unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return graphError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		slog.Info(err.Error())
		return apperr.External("failed to decode facebook response", err)
	}
	return nil
}

func graphError(resp *http.Response) error {
	var errResp transfer.FacebookErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error.Message != "" {
		slog.Info(errResp.Error.Message, "code", errResp.Error.Code, "fbtrace_id", errResp.Error.FbtraceID)
		return apperr.External(fmt.Sprintf("facebook api error: %s", errResp.Error.Message), nil)
	}
	return apperr.External(fmt.Sprintf("unexpected status code from facebook: %d", resp.StatusCode), nil)
}
