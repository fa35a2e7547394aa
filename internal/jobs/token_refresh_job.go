package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/service"
)

type TokenRefreshJob struct {
	sr repository.SocialAccountRepository
	ir repository.InviteRepository
	fb service.FacebookService
	gs service.GoogleService
}

func NewTokenRefreshJob(
	sr repository.SocialAccountRepository,
	ir repository.InviteRepository,
	fb service.FacebookService,
	gs service.GoogleService) *TokenRefreshJob {
	return &TokenRefreshJob{
		sr: sr,
		ir: ir,
		fb: fb,
		gs: gs,
	}
}

// RefreshTokens refreshes every active account whose token expires within
// the next 30 minutes or already lapsed. Facebook and Instagram rows share
// the same page token, so both go through the long-lived exchange.
func (c *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	accounts, err := c.sr.ListByTimeInterval(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, acc := range accounts {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(acc *models.SocialAccount) {
			defer wg.Done()
			defer func() { <-semaphore }()

			var err error
			switch acc.Platform {
			case models.PlatformFacebook, models.PlatformInstagram:
				err = c.fb.RefreshFacebookToken(ctx, acc)
			case models.PlatformGoogle:
				err = c.gs.RefreshGoogleToken(ctx, acc)
			}
			if err != nil {
				slog.Info("unable to refresh token", "account_id", acc.ID, "platform", acc.Platform)
			}
		}(acc)
	}

	wg.Wait()
}

// RemoveExpiredInvites deletes invite tokens past their expiry.
func (c *TokenRefreshJob) RemoveExpiredInvites() {
	ctx := context.Background()

	removed, err := c.ir.RemoveExpired(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if removed > 0 {
		slog.Info("expired invites removed", "count", removed)
	}
}
