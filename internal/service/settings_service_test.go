package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/transfer"
)

func TestGetSettingsDefaultsWhenUnset(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	settings, err := svc.GetSettings(context.Background(), &transfer.RequestContext{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, defaultPostingTime, settings.PostingTime)
	assert.Equal(t, "UTC", settings.Timezone)
	assert.Empty(t, settings.DefaultFooter)
}

func TestSaveSettingsCreatesThenUpdates(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)
	rc := &transfer.RequestContext{UserID: 7}

	err := svc.SaveSettings(context.Background(), rc, &transfer.SettingsUpdate{
		PostingTime:   "08:30",
		DefaultFooter: "Visit your local store",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.settings)
	assert.Equal(t, "08:30", repo.settings.PostingTime)

	err = svc.SaveSettings(context.Background(), rc, &transfer.SettingsUpdate{
		PostingTime: "18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "18:00", repo.settings.PostingTime)
}

func TestSaveSettingsRejectsBadPostingTime(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	err := svc.SaveSettings(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.SettingsUpdate{
		PostingTime: "6pm",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSaveSettingsRejectsUnknownTimezone(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{})

	err := svc.SaveSettings(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.SettingsUpdate{
		Timezone: "Mars/Olympus_Mons",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSaveSettingsFillsDefaults(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo)

	err := svc.SaveSettings(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.SettingsUpdate{
		DefaultFooter: "footer only",
	})
	require.NoError(t, err)
	assert.Equal(t, defaultPostingTime, repo.settings.PostingTime)
	assert.Equal(t, "UTC", repo.settings.Timezone)
}
