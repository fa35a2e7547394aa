package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/transfer"
)

func newTestContentService(pool []*models.ContentPost) ContentService {
	return NewContentService(nil, &fakeContentPostRepo{pool: pool}, nil, nil)
}

func TestCreatePostEvergreenRejectsScheduledTime(t *testing.T) {
	svc := newTestContentService(nil)

	_, err := svc.CreatePost(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PostCreation{
		Title:         "Fall lineup",
		Platforms:     []string{models.PlatformFacebook},
		IsEvergreen:   true,
		ScheduledTime: "2026-09-01T10:00",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreatePostRequiresTitle(t *testing.T) {
	svc := newTestContentService(nil)

	_, err := svc.CreatePost(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PostCreation{
		Platforms: []string{models.PlatformFacebook},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreatePostRequiresPlatforms(t *testing.T) {
	svc := newTestContentService(nil)

	_, err := svc.CreatePost(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PostCreation{
		Title: "Fall lineup",
	}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreatePostRejectsUnknownPlatform(t *testing.T) {
	svc := newTestContentService(nil)

	_, err := svc.CreatePost(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PostCreation{
		Title:     "Fall lineup",
		Platforms: []string{"myspace"},
	}, nil)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUpdatePostEvergreenClearsSchedule(t *testing.T) {
	pool := []*models.ContentPost{
		{ID: 1, UserID: 7, Title: "Fall lineup", Platforms: []string{models.PlatformFacebook}, Status: models.PostStatusDraft},
	}
	svc := newTestContentService(pool)

	err := svc.Update(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PostUpdate{
		ID:          1,
		Title:       "Fall lineup",
		Platforms:   []string{models.PlatformFacebook},
		IsEvergreen: true,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusAutomated, pool[0].Status)
	assert.False(t, pool[0].ScheduledTime.Valid)
}

func TestUpdatePostForeignPostIsNotFound(t *testing.T) {
	pool := []*models.ContentPost{
		{ID: 1, UserID: 99, Title: "Not yours", Platforms: []string{models.PlatformFacebook}},
	}
	svc := newTestContentService(pool)

	err := svc.Update(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PostUpdate{
		ID:        1,
		Title:     "Hijack",
		Platforms: []string{models.PlatformFacebook},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestRemovePostForeignPostIsNotFound(t *testing.T) {
	pool := []*models.ContentPost{
		{ID: 1, UserID: 99, Title: "Not yours", Platforms: []string{models.PlatformFacebook}},
	}
	svc := newTestContentService(pool)

	err := svc.Remove(context.Background(), &transfer.RequestContext{UserID: 7}, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
