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

func TestPartnerCreateStartsPending(t *testing.T) {
	repo := &fakeRetailPartnerRepo{}
	svc := NewPartnerService(repo)

	id, err := svc.Create(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PartnerCreation{
		Name: "Downtown Store",
		Tags: []string{"west-coast"},
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	require.Len(t, repo.created, 1)
	assert.Equal(t, models.PartnerStatusPending, repo.created[0].Status)
}

func TestPartnerCreateRequiresName(t *testing.T) {
	svc := NewPartnerService(&fakeRetailPartnerRepo{})

	_, err := svc.Create(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PartnerCreation{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPartnerInfoForeignPartnerIsNotFound(t *testing.T) {
	svc := NewPartnerService(testPartnerDirectory())

	// Partner 4 belongs to brand 9.
	_, err := svc.PartnerInfo(context.Background(), &transfer.RequestContext{UserID: 7}, 4)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestPartnerUpdateRejectsUnknownStatus(t *testing.T) {
	svc := NewPartnerService(testPartnerDirectory())

	err := svc.Update(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.PartnerUpdate{
		ID:     1,
		Name:   "Downtown Store",
		Status: "vanished",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPartnerListScopedToBrand(t *testing.T) {
	svc := NewPartnerService(testPartnerDirectory())

	partners, err := svc.List(context.Background(), &transfer.RequestContext{UserID: 7})
	require.NoError(t, err)
	require.Len(t, partners, 3)
	for _, p := range partners {
		assert.Equal(t, int64(7), p.UserID)
	}
}
