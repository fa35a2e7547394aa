package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/transfer"
)

type fakeInviteRepo struct {
	invites map[string]*models.Invite
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{invites: make(map[string]*models.Invite)}
}

func (f *fakeInviteRepo) Create(ctx context.Context, invite *models.Invite) error {
	f.invites[invite.Token] = invite
	return nil
}

func (f *fakeInviteRepo) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	return f.invites[token], nil
}

func (f *fakeInviteRepo) ListByBrandID(ctx context.Context, brandID int64) ([]*models.Invite, error) {
	var out []*models.Invite
	for _, inv := range f.invites {
		if inv.BrandID == brandID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeInviteRepo) Remove(ctx context.Context, token string) error {
	delete(f.invites, token)
	return nil
}

func (f *fakeInviteRepo) RemoveExpired(ctx context.Context) (int64, error) {
	var removed int64
	for token, inv := range f.invites {
		if time.Now().After(inv.ExpiresAt) {
			delete(f.invites, token)
			removed++
		}
	}
	return removed, nil
}

func TestInviteCreateIssuesToken(t *testing.T) {
	ir := newFakeInviteRepo()
	svc := NewInviteService(ir, &fakeRetailPartnerRepo{})

	invite, err := svc.Create(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.InviteCreation{
		Email: "store@example.com",
		Name:  "Downtown Store",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, invite.Token)
	assert.Equal(t, int64(7), invite.BrandID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), invite.ExpiresAt, time.Minute)
}

func TestInviteCreateRequiresEmail(t *testing.T) {
	svc := NewInviteService(newFakeInviteRepo(), &fakeRetailPartnerRepo{})

	_, err := svc.Create(context.Background(), &transfer.RequestContext{UserID: 7}, &transfer.InviteCreation{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestInviteAcceptCreatesActivePartner(t *testing.T) {
	ir := newFakeInviteRepo()
	rp := &fakeRetailPartnerRepo{}
	svc := NewInviteService(ir, rp)

	ir.invites["tok123"] = &models.Invite{
		Token:     "tok123",
		BrandID:   7,
		Email:     "store@example.com",
		Name:      "Downtown Store",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	partnerID, err := svc.Accept(context.Background(), "tok123")
	require.NoError(t, err)
	assert.NotZero(t, partnerID)

	require.Len(t, rp.created, 1)
	assert.Equal(t, models.PartnerStatusActive, rp.created[0].Status)
	assert.Equal(t, int64(7), rp.created[0].UserID)

	_, exists := ir.invites["tok123"]
	assert.False(t, exists, "accepted invite must be deleted")
}

func TestInviteAcceptExpiredToken(t *testing.T) {
	ir := newFakeInviteRepo()
	svc := NewInviteService(ir, &fakeRetailPartnerRepo{})

	ir.invites["stale"] = &models.Invite{
		Token:     "stale",
		BrandID:   7,
		Email:     "store@example.com",
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	_, err := svc.Accept(context.Background(), "stale")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, exists := ir.invites["stale"]
	assert.False(t, exists, "expired invite must be deleted on use")
}

func TestInviteAcceptUnknownToken(t *testing.T) {
	svc := NewInviteService(newFakeInviteRepo(), &fakeRetailPartnerRepo{})

	_, err := svc.Accept(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
