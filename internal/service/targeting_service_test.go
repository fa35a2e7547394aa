package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
)

type fakeRetailPartnerRepo struct {
	partners []*models.RetailPartner
	created  []*models.RetailPartner
}

func (f *fakeRetailPartnerRepo) Create(ctx context.Context, tx *sql.Tx, partner *models.RetailPartner) (int64, error) {
	partner.ID = int64(len(f.partners) + len(f.created) + 1)
	f.created = append(f.created, partner)
	return partner.ID, nil
}

func (f *fakeRetailPartnerRepo) GetByID(ctx context.Context, id int64) (*models.RetailPartner, error) {
	for _, p := range f.partners {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRetailPartnerRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.RetailPartner, error) {
	var out []*models.RetailPartner
	for _, p := range f.partners {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRetailPartnerRepo) ListByIDs(ctx context.Context, userID int64, ids []int64) ([]*models.RetailPartner, error) {
	var out []*models.RetailPartner
	for _, p := range f.partners {
		if p.UserID != userID {
			continue
		}
		for _, id := range ids {
			if p.ID == id {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRetailPartnerRepo) ListActiveByTag(ctx context.Context, userID int64, tag string) ([]*models.RetailPartner, error) {
	var out []*models.RetailPartner
	for _, p := range f.partners {
		if p.UserID != userID || p.Status != models.PartnerStatusActive {
			continue
		}
		for _, t := range p.Tags {
			if t == tag {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRetailPartnerRepo) CheckByUserID(ctx context.Context, partnerID, userID int64) (bool, error) {
	for _, p := range f.partners {
		if p.ID == partnerID && p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRetailPartnerRepo) Update(ctx context.Context, partner *models.RetailPartner) error {
	return nil
}

func (f *fakeRetailPartnerRepo) UpdateStatus(ctx context.Context, status string, partnerID int64) error {
	return nil
}

func (f *fakeRetailPartnerRepo) SetConnected(ctx context.Context, partnerID int64, connectedAt time.Time) error {
	for _, p := range f.partners {
		if p.ID == partnerID {
			p.Status = models.PartnerStatusActive
		}
	}
	return nil
}

func (f *fakeRetailPartnerRepo) Remove(ctx context.Context, id int64) error { return nil }

func testPartnerDirectory() *fakeRetailPartnerRepo {
	return &fakeRetailPartnerRepo{
		partners: []*models.RetailPartner{
			{ID: 1, UserID: 7, Name: "Downtown Store", Status: models.PartnerStatusActive, Tags: []string{"west-coast"}},
			{ID: 2, UserID: 7, Name: "Harbor Store", Status: models.PartnerStatusActive, Tags: []string{"west-coast", "flagship"}},
			{ID: 3, UserID: 7, Name: "Old Mill Store", Status: models.PartnerStatusInactive, Tags: []string{"west-coast"}},
			{ID: 4, UserID: 9, Name: "Rival Brand Store", Status: models.PartnerStatusActive, Tags: []string{"west-coast"}},
		},
	}
}

func TestResolveByIDsReturnsOwnPartners(t *testing.T) {
	svc := NewTargetingService(testPartnerDirectory())

	partners, err := svc.ResolveByIDs(context.Background(), 7, []int64{1, 2})
	require.NoError(t, err)
	require.Len(t, partners, 2)
}

func TestResolveByIDsRejectsForeignPartner(t *testing.T) {
	svc := NewTargetingService(testPartnerDirectory())

	// Partner 4 belongs to brand 9; the whole resolution fails.
	_, err := svc.ResolveByIDs(context.Background(), 7, []int64{1, 4})
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestResolveByIDsDeduplicates(t *testing.T) {
	svc := NewTargetingService(testPartnerDirectory())

	partners, err := svc.ResolveByIDs(context.Background(), 7, []int64{1, 1, 2, 2})
	require.NoError(t, err)
	assert.Len(t, partners, 2)
}

func TestResolveByTagMatchesActiveOnly(t *testing.T) {
	svc := NewTargetingService(testPartnerDirectory())

	partners, err := svc.ResolveByTag(context.Background(), 7, "west-coast")
	require.NoError(t, err)
	require.Len(t, partners, 2)
	for _, p := range partners {
		assert.Equal(t, models.PartnerStatusActive, p.Status)
		assert.Equal(t, int64(7), p.UserID)
	}
}

func TestResolveByTagIsCaseSensitive(t *testing.T) {
	svc := NewTargetingService(testPartnerDirectory())

	partners, err := svc.ResolveByTag(context.Background(), 7, "West-Coast")
	require.NoError(t, err)
	assert.Empty(t, partners)
}

func TestResolveByTagEmptyTagRejected(t *testing.T) {
	svc := NewTargetingService(testPartnerDirectory())

	_, err := svc.ResolveByTag(context.Background(), 7, "")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
