package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/transfer"
)

type fakeContentPostRepo struct {
	pool []*models.ContentPost
}

func (f *fakeContentPostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.ContentPost) (int64, error) {
	return 1, nil
}

func (f *fakeContentPostRepo) GetByID(ctx context.Context, id int64) (*models.ContentPost, error) {
	for _, p := range f.pool {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeContentPostRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.ContentPost, error) {
	return f.pool, nil
}

func (f *fakeContentPostRepo) ListEvergreenByPlatforms(ctx context.Context, userID int64, platforms []string) ([]*models.ContentPost, error) {
	var out []*models.ContentPost
	for _, p := range f.pool {
		if !p.IsEvergreen || p.UserID != userID {
			continue
		}
		for _, want := range platforms {
			if contains(p.Platforms, want) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeContentPostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	for _, p := range f.pool {
		if p.ID == postID && p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeContentPostRepo) Update(ctx context.Context, post *models.ContentPost) error { return nil }
func (f *fakeContentPostRepo) UpdateStatus(ctx context.Context, status string, postID int64) error {
	return nil
}
func (f *fakeContentPostRepo) Remove(ctx context.Context, id int64) error { return nil }

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

type fakePostAssignmentRepo struct {
	created []*models.PostAssignment
}

func (f *fakePostAssignmentRepo) CreateBatch(ctx context.Context, assignments []*models.PostAssignment) ([]int64, error) {
	ids := make([]int64, 0, len(assignments))
	for i, a := range assignments {
		a.ID = int64(len(f.created) + i + 1)
		ids = append(ids, a.ID)
	}
	f.created = append(f.created, assignments...)
	return ids, nil
}

func (f *fakePostAssignmentRepo) GetByID(ctx context.Context, id int64) (*models.PostAssignment, error) {
	for _, a := range f.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakePostAssignmentRepo) ListByPartnerID(ctx context.Context, partnerID int64) ([]*models.PostAssignment, error) {
	return nil, nil
}

func (f *fakePostAssignmentRepo) ListByBrandID(ctx context.Context, brandID int64) ([]*models.PostAssignment, error) {
	return f.created, nil
}

func (f *fakePostAssignmentRepo) UpdateStatus(ctx context.Context, status string, assignmentID int64) error {
	return nil
}

func (f *fakePostAssignmentRepo) SetPublished(ctx context.Context, assignmentID int64, publishedURL string, publishedAt time.Time) error {
	return nil
}

func (f *fakePostAssignmentRepo) Remove(ctx context.Context, id int64) error { return nil }

type fakeSettingsRepo struct {
	settings *models.Settings
}

func (f *fakeSettingsRepo) Create(ctx context.Context, settings *models.Settings) (int64, error) {
	f.settings = settings
	return 1, nil
}

func (f *fakeSettingsRepo) GetByUserID(ctx context.Context, userID int64) (*models.Settings, bool, error) {
	if f.settings == nil {
		return nil, false, nil
	}
	return f.settings, true, nil
}

func (f *fakeSettingsRepo) UpdateSettings(ctx context.Context, s *models.Settings, userID int64) error {
	f.settings = s
	return nil
}

type fakeTargeting struct {
	partners []*models.RetailPartner
	err      error
}

func (f *fakeTargeting) ResolveByIDs(ctx context.Context, brandID int64, ids []int64) ([]*models.RetailPartner, error) {
	return f.partners, f.err
}

func (f *fakeTargeting) ResolveByTag(ctx context.Context, brandID int64, tag string) ([]*models.RetailPartner, error) {
	return f.partners, f.err
}

func evergreenPool(brandID int64, n int, platforms ...string) []*models.ContentPost {
	posts := make([]*models.ContentPost, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, &models.ContentPost{
			ID:          int64(i + 1),
			UserID:      brandID,
			Title:       fmt.Sprintf("post %d", i+1),
			Platforms:   platforms,
			IsEvergreen: true,
			Status:      models.PostStatusAutomated,
		})
	}
	return posts
}

func makePartners(n int) []*models.RetailPartner {
	partners := make([]*models.RetailPartner, 0, n)
	for i := 0; i < n; i++ {
		partners = append(partners, &models.RetailPartner{
			ID:     int64(i + 1),
			UserID: 7,
			Name:   fmt.Sprintf("partner %d", i+1),
			Status: models.PartnerStatusActive,
		})
	}
	return partners
}

func newTestAssignmentService(pool []*models.ContentPost, partners []*models.RetailPartner) (AssignmentService, *fakePostAssignmentRepo) {
	pa := &fakePostAssignmentRepo{}
	svc := NewAssignmentService(
		&fakeContentPostRepo{pool: pool},
		pa,
		&fakeSettingsRepo{},
		&fakeTargeting{partners: partners},
	)
	return svc, pa
}

func scheduleRequest() *transfer.EvergreenSchedule {
	return &transfer.EvergreenSchedule{
		ScheduledDate: "2026-09-01",
		ScheduledTime: "10:30",
		Platforms:     []string{models.PlatformFacebook},
		PartnerIDs:    []int64{1, 2, 3},
	}
}

func TestScheduleEvergreenDistinctPostsWhenPoolIsLarger(t *testing.T) {
	svc, pa := newTestAssignmentService(
		evergreenPool(7, 10, models.PlatformFacebook),
		makePartners(5),
	)

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2, 3, 4, 5}

	result, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Summary.Scheduled)
	assert.Len(t, pa.created, 5)

	seen := make(map[int64]struct{})
	for _, a := range pa.created {
		_, dup := seen[a.PostID]
		assert.False(t, dup, "post %d assigned to more than one partner", a.PostID)
		seen[a.PostID] = struct{}{}
	}
}

func TestScheduleEvergreenBoundedRepeatsWhenPoolIsSmaller(t *testing.T) {
	poolSize := 3
	partnerCount := 10

	svc, pa := newTestAssignmentService(
		evergreenPool(7, poolSize, models.PlatformFacebook),
		makePartners(partnerCount),
	)

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	result, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.NoError(t, err)
	require.Equal(t, partnerCount, result.Summary.Scheduled)

	counts := make(map[int64]int)
	for _, a := range pa.created {
		counts[a.PostID]++
	}

	floor := partnerCount / poolSize
	ceil := floor
	if partnerCount%poolSize != 0 {
		ceil++
	}
	for postID, c := range counts {
		assert.GreaterOrEqual(t, c, floor, "post %d under-used", postID)
		assert.LessOrEqual(t, c, ceil, "post %d over-used", postID)
	}
}

func TestScheduleEvergreenEveryPartnerGetsExactlyOne(t *testing.T) {
	svc, pa := newTestAssignmentService(
		evergreenPool(7, 4, models.PlatformFacebook),
		makePartners(9),
	)

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	_, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.NoError(t, err)

	perPartner := make(map[int64]int)
	for _, a := range pa.created {
		perPartner[a.PartnerID]++
	}
	require.Len(t, perPartner, 9)
	for partnerID, c := range perPartner {
		assert.Equal(t, 1, c, "partner %d", partnerID)
	}
}

func TestScheduleEvergreenRejectsEmptyPlatforms(t *testing.T) {
	svc, _ := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformFacebook),
		makePartners(2),
	)

	req := scheduleRequest()
	req.Platforms = nil

	_, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestScheduleEvergreenRejectsUnknownPlatform(t *testing.T) {
	svc, _ := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformFacebook),
		makePartners(2),
	)

	req := scheduleRequest()
	req.Platforms = []string{"myspace"}

	_, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestScheduleEvergreenRejectsEmptyPartnerSelection(t *testing.T) {
	svc, _ := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformFacebook),
		nil,
	)

	req := scheduleRequest()
	req.PartnerIDs = nil
	req.Tag = ""

	_, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestScheduleEvergreenEmptyPoolIsNotFound(t *testing.T) {
	// Posts exist but none target the requested platform.
	svc, _ := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformGoogle),
		makePartners(2),
	)

	req := scheduleRequest()
	req.Platforms = []string{models.PlatformFacebook}
	req.PartnerIDs = []int64{1, 2}

	_, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestScheduleEvergreenPoolScopedToBrand(t *testing.T) {
	pool := evergreenPool(7, 2, models.PlatformFacebook)
	foreign := evergreenPool(99, 2, models.PlatformFacebook)
	foreign[0].ID = 100
	foreign[1].ID = 101

	svc, pa := newTestAssignmentService(append(pool, foreign...), makePartners(2))

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2}

	_, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.NoError(t, err)

	for _, a := range pa.created {
		assert.LessOrEqual(t, a.PostID, int64(2), "assignment drew from another brand's pool")
	}
}

func TestScheduleEvergreenScheduledTimeMerge(t *testing.T) {
	svc, pa := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformFacebook),
		makePartners(2),
	)

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2}
	req.ScheduledDate = "2026-09-15"
	req.ScheduledTime = "14:45"

	result, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.NoError(t, err)

	want := time.Date(2026, 9, 15, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, want, result.ScheduledTime)
	for _, a := range pa.created {
		assert.Equal(t, want, a.ScheduledTime)
	}
}

func TestScheduleEvergreenDefaultPostingTime(t *testing.T) {
	svc, _ := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformFacebook),
		makePartners(2),
	)

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2}
	req.ScheduledTime = ""

	result, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.NoError(t, err)
	assert.Equal(t, 9, result.ScheduledTime.Hour())
	assert.Equal(t, 0, result.ScheduledTime.Minute())
}

func TestScheduleEvergreenUsesBrandPostingTime(t *testing.T) {
	pa := &fakePostAssignmentRepo{}
	svc := NewAssignmentService(
		&fakeContentPostRepo{pool: evergreenPool(7, 3, models.PlatformFacebook)},
		pa,
		&fakeSettingsRepo{settings: &models.Settings{UserID: 7, PostingTime: "17:15", DefaultFooter: "Visit us!"}},
		&fakeTargeting{partners: makePartners(2)},
	)

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2}
	req.ScheduledTime = ""
	req.CustomFooter = ""

	result, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.NoError(t, err)
	assert.Equal(t, 17, result.ScheduledTime.Hour())
	assert.Equal(t, 15, result.ScheduledTime.Minute())

	for _, a := range pa.created {
		assert.Equal(t, "Visit us!", a.CustomFooter)
	}
}

func TestScheduleEvergreenInvalidDate(t *testing.T) {
	svc, _ := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformFacebook),
		makePartners(2),
	)

	req := scheduleRequest()
	req.ScheduledDate = "09/01/2026"

	_, err := svc.ScheduleEvergreen(context.Background(), &transfer.RequestContext{UserID: 7}, req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestScheduleEvergreenNotIdempotent(t *testing.T) {
	svc, pa := newTestAssignmentService(
		evergreenPool(7, 3, models.PlatformFacebook),
		makePartners(2),
	)

	req := scheduleRequest()
	req.PartnerIDs = []int64{1, 2}

	rc := &transfer.RequestContext{UserID: 7}
	_, err := svc.ScheduleEvergreen(context.Background(), rc, req)
	require.NoError(t, err)
	_, err = svc.ScheduleEvergreen(context.Background(), rc, req)
	require.NoError(t, err)

	assert.Len(t, pa.created, 4, "two identical calls must create two batches")
}
