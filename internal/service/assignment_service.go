package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/models"
	"github.com/brandsync/api/internal/repository"
	"github.com/brandsync/api/internal/transfer"
)

const defaultPostingTime = "09:00"

type ScheduleResult struct {
	Summary       transfer.ScheduleSummary
	AssignmentIDs []int64
	ScheduledTime time.Time
}

type AssignmentService interface {
	// ScheduleEvergreen distributes evergreen posts to the targeted partners
	// for one date. It is NOT idempotent: calling it twice with identical
	// arguments creates two independent assignment batches, one per
	// scheduling action. Callers retrying a failed request must dedupe at a
	// higher level.
	ScheduleEvergreen(ctx context.Context, rc *transfer.RequestContext, req *transfer.EvergreenSchedule) (*ScheduleResult, error)
	ListByBrand(ctx context.Context, rc *transfer.RequestContext) ([]*models.PostAssignment, error)
}

type assignmentService struct {
	cp repository.ContentPostRepository
	pa repository.PostAssignmentRepository
	st repository.SettingsRepository
	ts TargetingService
}

func NewAssignmentService(
	cp repository.ContentPostRepository,
	pa repository.PostAssignmentRepository,
	st repository.SettingsRepository,
	ts TargetingService) AssignmentService {
	return &assignmentService{
		cp: cp,
		pa: pa,
		st: st,
		ts: ts,
	}
}

func (s *assignmentService) ScheduleEvergreen(ctx context.Context, rc *transfer.RequestContext, req *transfer.EvergreenSchedule) (*ScheduleResult, error) {
	if req == nil {
		return nil, apperr.Validation("schedule request is nil")
	}
	if len(req.Platforms) == 0 {
		return nil, apperr.Validation("no platforms selected")
	}
	for _, p := range req.Platforms {
		if p != models.PlatformFacebook && p != models.PlatformInstagram && p != models.PlatformGoogle {
			return nil, apperr.Validation(fmt.Sprintf("unknown platform %q", p))
		}
	}

	when, err := s.resolveScheduledTime(ctx, rc.UserID, req)
	if err != nil {
		return nil, err
	}

	partners, err := s.resolvePartners(ctx, rc.UserID, req)
	if err != nil {
		return nil, err
	}
	if len(partners) == 0 {
		return nil, apperr.Validation("no target partners resolved")
	}

	pool, err := s.cp.ListEvergreenByPlatforms(ctx, rc.UserID, req.Platforms)
	if err != nil {
		return nil, fmt.Errorf("error loading evergreen pool: %w", err)
	}
	if len(pool) == 0 {
		return nil, apperr.NotFound("no evergreen posts match the requested platforms")
	}

	// Stable partner ordering so the pairing is well defined regardless of
	// how the selector produced the list.
	sort.Slice(partners, func(i, j int) bool { return partners[i].ID < partners[j].ID })

	footer := req.CustomFooter
	if footer == "" {
		if settings, ok, err := s.st.GetByUserID(ctx, rc.UserID); err == nil && ok {
			footer = settings.DefaultFooter
		}
	}

	assignments := s.drawAssignments(pool, partners, when, footer)

	ids, err := s.pa.CreateBatch(ctx, assignments)
	if err != nil {
		return nil, fmt.Errorf("error creating assignments: %w", err)
	}

	distinct := make(map[int64]struct{}, len(assignments))
	for _, a := range assignments {
		distinct[a.PostID] = struct{}{}
	}

	slog.Info("evergreen batch scheduled",
		"brand_id", rc.UserID,
		"partners", len(partners),
		"posts_used", len(distinct),
		"scheduled_time", when)

	return &ScheduleResult{
		Summary: transfer.ScheduleSummary{
			Scheduled: len(assignments),
			PostsUsed: len(distinct),
		},
		AssignmentIDs: ids,
		ScheduledTime: when,
	}, nil
}

// drawAssignments pairs partners with posts. Each full pass over the pool is
// an independent random permutation, so no partner repeats a post until the
// pool is exhausted, and once repeats are forced every post lands within one
// of the per-post average. A plain modulo walk would hand small pools out in
// a visible repeating pattern; the per-pass reshuffle avoids that.
func (s *assignmentService) drawAssignments(pool []*models.ContentPost, partners []*models.RetailPartner, when time.Time, footer string) []*models.PostAssignment {
	deck := make([]*models.ContentPost, len(pool))
	copy(deck, pool)

	assignments := make([]*models.PostAssignment, 0, len(partners))
	for i, partner := range partners {
		if i%len(deck) == 0 {
			rand.Shuffle(len(deck), func(a, b int) {
				deck[a], deck[b] = deck[b], deck[a]
			})
		}
		post := deck[i%len(deck)]

		assignments = append(assignments, &models.PostAssignment{
			PostID:        post.ID,
			PartnerID:     partner.ID,
			CustomFooter:  footer,
			ScheduledTime: when,
			Status:        models.AssignmentStatusPending,
		})
	}
	return assignments
}

func (s *assignmentService) resolveScheduledTime(ctx context.Context, brandID int64, req *transfer.EvergreenSchedule) (time.Time, error) {
	date, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		slog.Info(err.Error())
		return time.Time{}, apperr.Validation("invalid scheduled date format")
	}

	clockStr := req.ScheduledTime
	if clockStr == "" {
		if settings, ok, err := s.st.GetByUserID(ctx, brandID); err == nil && ok && settings.PostingTime != "" {
			clockStr = settings.PostingTime
		} else {
			clockStr = defaultPostingTime
		}
	}

	clock, err := time.Parse("15:04", clockStr)
	if err != nil {
		slog.Info(err.Error())
		return time.Time{}, apperr.Validation("invalid scheduled time format")
	}

	return CombineDateTime(date, clock), nil
}

func (s *assignmentService) resolvePartners(ctx context.Context, brandID int64, req *transfer.EvergreenSchedule) ([]*models.RetailPartner, error) {
	if req.Tag != "" {
		return s.ts.ResolveByTag(ctx, brandID, req.Tag)
	}
	if len(req.PartnerIDs) == 0 {
		return nil, apperr.Validation("no partners selected")
	}
	return s.ts.ResolveByIDs(ctx, brandID, req.PartnerIDs)
}

func (s *assignmentService) ListByBrand(ctx context.Context, rc *transfer.RequestContext) ([]*models.PostAssignment, error) {
	assignments, err := s.pa.ListByBrandID(ctx, rc.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	return assignments, nil
}
