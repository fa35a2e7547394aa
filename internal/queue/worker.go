package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/hibiken/asynq"

	"github.com/brandsync/api/internal/models"
)

func (q *Queue) HandlePublishAssignmentTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishAssignmentPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.PublishAssignment(ctx, payload.AssignmentID)
}

// PublishAssignment pushes one assignment to every matching connected
// account of its partner. Each attempt leaves a publish_history row; the
// assignment ends up published if at least one account succeeded, failed
// otherwise.
func (q *Queue) PublishAssignment(ctx context.Context, assignmentID int64) error {
	assignment, err := q.pa.GetByID(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		slog.Info("assignment no longer exists", "assignment_id", assignmentID)
		return nil
	}
	if assignment.Status != models.AssignmentStatusPending {
		slog.Info("assignment already processed", "assignment_id", assignmentID, "status", assignment.Status)
		return nil
	}

	post, err := q.cp.GetByID(ctx, assignment.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		slog.Info("post no longer exists", "assignment_id", assignmentID, "post_id", assignment.PostID)
		return q.pa.UpdateStatus(ctx, models.AssignmentStatusFailed, assignmentID)
	}

	accounts, err := q.sa.ListActiveByPartnerID(ctx, assignment.PartnerID)
	if err != nil {
		return err
	}

	targets := make([]*models.SocialAccount, 0, len(accounts))
	for _, acc := range accounts {
		if postTargetsPlatform(post, acc.Platform) {
			targets = append(targets, acc)
		}
	}
	if len(targets) == 0 {
		slog.Info("no connected accounts match the post platforms", "assignment_id", assignmentID, "partner_id", assignment.PartnerID)
		return q.pa.UpdateStatus(ctx, models.AssignmentStatusFailed, assignmentID)
	}

	message := composeMessage(post, assignment)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var publishedURL string
	semaphore := make(chan struct{}, 10)

	publishTo := func(acc *models.SocialAccount) {
		defer wg.Done()
		defer func() { <-semaphore }()

		url, err := q.publishToAccount(ctx, acc, post, message)

		history := models.PublishHistory{
			AssignmentID: assignmentID,
			AccountID:    acc.ID,
		}
		if err != nil {
			history.ErrorMessage = err.Error()
			slog.Info(err.Error(), "assignment_id", assignmentID, "account_id", acc.ID, "platform", acc.Platform)
		}
		if _, err := q.ph.Create(ctx, &history); err != nil {
			slog.Info(err.Error(), "assignment_id", assignmentID)
		}

		if err == nil && url != "" {
			mu.Lock()
			if publishedURL == "" {
				publishedURL = url
			}
			mu.Unlock()
		}
	}

	for _, acc := range targets {
		wg.Add(1)
		semaphore <- struct{}{}
		go publishTo(acc)
	}
	wg.Wait()

	if publishedURL == "" {
		return q.pa.UpdateStatus(ctx, models.AssignmentStatusFailed, assignmentID)
	}

	return q.pa.SetPublished(ctx, assignmentID, publishedURL, time.Now())
}

// publishToAccount checks token expiry before calling out. An expired token
// flips the account status so the refresh sweep and the UI can see it.
func (q *Queue) publishToAccount(ctx context.Context, acc *models.SocialAccount, post *models.ContentPost, message string) (string, error) {
	if !acc.TokenExpiresAt.IsZero() && time.Now().After(acc.TokenExpiresAt) {
		if err := q.sa.SetStatus(ctx, models.AccountStatusExpired, acc.ID); err != nil {
			slog.Info(err.Error())
		}
		return "", fmt.Errorf("access token expired for account %d", acc.ID)
	}

	switch acc.Platform {
	case models.PlatformFacebook:
		return q.fb.PublishPagePost(ctx, acc, message, post.MediaURL)
	case models.PlatformInstagram:
		return q.fb.PublishInstagramPost(ctx, acc, message, post.MediaURL)
	case models.PlatformGoogle:
		return q.gs.PublishLocalPost(ctx, acc, message, post.MediaURL)
	default:
		return "", fmt.Errorf("unknown platform %q", acc.Platform)
	}
}

func postTargetsPlatform(post *models.ContentPost, platform string) bool {
	for _, p := range post.Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

func composeMessage(post *models.ContentPost, assignment *models.PostAssignment) string {
	var b strings.Builder
	b.WriteString(post.Description)

	if assignment.CustomFooter != "" {
		b.WriteString("\n\n")
		b.WriteString(assignment.CustomFooter)
	}

	tags := post.Tags
	if len(assignment.CustomTags) > 0 {
		tags = assignment.CustomTags
	}
	if len(tags) > 0 {
		b.WriteString("\n\n")
		for i, tag := range tags {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString("#" + strings.ReplaceAll(tag, " ", ""))
		}
	}

	return b.String()
}
