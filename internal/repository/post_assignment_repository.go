package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/brandsync/api/internal/models"
	"github.com/lib/pq"
)

type PostAssignmentRepository interface {
	CreateBatch(ctx context.Context, assignments []*models.PostAssignment) ([]int64, error)
	GetByID(ctx context.Context, id int64) (*models.PostAssignment, error)
	ListByPartnerID(ctx context.Context, partnerID int64) ([]*models.PostAssignment, error)
	ListByBrandID(ctx context.Context, brandID int64) ([]*models.PostAssignment, error)
	UpdateStatus(ctx context.Context, status string, assignmentID int64) error
	SetPublished(ctx context.Context, assignmentID int64, publishedURL string, publishedAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type postAssignmentRepository struct {
	db *sql.DB
}

func NewPostAssignmentRepository(db *sql.DB) PostAssignmentRepository {
	return &postAssignmentRepository{db: db}
}

const postAssignmentColumns = `id, post_id, partner_id, custom_footer, custom_tags, scheduled_time, status, published_url, published_at, created_at, updated_at`

func scanPostAssignment(row interface{ Scan(...interface{}) error }) (*models.PostAssignment, error) {
	var a models.PostAssignment
	err := row.Scan(
		&a.ID,
		&a.PostID,
		&a.PartnerID,
		&a.CustomFooter,
		pq.Array(&a.CustomTags),
		&a.ScheduledTime,
		&a.Status,
		&a.PublishedURL,
		&a.PublishedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateBatch inserts every assignment of one scheduling operation inside a
// single transaction. A mid-batch failure rolls the whole batch back, so a
// scheduling call either lands completely or not at all.
func (r *postAssignmentRepository) CreateBatch(ctx context.Context, assignments []*models.PostAssignment) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO post_assignments (post_id, partner_id, custom_footer, custom_tags, scheduled_time, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	ids := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		var id int64
		err := tx.QueryRowContext(ctx, query,
			a.PostID,
			a.PartnerID,
			a.CustomFooter,
			pq.Array(a.CustomTags),
			a.ScheduledTime,
			a.Status,
		).Scan(&id)
		if err != nil {
			slog.Info(err.Error())
			return nil, fmt.Errorf("error creating assignment: %w", err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return ids, nil
}

func (r *postAssignmentRepository) GetByID(ctx context.Context, id int64) (*models.PostAssignment, error) {
	query := `SELECT ` + postAssignmentColumns + ` FROM post_assignments WHERE id = $1`
	a, err := scanPostAssignment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return a, nil
}

func (r *postAssignmentRepository) ListByPartnerID(ctx context.Context, partnerID int64) ([]*models.PostAssignment, error) {
	query := `SELECT ` + postAssignmentColumns + ` FROM post_assignments WHERE partner_id = $1 ORDER BY scheduled_time DESC`

	rows, err := r.db.QueryContext(ctx, query, partnerID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.PostAssignment
	for rows.Next() {
		a, err := scanPostAssignment(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return assignments, nil
}

func (r *postAssignmentRepository) ListByBrandID(ctx context.Context, brandID int64) ([]*models.PostAssignment, error) {
	query := `
		SELECT ` + postAssignmentColumnsPrefixed + `
		FROM post_assignments pa
		JOIN content_posts cp ON cp.id = pa.post_id
		WHERE cp.user_id = $1
		ORDER BY pa.scheduled_time DESC
	`

	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.PostAssignment
	for rows.Next() {
		a, err := scanPostAssignment(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return assignments, nil
}

const postAssignmentColumnsPrefixed = `pa.id, pa.post_id, pa.partner_id, pa.custom_footer, pa.custom_tags, pa.scheduled_time, pa.status, pa.published_url, pa.published_at, pa.created_at, pa.updated_at`

func (r *postAssignmentRepository) UpdateStatus(ctx context.Context, status string, assignmentID int64) error {
	query := `
		UPDATE post_assignments
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), assignmentID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postAssignmentRepository) SetPublished(ctx context.Context, assignmentID int64, publishedURL string, publishedAt time.Time) error {
	query := `
		UPDATE post_assignments
		SET status = $1,
			published_url = $2,
			published_at = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, models.AssignmentStatusPublished, publishedURL, publishedAt, time.Now(), assignmentID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postAssignmentRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM post_assignments WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
