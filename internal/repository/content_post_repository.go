package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/brandsync/api/internal/models"
	"github.com/lib/pq"
)

type ContentPostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *models.ContentPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ContentPost, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.ContentPost, error)
	ListEvergreenByPlatforms(ctx context.Context, userID int64, platforms []string) ([]*models.ContentPost, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	Update(ctx context.Context, post *models.ContentPost) error
	UpdateStatus(ctx context.Context, status string, postID int64) error
	Remove(ctx context.Context, id int64) error
}

type contentPostRepository struct {
	db *sql.DB
}

func NewContentPostRepository(db *sql.DB) ContentPostRepository {
	return &contentPostRepository{db: db}
}

const contentPostColumns = `id, user_id, title, description, media_url, platforms, scheduled_time, status, is_evergreen, tags, category, created_at, updated_at`

func scanContentPost(row interface{ Scan(...interface{}) error }) (*models.ContentPost, error) {
	var post models.ContentPost
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.Title,
		&post.Description,
		&post.MediaURL,
		pq.Array(&post.Platforms),
		&post.ScheduledTime,
		&post.Status,
		&post.IsEvergreen,
		pq.Array(&post.Tags),
		&post.Category,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *contentPostRepository) Create(ctx context.Context, tx *sql.Tx, post *models.ContentPost) (int64, error) {
	query := `
		INSERT INTO content_posts (user_id, title, description, media_url, platforms, scheduled_time, status, is_evergreen, tags, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{
		post.UserID,
		post.Title,
		post.Description,
		post.MediaURL,
		pq.Array(post.Platforms),
		post.ScheduledTime,
		post.Status,
		post.IsEvergreen,
		pq.Array(post.Tags),
		post.Category,
	}

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *contentPostRepository) GetByID(ctx context.Context, id int64) (*models.ContentPost, error) {
	query := `SELECT ` + contentPostColumns + ` FROM content_posts WHERE id = $1`
	post, err := scanContentPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *contentPostRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.ContentPost, error) {
	query := `SELECT ` + contentPostColumns + ` FROM content_posts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ContentPost
	for rows.Next() {
		post, err := scanContentPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

// ListEvergreenByPlatforms returns the brand's evergreen pool filtered to
// posts whose platform set intersects the requested platforms. The overlap
// check is Postgres array `&&`: a post qualifies if it supports at least one
// requested platform, not all of them.
func (r *contentPostRepository) ListEvergreenByPlatforms(ctx context.Context, userID int64, platforms []string) ([]*models.ContentPost, error) {
	query := `
		SELECT ` + contentPostColumns + `
		FROM content_posts
		WHERE user_id = $1
		  AND is_evergreen = TRUE
		  AND platforms && $2
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(platforms))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ContentPost
	for rows.Next() {
		post, err := scanContentPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return posts, nil
}

func (r *contentPostRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM content_posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *contentPostRepository) Update(ctx context.Context, post *models.ContentPost) error {
	query := `
		UPDATE content_posts
		SET title = $1,
			description = $2,
			media_url = $3,
			platforms = $4,
			scheduled_time = $5,
			status = $6,
			is_evergreen = $7,
			tags = $8,
			category = $9,
			updated_at = $10
		WHERE id = $11
	`
	_, err := r.db.ExecContext(ctx, query,
		post.Title,
		post.Description,
		post.MediaURL,
		pq.Array(post.Platforms),
		post.ScheduledTime,
		post.Status,
		post.IsEvergreen,
		pq.Array(post.Tags),
		post.Category,
		time.Now(),
		post.ID,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentPostRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE content_posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *contentPostRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM content_posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
