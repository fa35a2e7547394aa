package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/brandsync/api/internal/models"
)

type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	GetByToken(ctx context.Context, token string) (*models.Invite, error)
	ListByBrandID(ctx context.Context, brandID int64) ([]*models.Invite, error)
	Remove(ctx context.Context, token string) error
	RemoveExpired(ctx context.Context) (int64, error)
}

type inviteRepository struct {
	db *sql.DB
}

func NewInviteRepository(db *sql.DB) InviteRepository {
	return &inviteRepository{db: db}
}

func (r *inviteRepository) Create(ctx context.Context, invite *models.Invite) error {
	query := `
		INSERT INTO invites (token, brand_id, email, name, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, invite.Token, invite.BrandID, invite.Email, invite.Name, invite.ExpiresAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *inviteRepository) GetByToken(ctx context.Context, token string) (*models.Invite, error) {
	query := `SELECT token, brand_id, email, name, expires_at, created_at FROM invites WHERE token = $1`
	row := r.db.QueryRowContext(ctx, query, token)

	var invite models.Invite
	err := row.Scan(&invite.Token, &invite.BrandID, &invite.Email, &invite.Name, &invite.ExpiresAt, &invite.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &invite, nil
}

func (r *inviteRepository) ListByBrandID(ctx context.Context, brandID int64) ([]*models.Invite, error) {
	query := `SELECT token, brand_id, email, name, expires_at, created_at FROM invites WHERE brand_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var invites []*models.Invite
	for rows.Next() {
		var invite models.Invite
		err := rows.Scan(&invite.Token, &invite.BrandID, &invite.Email, &invite.Name, &invite.ExpiresAt, &invite.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		invites = append(invites, &invite)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return invites, nil
}

func (r *inviteRepository) Remove(ctx context.Context, token string) error {
	query := `DELETE FROM invites WHERE token = $1`
	_, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *inviteRepository) RemoveExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM invites WHERE expires_at < CURRENT_TIMESTAMP`
	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return affected, nil
}
