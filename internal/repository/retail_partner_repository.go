package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/brandsync/api/internal/models"
	"github.com/lib/pq"
)

type RetailPartnerRepository interface {
	Create(ctx context.Context, tx *sql.Tx, partner *models.RetailPartner) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.RetailPartner, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.RetailPartner, error)
	ListByIDs(ctx context.Context, userID int64, ids []int64) ([]*models.RetailPartner, error)
	ListActiveByTag(ctx context.Context, userID int64, tag string) ([]*models.RetailPartner, error)
	CheckByUserID(ctx context.Context, partnerID, userID int64) (bool, error)
	Update(ctx context.Context, partner *models.RetailPartner) error
	UpdateStatus(ctx context.Context, status string, partnerID int64) error
	SetConnected(ctx context.Context, partnerID int64, connectedAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type retailPartnerRepository struct {
	db *sql.DB
}

func NewRetailPartnerRepository(db *sql.DB) RetailPartnerRepository {
	return &retailPartnerRepository{db: db}
}

const retailPartnerColumns = `id, user_id, name, email, phone, address, status, tags, connected_at, created_at, updated_at`

func scanRetailPartner(row interface{ Scan(...interface{}) error }) (*models.RetailPartner, error) {
	var p models.RetailPartner
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Email,
		&p.Phone,
		&p.Address,
		&p.Status,
		pq.Array(&p.Tags),
		&p.ConnectedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *retailPartnerRepository) Create(ctx context.Context, tx *sql.Tx, partner *models.RetailPartner) (int64, error) {
	query := `
		INSERT INTO retail_partners (user_id, name, email, phone, address, status, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{
		partner.UserID,
		partner.Name,
		partner.Email,
		partner.Phone,
		partner.Address,
		partner.Status,
		pq.Array(partner.Tags),
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

func (r *retailPartnerRepository) GetByID(ctx context.Context, id int64) (*models.RetailPartner, error) {
	query := `SELECT ` + retailPartnerColumns + ` FROM retail_partners WHERE id = $1`
	partner, err := scanRetailPartner(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return partner, nil
}

func (r *retailPartnerRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.RetailPartner, error) {
	query := `SELECT ` + retailPartnerColumns + ` FROM retail_partners WHERE user_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var partners []*models.RetailPartner
	for rows.Next() {
		partner, err := scanRetailPartner(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		partners = append(partners, partner)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return partners, nil
}

// ListByIDs returns only rows owned by userID; the caller compares lengths
// to detect ids belonging to another brand.
func (r *retailPartnerRepository) ListByIDs(ctx context.Context, userID int64, ids []int64) ([]*models.RetailPartner, error) {
	query := `
		SELECT ` + retailPartnerColumns + `
		FROM retail_partners
		WHERE user_id = $1 AND id = ANY($2)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, pq.Array(ids))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var partners []*models.RetailPartner
	for rows.Next() {
		partner, err := scanRetailPartner(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		partners = append(partners, partner)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return partners, nil
}

// ListActiveByTag matches the tag exactly, case-sensitive.
func (r *retailPartnerRepository) ListActiveByTag(ctx context.Context, userID int64, tag string) ([]*models.RetailPartner, error) {
	query := `
		SELECT ` + retailPartnerColumns + `
		FROM retail_partners
		WHERE user_id = $1 AND status = $2 AND $3 = ANY(tags)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID, models.PartnerStatusActive, tag)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var partners []*models.RetailPartner
	for rows.Next() {
		partner, err := scanRetailPartner(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		partners = append(partners, partner)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return partners, nil
}

func (r *retailPartnerRepository) CheckByUserID(ctx context.Context, partnerID, userID int64) (bool, error) {
	query := "SELECT 1 FROM retail_partners WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, partnerID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *retailPartnerRepository) Update(ctx context.Context, partner *models.RetailPartner) error {
	query := `
		UPDATE retail_partners
		SET name = $1,
			email = $2,
			phone = $3,
			address = $4,
			status = $5,
			tags = $6,
			updated_at = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query,
		partner.Name,
		partner.Email,
		partner.Phone,
		partner.Address,
		partner.Status,
		pq.Array(partner.Tags),
		time.Now(),
		partner.ID,
	)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *retailPartnerRepository) UpdateStatus(ctx context.Context, status string, partnerID int64) error {
	query := `
		UPDATE retail_partners
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), partnerID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *retailPartnerRepository) SetConnected(ctx context.Context, partnerID int64, connectedAt time.Time) error {
	query := `
		UPDATE retail_partners
		SET status = $1,
			connected_at = COALESCE(connected_at, $2),
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PartnerStatusActive, connectedAt, time.Now(), partnerID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *retailPartnerRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM retail_partners WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
