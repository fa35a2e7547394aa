package models

import (
	"database/sql"
	"time"
)

type RetailPartner struct {
	ID          int64        `db:"id" json:"id"`
	UserID      int64        `db:"user_id" json:"user_id"`
	Name        string       `db:"name" json:"name"`
	Email       string       `db:"email" json:"email"`
	Phone       string       `db:"phone" json:"phone"`
	Address     string       `db:"address" json:"address"`
	Status      string       `db:"status" json:"status"` // pending, active, needs_attention, inactive
	Tags        []string     `db:"tags" json:"tags"`
	ConnectedAt sql.NullTime `db:"connected_at" json:"connected_at"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updated_at"`
}

const (
	PartnerStatusPending        = "pending"
	PartnerStatusActive         = "active"
	PartnerStatusNeedsAttention = "needs_attention"
	PartnerStatusInactive       = "inactive"
)
