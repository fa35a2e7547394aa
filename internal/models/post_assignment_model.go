package models

import (
	"database/sql"
	"time"
)

// PostAssignment pairs one content post with one retail partner for a single
// scheduled distribution. The pairing is immutable once created; only the
// status and publish fields change afterwards.
type PostAssignment struct {
	ID            int64          `db:"id" json:"id"`
	PostID        int64          `db:"post_id" json:"post_id"`
	PartnerID     int64          `db:"partner_id" json:"partner_id"`
	CustomFooter  string         `db:"custom_footer" json:"custom_footer"`
	CustomTags    []string       `db:"custom_tags" json:"custom_tags"`
	ScheduledTime time.Time      `db:"scheduled_time" json:"scheduled_time"`
	Status        string         `db:"status" json:"status"` // pending, published, failed
	PublishedURL  sql.NullString `db:"published_url" json:"published_url"`
	PublishedAt   sql.NullTime   `db:"published_at" json:"published_at"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

type PublishHistory struct {
	ID           int64     `db:"id" json:"id"`
	AssignmentID int64     `db:"assignment_id" json:"assignment_id"`
	AccountID    int64     `db:"account_id" json:"account_id"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusPublished = "published"
	AssignmentStatusFailed    = "failed"
)
