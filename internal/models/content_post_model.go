package models

import (
	"database/sql"
	"time"
)

type ContentPost struct {
	ID            int64        `db:"id" json:"id"`
	UserID        int64        `db:"user_id" json:"user_id"`
	Title         string       `db:"title" json:"title"`
	Description   string       `db:"description" json:"description"`
	MediaURL      string       `db:"media_url" json:"media_url"`
	Platforms     []string     `db:"platforms" json:"platforms"`
	ScheduledTime sql.NullTime `db:"scheduled_time" json:"scheduled_time"`
	Status        string       `db:"status" json:"status"` // draft, scheduled, published, automated
	IsEvergreen   bool         `db:"is_evergreen" json:"is_evergreen"`
	Tags          []string     `db:"tags" json:"tags"`
	Category      string       `db:"category" json:"category"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at" json:"updated_at"`
}

type MediaAsset struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	FileName  string    `db:"file_name"`
	FileType  string    `db:"file_type"`
	FileSize  int64     `db:"file_size"`
	FileURL   string    `db:"file_url"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
	PostStatusAutomated = "automated"
)

const (
	PlatformFacebook  = "facebook"
	PlatformInstagram = "instagram"
	PlatformGoogle    = "google"
)
