package models

import "time"

type Invite struct {
	Token     string    `db:"token" json:"token"`
	BrandID   int64     `db:"brand_id" json:"brand_id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
