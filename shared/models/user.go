package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteRole defines a user's site-wide privilege level.
type SiteRole string

const (
	SiteRoleActive SiteRole = "active"
	SiteRoleAdmin  SiteRole = "admin"
)

// User is a site account. A user owns trainers across games; the activity
// token and session verification gate every mutating request.
type User struct {
	UserID        uuid.UUID   `db:"user_id" json:"userId"`
	Username      string      `db:"username" json:"username"`
	PasswordHash  string      `db:"password_hash" json:"-"`
	ActivityToken string      `db:"activity_token" json:"-"`
	SiteRole      SiteRole    `db:"site_role" json:"siteRole"`
	IsOnline      bool        `db:"is_online" json:"isOnline"`
	DateCreated   time.Time   `db:"date_created" json:"dateCreated"`
	Games         []uuid.UUID `db:"games" json:"games"`
}
