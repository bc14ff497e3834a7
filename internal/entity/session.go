package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Session is the durable record of an authenticated user. The gateway keeps
// it keyed by the backend bearer token; expiry comes from the token's
// embedded exp claim.
type Session struct {
	ID        uuid.UUID
	Token     string
	User      User
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
