package model

import "time"

// Session is an opaque bearer credential backed by the sessions collection.
// A session is valid only while ExpiresAt is in the future and the referenced
// user still exists.
type Session struct {
	Token     string    `bson:"token" json:"token"`
	UserID    string    `bson:"user_id" json:"user_id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}

// Expired reports whether the session has lapsed as of now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
