package model

import "time"

// User represents an account created on first successful session exchange.
// The ID is the subject identifier issued by the external OAuth provider.
type User struct {
	ID                    string    `bson:"_id" json:"id"`
	Email                 string    `bson:"email" json:"email"`
	Name                  string    `bson:"name" json:"name"`
	Picture               string    `bson:"picture,omitempty" json:"picture,omitempty"`
	SubscriptionTier      PlanTier  `bson:"subscription_tier,omitempty" json:"subscription_tier,omitempty"`
	SubscriptionExpiresAt time.Time `bson:"subscription_expires_at,omitempty" json:"subscription_expires_at,omitempty"`
	CreatedAt             time.Time `bson:"created_at" json:"created_at"`
}

// HasSubscription reports whether the user holds a tier that has not expired
// as of now. Expiry is compared live; no stored flag is trusted.
func (u *User) HasSubscription(now time.Time) bool {
	if u.SubscriptionTier == "" {
		return false
	}
	return u.SubscriptionExpiresAt.After(now)
}
