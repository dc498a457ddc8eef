package model

import "time"

// SlotLock is an advisory lock keyed by (listing, date range) that serializes
// concurrent booking creation for the same slot. It narrows the window
// between the availability check and the insert; the hard guarantee against
// double-booking remains a uniqueness constraint on the booking store.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
