package model

import "time"

// Wallet is owned by the payments service, keyed by user id. Amount is
// mutated only through debit/credit and is never negative after a
// successful operation.
type Wallet struct {
	UserID    string    `json:"user_id" bson:"_id" validate:"required"`
	Amount    float64   `json:"amount" bson:"amount" validate:"gte=0"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at"`
}
