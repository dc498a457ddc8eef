package model

import "time"

// TargetType says what a review is about. A booking carries at most one
// review per target type.
type TargetType string

const (
	TargetGuest   TargetType = "GUEST"
	TargetHost    TargetType = "HOST"
	TargetListing TargetType = "LISTING"
)

type Review struct {
	ID         string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	BookingID  string     `json:"booking_id" bson:"booking_id" validate:"required"`
	TargetID   string     `json:"target_id" bson:"target_id" validate:"required"`
	TargetType TargetType `json:"target_type" bson:"target_type" validate:"required,oneof=GUEST HOST LISTING"`
	AuthorID   string     `json:"author_id" bson:"author_id" validate:"required"`
	Rating     int        `json:"rating" bson:"rating" validate:"required,min=1,max=5"`
	Text       string     `json:"text" bson:"text" validate:"required,min=2,max=2000"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// authorTypeByTarget derives who wrote a review from what the review is
// about: guests review hosts and listings, hosts review guests.
var authorTypeByTarget = map[TargetType]string{
	TargetGuest:   TypeHost,
	TargetHost:    TypeGuest,
	TargetListing: TypeGuest,
}

// AuthorRef returns the stub reference for the review's author, to be
// expanded by the entity resolver.
func (r *Review) AuthorRef() EntityStub {
	return EntityStub{
		TypeName: authorTypeByTarget[r.TargetType],
		ID:       r.AuthorID,
	}
}
