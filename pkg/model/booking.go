package model

import (
	"time"
)

type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "UPCOMING"
	StatusCurrent   BookingStatus = "CURRENT"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// Booking is owned by the bookings service. It is created only through the
// booking saga; status transitions are time- and action-driven, never set by
// clients directly.
type Booking struct {
	ID        string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	ListingID string        `json:"listing_id" bson:"listing_id" validate:"required"`
	GuestID   string        `json:"guest_id" bson:"guest_id" validate:"required"`
	CheckIn   time.Time     `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut  time.Time     `json:"check_out" bson:"check_out" validate:"required,gtfield=CheckIn"`
	TotalCost float64       `json:"total_cost" bson:"total_cost" validate:"omitempty,gte=0"`
	Status    BookingStatus `json:"status" bson:"status" validate:"omitempty,oneof=UPCOMING CURRENT COMPLETED CANCELLED"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// BookingRequest is the caller-supplied input to the saga. TotalCost and
// status are computed server-side.
type BookingRequest struct {
	ListingID string    `json:"listing_id" validate:"required"`
	GuestID   string    `json:"guest_id" validate:"required"`
	CheckIn   time.Time `json:"check_in" validate:"required"`
	CheckOut  time.Time `json:"check_out" validate:"required,gtfield=CheckIn"`
}

// DateRange is a half-open [CheckIn, CheckOut) interval, used for displaying
// booked dates. The availability decision never reads these.
type DateRange struct {
	CheckIn  time.Time `json:"check_in" bson:"check_in"`
	CheckOut time.Time `json:"check_out" bson:"check_out"`
}

// Cancellable reports whether a booking may still be cancelled.
func (b *Booking) Cancellable() bool {
	return b.Status == StatusUpcoming
}
