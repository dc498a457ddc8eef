package model

// Entity type tags used in stub references. Each tag maps to exactly one
// owning service.
const (
	TypeListing = "Listing"
	TypeBooking = "Booking"
	TypeHost    = "Host"
	TypeGuest   = "Guest"
)

// EntityStub is a minimal {type, id} reference one service returns in place
// of an entity another service owns. The holder expands it through the
// entity resolver instead of duplicating fields.
type EntityStub struct {
	TypeName string `json:"type_name" validate:"required"`
	ID       string `json:"id" validate:"required"`
}
