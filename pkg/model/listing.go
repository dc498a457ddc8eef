package model

import "time"

// Listing is owned by the listings service. Bookings and reviews reference it
// by id only and resolve the full record through the entity resolver.
type Listing struct {
	ID             string   `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Title          string   `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description    string   `json:"description,omitempty" bson:"description" validate:"omitempty,max=2000"`
	HostID         string   `json:"host_id" bson:"host_id" validate:"required"`
	CostPerNight   float64  `json:"cost_per_night" bson:"cost_per_night" validate:"required,gt=0"`
	NumOfBeds      int      `json:"num_of_beds" bson:"num_of_beds" validate:"required,min=1,max=20"`
	PhotoThumbnail string   `json:"photo_thumbnail,omitempty" bson:"photo_thumbnail" validate:"omitempty,url"`
	LocationType   string   `json:"location_type,omitempty" bson:"location_type" validate:"omitempty,oneof=SPACESHIP HOUSE CAMPSITE APARTMENT ROOM"`
	Amenities      []string `json:"amenities,omitempty" bson:"amenities" validate:"omitempty,dive,min=2,max=100"`
	IsFeatured     bool     `json:"is_featured,omitempty" bson:"is_featured"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// CostQuote is the listings service's answer to "what does this stay cost".
type CostQuote struct {
	TotalCost      float64 `json:"total_cost"`
	NumberOfNights int     `json:"number_of_nights"`
}
