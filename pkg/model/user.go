package model

import "time"

type UserRole string

const (
	RoleHost  UserRole = "Host"
	RoleGuest UserRole = "Guest"
)

// User is owned by the accounts service and backs Host/Guest entity lookups.
type User struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Role           UserRole  `json:"role" bson:"role" validate:"required,oneof=Host Guest"`
	ProfilePicture string    `json:"profile_picture,omitempty" bson:"profile_picture" validate:"omitempty,url"`
	ProfileText    string    `json:"profile_text,omitempty" bson:"profile_text" validate:"omitempty,max=2000"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
