package service

import (
	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "airlock/internal/bookings/errors"
)

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}
}

func bookingNotFound() error {
	return bookingserrors.ErrNotFound
}
