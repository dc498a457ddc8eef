package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"listing_id",
			"guest_id",
			"check_in",
			"check_out",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"listing_id": bson.M{
				"bsonType": "string",
			},

			"guest_id": bson.M{
				"bsonType": "string",
			},

			"check_in": bson.M{
				"bsonType": "date",
			},

			"check_out": bson.M{
				"bsonType": "date",
			},

			"total_cost": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"status": bson.M{
				"bsonType": "string",
				"enum":     []string{"UPCOMING", "CURRENT", "COMPLETED", "CANCELLED"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
