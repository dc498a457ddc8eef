package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"booking_id", "target_id", "target_type", "author_id", "rating", "text", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"booking_id": bson.M{
				"bsonType": "string",
			},

			"target_id": bson.M{
				"bsonType": "string",
			},

			"target_type": bson.M{
				"bsonType": "string",
				"enum":     []string{"GUEST", "HOST", "LISTING"},
			},

			"author_id": bson.M{
				"bsonType": "string",
			},

			"rating": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  5,
			},

			"text": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 2000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
