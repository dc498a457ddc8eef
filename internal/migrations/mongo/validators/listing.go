package validators

import "go.mongodb.org/mongo-driver/bson"

var ListingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"title", "host_id", "cost_per_night", "num_of_beds", "created_at"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 200,
			},

			"host_id": bson.M{
				"bsonType": "string",
			},

			"cost_per_night": bson.M{
				"bsonType":         []string{"double", "int", "long"},
				"minimum":          0,
				"exclusiveMinimum": true,
			},

			"num_of_beds": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  20,
			},

			"location_type": bson.M{
				"bsonType": "string",
				"enum":     []string{"SPACESHIP", "HOUSE", "CAMPSITE", "APARTMENT", "ROOM"},
			},

			"amenities": bson.M{
				"bsonType": "array",
			},

			"is_featured": bson.M{
				"bsonType": "bool",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
