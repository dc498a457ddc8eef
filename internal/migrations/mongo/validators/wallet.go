package validators

import "go.mongodb.org/mongo-driver/bson"

// WalletValidator mirrors the non-negative balance invariant at the
// storage layer, backing up the conditional-update guard in the repo.
var WalletValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"amount"},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"amount": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
