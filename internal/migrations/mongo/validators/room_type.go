package validators

import "go.mongodb.org/mongo-driver/bson"

var RoomTypeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"base_price",
			"max_guests",
			"is_active",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"base_price": bson.M{
				"bsonType":         []string{"double", "int", "long"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"max_guests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  20,
			},

			"amenities": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"images": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"display_order": bson.M{
				"bsonType": []string{"int", "long"},
			},

			"created_at": bson.M{
				"bsonType": "string",
			},
		},
	},
}
