package validators

import "go.mongodb.org/mongo-driver/bson"

// InventoryValidator rejects negative allotments, so a decrement that slips
// past the conditional filter still cannot oversell.
var InventoryValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"room_type_id",
			"date",
			"allotment",
			"rate",
			"is_closed",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"room_type_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"allotment": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"rate": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"is_closed": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
