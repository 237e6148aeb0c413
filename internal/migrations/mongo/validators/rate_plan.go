package validators

import (
	"hms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var RatePlanValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"price_modifier_type",
			"price_modifier_val",
			"is_active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"room_type_id": bson.M{
				"bsonType": []string{"string", "null"},
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"price_modifier_type": bson.M{
				"enum": []string{model.ModifierPercent, model.ModifierAbsoluteAdd, model.ModifierAbsoluteTotal},
			},

			"price_modifier_val": bson.M{
				"bsonType": []string{"double", "int", "long"},
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"conditions": bson.M{
				"bsonType": []string{"array", "null"},
				"items":    bson.M{"bsonType": "string"},
			},
		},
	},
}
