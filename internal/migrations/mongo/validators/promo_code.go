package validators

import (
	"hms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var PromoCodeValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"code",
			"discount_type",
			"discount_value",
			"max_usage",
			"current_usage",
			"valid_from",
			"valid_until",
			"is_active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"code": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 32,
			},

			"discount_type": bson.M{
				"enum": []string{model.DiscountPercent, model.DiscountFixed},
			},

			"discount_value": bson.M{
				"bsonType":         []string{"double", "int", "long"},
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"max_usage": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"current_usage": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"valid_days": bson.M{
				"bsonType": []string{"array", "null"},
				"items": bson.M{
					"bsonType": []string{"int", "long"},
					"minimum":  0,
					"maximum":  6,
				},
			},

			"valid_from": bson.M{
				"bsonType": "string",
			},

			"valid_until": bson.M{
				"bsonType": "string",
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
