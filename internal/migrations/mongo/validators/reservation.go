package validators

import (
	"hms/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
)

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"booking_code",
			"guest_name",
			"guest_email",
			"room_type_id",
			"check_in",
			"check_out",
			"guests",
			"nights",
			"total_amount",
			"status",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "string",
			},

			"booking_code": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"guest_name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"guest_email": bson.M{
				"bsonType": "string",
			},

			"room_type_id": bson.M{
				"bsonType": "string",
			},

			"check_in": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"check_out": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"guests": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"nights": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"total_amount": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"discount_amount": bson.M{
				"bsonType": []string{"double", "int", "long"},
				"minimum":  0,
			},

			"status": bson.M{
				"enum": model.ReservationStatuses,
			},

			"created_at": bson.M{
				"bsonType": "string",
			},
		},
	},
}
