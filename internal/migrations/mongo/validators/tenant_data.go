package validators

import "go.mongodb.org/mongo-driver/bson"

var clockTimePattern = "^([01][0-9]|2[0-3]):[0-5][0-9]$"

var bookingSchema = bson.M{
	"bsonType": "object",
	"required": []string{
		"id",
		"date",
		"start_time",
		"professional_id",
		"duration_min",
		"client",
	},
	"additionalProperties": true,

	"properties": bson.M{
		"id": bson.M{
			"bsonType": "string",
		},

		"date": bson.M{
			"bsonType": "date",
		},

		"start_time": bson.M{
			"bsonType": "string",
			"pattern":  clockTimePattern,
		},

		"professional_id": bson.M{
			"bsonType": "int",
			"minimum":  1,
		},

		"duration_min": bson.M{
			"bsonType": "int",
			"minimum":  5,
			"maximum":  480,
		},

		"client": bson.M{
			"bsonType": "object",
			"required": []string{"email", "first_name"},
			"properties": bson.M{
				"email": bson.M{
					"bsonType": "string",
				},
				"first_name": bson.M{
					"bsonType":  "string",
					"minLength": 1,
					"maxLength": 100,
				},
				"last_name": bson.M{
					"bsonType":  "string",
					"maxLength": 100,
				},
			},
		},

		"notes": bson.M{
			"bsonType":  "string",
			"maxLength": 500,
		},

		"created_at": bson.M{
			"bsonType": "date",
		},
	},
}

var TenantDataValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"bookings",
			"historical_bookings",
			"blocked_slots",
			"cancelled_days",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"hours": bson.M{
				"bsonType": "object",
				"properties": bson.M{
					"open": bson.M{
						"bsonType": "string",
						"pattern":  clockTimePattern,
					},
					"close": bson.M{
						"bsonType": "string",
						"pattern":  clockTimePattern,
					},
					"interval_min": bson.M{
						"bsonType": "int",
						"minimum":  5,
						"maximum":  240,
					},
					"operating_days": bson.M{
						"bsonType": "array",
						"maxItems": 7,
						"items": bson.M{
							"bsonType": "int",
							"minimum":  0,
							"maximum":  6,
						},
					},
				},
			},

			"bookings": bson.M{
				"bsonType": "array",
				"items":    bookingSchema,
			},

			"historical_bookings": bson.M{
				"bsonType": "array",
			},

			"blocked_slots": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"date", "time", "professional_id"},
					"properties": bson.M{
						"date": bson.M{
							"bsonType": "date",
						},
						"time": bson.M{
							"bsonType": "string",
							"pattern":  clockTimePattern,
						},
						"professional_id": bson.M{
							"bsonType": "int",
							"minimum":  1,
						},
						"reason": bson.M{
							"bsonType":  "string",
							"maxLength": 200,
						},
					},
				},
			},

			"cancelled_days": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"date"},
					"properties": bson.M{
						"date": bson.M{
							"bsonType": "date",
						},
						"reason": bson.M{
							"bsonType":  "string",
							"maxLength": 200,
						},
					},
				},
			},
		},
	},
}
