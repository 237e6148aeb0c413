package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func findCollection(t *testing.T, name string) Collection {
	t.Helper()
	for _, c := range Collections {
		if c.Name == name {
			return c
		}
	}
	require.FailNow(t, "collection not declared", name)
	return Collection{}
}

func TestCollectionsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Collections {
		assert.False(t, seen[c.Name], "duplicate collection %s", c.Name)
		seen[c.Name] = true
		assert.NotEmpty(t, c.Indexes, "collection %s has no indexes", c.Name)
	}
}

func TestSchemaValidatedCollections(t *testing.T) {
	for _, name := range []string{"Room_types", "Room_inventory", "Rate_plans", "Promo_codes", "Reservations"} {
		t.Run(name, func(t *testing.T) {
			c := findCollection(t, name)
			require.NotNil(t, c.Validator)
			assert.Contains(t, c.Validator, "$jsonSchema")
		})
	}
}

func TestInventoryAllotmentCannotGoNegative(t *testing.T) {
	schema := findCollection(t, "Room_inventory").Validator["$jsonSchema"].(bson.M)
	allotment := schema["properties"].(bson.M)["allotment"].(bson.M)
	assert.Equal(t, 0, allotment["minimum"])
}

func TestUniqueIndexes(t *testing.T) {
	tests := []struct {
		collection string
		keys       bson.D
	}{
		{"Room_inventory", bson.D{{Key: "room_type_id", Value: 1}, {Key: "date", Value: 1}}},
		{"Promo_codes", bson.D{{Key: "code", Value: 1}}},
		{"Reservations", bson.D{{Key: "booking_code", Value: 1}}},
		{"Users", bson.D{{Key: "email", Value: 1}}},
		{"Site_content", bson.D{{Key: "page", Value: 1}, {Key: "section", Value: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			var found bool
			for _, idx := range findCollection(t, tt.collection).Indexes {
				if assert.ObjectsAreEqual(tt.keys, idx.Keys) {
					require.NotNil(t, idx.Options)
					require.NotNil(t, idx.Options.Unique)
					assert.True(t, *idx.Options.Unique)
					found = true
				}
			}
			assert.True(t, found, "unique index missing")
		})
	}
}

func TestPasswordResetsExpire(t *testing.T) {
	idx := findCollection(t, "Password_resets").Indexes[0]
	require.NotNil(t, idx.Options)
	require.NotNil(t, idx.Options.ExpireAfterSeconds)
	assert.Equal(t, int32(0), *idx.Options.ExpireAfterSeconds)
}
