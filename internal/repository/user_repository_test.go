package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildSearchFilter(t *testing.T) {
	t.Run("always restricts to public active users", func(t *testing.T) {
		filter := buildSearchFilter("", "")
		assert.Equal(t, bson.M{"isPublic": true, "isActive": true}, filter)
	})

	t.Run("skill matches offered or wanted case-insensitively", func(t *testing.T) {
		filter := buildSearchFilter("guitar", "")

		or, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Len(t, or, 2)
		assert.Equal(t, bson.M{"$regex": "guitar", "$options": "i"}, or[0]["skillsOffered"])
		assert.Equal(t, bson.M{"$regex": "guitar", "$options": "i"}, or[1]["skillsWanted"])

		assert.Equal(t, true, filter["isPublic"])
		assert.Equal(t, true, filter["isActive"])
	})

	t.Run("location narrows independently of skill", func(t *testing.T) {
		filter := buildSearchFilter("spanish", "madrid")

		assert.Equal(t, bson.M{"$regex": "madrid", "$options": "i"}, filter["location"])
		_, hasOr := filter["$or"]
		assert.True(t, hasOr)
	})

	t.Run("location without skill has no or clause", func(t *testing.T) {
		filter := buildSearchFilter("", "berlin")

		_, hasOr := filter["$or"]
		assert.False(t, hasOr)
		assert.Equal(t, bson.M{"$regex": "berlin", "$options": "i"}, filter["location"])
	})
}
