package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswap/skillswap-server/internal/models"
)

func TestBuildActionFilter(t *testing.T) {
	swapID := primitive.NewObjectID()
	actor := primitive.NewObjectID()

	t.Run("accept and reject bind the recipient on a pending swap", func(t *testing.T) {
		for _, action := range []models.SwapAction{models.SwapActionAccept, models.SwapActionReject} {
			filter, err := buildActionFilter(swapID, actor, action)
			require.NoError(t, err)

			assert.Equal(t, bson.M{
				"_id":      swapID,
				"status":   models.SwapPending,
				"toUserId": actor,
			}, filter)
		}
	})

	t.Run("cancel binds the sender on a pending swap", func(t *testing.T) {
		filter, err := buildActionFilter(swapID, actor, models.SwapActionCancel)
		require.NoError(t, err)

		assert.Equal(t, bson.M{
			"_id":        swapID,
			"status":     models.SwapPending,
			"fromUserId": actor,
		}, filter)
	})

	t.Run("complete allows either participant on an accepted swap", func(t *testing.T) {
		filter, err := buildActionFilter(swapID, actor, models.SwapActionComplete)
		require.NoError(t, err)

		assert.Equal(t, models.SwapAccepted, filter["status"])
		assert.Equal(t, []bson.M{{"fromUserId": actor}, {"toUserId": actor}}, filter["$or"])

		// The actor clause is the or, never a direct party binding.
		_, hasFrom := filter["fromUserId"]
		_, hasTo := filter["toUserId"]
		assert.False(t, hasFrom)
		assert.False(t, hasTo)
	})

	t.Run("unknown action is rejected", func(t *testing.T) {
		_, err := buildActionFilter(swapID, actor, models.SwapAction("approve"))
		assert.Error(t, err)
	})
}
