package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFriendshipStatusValid(t *testing.T) {
	for _, status := range []FriendshipStatus{FriendshipPending, FriendshipAccepted, FriendshipDeclined, FriendshipBlocked} {
		assert.True(t, status.Valid(), "expected %q to be valid", status)
	}

	for _, status := range []FriendshipStatus{"", "rejected", "Pending", "friends"} {
		assert.False(t, status.Valid(), "expected %q to be invalid", status)
	}
}

func TestFriendshipStatusIsResolution(t *testing.T) {
	assert.True(t, FriendshipAccepted.IsResolution())
	assert.True(t, FriendshipDeclined.IsResolution())

	// A recipient can only resolve to accepted or declined; pending and
	// blocked are not resolutions.
	assert.False(t, FriendshipPending.IsResolution())
	assert.False(t, FriendshipBlocked.IsResolution())
}
