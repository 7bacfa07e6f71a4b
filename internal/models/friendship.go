package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FriendshipStatus is the closed set of states a friendship can be in.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

// Valid reports whether s is one of the known friendship states.
func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipPending, FriendshipAccepted, FriendshipDeclined, FriendshipBlocked:
		return true
	}
	return false
}

// IsResolution reports whether s is a state the recipient may move a
// pending request into.
func (s FriendshipStatus) IsResolution() bool {
	return s == FriendshipAccepted || s == FriendshipDeclined
}

// Friendship is the single document for an unordered pair of users.
// At most one friendship exists per pair, in either direction.
type Friendship struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Requester primitive.ObjectID `bson:"requester" json:"requester"`
	Recipient primitive.ObjectID `bson:"recipient" json:"recipient"`
	Status    FriendshipStatus   `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// PendingRequest is a pending friendship enriched with the requester's
// public details, as returned by GET /friends/all.
type PendingRequest struct {
	ID        primitive.ObjectID `bson:"_id" json:"_id"`
	Requester PublicUser         `bson:"requester" json:"requester"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// FriendEntry is an accepted friendship enriched with the counterpart's
// public details.
type FriendEntry struct {
	FriendshipID primitive.ObjectID `bson:"friendshipId" json:"friendshipId"`
	Friend       PublicUser         `bson:"friend" json:"friend"`
}
