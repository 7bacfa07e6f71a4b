package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SwapStatus is the closed set of states a swap request can be in.
type SwapStatus string

const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

// SwapAction is a caller-requested transition on a swap request.
type SwapAction string

const (
	SwapActionAccept   SwapAction = "accept"
	SwapActionReject   SwapAction = "reject"
	SwapActionComplete SwapAction = "complete"
	SwapActionCancel   SwapAction = "cancel"
)

// Valid reports whether a is one of the known swap actions.
func (a SwapAction) Valid() bool {
	switch a {
	case SwapActionAccept, SwapActionReject, SwapActionComplete, SwapActionCancel:
		return true
	}
	return false
}

// Target returns the status an action moves a swap into.
func (a SwapAction) Target() SwapStatus {
	switch a {
	case SwapActionAccept:
		return SwapAccepted
	case SwapActionReject:
		return SwapRejected
	case SwapActionComplete:
		return SwapCompleted
	case SwapActionCancel:
		return SwapCancelled
	}
	return ""
}

// Required returns the status a swap must currently be in for the action
// to apply. The only legal edges are pending -> accepted/rejected/cancelled
// and accepted -> completed.
func (a SwapAction) Required() SwapStatus {
	if a == SwapActionComplete {
		return SwapAccepted
	}
	return SwapPending
}

// SwapRequest is a proposal to exchange one offered skill for one requested
// skill between two users.
type SwapRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FromUserID     primitive.ObjectID `bson:"fromUserId" json:"fromUserId"`
	ToUserID       primitive.ObjectID `bson:"toUserId" json:"toUserId"`
	OfferedSkill   string             `bson:"offeredSkill" json:"offeredSkill"`
	RequestedSkill string             `bson:"requestedSkill" json:"requestedSkill"`
	Message        string             `bson:"message" json:"message"`
	Status         SwapStatus         `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// EnrichedSwap is a swap request joined with the two parties' public details
// for listing.
type EnrichedSwap struct {
	SwapRequest `bson:",inline"`
	FromUser    *PublicUser `bson:"fromUser,omitempty" json:"fromUser,omitempty"`
	ToUser      *PublicUser `bson:"toUser,omitempty" json:"toUser,omitempty"`
}
