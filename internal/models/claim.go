package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimType identifies a winning pattern a player can claim.
type ClaimType string

const (
	ClaimTop     ClaimType = "Top"
	ClaimMiddle  ClaimType = "Middle"
	ClaimBottom  ClaimType = "Bottom"
	ClaimCorners ClaimType = "Corners"
	ClaimEarly7  ClaimType = "Early7"
	ClaimEarly10 ClaimType = "Early10"
	ClaimHouse   ClaimType = "House"
	ClaimHouse1  ClaimType = "House1"
	ClaimHouse2  ClaimType = "House2"
)

// AllClaimTypes lists every recognized claim type.
func AllClaimTypes() []ClaimType {
	return []ClaimType{
		ClaimEarly7, ClaimEarly10, ClaimCorners, ClaimBottom, ClaimHouse,
		ClaimMiddle, ClaimTop, ClaimHouse1, ClaimHouse2,
	}
}

// IsValidClaimType reports whether t is one of the recognized claim types.
func IsValidClaimType(t ClaimType) bool {
	for _, c := range AllClaimTypes() {
		if c == t {
			return true
		}
	}
	return false
}

// Claim records a player's accepted assertion of a winning pattern.
// At most one valid claim exists per (game, type); later identical
// submissions only touch Timestamp.
type Claim struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Type      ClaimType          `bson:"type" json:"type"`
	TicketID  primitive.ObjectID `bson:"ticketId" json:"ticketId"`
	GameID    primitive.ObjectID `bson:"gameId" json:"gameId"`
	Numbers   []int              `bson:"numbers" json:"numbers"`
	IsValid   bool               `bson:"isValid" json:"isValid"`
	ClaimedOn time.Time          `bson:"claimedOn" json:"claimedOn"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// ClaimPrize maps a claim type to its prize amount for one game.
type ClaimPrize struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID    primitive.ObjectID `bson:"gameId" json:"gameId"`
	Type      ClaimType          `bson:"type" json:"type"`
	Amount    float64            `bson:"amount" json:"amount"`
	IsDeleted bool               `bson:"isDeleted" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
