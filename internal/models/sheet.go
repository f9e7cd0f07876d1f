package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sheet is a purchased set of six tickets. UID is the sheet's fingerprint,
// a hex digest of every occupied cell, used to reject duplicate sheets.
type Sheet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UID       string             `bson:"uid" json:"uid"`
	GameID    primitive.ObjectID `bson:"gameId" json:"gameId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Price     float64            `bson:"price" json:"price"`
	IsPaid    bool               `bson:"isPaid" json:"isPaid"`
	IsDeleted bool               `bson:"isDeleted" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Ticket is one 3x9 grid of a sheet. Matrix cells are 0 when empty.
type Ticket struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SheetID   primitive.ObjectID `bson:"sheetId" json:"sheetId"`
	Matrix    [][]int            `bson:"matrix" json:"matrix"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// OfflineSheet is a pre-generated house sheet for a game, indexed 0..2
// within its batch.
type OfflineSheet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID    primitive.ObjectID `bson:"gameId" json:"gameId"`
	Idx       int                `bson:"idx" json:"idx"`
	Tickets   [][][]int          `bson:"tickets" json:"tickets"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
