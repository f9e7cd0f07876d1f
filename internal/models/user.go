package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a player account. Auth concerns live outside this service; only
// the fields the game flows touch are modeled here.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName  string             `bson:"fullname" json:"fullname"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	IsDeleted bool               `bson:"isDeleted" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Admin is the house account whose wallet receives purchases and pays prizes.
type Admin struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// JoinGame links a user to a game they bought into.
type JoinGame struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	GameID    primitive.ObjectID `bson:"gameId" json:"gameId"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Amount    float64            `bson:"amount" json:"amount"`
	WinAmount float64            `bson:"winAmount" json:"winAmount"`
	Joined    bool               `bson:"joined" json:"joined"`
	JoinedAt  time.Time          `bson:"joinedAt,omitempty" json:"joinedAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
