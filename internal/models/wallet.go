package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OwnerType distinguishes user wallets from the house (admin) wallet.
type OwnerType string

const (
	OwnerUser  OwnerType = "User"
	OwnerAdmin OwnerType = "Admin"
)

// Wallet holds a spendable balance and a separately tracked referral balance.
// Version guards against lost updates: every balance write is conditional on
// the version read, and bumps it.
type Wallet struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerType      OwnerType          `bson:"ownerType" json:"ownerType"`
	OwnerID        primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Amount         float64            `bson:"amount" json:"amount"`
	ReferralAmount float64            `bson:"referralAmount" json:"referralAmount"`
	Version        int64              `bson:"version" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TransactionType is the signed direction of a wallet mutation.
type TransactionType string

const (
	TransactionCredit TransactionType = "Credit"
	TransactionDebit  TransactionType = "Debit"
)

// TransactionContext tags what a wallet mutation paid for.
type TransactionContext string

const (
	ContextDeposit        TransactionContext = "Deposit"
	ContextWithdrawal     TransactionContext = "Withdrawal"
	ContextTicketPurchase TransactionContext = "TicketPurchase"
	ContextPrize          TransactionContext = "Prize"
	ContextRefund         TransactionContext = "Refund"
	ContextReferral       TransactionContext = "Referral"
)

// WalletTransaction is the append-only audit record paired 1:1 with every
// balance mutation. Rows are never updated or deleted after creation.
type WalletTransaction struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	WalletID         primitive.ObjectID `bson:"walletId" json:"walletId"`
	Context          TransactionContext `bson:"context" json:"context"`
	Type             TransactionType    `bson:"type" json:"type"`
	Amount           float64            `bson:"amount" json:"amount"`
	AvailableBalance float64            `bson:"availableBalance" json:"availableBalance"`
	EntityID         primitive.ObjectID `bson:"entityId,omitempty" json:"entityId,omitempty"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`
}
