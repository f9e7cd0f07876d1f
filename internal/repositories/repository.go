package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/tambola-games/tambola-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("repositories: not found")

	// ErrConflict is returned when a versioned update lost the race and
	// should be retried on a fresh read.
	ErrConflict = errors.New("repositories: version conflict")
)

// TxRunner runs a function inside a storage transaction. Every write issued
// through the repositories with the callback's context commits or aborts
// atomically.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GameRepository defines the interface for game data operations
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	FindAll(ctx context.Context, page, limit int) ([]*models.Game, error)
	FindActiveInWindow(ctx context.Context, start, end time.Time) (*models.Game, error)
	FindRunning(ctx context.Context) ([]*models.Game, error)
	FindResumable(ctx context.Context) ([]*models.Game, error)
	FindStaleBefore(ctx context.Context, cutoff time.Time) ([]*models.Game, error)
	SetDealt(ctx context.Context, id primitive.ObjectID, number, lastDealIndex int) error
	SetStopped(ctx context.Context, id primitive.ObjectID, stopped bool) error
	SetEnded(ctx context.Context, id primitive.ObjectID) error
	IncrementCollection(ctx context.Context, id primitive.ObjectID, amount float64) error
	HaltFlags(ctx context.Context, id primitive.ObjectID) (stopped, ended bool, err error)
	MarkRunningResumable(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

// SheetRepository defines the interface for sheet data operations
type SheetRepository interface {
	Create(ctx context.Context, sheet *models.Sheet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Sheet, error)
	FindByUID(ctx context.Context, uid string) (*models.Sheet, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Sheet, error)
	FindByUserAndGame(ctx context.Context, userID, gameID primitive.ObjectID) ([]*models.Sheet, error)
	FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Sheet, error)
	CountByGame(ctx context.Context, gameID primitive.ObjectID) (int64, error)
	CountByUserAndGame(ctx context.Context, userID, gameID primitive.ObjectID) (int64, error)
	Update(ctx context.Context, sheet *models.Sheet) error
}

// TicketRepository defines the interface for ticket data operations
type TicketRepository interface {
	CreateMany(ctx context.Context, tickets []*models.Ticket) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Ticket, error)
	FindBySheet(ctx context.Context, sheetID primitive.ObjectID) ([]*models.Ticket, error)
	FindBySheets(ctx context.Context, sheetIDs []primitive.ObjectID) ([]*models.Ticket, error)
}

// OfflineSheetRepository defines the interface for pre-generated house sheets
type OfflineSheetRepository interface {
	CreateMany(ctx context.Context, sheets []*models.OfflineSheet) error
	FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.OfflineSheet, error)
	CountByGame(ctx context.Context, gameID primitive.ObjectID) (int64, error)
}

// ClaimRepository defines the interface for claim data operations.
// Upsert is keyed on (game, type, ticket): the first write creates the row,
// later writes only touch the timestamp.
type ClaimRepository interface {
	Upsert(ctx context.Context, claim *models.Claim) error
	FindValidByGameAndType(ctx context.Context, gameID primitive.ObjectID, claimType models.ClaimType) (*models.Claim, error)
	FindValidByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.Claim, error)
	FindByGameAndTicket(ctx context.Context, gameID, ticketID primitive.ObjectID) ([]*models.Claim, error)
}

// ClaimPrizeRepository defines the interface for per-game prize amounts
type ClaimPrizeRepository interface {
	CreateMany(ctx context.Context, prizes []*models.ClaimPrize) error
	FindByGameAndType(ctx context.Context, gameID primitive.ObjectID, claimType models.ClaimType) (*models.ClaimPrize, error)
	FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.ClaimPrize, error)
	SoftDeleteByGame(ctx context.Context, gameID primitive.ObjectID) error
}

// WalletRepository defines the interface for wallet data operations.
// UpdateBalances performs a versioned write: it matches on the version the
// caller read and returns ErrConflict when the document moved underneath.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	FindByOwner(ctx context.Context, ownerType models.OwnerType, ownerID primitive.ObjectID) (*models.Wallet, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Wallet, error)
	UpdateBalances(ctx context.Context, id primitive.ObjectID, version int64, amount, referralAmount float64) error
}

// WalletTransactionRepository defines the interface for the append-only
// wallet ledger
type WalletTransactionRepository interface {
	Create(ctx context.Context, tx *models.WalletTransaction) error
	FindByWallet(ctx context.Context, walletID primitive.ObjectID, page, limit int) ([]*models.WalletTransaction, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.User, error)
}

// AdminRepository defines the interface for admin data operations
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	FindFirst(ctx context.Context) (*models.Admin, error)
}

// JoinGameRepository defines the interface for per-game participation rows
type JoinGameRepository interface {
	Create(ctx context.Context, join *models.JoinGame) error
	FindByGameAndUser(ctx context.Context, gameID, userID primitive.ObjectID) (*models.JoinGame, error)
	FindByGame(ctx context.Context, gameID primitive.ObjectID) ([]*models.JoinGame, error)
	Update(ctx context.Context, join *models.JoinGame) error
	AddWinAmount(ctx context.Context, gameID, userID primitive.ObjectID, amount float64) error
}
