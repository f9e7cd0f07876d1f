package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/repositories"
	"github.com/tambola-games/tambola-backend/internal/tambola"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

var (
	// ErrPurchaseClosed rejects purchases after the purchase window or once
	// the game started.
	ErrPurchaseClosed = errors.New("purchases are closed for this game")

	// ErrPurchaseLimit rejects purchases beyond the per-user sheet cap.
	ErrPurchaseLimit = errors.New("sheet purchase limit reached")

	// ErrSoldOut rejects purchases once the game's sheet stock is gone.
	ErrSoldOut = errors.New("game is sold out")

	// ErrDuplicateSheet is returned when no unseen sheet could be produced
	// within the dedup budget.
	ErrDuplicateSheet = errors.New("could not generate an unseen sheet")
)

const maxDedupeAttempts = 10

// SheetService generates, deduplicates and sells sheets, and maintains the
// pre-generated house sheets that bias a game's deal order.
type SheetService struct {
	gameRepo    repositories.GameRepository
	sheetRepo   repositories.SheetRepository
	ticketRepo  repositories.TicketRepository
	offlineRepo repositories.OfflineSheetRepository
	joinRepo    repositories.JoinGameRepository
	adminRepo   repositories.AdminRepository
	walletSvc   *WalletService
	txRunner    repositories.TxRunner

	policy          tambola.HousePolicy
	ticketsPerSheet int
	houseSheetCount int
}

// NewSheetService creates a new SheetService
func NewSheetService(
	gameRepo repositories.GameRepository,
	sheetRepo repositories.SheetRepository,
	ticketRepo repositories.TicketRepository,
	offlineRepo repositories.OfflineSheetRepository,
	joinRepo repositories.JoinGameRepository,
	adminRepo repositories.AdminRepository,
	walletSvc *WalletService,
	txRunner repositories.TxRunner,
	ticketsPerSheet, houseSheetCount int,
) *SheetService {
	if ticketsPerSheet < 1 {
		ticketsPerSheet = tambola.SheetTickets
	}
	if houseSheetCount < 1 {
		houseSheetCount = 3
	}
	return &SheetService{
		gameRepo:        gameRepo,
		sheetRepo:       sheetRepo,
		ticketRepo:      ticketRepo,
		offlineRepo:     offlineRepo,
		joinRepo:        joinRepo,
		adminRepo:       adminRepo,
		walletSvc:       walletSvc,
		txRunner:        txRunner,
		policy:          tambola.DefaultHousePolicy(),
		ticketsPerSheet: ticketsPerSheet,
		houseSheetCount: houseSheetCount,
	}
}

// NewUniqueSheet generates a sheet whose fingerprint has never been sold.
// Fingerprint collisions are astronomically rare, so a small regeneration
// budget is plenty.
func (s *SheetService) NewUniqueSheet(ctx context.Context) (tambola.Sheet, string, error) {
	for attempt := 0; attempt < maxDedupeAttempts; attempt++ {
		sheet, err := tambola.GenerateTickets(s.ticketsPerSheet, nil)
		if err != nil {
			return nil, "", fmt.Errorf("failed to generate sheet: %w", err)
		}
		uid := tambola.Fingerprint(sheet)
		_, err = s.sheetRepo.FindByUID(ctx, uid)
		if errors.Is(err, repositories.ErrNotFound) {
			return sheet, uid, nil
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to check sheet fingerprint: %w", err)
		}
		slog.Warn("Generated a duplicate sheet, regenerating", "uid", uid, "attempt", attempt+1)
	}
	return nil, "", ErrDuplicateSheet
}

// BuySheet sells one freshly generated sheet to a user. The wallet debit,
// the sheet and ticket rows, the game's collection bump and the player's
// participation row land in one transaction.
func (s *SheetService) BuySheet(ctx context.Context, gameID, userID primitive.ObjectID) (*models.Sheet, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if err := s.checkPurchasable(ctx, game, userID); err != nil {
		return nil, err
	}

	generated, uid, err := s.NewUniqueSheet(ctx)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletSvc.Wallet(ctx, models.OwnerUser, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	admin, err := s.adminRepo.FindFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load house account: %w", err)
	}
	houseWallet, err := s.walletSvc.Wallet(ctx, models.OwnerAdmin, admin.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load house wallet: %w", err)
	}

	sheet := &models.Sheet{
		UID:    uid,
		GameID: gameID,
		UserID: userID,
		Price:  game.Price,
	}

	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		debitErr := s.walletSvc.SubtractBalance(txCtx, wallet.ID, game.Price, models.ContextTicketPurchase, gameID)
		if errors.Is(debitErr, ErrInsufficientBalance) {
			// fall back to referral winnings before refusing the sale
			debitErr = s.walletSvc.SubtractReferralBalance(txCtx, wallet.ID, game.Price, models.ContextTicketPurchase, gameID)
		}
		if debitErr != nil {
			return debitErr
		}
		if err := s.walletSvc.AddBalance(txCtx, houseWallet.ID, game.Price, models.ContextTicketPurchase, gameID); err != nil {
			return err
		}
		sheet.IsPaid = true
		if err := s.sheetRepo.Create(txCtx, sheet); err != nil {
			return fmt.Errorf("failed to create sheet: %w", err)
		}

		tickets := make([]*models.Ticket, len(generated))
		for i, t := range generated {
			tickets[i] = &models.Ticket{
				SheetID: sheet.ID,
				Matrix:  t,
			}
		}
		if err := s.ticketRepo.CreateMany(txCtx, tickets); err != nil {
			return fmt.Errorf("failed to create tickets: %w", err)
		}

		if err := s.gameRepo.IncrementCollection(txCtx, gameID, game.Price); err != nil {
			return fmt.Errorf("failed to update game collection: %w", err)
		}
		return s.ensureJoined(txCtx, gameID, userID, game.Price)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Sheet sold", "gameId", gameID.Hex(), "userId", userID.Hex(), "uid", uid)
	return sheet, nil
}

func (s *SheetService) checkPurchasable(ctx context.Context, game *models.Game, userID primitive.ObjectID) error {
	if !game.IsActive || game.IsStarted || game.IsEnded {
		return ErrPurchaseClosed
	}
	if !game.PurchaseStopsAt.IsZero() && time.Now().After(game.PurchaseStopsAt) {
		return ErrPurchaseClosed
	}
	if game.IsSoldOut {
		return ErrSoldOut
	}
	if game.PurchaseLimit > 0 {
		owned, err := s.sheetRepo.CountByUserAndGame(ctx, userID, game.ID)
		if err != nil {
			return fmt.Errorf("failed to count owned sheets: %w", err)
		}
		if owned >= int64(game.PurchaseLimit) {
			return ErrPurchaseLimit
		}
	}
	if len(game.PlayerLimit) == 2 && game.PlayerLimit[1] > 0 {
		sold, err := s.sheetRepo.CountByGame(ctx, game.ID)
		if err != nil {
			return fmt.Errorf("failed to count sold sheets: %w", err)
		}
		if sold >= int64(game.PlayerLimit[1]) {
			return ErrSoldOut
		}
	}
	return nil
}

func (s *SheetService) ensureJoined(ctx context.Context, gameID, userID primitive.ObjectID, amount float64) error {
	join, err := s.joinRepo.FindByGameAndUser(ctx, gameID, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return s.joinRepo.Create(ctx, &models.JoinGame{
			GameID:   gameID,
			UserID:   userID,
			Amount:   amount,
			Joined:   true,
			JoinedAt: time.Now(),
		})
	}
	if err != nil {
		return fmt.Errorf("failed to look up participation: %w", err)
	}
	join.Amount += amount
	return s.joinRepo.Update(ctx, join)
}

// HouseSheets returns a game's pre-generated house sheets, generating them on
// first call. Each sheet's first ticket is seeded from the early stretch of
// the deal order, minus the numbers earlier sheets in the batch already took,
// so the three sheets do not compete for the same early numbers. Each sheet
// then biases the deal order through its index's band before the order is
// persisted back onto the game. Repeat calls return the stored sheets
// untouched: the deal order is only ever altered once.
func (s *SheetService) HouseSheets(ctx context.Context, gameID primitive.ObjectID) ([]*models.OfflineSheet, error) {
	existing, err := s.offlineRepo.CountByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to count house sheets: %w", err)
	}
	if existing > 0 {
		return s.offlineRepo.FindByGame(ctx, gameID)
	}

	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if game.IsStarted {
		return nil, errors.New("house sheets must be generated before the game starts")
	}

	order := game.DealOrder()
	seedCut := s.policy.LateHi
	if seedCut > len(order) {
		seedCut = len(order)
	}
	early := order[:seedCut]
	taken := make(map[int]bool, tambola.TicketNumbers*s.houseSheetCount)

	sheets := make([]*models.OfflineSheet, 0, s.houseSheetCount)
	generated := make([]tambola.Sheet, 0, s.houseSheetCount)
	for idx := 0; idx < s.houseSheetCount; idx++ {
		include := make([]int, 0, len(early))
		for _, n := range early {
			if !taken[n] {
				include = append(include, n)
			}
		}
		sheet, err := tambola.GenerateTickets(tambola.SheetTickets, include)
		if err != nil {
			return nil, fmt.Errorf("failed to generate house sheet %d: %w", idx, err)
		}
		for _, n := range sheet[0].Numbers() {
			taken[n] = true
		}
		order = s.policy.AlterDealOrder(order, sheet[0], idx)
		generated = append(generated, sheet)
		sheets = append(sheets, &models.OfflineSheet{
			GameID:  gameID,
			Idx:     idx,
			Tickets: sheet.Matrices(),
		})
	}

	game.Numbers = models.JoinDealOrder(order)
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to persist biased deal order: %w", err)
	}
	for idx, sheet := range generated {
		if !s.policy.ValidHouseSheet(sheet, order) {
			slog.Warn("House sheet falls outside policy windows", "gameId", gameID.Hex(), "idx", idx)
		}
	}

	if err := s.offlineRepo.CreateMany(ctx, sheets); err != nil {
		return nil, fmt.Errorf("failed to store house sheets: %w", err)
	}
	slog.Info("House sheets generated", "gameId", gameID.Hex(), "count", len(sheets))
	return sheets, nil
}

// UserSheets returns every sheet a user holds
func (s *SheetService) UserSheets(ctx context.Context, userID primitive.ObjectID) ([]*models.Sheet, error) {
	return s.sheetRepo.FindByUser(ctx, userID)
}

// UserGameSheets returns a user's sheets for one game
func (s *SheetService) UserGameSheets(ctx context.Context, userID, gameID primitive.ObjectID) ([]*models.Sheet, error) {
	return s.sheetRepo.FindByUserAndGame(ctx, userID, gameID)
}

// UserGameTickets returns a user's sheets for one game together with every
// ticket on them, fetched in one batch.
func (s *SheetService) UserGameTickets(ctx context.Context, userID, gameID primitive.ObjectID) ([]*models.Sheet, []*models.Ticket, error) {
	sheets, err := s.sheetRepo.FindByUserAndGame(ctx, userID, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load sheets: %w", err)
	}
	if len(sheets) == 0 {
		return sheets, nil, nil
	}
	ids := make([]primitive.ObjectID, len(sheets))
	for i, sh := range sheets {
		ids[i] = sh.ID
	}
	tickets, err := s.ticketRepo.FindBySheets(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	return sheets, tickets, nil
}

// SheetTickets returns a sheet's tickets
func (s *SheetService) SheetTickets(ctx context.Context, sheetID primitive.ObjectID) ([]*models.Ticket, error) {
	return s.ticketRepo.FindBySheet(ctx, sheetID)
}

// Ticket returns one ticket
func (s *SheetService) Ticket(ctx context.Context, ticketID primitive.ObjectID) (*models.Ticket, error) {
	return s.ticketRepo.FindByID(ctx, ticketID)
}
