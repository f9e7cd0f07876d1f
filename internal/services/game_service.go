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
	// ErrStartTooEarly rejects starting a game before its scheduled time.
	ErrStartTooEarly = errors.New("game can not start early")

	// ErrAnotherGameRunning rejects starting a second concurrent game.
	ErrAnotherGameRunning = errors.New("can not run two games at a time")

	// ErrGameNotToday rejects starting a game outside its scheduled day.
	ErrGameNotToday = errors.New("game is not scheduled for today")

	// ErrGameAlreadyStarted rejects re-starting a game that is dealing.
	ErrGameAlreadyStarted = errors.New("game already started")

	// ErrGameEnded rejects lifecycle commands against a finished game.
	ErrGameEnded = errors.New("game already ended")

	// ErrGameStartedEdit rejects modifying or deleting a started game.
	ErrGameStartedEdit = errors.New("game already started and can not be changed")
)

// Claim verdict messages. Rejections are results the player sees, not
// errors; infrastructure failures surface separately as errors.
const (
	MsgClaimSuccess   = "Success"
	MsgGameNotFound   = "Game not found"
	MsgNotEnoughDealt = "Not enough number dealt yet"
	MsgTicketNotFound = "No ticket found"
	MsgAlreadyClaimed = "This is already claimed by someone else!!"
	MsgInvalidClaim   = "Invalid claim"
	MsgInvalidPayload = "Invalid data"
)

// minDealtForClaim is the fewest dealt numbers any claim needs.
const minDealtForClaim = 5

// purchaseCutoff is how long before the scheduled start purchases close.
const purchaseCutoff = 45 * time.Second

// defaultDealDelayMS is the inter-number delay when a game sets none.
const defaultDealDelayMS = 45000

// ClaimResult is the structured verdict of a claim submission.
type ClaimResult struct {
	Message string        `json:"message"`
	Claim   *models.Claim `json:"claim,omitempty"`
}

// Won reports whether the claim was accepted.
func (r *ClaimResult) Won() bool { return r.Claim != nil }

// LeaderboardEntry is one row of a game's standings.
type LeaderboardEntry struct {
	UserID    primitive.ObjectID `json:"userId"`
	FullName  string             `json:"fullname"`
	Spent     float64            `json:"spent"`
	WinAmount float64            `json:"winAmount"`
}

// HallOfFameEntry pairs a claim type's prize with its winning ticket; the
// ticket fields stay zero while the type is unclaimed.
type HallOfFameEntry struct {
	Type      models.ClaimType   `json:"type"`
	Amount    float64            `json:"amount"`
	TicketID  primitive.ObjectID `json:"ticketId,omitempty"`
	ClaimedOn time.Time          `json:"claimedOn,omitempty"`
}

// CreateGameParams carries the admin's game setup.
type CreateGameParams struct {
	StartDate     time.Time                    `json:"startDate"`
	Price         float64                      `json:"price"`
	PoolPrize     float64                      `json:"poolPrize"`
	PurchaseLimit int                          `json:"purchaseLimit"`
	PlayerLimit   []int                        `json:"playerLimit"`
	DealDelayMS   int                          `json:"dealDelayMs"`
	Prizes        map[models.ClaimType]float64 `json:"prizes"`
}

// GameService owns the game lifecycle: creation with a fixed shuffled deal
// order and prize table, the start/stop/resume/end transitions, claim
// adjudication with prize payout, and the recovery sweeps.
type GameService struct {
	gameRepo   repositories.GameRepository
	claimRepo  repositories.ClaimRepository
	prizeRepo  repositories.ClaimPrizeRepository
	ticketRepo repositories.TicketRepository
	sheetRepo  repositories.SheetRepository
	joinRepo   repositories.JoinGameRepository
	userRepo   repositories.UserRepository
	adminRepo  repositories.AdminRepository
	walletSvc  *WalletService
	txRunner   repositories.TxRunner
	dealer     *Dealer
}

// NewGameService creates a new GameService and wires itself as the dealer's
// completion hook.
func NewGameService(
	gameRepo repositories.GameRepository,
	claimRepo repositories.ClaimRepository,
	prizeRepo repositories.ClaimPrizeRepository,
	ticketRepo repositories.TicketRepository,
	sheetRepo repositories.SheetRepository,
	joinRepo repositories.JoinGameRepository,
	userRepo repositories.UserRepository,
	adminRepo repositories.AdminRepository,
	walletSvc *WalletService,
	txRunner repositories.TxRunner,
	dealer *Dealer,
) *GameService {
	s := &GameService{
		gameRepo:   gameRepo,
		claimRepo:  claimRepo,
		prizeRepo:  prizeRepo,
		ticketRepo: ticketRepo,
		sheetRepo:  sheetRepo,
		joinRepo:   joinRepo,
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		walletSvc:  walletSvc,
		txRunner:   txRunner,
		dealer:     dealer,
	}
	dealer.SetOnEnd(func(ctx context.Context, gameID primitive.ObjectID) {
		if err := s.EndGame(ctx, gameID); err != nil {
			slog.Error("Failed to end game after final deal", "gameId", gameID.Hex(), "error", err)
		}
	})
	return s
}

// defaultPrizeSplit divides the pool across the nine claim types.
func defaultPrizeSplit(pool float64) map[models.ClaimType]float64 {
	return map[models.ClaimType]float64{
		models.ClaimHouse:   pool * 0.25,
		models.ClaimHouse1:  pool * 0.15,
		models.ClaimHouse2:  pool * 0.10,
		models.ClaimTop:     pool * 0.10,
		models.ClaimMiddle:  pool * 0.10,
		models.ClaimBottom:  pool * 0.10,
		models.ClaimCorners: pool * 0.08,
		models.ClaimEarly7:  pool * 0.06,
		models.ClaimEarly10: pool * 0.06,
	}
}

// CreateGame schedules a game: shuffles its permanent deal order, closes
// purchases shortly before the start and persists the prize table.
func (s *GameService) CreateGame(ctx context.Context, params CreateGameParams) (*models.Game, error) {
	if params.StartDate.Before(time.Now()) {
		return nil, errors.New("start date must be in the future")
	}
	if params.Price < 0 || params.PoolPrize < 0 {
		return nil, errors.New("price and pool prize must not be negative")
	}
	if params.DealDelayMS <= 0 {
		params.DealDelayMS = defaultDealDelayMS
	}

	game := &models.Game{
		StartDate:       params.StartDate,
		PurchaseStopsAt: params.StartDate.Add(-purchaseCutoff),
		Numbers:         models.JoinDealOrder(tambola.NewDealOrder()),
		DealtNumbers:    []int{},
		PoolPrize:       params.PoolPrize,
		Price:           params.Price,
		PurchaseLimit:   params.PurchaseLimit,
		PlayerLimit:     params.PlayerLimit,
		DealDelayMS:     params.DealDelayMS,
		IsActive:        true,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	split := params.Prizes
	if len(split) == 0 {
		split = defaultPrizeSplit(params.PoolPrize)
	}
	prizes := make([]*models.ClaimPrize, 0, len(split))
	for _, claimType := range models.AllClaimTypes() {
		amount, ok := split[claimType]
		if !ok {
			continue
		}
		prizes = append(prizes, &models.ClaimPrize{
			GameID: game.ID,
			Type:   claimType,
			Amount: amount,
		})
	}
	if err := s.prizeRepo.CreateMany(ctx, prizes); err != nil {
		return nil, fmt.Errorf("failed to create prize table: %w", err)
	}

	slog.Info("Game created", "gameId", game.ID.Hex(), "startDate", game.StartDate, "poolPrize", game.PoolPrize)
	return game, nil
}

// UpdateGameParams carries the editable game fields.
type UpdateGameParams struct {
	StartDate     *time.Time `json:"startDate,omitempty"`
	Price         *float64   `json:"price,omitempty"`
	PurchaseLimit *int       `json:"purchaseLimit,omitempty"`
	PlayerLimit   []int      `json:"playerLimit,omitempty"`
	DealDelayMS   *int       `json:"dealDelayMs,omitempty"`
	IsActive      *bool      `json:"isActive,omitempty"`
}

// UpdateGame edits a scheduled game. Once a game has started its schedule and
// active flag are frozen; only the deal delay may still change.
func (s *GameService) UpdateGame(ctx context.Context, gameID primitive.ObjectID, params UpdateGameParams) (*models.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if game.IsStarted || game.IsEnded {
		if params.StartDate != nil || params.IsActive != nil || params.Price != nil {
			return nil, ErrGameStartedEdit
		}
	}
	if params.StartDate != nil {
		if params.StartDate.Before(time.Now()) {
			return nil, errors.New("start date must be in the future")
		}
		game.StartDate = *params.StartDate
		game.PurchaseStopsAt = params.StartDate.Add(-purchaseCutoff)
	}
	if params.Price != nil {
		game.Price = *params.Price
	}
	if params.PurchaseLimit != nil {
		game.PurchaseLimit = *params.PurchaseLimit
	}
	if params.PlayerLimit != nil {
		game.PlayerLimit = params.PlayerLimit
	}
	if params.DealDelayMS != nil && *params.DealDelayMS > 0 {
		game.DealDelayMS = *params.DealDelayMS
	}
	if params.IsActive != nil {
		game.IsActive = *params.IsActive
	}
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}
	slog.Info("Game updated", "gameId", gameID.Hex())
	return game, nil
}

// Game returns one game
func (s *GameService) Game(ctx context.Context, id primitive.ObjectID) (*models.Game, error) {
	return s.gameRepo.FindByID(ctx, id)
}

// Games pages through games, newest first
func (s *GameService) Games(ctx context.Context, page, limit int) ([]*models.Game, error) {
	return s.gameRepo.FindAll(ctx, page, limit)
}

// ActiveGame returns today's active game, if one is scheduled.
func (s *GameService) ActiveGame(ctx context.Context) (*models.Game, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.gameRepo.FindActiveInWindow(ctx, start, start.AddDate(0, 0, 1))
}

// Prizes returns a game's prize table
func (s *GameService) Prizes(ctx context.Context, gameID primitive.ObjectID) ([]*models.ClaimPrize, error) {
	return s.prizeRepo.FindByGame(ctx, gameID)
}

// StartGame begins or resumes dealing. A fresh start is guarded: not before
// the scheduled time, only on the scheduled day, and never while another
// game runs. A stopped game re-enters the loop with its dealt numbers
// intact and skips the fresh-start guards.
func (s *GameService) StartGame(ctx context.Context, gameID primitive.ObjectID) (*models.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if game.IsEnded {
		return nil, ErrGameEnded
	}

	if game.IsStarted {
		// resume path
		if !game.IsStopped && s.dealer.IsDealing(game.ID) {
			return nil, ErrGameAlreadyStarted
		}
		if err := s.gameRepo.SetStopped(ctx, game.ID, false); err != nil {
			return nil, fmt.Errorf("failed to clear stop flag: %w", err)
		}
		game.IsStopped = false
		if err := s.dealer.Start(ctx, game); err != nil {
			return nil, err
		}
		slog.Info("Game resumed", "gameId", game.ID.Hex(), "lastDealIndex", game.LastDealIndex)
		return game, nil
	}

	now := time.Now()
	if now.Before(game.StartDate) {
		return nil, ErrStartTooEarly
	}
	dayStart := time.Date(game.StartDate.Year(), game.StartDate.Month(), game.StartDate.Day(), 0, 0, 0, 0, game.StartDate.Location())
	if now.Before(dayStart) || !now.Before(dayStart.AddDate(0, 0, 1)) {
		return nil, ErrGameNotToday
	}
	running, err := s.gameRepo.FindRunning(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check running games: %w", err)
	}
	for _, other := range running {
		if other.ID != game.ID {
			return nil, ErrAnotherGameRunning
		}
	}

	game.IsStarted = true
	game.IsStopped = false
	game.StartedAt = now
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to mark game started: %w", err)
	}
	if err := s.dealer.Start(ctx, game); err != nil {
		return nil, err
	}
	slog.Info("Game started", "gameId", game.ID.Hex())
	return game, nil
}

// StopGame raises the stop flag; the dealing loop observes it within a tick.
// Stopping an already-stopped game is a no-op.
func (s *GameService) StopGame(ctx context.Context, gameID primitive.ObjectID) error {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	if game.IsEnded || !game.IsStarted {
		return ErrGameEnded
	}
	if game.IsStopped {
		return nil
	}
	if err := s.gameRepo.SetStopped(ctx, gameID, true); err != nil {
		return fmt.Errorf("failed to set stop flag: %w", err)
	}
	slog.Info("Game stop requested", "gameId", gameID.Hex())
	return nil
}

// EndGame finishes a game: ended, no longer started or active, flipped with
// a targeted field write so a concurrently dealing loop can not be clobbered.
// The loop observes the end flag within a tick; cancelling it as well tears
// it down without waiting for the next poll.
func (s *GameService) EndGame(ctx context.Context, gameID primitive.ObjectID) error {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	if game.IsEnded {
		return nil
	}
	if err := s.gameRepo.SetEnded(ctx, gameID); err != nil {
		return fmt.Errorf("failed to mark game ended: %w", err)
	}
	s.dealer.Cancel(gameID)
	slog.Info("Game ended", "gameId", gameID.Hex())
	return nil
}

// DeleteGame soft-deletes a game that has not started.
func (s *GameService) DeleteGame(ctx context.Context, gameID primitive.ObjectID) error {
	game, err := s.gameRepo.FindByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to load game: %w", err)
	}
	if game.IsStarted && !game.IsEnded {
		return ErrGameStartedEdit
	}
	if err := s.gameRepo.SoftDelete(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return s.prizeRepo.SoftDeleteByGame(ctx, gameID)
}

// ResumeGames relaunches the dealing loop for every game flagged resumable;
// called once at process bootstrap.
func (s *GameService) ResumeGames(ctx context.Context) error {
	games, err := s.gameRepo.FindResumable(ctx)
	if err != nil {
		return fmt.Errorf("failed to list resumable games: %w", err)
	}
	for _, game := range games {
		game.Resumable = false
		game.Resumed = true
		if err := s.gameRepo.Update(ctx, game); err != nil {
			slog.Error("Failed to clear resumable flag", "gameId", game.ID.Hex(), "error", err)
			continue
		}
		if err := s.gameRepo.SetStopped(ctx, game.ID, false); err != nil {
			slog.Error("Failed to clear stop flag on resume", "gameId", game.ID.Hex(), "error", err)
			continue
		}
		if err := s.dealer.Start(ctx, game); err != nil {
			slog.Error("Failed to resume dealing loop", "gameId", game.ID.Hex(), "error", err)
			continue
		}
		slog.Info("Game resumed after restart", "gameId", game.ID.Hex(), "lastDealIndex", game.LastDealIndex)
	}
	return nil
}

// PrepareShutdown flags the running games resumable and drains the dealing
// loops; called on graceful shutdown before the process exits.
func (s *GameService) PrepareShutdown(ctx context.Context) error {
	count, err := s.gameRepo.MarkRunningResumable(ctx)
	if err != nil {
		return fmt.Errorf("failed to flag games resumable: %w", err)
	}
	if count > 0 {
		slog.Info("Flagged running games resumable", "count", count)
	}
	s.dealer.Shutdown()
	return nil
}

// CleanupStale soft-deletes unfinished games scheduled before today; run by
// the daily sweep.
func (s *GameService) CleanupStale(ctx context.Context) (int, error) {
	now := time.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	games, err := s.gameRepo.FindStaleBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale games: %w", err)
	}
	cleaned := 0
	for _, game := range games {
		if err := s.gameRepo.SoftDelete(ctx, game.ID); err != nil {
			slog.Error("Failed to delete stale game", "gameId", game.ID.Hex(), "error", err)
			continue
		}
		if err := s.prizeRepo.SoftDeleteByGame(ctx, game.ID); err != nil {
			slog.Error("Failed to retire stale prize table", "gameId", game.ID.Hex(), "error", err)
		}
		cleaned++
	}
	if cleaned > 0 {
		slog.Info("Stale games cleaned", "count", cleaned)
	}
	return cleaned, nil
}

// VerifyClaim adjudicates a claim submission. Rejections come back as a
// ClaimResult message with a nil Claim and nothing persisted; a win records
// the claim and pays the prize from the house wallet to the player inside
// one transaction. A repeated submission of the winning ticket only touches
// the claim's timestamp.
func (s *GameService) VerifyClaim(ctx context.Context, userID, ticketID, gameID primitive.ObjectID, claimType models.ClaimType, numbers []int) (*ClaimResult, error) {
	if !models.IsValidClaimType(claimType) || len(numbers) == 0 {
		return &ClaimResult{Message: MsgInvalidPayload}, nil
	}

	game, err := s.gameRepo.FindByID(ctx, gameID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &ClaimResult{Message: MsgGameNotFound}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if len(game.DealtNumbers) < minDealtForClaim {
		return &ClaimResult{Message: MsgNotEnoughDealt}, nil
	}

	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &ClaimResult{Message: MsgTicketNotFound}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load ticket: %w", err)
	}
	sheet, err := s.sheetRepo.FindByID(ctx, ticket.SheetID)
	if err != nil || sheet.GameID != gameID || !sheet.IsPaid || sheet.UserID != userID {
		return &ClaimResult{Message: MsgTicketNotFound}, nil
	}

	existing, err := s.claimRepo.FindValidByGameAndType(ctx, gameID, claimType)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing claim: %w", err)
	}
	if existing != nil {
		if existing.TicketID == ticketID {
			// the winner resubmitted; touch the timestamp only
			if err := s.claimRepo.Upsert(ctx, existing); err != nil {
				return nil, fmt.Errorf("failed to touch claim: %w", err)
			}
		}
		return &ClaimResult{Message: MsgAlreadyClaimed}, nil
	}

	if !tambola.ValidateClaim(claimType, numbers, tambola.Ticket(ticket.Matrix), game.DealtNumbers) {
		return &ClaimResult{Message: MsgInvalidClaim}, nil
	}

	claim := &models.Claim{
		Type:     claimType,
		TicketID: ticketID,
		GameID:   gameID,
		Numbers:  numbers,
		IsValid:  true,
	}
	err = s.txRunner.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.claimRepo.Upsert(txCtx, claim); err != nil {
			return fmt.Errorf("failed to record claim: %w", err)
		}
		return s.payPrize(txCtx, sheet.UserID, gameID, claimType)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Claim verified", "gameId", gameID.Hex(), "type", claimType, "ticketId", ticketID.Hex(), "userId", userID.Hex())
	return &ClaimResult{Message: MsgClaimSuccess, Claim: claim}, nil
}

// payPrize moves the claim type's prize from the house wallet to the winner
// and accumulates it onto the participation row. A missing prize table entry
// means the type pays nothing.
func (s *GameService) payPrize(ctx context.Context, winnerID, gameID primitive.ObjectID, claimType models.ClaimType) error {
	prize, err := s.prizeRepo.FindByGameAndType(ctx, gameID, claimType)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load prize: %w", err)
	}
	if prize.Amount <= 0 {
		return nil
	}

	admin, err := s.adminRepo.FindFirst(ctx)
	if err != nil {
		return fmt.Errorf("failed to load house account: %w", err)
	}
	houseWallet, err := s.walletSvc.Wallet(ctx, models.OwnerAdmin, admin.ID)
	if err != nil {
		return fmt.Errorf("failed to load house wallet: %w", err)
	}
	userWallet, err := s.walletSvc.Wallet(ctx, models.OwnerUser, winnerID)
	if err != nil {
		return fmt.Errorf("failed to load winner wallet: %w", err)
	}

	if err := s.walletSvc.SubtractBalance(ctx, houseWallet.ID, prize.Amount, models.ContextPrize, gameID); err != nil {
		return fmt.Errorf("failed to debit house wallet: %w", err)
	}
	if err := s.walletSvc.AddBalance(ctx, userWallet.ID, prize.Amount, models.ContextPrize, gameID); err != nil {
		return fmt.Errorf("failed to credit winner wallet: %w", err)
	}
	if err := s.joinRepo.AddWinAmount(ctx, gameID, winnerID, prize.Amount); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to record winnings: %w", err)
	}
	return nil
}

// HallOfFame returns the prize table joined with the winning claims, in the
// claim types' canonical order.
func (s *GameService) HallOfFame(ctx context.Context, gameID primitive.ObjectID) ([]HallOfFameEntry, error) {
	prizes, err := s.prizeRepo.FindByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prize table: %w", err)
	}
	claims, err := s.claimRepo.FindValidByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load claims: %w", err)
	}
	amounts := make(map[models.ClaimType]float64, len(prizes))
	for _, p := range prizes {
		amounts[p.Type] = p.Amount
	}
	won := make(map[models.ClaimType]*models.Claim, len(claims))
	for _, c := range claims {
		won[c.Type] = c
	}

	entries := make([]HallOfFameEntry, 0, len(prizes))
	for _, claimType := range models.AllClaimTypes() {
		amount, ok := amounts[claimType]
		if !ok {
			continue
		}
		entry := HallOfFameEntry{Type: claimType, Amount: amount}
		if claim, ok := won[claimType]; ok {
			entry.TicketID = claim.TicketID
			entry.ClaimedOn = claim.ClaimedOn
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// TicketClaims returns every claim a ticket recorded in a game.
func (s *GameService) TicketClaims(ctx context.Context, gameID, ticketID primitive.ObjectID) ([]*models.Claim, error) {
	return s.claimRepo.FindByGameAndTicket(ctx, gameID, ticketID)
}

// Leaderboard returns a game's standings, biggest winner first.
func (s *GameService) Leaderboard(ctx context.Context, gameID primitive.ObjectID) ([]LeaderboardEntry, error) {
	joins, err := s.joinRepo.FindByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	ids := make([]primitive.ObjectID, 0, len(joins))
	for _, j := range joins {
		ids = append(ids, j.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	names := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	entries := make([]LeaderboardEntry, 0, len(joins))
	for _, j := range joins {
		entries = append(entries, LeaderboardEntry{
			UserID:    j.UserID,
			FullName:  names[j.UserID],
			Spent:     j.Amount,
			WinAmount: j.WinAmount,
		})
	}
	return entries, nil
}
