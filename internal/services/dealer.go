package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tambola-games/tambola-backend/internal/models"
	"github.com/tambola-games/tambola-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Publisher receives dealing-loop events for fanout to connected players.
type Publisher interface {
	NumberDealt(gameID primitive.ObjectID, number, lastDealIndex int)
	Counter(gameID primitive.ObjectID, secondsLeft int)
	GameStopped(gameID primitive.ObjectID)
	GameEnded(gameID primitive.ObjectID)
}

// ErrAlreadyDealing is returned when a game's loop is already running in
// this process.
var ErrAlreadyDealing = errors.New("game is already dealing")

// Dealer runs the per-game dealing loop: reveal the next undealt number,
// persist it together with the deal cursor, publish it, then count down the
// configured delay one second at a time, rechecking the stop flag on every
// tick. One goroutine per game, single flight per process.
type Dealer struct {
	gameRepo repositories.GameRepository
	pub      Publisher

	// tick is one countdown step; tests shrink it.
	tick time.Duration

	mu      sync.Mutex
	running map[primitive.ObjectID]context.CancelFunc
	wg      sync.WaitGroup

	// onEnd runs after a game deals its last number.
	onEnd func(ctx context.Context, gameID primitive.ObjectID)
}

// NewDealer creates a new Dealer
func NewDealer(gameRepo repositories.GameRepository, pub Publisher) *Dealer {
	return &Dealer{
		gameRepo: gameRepo,
		pub:      pub,
		tick:     time.Second,
		running:  make(map[primitive.ObjectID]context.CancelFunc),
	}
}

// SetOnEnd registers the completion hook; wired to GameService.EndGame.
func (d *Dealer) SetOnEnd(fn func(ctx context.Context, gameID primitive.ObjectID)) {
	d.onEnd = fn
}

// IsDealing reports whether this process is running the game's loop.
func (d *Dealer) IsDealing(gameID primitive.ObjectID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.running[gameID]
	return ok
}

// Start launches the dealing loop for a game. The loop picks up from the
// game's persisted deal cursor, so starting a resumed game never re-deals.
func (d *Dealer) Start(ctx context.Context, game *models.Game) error {
	d.mu.Lock()
	if _, ok := d.running[game.ID]; ok {
		d.mu.Unlock()
		return ErrAlreadyDealing
	}
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.running[game.ID] = cancel
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.release(game.ID)
		d.run(loopCtx, game)
	}()
	return nil
}

// Cancel tears down a game's loop without ending the game; used on shutdown
// after the game is flagged resumable.
func (d *Dealer) Cancel(gameID primitive.ObjectID) {
	d.mu.Lock()
	cancel, ok := d.running[gameID]
	d.mu.Unlock()
	if ok {
		cancel()
	}
}

// Shutdown cancels every loop and waits for the goroutines to drain.
func (d *Dealer) Shutdown() {
	d.mu.Lock()
	for _, cancel := range d.running {
		cancel()
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dealer) release(gameID primitive.ObjectID) {
	d.mu.Lock()
	if cancel, ok := d.running[gameID]; ok {
		cancel()
		delete(d.running, gameID)
	}
	d.mu.Unlock()
}

func (d *Dealer) run(ctx context.Context, game *models.Game) {
	order := game.DealOrder()
	dealt := make(map[int]bool, len(game.DealtNumbers))
	for _, n := range game.DealtNumbers {
		dealt[n] = true
	}
	delay := time.Duration(game.DealDelayMS) * time.Millisecond
	if delay <= 0 {
		delay = time.Second
	}

	slog.Info("Dealing loop started", "gameId", game.ID.Hex(), "lastDealIndex", game.LastDealIndex, "dealt", len(dealt))

	for idx := game.LastDealIndex; idx < len(order); idx++ {
		if ctx.Err() != nil {
			return
		}

		stopped, ended, err := d.gameRepo.HaltFlags(ctx, game.ID)
		if err != nil {
			slog.Error("Failed to read halt flags, halting loop", "gameId", game.ID.Hex(), "error", err)
			return
		}
		if ended {
			slog.Info("Dealing loop exiting, game ended", "gameId", game.ID.Hex(), "lastDealIndex", idx)
			return
		}
		if stopped {
			slog.Info("Dealing loop stopped", "gameId", game.ID.Hex(), "lastDealIndex", idx)
			d.pub.GameStopped(game.ID)
			return
		}

		number := order[idx]
		if dealt[number] {
			continue
		}

		if err := d.gameRepo.SetDealt(ctx, game.ID, number, idx+1); err != nil {
			slog.Error("Failed to persist dealt number, halting loop", "gameId", game.ID.Hex(), "number", number, "error", err)
			return
		}
		dealt[number] = true
		d.pub.NumberDealt(game.ID, number, idx+1)

		if idx == len(order)-1 {
			break
		}
		if !d.countdown(ctx, game.ID, delay) {
			return
		}
	}

	slog.Info("Dealing loop complete", "gameId", game.ID.Hex())
	d.pub.GameEnded(game.ID)
	if d.onEnd != nil {
		d.onEnd(ctx, game.ID)
	}
}

// countdown waits out the inter-deal delay in one-tick steps, publishing the
// seconds left and bailing out as soon as the game is stopped or the context
// dies. Returns false when the loop should exit.
func (d *Dealer) countdown(ctx context.Context, gameID primitive.ObjectID, delay time.Duration) bool {
	steps := int(delay / d.tick)
	if steps < 1 {
		steps = 1
	}
	for left := steps; left > 0; left-- {
		d.pub.Counter(gameID, left)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(d.tick):
		}

		stopped, ended, err := d.gameRepo.HaltFlags(ctx, gameID)
		if err != nil {
			slog.Error("Failed to read halt flags mid-countdown", "gameId", gameID.Hex(), "error", err)
			return false
		}
		if ended {
			slog.Info("Dealing loop exiting mid-countdown, game ended", "gameId", gameID.Hex())
			return false
		}
		if stopped {
			slog.Info("Dealing loop stopped mid-countdown", "gameId", gameID.Hex())
			d.pub.GameStopped(gameID)
			return false
		}
	}
	return true
}
