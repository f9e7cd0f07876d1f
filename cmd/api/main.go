package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/tambola-games/tambola-backend/api/routes"
	"github.com/tambola-games/tambola-backend/internal/config"
	"github.com/tambola-games/tambola-backend/internal/gateway"
	"github.com/tambola-games/tambola-backend/internal/handlers"
	mongorepo "github.com/tambola-games/tambola-backend/internal/repositories/mongodb"
	"github.com/tambola-games/tambola-backend/internal/services"
	"github.com/tambola-games/tambola-backend/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.LogLevel)

	ctx := context.Background()
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()
	db := mongoClient.Database()

	gameRepo := mongorepo.NewGameRepository(db)
	sheetRepo := mongorepo.NewSheetRepository(db)
	ticketRepo := mongorepo.NewTicketRepository(db)
	offlineRepo := mongorepo.NewOfflineSheetRepository(db)
	claimRepo := mongorepo.NewClaimRepository(db)
	prizeRepo := mongorepo.NewClaimPrizeRepository(db)
	walletRepo := mongorepo.NewWalletRepository(db)
	walletTxRepo := mongorepo.NewWalletTransactionRepository(db)
	userRepo := mongorepo.NewUserRepository(db)
	adminRepo := mongorepo.NewAdminRepository(db)
	joinRepo := mongorepo.NewJoinGameRepository(db)
	txRunner := mongorepo.NewTxRunner(mongoClient.Mongo())

	walletService := services.NewWalletService(walletRepo, walletTxRepo, services.RetryPolicy{
		Attempts: cfg.Wallet.RetryAttempts,
		Backoff:  time.Duration(cfg.Wallet.RetryBackoffMS) * time.Millisecond,
	})
	userService := services.NewUserService(userRepo, adminRepo, walletService, txRunner, cfg.Wallet.ReferralBonus)
	sheetService := services.NewSheetService(gameRepo, sheetRepo, ticketRepo, offlineRepo, joinRepo, adminRepo, walletService, txRunner, cfg.Game.TicketsPerSheet, cfg.Game.HouseSheetCount)

	hub := gateway.NewHub()
	go hub.Run()

	var gw *gateway.Gateway
	dealer := services.NewDealer(gameRepo, publisherFunc(func() services.Publisher { return gw }))
	gameService := services.NewGameService(gameRepo, claimRepo, prizeRepo, ticketRepo, sheetRepo, joinRepo, userRepo, adminRepo, walletService, txRunner, dealer)
	gw = gateway.NewGateway(hub, gameService, sheetService)

	if _, err := userService.EnsureHouseAccount(ctx, cfg.Game.AdminEmail); err != nil {
		slog.Error("Failed to ensure house account", "error", err)
		os.Exit(1)
	}
	if err := gameService.ResumeGames(ctx); err != nil {
		slog.Error("Failed to resume games", "error", err)
	}
	go dailyCleanup(ctx, gameService)

	gameHandler := handlers.NewGameHandler(gameService, sheetService)
	sheetHandler := handlers.NewSheetHandler(sheetService)
	walletHandler := handlers.NewWalletHandler(walletService)
	userHandler := handlers.NewUserHandler(userService)

	router := routes.SetupRouter(cfg, gameHandler, sheetHandler, walletHandler, userHandler, gw)
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// flag running games resumable before the loops are torn down, so a
	// restart picks up dealing where it left off
	if err := gameService.PrepareShutdown(shutdownCtx); err != nil {
		slog.Error("Failed to prepare shutdown", "error", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server exited")
}

// publisherFunc defers publisher resolution so the dealer and gateway can
// reference each other without an init cycle.
type publisherFunc func() services.Publisher

func (f publisherFunc) NumberDealt(gameID primitive.ObjectID, number, lastDealIndex int) {
	f().NumberDealt(gameID, number, lastDealIndex)
}
func (f publisherFunc) Counter(gameID primitive.ObjectID, secondsLeft int) {
	f().Counter(gameID, secondsLeft)
}
func (f publisherFunc) GameStopped(gameID primitive.ObjectID) { f().GameStopped(gameID) }
func (f publisherFunc) GameEnded(gameID primitive.ObjectID)   { f().GameEnded(gameID) }

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func dailyCleanup(ctx context.Context, gameService *services.GameService) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := gameService.CleanupStale(ctx); err != nil {
				slog.Error("Stale game cleanup failed", "error", err)
			}
		}
	}
}
