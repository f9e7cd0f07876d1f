package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tambola-games/tambola-backend/internal/config"
	"github.com/tambola-games/tambola-backend/internal/gateway"
	"github.com/tambola-games/tambola-backend/internal/handlers"
	"github.com/tambola-games/tambola-backend/internal/middleware"
)

// SetupRouter wires the HTTP surface: public reads, purchase flow, the
// admin-guarded game lifecycle and the websocket endpoint.
func SetupRouter(
	cfg *config.Config,
	gameHandler *handlers.GameHandler,
	sheetHandler *handlers.SheetHandler,
	walletHandler *handlers.WalletHandler,
	userHandler *handlers.UserHandler,
	gw *gateway.Gateway,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ws", gw.HandleWS)

	v1 := router.Group("/api/v1")
	{
		games := v1.Group("/games")
		{
			games.GET("", gameHandler.GetGames)
			games.GET("/active", gameHandler.GetActiveGame)
			games.GET("/:id", gameHandler.GetGame)
			games.GET("/:id/prizes", gameHandler.GetPrizes)
			games.GET("/:id/leaderboard", gameHandler.GetLeaderboard)
			games.GET("/:id/winners", gameHandler.GetHallOfFame)
			games.GET("/:id/tickets/:ticketId/claims", gameHandler.GetTicketClaims)
			games.POST("/:id/sheets", sheetHandler.BuySheet)
		}

		users := v1.Group("/users")
		{
			users.POST("", userHandler.Register)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/sheets", sheetHandler.GetUserSheets)
			users.GET("/:id/wallet", walletHandler.GetWallet)
			users.POST("/:id/wallet/deposit", walletHandler.Deposit)
			users.POST("/:id/wallet/withdraw", walletHandler.Withdraw)
			users.GET("/:id/wallet/transactions", walletHandler.GetTransactions)
		}

		v1.GET("/sheets/:id/tickets", sheetHandler.GetSheetTickets)
		v1.GET("/tickets/:id", sheetHandler.GetTicket)

		admin := v1.Group("/admin")
		admin.Use(middleware.JWTAuthMiddleware(cfg), middleware.AdminOnly())
		{
			admin.POST("/games", gameHandler.CreateGame)
			admin.PATCH("/games/:id", gameHandler.UpdateGame)
			admin.POST("/games/:id/start", gameHandler.StartGame)
			admin.POST("/games/:id/stop", gameHandler.StopGame)
			admin.POST("/games/:id/end", gameHandler.EndGame)
			admin.DELETE("/games/:id", gameHandler.DeleteGame)
			admin.GET("/games/:id/house-sheets", gameHandler.GetHouseSheets)
		}
	}

	return router
}
