package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tambola-games/tambola-backend/internal/repositories"
	"github.com/tambola-games/tambola-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameHandler serves the game lifecycle and read endpoints
type GameHandler struct {
	gameService  *services.GameService
	sheetService *services.SheetService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService *services.GameService, sheetService *services.SheetService) *GameHandler {
	return &GameHandler{
		gameService:  gameService,
		sheetService: sheetService,
	}
}

func objectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrStartTooEarly),
		errors.Is(err, services.ErrAnotherGameRunning),
		errors.Is(err, services.ErrGameNotToday),
		errors.Is(err, services.ErrGameAlreadyStarted),
		errors.Is(err, services.ErrGameEnded),
		errors.Is(err, services.ErrGameStartedEdit),
		errors.Is(err, services.ErrPurchaseClosed),
		errors.Is(err, services.ErrPurchaseLimit),
		errors.Is(err, services.ErrSoldOut),
		errors.Is(err, services.ErrZeroAmount),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// CreateGame handles POST /admin/games
func (h *GameHandler) CreateGame(c *gin.Context) {
	var params services.CreateGameParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	game, err := h.gameService.CreateGame(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// UpdateGame handles PATCH /admin/games/:id
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	var params services.UpdateGameParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	game, err := h.gameService.UpdateGame(c.Request.Context(), id, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetGames handles GET /games
func (h *GameHandler) GetGames(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 20)
	games, err := h.gameService.Games(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGame handles GET /games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	game, err := h.gameService.Game(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetActiveGame handles GET /games/active
func (h *GameHandler) GetActiveGame(c *gin.Context) {
	game, err := h.gameService.ActiveGame(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetPrizes handles GET /games/:id/prizes
func (h *GameHandler) GetPrizes(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	prizes, err := h.gameService.Prizes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prizes)
}

// GetLeaderboard handles GET /games/:id/leaderboard
func (h *GameHandler) GetLeaderboard(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	entries, err := h.gameService.Leaderboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetHallOfFame handles GET /games/:id/winners
func (h *GameHandler) GetHallOfFame(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	entries, err := h.gameService.HallOfFame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetTicketClaims handles GET /games/:id/tickets/:ticketId/claims
func (h *GameHandler) GetTicketClaims(c *gin.Context) {
	gameID, ok := objectID(c, "id")
	if !ok {
		return
	}
	ticketID, ok := objectID(c, "ticketId")
	if !ok {
		return
	}
	claims, err := h.gameService.TicketClaims(c.Request.Context(), gameID, ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, claims)
}

// StartGame handles POST /admin/games/:id/start
func (h *GameHandler) StartGame(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	game, err := h.gameService.StartGame(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// StopGame handles POST /admin/games/:id/stop
func (h *GameHandler) StopGame(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	if err := h.gameService.StopGame(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": true})
}

// EndGame handles POST /admin/games/:id/end
func (h *GameHandler) EndGame(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	if err := h.gameService.EndGame(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ended": true})
}

// DeleteGame handles DELETE /admin/games/:id
func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	if err := h.gameService.DeleteGame(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetHouseSheets handles GET /admin/games/:id/house-sheets
func (h *GameHandler) GetHouseSheets(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	sheets, err := h.sheetService.HouseSheets(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheets)
}
