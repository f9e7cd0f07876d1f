package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tambola-games/tambola-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// SheetHandler serves sheet purchase and lookup endpoints
type SheetHandler struct {
	sheetService *services.SheetService
}

// NewSheetHandler creates a new SheetHandler
func NewSheetHandler(sheetService *services.SheetService) *SheetHandler {
	return &SheetHandler{sheetService: sheetService}
}

type buySheetRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// BuySheet handles POST /games/:id/sheets
func (h *SheetHandler) BuySheet(c *gin.Context) {
	gameID, ok := objectID(c, "id")
	if !ok {
		return
	}
	var req buySheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	sheet, err := h.sheetService.BuySheet(c.Request.Context(), gameID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sheet)
}

// GetUserSheets handles GET /users/:id/sheets
func (h *SheetHandler) GetUserSheets(c *gin.Context) {
	userID, ok := objectID(c, "id")
	if !ok {
		return
	}
	if gameParam := c.Query("gameId"); gameParam != "" {
		gameID, err := primitive.ObjectIDFromHex(gameParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
			return
		}
		sheets, err := h.sheetService.UserGameSheets(c.Request.Context(), userID, gameID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, sheets)
		return
	}
	sheets, err := h.sheetService.UserSheets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheets)
}

// GetSheetTickets handles GET /sheets/:id/tickets
func (h *SheetHandler) GetSheetTickets(c *gin.Context) {
	sheetID, ok := objectID(c, "id")
	if !ok {
		return
	}
	tickets, err := h.sheetService.SheetTickets(c.Request.Context(), sheetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// GetTicket handles GET /tickets/:id
func (h *SheetHandler) GetTicket(c *gin.Context) {
	ticketID, ok := objectID(c, "id")
	if !ok {
		return
	}
	ticket, err := h.sheetService.Ticket(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
