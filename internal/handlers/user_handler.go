package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tambola-games/tambola-backend/internal/services"
)

// UserHandler serves account creation and lookup
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type registerRequest struct {
	FullName   string `json:"fullname" binding:"required"`
	Email      string `json:"email"`
	ReferrerID string `json:"referrerId"`
}

// Register handles POST /users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	referrer := primitive.NilObjectID
	if req.ReferrerID != "" {
		var err error
		if referrer, err = primitive.ObjectIDFromHex(req.ReferrerID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referrer id"})
			return
		}
	}
	user, err := h.userService.Register(c.Request.Context(), req.FullName, req.Email, referrer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := objectID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.User(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
