package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/domain/errors"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/dto"
	"github.com/Gurusaiprasadreddy/Canteen-Management-System-Campus-Bites/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	token, err := h.facade.RegisterStudent(c.Request.Context(), req.RollNumber, req.Name, req.Password)
	if err != nil {
		// Registration with missing credentials is a client error, not a failed login.
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			badRequest(c, err.Error())
			return
		}
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	token, err := h.facade.Login(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.AuthResponse{Token: token})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.facade.Me(c.Request.Context(), CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserResponse{
		UserID:    user.UserID,
		Login:     user.Login,
		Name:      user.Name,
		Role:      string(user.Role),
		CanteenID: user.CanteenID,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out"})
}
