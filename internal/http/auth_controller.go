package http

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/reader/internal/auth"
	"github.com/mrlokans/reader/internal/entities"
)

type AuthController struct {
	service  *auth.Service
	sessions *scs.SessionManager
}

func NewAuthController(service *auth.Service, sessions *scs.SessionManager) *AuthController {
	return &AuthController{service: service, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type setupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse identifies the session user towards the client.
type UserResponse struct {
	UserID      uint   `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Setup creates the first account. It closes once any user exists.
func (a *AuthController) Setup(c *gin.Context) {
	has, err := a.service.HasUsers()
	if err != nil {
		respondInternalError(c, err, "checking users")
		return
	}
	if has {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "setup already completed"})
		return
	}

	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := a.service.CreateUser(req.Username, req.Email, req.Password, entities.UserRoleAdmin)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		UserID:      user.ID,
		DisplayName: displayName(user.Email),
	})
}

func (a *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	user, err := a.service.Authenticate(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrAccountLocked):
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
		default:
			respondInternalError(c, err, "authenticating")
		}
		return
	}

	ctx := c.Request.Context()
	// Fresh token on privilege change.
	if err := a.sessions.RenewToken(ctx); err != nil {
		respondInternalError(c, err, "renewing session")
		return
	}
	a.sessions.Put(ctx, auth.SessionKeyUserID, int(user.ID))
	a.sessions.Put(ctx, auth.SessionKeyEmail, user.Email)

	c.JSON(http.StatusOK, UserResponse{
		UserID:      user.ID,
		DisplayName: displayName(user.Email),
	})
}

func (a *AuthController) Logout(c *gin.Context) {
	if err := a.sessions.Destroy(c.Request.Context()); err != nil {
		respondInternalError(c, err, "destroying session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the current session user. Without a known email the
// display name falls back to the placeholder.
func (a *AuthController) Me(c *gin.Context) {
	userID := GetUserID(c)

	name := MissingNamePlaceholder
	if email, ok := auth.GetEmail(c); ok {
		name = displayName(email)
	}

	c.JSON(http.StatusOK, UserResponse{UserID: userID, DisplayName: name})
}
