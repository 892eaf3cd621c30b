package handler

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ventas/backend/internal/infrastructure/auth"
	"github.com/ventas/backend/internal/infrastructure/config"
)

// AuthHandler handles the login endpoint. Credentials are checked against
// the configured admin account; there is no user table in this service.
type AuthHandler struct {
	BaseHandler
	jwtService *auth.JWTService
	authConfig config.AuthConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(jwtService *auth.JWTService, authConfig config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		jwtService: jwtService,
		authConfig: authConfig,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1,max=200"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Username    string    `json:"username"`
}

// Login validates the configured admin credentials and issues a token.
// An empty configured password disables the endpoint entirely.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if h.authConfig.AdminPassword == "" || !credentialsMatch(req, h.authConfig) {
		h.Unauthorized(c, "Invalid username or password")
		return
	}

	// Derive a stable user ID from the username so audit fields stay
	// consistent across logins.
	userID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(req.Username))

	token, err := h.jwtService.GenerateToken(userID, req.Username)
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}

	h.Success(c, LoginResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Username:    req.Username,
	})
}

func credentialsMatch(req LoginRequest, cfg config.AuthConfig) bool {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.AdminPassword)) == 1
	return userOK && passOK
}
