package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/viaensino/via_ensino_app/internal/core/ports/services"
	"github.com/viaensino/via_ensino_app/internal/dto"
	"github.com/viaensino/via_ensino_app/internal/middleware"
	"github.com/viaensino/via_ensino_app/pkg/config"
)

// authHandler handles registration, password login and Google sign-in.
type authHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	googleService portssvc.GoogleOAuthSvcFacade
}

func newAuthHandler(services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{
		userService:   services.User,
		tokenService:  services.Token,
		googleService: services.GoogleOAuth,
	}
}

// registerAuthRoutes registers the public authentication routes, rate limited
// by client IP.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := newAuthHandler(services)

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		// Misconfigured limit; fall back to a sane default rather than crash.
		rate = limiter.Rate{Period: time.Minute, Limit: 100}
	}
	limiterInstance := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/auth", middleware.RateLimit(limiterInstance))
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.GET("/google", h.googleRedirect)
		auth.GET("/google/callback", h.googleCallback)
	}
}

// register godoc
// @Summary Register a new user
// @Description Creates a user account with email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary Log in with email and password
// @Description Verifies credentials and issues an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, logger, err, "Failed to authenticate")
		return
	}

	token, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	})
}

// googleRedirect godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to Google's consent screen.
// @Tags auth
// @Success 307 "Redirect to Google"
// @Router /auth/google [get]
func (h *authHandler) googleRedirect(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		state = "state"
	}
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.AuthCodeURL(state))
}

// googleCallback godoc
// @Summary Google sign-in callback
// @Description Exchanges the authorization code, resolves the local user and issues an access token.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Missing code"
// @Failure 401 {object} map[string]string "Exchange failed"
// @Router /auth/google/callback [get]
func (h *authHandler) googleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	info, err := h.googleService.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logger.Warn("Google code exchange failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	user, err := h.userService.FindOrCreateByEmail(c.Request.Context(), info.Email, info.Name)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve user")
		return
	}

	token, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, logger, err, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		User:        dto.ToUserResponse(user),
	})
}
