// Package httpapi exposes the authcore engine over HTTP with gin. It owns
// the route table, the JSON request/response shapes, the error-to-status
// mapping and the jwt cookie carriage. No auth decision is made here; the
// engine's sentinel errors drive every status code.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nvasilev/authcore"
)

// CookieName is the session cookie carrying the access token.
const CookieName = "jwt"

// Config holds the transport-level settings.
type Config struct {
	// AllowedOrigins is the CORS allow list. Empty disables the CORS
	// layer entirely.
	AllowedOrigins []string

	// SecureCookies marks the jwt cookie Secure. Off for local
	// development over plain HTTP.
	SecureCookies bool
}

// Server wires the engine's operations to gin handlers.
type Server struct {
	engine *authcore.Engine
	config Config
	log    *slog.Logger
}

// NewServer creates the handler set. A nil logger falls back to
// slog.Default.
func NewServer(engine *authcore.Engine, cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{engine: engine, config: cfg, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	if len(s.config.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = s.config.AllowedOrigins
		corsConfig.AllowCredentials = true
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/", s.handleRoot)
	router.POST("/signup", s.handleSignup)
	router.POST("/login", s.handleLogin)
	router.POST("/verify-2fa", s.handleVerifyTwoFA)
	router.POST("/logout", s.handleLogout)
	router.POST("/verify-token", s.handleVerifyToken)

	return router
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "authcore"})
}

// setTokenCookie attaches the jwt cookie with the engine's token
// lifetime.
func (s *Server) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, s.engine.TokenTTL(), "/", "", s.config.SecureCookies, true)
}

// clearTokenCookie expires the jwt cookie.
func (s *Server) clearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", s.config.SecureCookies, true)
}
