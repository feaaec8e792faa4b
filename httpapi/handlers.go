package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvasilev/authcore"
)

type signupRequest struct {
	Email         string `json:"email" binding:"required"`
	Password      string `json:"password" binding:"required"`
	RequiresTwoFA bool   `json:"requires2FA"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type verifyTwoFARequest struct {
	Email          string `json:"email" binding:"required"`
	LoginAttemptID string `json:"loginAttemptId" binding:"required"`
	Code           string `json:"code" binding:"required"`
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

// statusForError maps engine sentinels onto the HTTP contract. Validation
// failures are the caller's fault (400); credential and token failures
// never distinguish their cause beyond 401.
func statusForError(err error) int {
	switch {
	case authcore.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, authcore.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, authcore.ErrInvalidCredentials),
		errors.Is(err, authcore.ErrUnauthorized),
		errors.Is(err, authcore.ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, authcore.ErrMissingToken):
		return http.StatusBadRequest
	case errors.Is(err, authcore.ErrTokenMalformed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the standard error body. Internal causes are logged, never
// echoed to the client.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "unexpected error"})
		return
	}
	c.JSON(status, gin.H{"error": publicMessage(err)})
}

// publicMessage unwraps engine sentinels to their stable message so
// wrapped internals never leak.
func publicMessage(err error) string {
	for _, sentinel := range []error{
		authcore.ErrUserAlreadyExists,
		authcore.ErrInvalidCredentials,
		authcore.ErrUnauthorized,
		authcore.ErrMissingToken,
		authcore.ErrTokenMalformed,
		authcore.ErrTokenInvalid,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed request body"})
		return
	}

	if _, err := s.engine.SignUp(c.Request.Context(), req.Email, req.Password, req.RequiresTwoFA); err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!"})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed request body"})
		return
	}

	result, err := s.engine.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}

	if result.TwoFARequired {
		c.JSON(http.StatusPartialContent, gin.H{
			"message":        "2FA required",
			"loginAttemptId": string(result.LoginAttemptID),
		})
		return
	}

	s.setTokenCookie(c, result.Token)
	c.Status(http.StatusOK)
}

func (s *Server) handleVerifyTwoFA(c *gin.Context) {
	var req verifyTwoFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed request body"})
		return
	}

	token, err := s.engine.ConfirmTwoFA(c.Request.Context(), req.Email, req.LoginAttemptID, req.Code)
	if err != nil {
		s.fail(c, err)
		return
	}

	s.setTokenCookie(c, token)
	c.Status(http.StatusOK)
}

func (s *Server) handleLogout(c *gin.Context) {
	token, err := c.Cookie(CookieName)
	if err != nil {
		s.fail(c, authcore.ErrMissingToken)
		return
	}

	if err := s.engine.Logout(c.Request.Context(), token); err != nil {
		s.fail(c, err)
		return
	}

	s.clearTokenCookie(c)
	c.Status(http.StatusOK)
}

func (s *Server) handleVerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "malformed request body"})
		return
	}

	if _, err := s.engine.ValidateToken(c.Request.Context(), req.Token); err != nil {
		s.fail(c, err)
		return
	}

	c.Status(http.StatusOK)
}
