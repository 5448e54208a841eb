package api

import (
	"alcyxob/gympumped/internal/session"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes the session provider.
type AuthHandler struct {
	sessions session.Provider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions session.Provider) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// --- Request/Response Structs ---

// Field checks are left to the session provider so users see its messages.
type RegisterRequest struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Create an account
// @Description Creates a user account and signs it in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} session.Session "Account created, session issued"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	s, err := h.sessions.CreateAccount(c.Request.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

// Login godoc
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} session.Session "Login successful"
// @Failure 401 {object} gin.H "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	s, err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Logout revokes the token the request was authenticated with.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := getTokenFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err := h.sessions.SignOut(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me returns the signed-in identity.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := h.sessions.CurrentIdentity(c.Request.Context())
	if !ok {
		abortWithError(c, http.StatusUnauthorized, "Not signed in")
		return
	}
	c.JSON(http.StatusOK, identity)
}
