package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"wagebook-backend/internal/domain/models"
	"wagebook-backend/internal/repository/mongodb"
	"wagebook-backend/internal/server/middleware"
	"wagebook-backend/internal/service/auth"
)

// AuthService is the part of the auth service the HTTP adapter uses.
type AuthService interface {
	Signup(ctx context.Context, in auth.SignupInput) (models.User, string, error)
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Profile(ctx context.Context, ownerID primitive.ObjectID) (models.User, error)
	UpdateProfile(ctx context.Context, ownerID primitive.ObjectID, in auth.ProfileUpdate) (models.User, error)
}

// AuthHandler serves signup, login, token validation and the owner profile.
type AuthHandler struct {
	svc    AuthService
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Signup registers an owner account and returns it with a token.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
		return
	}

	user, token, err := h.svc.Signup(c.Request.Context(), auth.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if errors.Is(err, auth.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}
	if err != nil {
		h.logger.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public(), "token": token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and returns the account with a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password required"})
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public(), "token": token})
}

// Validate echoes the claims of an already-verified token.
func (h *AuthHandler) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":    middleware.OwnerID(c).Hex(),
			"email": c.GetString(middleware.CtxOwnerEmail),
		},
	})
}

// GetProfile returns the authenticated owner's account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.svc.Profile(c.Request.Context(), middleware.OwnerID(c))
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateProfile patches the authenticated owner's account.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), middleware.OwnerID(c), auth.ProfileUpdate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if errors.Is(err, mongodb.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		h.logger.Error("profile update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}
