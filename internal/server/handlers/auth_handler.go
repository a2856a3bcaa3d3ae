package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbdiallo/stockboard/internal/auth"
	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/internal/repository/mongodb"
)

// AuthHandler exposes registration and login.
type AuthHandler struct {
	repo   mongodb.UserRepository
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(repo mongodb.UserRepository, jwt *auth.JWTManager, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{repo: repo, jwt: jwt, logger: logger}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed hashing password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to create user"})
		return
	}

	_, err = h.repo.CreateUser(c.Request.Context(), models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         "user",
	})
	if errors.Is(err, mongodb.ErrEmailTaken) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
		return
	}
	if err != nil {
		h.logger.Error("failed creating user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing email or password"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing email or password"})
		return
	}

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("failed looking up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to log in"})
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		h.logger.Error("failed issuing token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error: failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"user": models.AuthUser{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
