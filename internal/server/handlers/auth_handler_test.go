package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbdiallo/stockboard/internal/auth"
	"github.com/sbdiallo/stockboard/internal/domain/models"
	"github.com/sbdiallo/stockboard/internal/repository/mongodb"
)

func newAuthRouter(repo *fakeUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(repo, auth.NewJWTManager("test-secret", time.Hour), nil)
	r := gin.New()
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/login", h.Login)
	return r
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &fakeUserRepo{}
	r := newAuthRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
	require.Len(t, repo.created, 1)
	user := repo.created[0]
	assert.Equal(t, "user", user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("secret")))
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	r := newAuthRouter(&fakeUserRepo{})

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "admin",
		"email":    "admin@example.com",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing required fields")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{
		createFn: func(user models.User) (string, error) {
			return "", mongodb.ErrEmailTaken
		},
	}
	r := newAuthRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "admin",
		"email":    "admin@example.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestLoginIssuesToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{
		findFn: func(email string) (*models.User, error) {
			return &models.User{
				ID:           "user-1",
				Username:     "admin",
				Email:        email,
				PasswordHash: hash,
			}, nil
		},
	}
	r := newAuthRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string          `json:"access_token"`
		User        models.AuthUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "admin", resp.User.Username)

	claims, err := auth.NewJWTManager("test-secret", time.Hour).ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{
		findFn: func(email string) (*models.User, error) {
			return &models.User{ID: "user-1", Username: "admin", PasswordHash: hash}, nil
		},
	}
	r := newAuthRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	r := newAuthRouter(&fakeUserRepo{})

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	r := newAuthRouter(&fakeUserRepo{})

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.c"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing email or password")
}

func TestStatsEndpointReturnsReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeItemRepo{
		statsFn: func() (*models.StatsReport, error) {
			return &models.StatsReport{
				TotalItems:    3,
				LowStockItems: 1,
				TotalValue:    42.0,
				Categories:    []models.CategoryCount{{Label: "Other", Count: 3}},
			}, nil
		},
	}
	h := NewStatsHandler(repo, nil)
	r := gin.New()
	r.GET("/api/stats/", h.Get)

	w := doJSON(t, r, http.MethodGet, "/api/stats/", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var report models.StatsReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 3, report.TotalItems)
	assert.Equal(t, 42.0, report.TotalValue)
}
