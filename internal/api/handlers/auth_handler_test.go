package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/khushi747/greencart-logistics/internal/application"
	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/auth"
)

func newAuthHandler(t *testing.T, users *fakeUserRepo) *AuthHandler {
	t.Helper()

	cfg := auth.DefaultConfig("handlers-test")
	cfg.Secret = "test-secret"
	tokens, err := auth.NewTokenManager(cfg)
	require.NoError(t, err)

	service := application.NewAuthService(users, tokens, nil, testFactory(), testLogger())
	return NewAuthHandler(service, testLogger())
}

func TestAuthHandlerRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := newAuthHandler(t, &fakeUserRepo{})
	router.POST("/api/v1/auth/register", handler.Register)

	rec := makeRequest(router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"email":    "manager@greencart.in",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data application.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "manager@greencart.in", resp.Data.User.Email)
}

func TestAuthHandlerRegisterRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := newAuthHandler(t, &fakeUserRepo{})
	router.POST("/api/v1/auth/register", handler.Register)

	rec := makeRequest(router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"email": "not-an-email",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	existing, err := domain.NewUser("manager@greencart.in", "hash", domain.RoleManager)
	require.NoError(t, err)

	handler := newAuthHandler(t, &fakeUserRepo{
		findByEmailFn: func(context.Context, string) (*domain.User, error) {
			return existing, nil
		},
	})
	router.POST("/api/v1/auth/register", handler.Register)

	rec := makeRequest(router, http.MethodPost, "/api/v1/auth/register", map[string]interface{}{
		"email":    "manager@greencart.in",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandlerLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user, err := domain.NewUser("manager@greencart.in", string(hash), domain.RoleManager)
	require.NoError(t, err)

	handler := newAuthHandler(t, &fakeUserRepo{
		findByEmailFn: func(context.Context, string) (*domain.User, error) {
			return user, nil
		},
	})
	router.POST("/api/v1/auth/login", handler.Login)

	rec := makeRequest(router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    "manager@greencart.in",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = makeRequest(router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    "manager@greencart.in",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
