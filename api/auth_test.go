package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"scamwatch/security-api/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenLogin(t *testing.T) {
	a := newTestAPI(t)

	w, env := doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	w, env = doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	var data struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.User.ID)
	assert.Equal(t, "alice", data.User.Username)
	assert.NotEmpty(t, data.Token)

	// The user ID is stable across logins
	_, env = doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	var second struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, data.User.ID, second.User.ID)
}

func TestRegisterConflict(t *testing.T) {
	a := newTestAPI(t)
	registerAndLogin(t, a, "alice", "alice@example.com", "secret123")

	w, env := doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
}

func TestRegisterValidation(t *testing.T) {
	a := newTestAPI(t)

	w, env := doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "ab",
		"email":    "not-an-email",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "username")
	assert.Contains(t, env.Errors, "email")

	// Password rules come from the standalone validator
	w, env = doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Errors, "password")
}

func TestLoginDoesNotLeakUsernames(t *testing.T) {
	a := newTestAPI(t)
	registerAndLogin(t, a, "alice", "alice@example.com", "secret123")

	w1, env1 := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "wrongpass",
	})
	w2, env2 := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "nobody",
		"password": "wrongpass",
	})

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, env1.Message, env2.Message)
}

func TestLoginWithoutSigningKey(t *testing.T) {
	a := newTestAPIWithSecret(t, "")

	w, _ := doJSON(t, a, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, a, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, env.Message, "JWT secret")
}

func TestAuthGate(t *testing.T) {
	a := newTestAPI(t)

	// No header at all
	w, env := doJSON(t, a, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Access token required", env.Message)

	// Garbage token
	w, env = doJSON(t, a, http.MethodGet, "/api/auth/profile", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", env.Message)

	// Expired token
	expired := security.NewTokenService("test-secret", -time.Minute)
	tok, err := expired.Issue("someone")
	require.NoError(t, err)

	w, env = doJSON(t, a, http.MethodGet, "/api/auth/profile", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired", env.Message)

	// Valid token but the user is gone
	valid := security.NewTokenService("test-secret", time.Hour)
	tok, err = valid.Issue("ghost")
	require.NoError(t, err)

	w, env = doJSON(t, a, http.MethodGet, "/api/auth/profile", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User not found", env.Message)
}

func TestProfileGetAndUpdate(t *testing.T) {
	a := newTestAPI(t)
	token := registerAndLogin(t, a, "alice", "alice@example.com", "secret123")
	registerAndLogin(t, a, "bob", "bob@example.com", "secret123")

	w, env := doJSON(t, a, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "alice", profile.Username)

	// Colliding with another user's name is a conflict
	w, _ = doJSON(t, a, http.MethodPut, "/api/auth/profile", token, gin.H{"username": "bob"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = doJSON(t, a, http.MethodPut, "/api/auth/profile", token, gin.H{"email": "new@example.com"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "new@example.com", profile.Email)
}

func TestLogout(t *testing.T) {
	a := newTestAPI(t)
	token := registerAndLogin(t, a, "alice", "alice@example.com", "secret123")

	w, env := doJSON(t, a, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = doJSON(t, a, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHeartbeatAndValidate(t *testing.T) {
	a := newTestAPI(t)
	token := registerAndLogin(t, a, "alice", "alice@example.com", "secret123")

	w, _ := doJSON(t, a, http.MethodHead, "/api/heartbeat", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, a, http.MethodHead, "/api/validate", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, a, http.MethodHead, "/api/validate", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
