package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedbackhub/internal/types/errors"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func setupTestRepo(t *testing.T) *SessionRepository {
	logger := zaptest.NewLogger(t).Sugar()

	return NewSessionRepository(logger, "secret", 24*time.Hour)
}

func requestWithToken(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	return r
}

func TestCreateTokenAndCheckSession(t *testing.T) {
	repo := setupTestRepo(t)

	token, err := repo.CreateToken("user-123", "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	sess, err := repo.CheckSession(requestWithToken(token))
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, "user-123", sess.UserID)
	assert.Equal(t, "admin", sess.Role)
}

func TestCheckSession_NoHeader(t *testing.T) {
	repo := setupTestRepo(t)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	sess, err := repo.CheckSession(r)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_NotBearer(t *testing.T) {
	repo := setupTestRepo(t)

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	sess, err := repo.CheckSession(r)
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_Expired(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	// Отрицательная длительность сразу дает просроченный exp
	repo := NewSessionRepository(logger, "secret", -time.Hour)

	token, err := repo.CreateToken("user-123", "admin")
	assert.NoError(t, err)

	sess, err := repo.CheckSession(requestWithToken(token))
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_WrongSecret(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	other := NewSessionRepository(logger, "other-secret", 24*time.Hour)

	repo := setupTestRepo(t)
	token, err := other.CreateToken("user-123", "admin")
	assert.NoError(t, err)

	sess, err := repo.CheckSession(requestWithToken(token))
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_MissingClaims(t *testing.T) {
	repo := setupTestRepo(t)

	// Токен с валидной подписью, но без id
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, err := token.SignedString([]byte("secret"))
	assert.NoError(t, err)

	sess, err := repo.CheckSession(requestWithToken(tokenStr))
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}

func TestCheckSession_Garbage(t *testing.T) {
	repo := setupTestRepo(t)

	sess, err := repo.CheckSession(requestWithToken("not-a-jwt"))
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, errors.ErrNoAuth)
}
