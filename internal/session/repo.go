package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	errorspkg "feedbackhub/internal/types/errors"

	jwt "github.com/dgrijalva/jwt-go"
	"go.uber.org/zap"
)

type SessionRepository struct {
	Logger       *zap.SugaredLogger
	tokenSecret  string
	baseDuration time.Duration
}

func NewSessionRepository(
	logger *zap.SugaredLogger,
	tokenSecret string,
	baseDuration time.Duration,
) *SessionRepository {
	return &SessionRepository{
		Logger:       logger,
		tokenSecret:  tokenSecret,
		baseDuration: baseDuration,
	}
}

func (sessionRepository *SessionRepository) CreateToken(userID string, role string) (string, error) {
	now := time.Now()

	// Генерируем JWT токен
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(sessionRepository.baseDuration).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(sessionRepository.tokenSecret))
	if err != nil {
		sessionRepository.Logger.Error("Failed to sign JWT token", zap.Error(err))
		return "", fmt.Errorf("error signing token: %w", err)
	}

	sessionRepository.Logger.Infof("Issued token for user: %s", userID)
	return tokenStr, nil
}

func (sessionRepository *SessionRepository) CheckSession(r *http.Request) (*Session, error) {
	const bearerPrefix = "Bearer "

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errorspkg.ErrNoAuth
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, errorspkg.ErrNoAuth
	}

	tokenStr := strings.TrimPrefix(authHeader, bearerPrefix)

	// Разбор токена; Parse сам проверяет exp
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			sessionRepository.Logger.Warnf("Unexpected signing method: %v", token.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(sessionRepository.tokenSecret), nil
	})
	if err != nil || !token.Valid {
		sessionRepository.Logger.Warnf("Invalid JWT token: %v", err)
		return nil, errorspkg.ErrNoAuth
	}

	// Извлечение claims
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		sessionRepository.Logger.Warn("Unexpected claims type in JWT")
		return nil, errorspkg.ErrNoAuth
	}

	userID, ok := claims["id"].(string)
	if !ok || userID == "" {
		sessionRepository.Logger.Warn("Missing id claim in JWT")
		return nil, errorspkg.ErrNoAuth
	}

	role, ok := claims["role"].(string)
	if !ok {
		sessionRepository.Logger.Warn("Missing role claim in JWT")
		return nil, errorspkg.ErrNoAuth
	}

	return &Session{
		UserID: userID,
		Role:   role,
	}, nil
}
