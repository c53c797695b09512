package contextutil

import (
	"context"

	"feedbackhub/internal/middleware"
	"feedbackhub/internal/user"
)

// GetUserFromContext извлекает пользователя из контекста
func GetUserFromContext(ctx context.Context) (*user.User, bool) {
	return middleware.GetUserFromContext(ctx)
}

// GetUserIDFromContext извлекает userID из контекста
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	u, ok := middleware.GetUserFromContext(ctx)
	if !ok || u == nil {
		return "", false
	}
	return u.ID, true
}
