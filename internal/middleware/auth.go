package middleware

import (
	"context"
	"net/http"

	"feedbackhub/internal/session"
	myErr "feedbackhub/internal/types/errors"
	"feedbackhub/internal/user"

	"go.uber.org/zap"
)

type UserKey string

var userKey UserKey = "userKey"

// Auth проверяет bearer-токен и резолвит его в живого пользователя.
// Токен с id удаленного пользователя не проходит.
func Auth(sr session.SessionRepo, ur user.UserRepo, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sr.CheckSession(r)
			if err != nil {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}

			u, err := ur.GetByID(sess.UserID)
			if err != nil {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}

			// Добавляем пользователя в контекст и передаем дальше
			ctx := ContextWithUser(r.Context(), u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly пускает дальше только роль admin. Вешается после Auth.
func AdminOnly(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := GetUserFromContext(r.Context())
			if !ok {
				myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, logger)
				return
			}

			if !u.IsAdmin() {
				myErr.SendErrorTo(w, myErr.ErrForbidden, http.StatusForbidden, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func ContextWithUser(ctx context.Context, u *user.User) context.Context {
	// создаем новый контекст с нашим ключом и пользователем
	return context.WithValue(ctx, userKey, u)
}

func GetUserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userKey).(*user.User)

	return u, ok
}
