package session

import (
	"net/http"
)

// Session - распакованные утверждения токена.
// Никакого серверного состояния за сессией нет: токен самодостаточен.
type Session struct {
	UserID string
	Role   string
}

// SessionRepo - выпуск и проверка подписанных токенов сессии
//
//go:generate mockgen -source=internal/session/session.go -destination=internal/mocks/mock_session_repo.go -package=mocks
type SessionRepo interface {
	// CreateToken - выпускает подписанный токен с id и ролью пользователя
	// Возвращает строку токена
	CreateToken(userID string, role string) (string, error)
	// CheckSession - достает bearer-токен из запроса и проверяет подпись и срок
	// Возвращает *Session в случае успеха, иначе nil
	CheckSession(r *http.Request) (*Session, error)
}
