package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"feedbackhub/internal/contextutil"
	"feedbackhub/internal/session"
	myErr "feedbackhub/internal/types/errors"
	"feedbackhub/internal/user"

	"go.uber.org/zap"
)

type AuthHandler struct {
	Logger         *zap.SugaredLogger
	UserRepository user.UserRepo
	Sessions       session.SessionRepo
}

func NewAuthHandler(l *zap.SugaredLogger, ur user.UserRepo, sr session.SessionRepo) *AuthHandler {
	return &AuthHandler{
		Logger:         l,
		UserRepository: ur,
		Sessions:       sr,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if form.Email == "" || form.Password == "" {
		myErr.SendErrorTo(w, myErr.ErrMissingEmailOrPassword, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepository.CheckUser(form.Email, form.Password)
	if err != nil {
		if errors.Is(err, myErr.ErrInvalidCredentials) {
			myErr.SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}

		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	token, err := h.Sessions.CreateToken(u.ID, u.Role)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(LoginResponse{User: u, Token: token}); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("user logged in: %s", u.ID)
}

// Me - отдает пользователя, которого положил в контекст Auth middleware
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := contextutil.GetUserFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(u); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}
