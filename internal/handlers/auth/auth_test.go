package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feedbackhub/internal/middleware"
	"feedbackhub/internal/mocks"
	myErr "feedbackhub/internal/types/errors"
	"feedbackhub/internal/user"

	"github.com/go-playground/assert"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

func TestAuthHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepo(ctrl)
	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)
	logger := zap.NewNop().Sugar()
	handler := &AuthHandler{
		Logger:         logger,
		UserRepository: mockUserRepo,
		Sessions:       mockSessionRepo,
	}

	tests := []struct {
		name           string
		body           LoginRequest
		mockBehavior   func()
		expectedStatus int
		expectToken    bool
	}{
		{
			name: "Success",
			body: LoginRequest{
				Email:    "admin@feedback.com",
				Password: "password",
			},
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CheckUser("admin@feedback.com", "password").
					Return(&user.User{ID: "1", Email: "admin@feedback.com", Role: user.RoleAdmin}, nil)

				mockSessionRepo.EXPECT().
					CreateToken("1", user.RoleAdmin).
					Return("signed-token", nil)
			},
			expectedStatus: http.StatusOK,
			expectToken:    true,
		},
		{
			name: "Missing Fields",
			body: LoginRequest{
				Email: "admin@feedback.com",
			},
			mockBehavior:   func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Credentials",
			body: LoginRequest{
				Email:    "admin@feedback.com",
				Password: "wrongpass",
			},
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CheckUser("admin@feedback.com", "wrongpass").
					Return(nil, myErr.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Internal Error",
			body: LoginRequest{
				Email:    "admin@feedback.com",
				Password: "password",
			},
			mockBehavior: func() {
				mockUserRepo.EXPECT().
					CheckUser("admin@feedback.com", "password").
					Return(nil, errors.New("db failure"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()

			bodyJSON, _ := json.Marshal(tt.body) // nolint:errcheck
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(bodyJSON))

			handler.Login(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectToken {
				var resp LoginResponse
				err := json.NewDecoder(w.Body).Decode(&resp)
				assert.Equal(t, err, nil)
				assert.Equal(t, resp.Token, "signed-token")
				assert.Equal(t, resp.User.ID, "1")
			}
		})
	}
}

func TestAuthHandler_Login_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := &AuthHandler{
		Logger:         zap.NewNop().Sugar(),
		UserRepository: mocks.NewMockUserRepo(ctrl),
		Sessions:       mocks.NewMockSessionRepo(ctrl),
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{not json"))

	handler.Login(w, r)

	assert.Equal(t, w.Code, http.StatusBadRequest)
}

func TestAuthHandler_Login_DoesNotLeakPasswordHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepo(ctrl)
	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)
	handler := &AuthHandler{
		Logger:         zap.NewNop().Sugar(),
		UserRepository: mockUserRepo,
		Sessions:       mockSessionRepo,
	}

	mockUserRepo.EXPECT().
		CheckUser("admin@feedback.com", "password").
		Return(&user.User{ID: "1", Email: "admin@feedback.com", Role: user.RoleAdmin, PasswordHash: "secret-hash"}, nil)
	mockSessionRepo.EXPECT().
		CreateToken("1", user.RoleAdmin).
		Return("signed-token", nil)

	bodyJSON, _ := json.Marshal(LoginRequest{Email: "admin@feedback.com", Password: "password"}) // nolint:errcheck
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(bodyJSON))

	handler.Login(w, r)

	assert.Equal(t, w.Code, http.StatusOK)
	assert.Equal(t, strings.Contains(w.Body.String(), "secret-hash"), false)
}

func TestAuthHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := &AuthHandler{
		Logger:         zap.NewNop().Sugar(),
		UserRepository: mocks.NewMockUserRepo(ctrl),
		Sessions:       mocks.NewMockSessionRepo(ctrl),
	}

	t.Run("user from context", func(t *testing.T) {
		u := &user.User{ID: "1", Email: "admin@feedback.com", Role: user.RoleAdmin}

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		ctx := middleware.ContextWithUser(r.Context(), u)

		handler.Me(w, r.WithContext(ctx))

		assert.Equal(t, w.Code, http.StatusOK)

		var got user.User
		err := json.NewDecoder(w.Body).Decode(&got)
		assert.Equal(t, err, nil)
		assert.Equal(t, got.ID, "1")
	})

	t.Run("no user in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

		handler.Me(w, r)

		assert.Equal(t, w.Code, http.StatusUnauthorized)
	})
}
