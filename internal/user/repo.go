package user

import (
	"database/sql"
	"errors"

	myErr "feedbackhub/internal/types/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewUserDBRepository(db *sql.DB, l *zap.SugaredLogger) *UserDBRepository {
	return &UserDBRepository{
		DB:     db,
		Logger: l,
	}
}

func (ur *UserDBRepository) GetByID(userID string) (*User, error) {
	query := `
	SELECT id,
		   email,
		   name,
		   role,
		   password_hash
	FROM users
	WHERE id = $1
	`
	u := &User{}
	err := ur.DB.QueryRow(query, userID).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		ur.Logger.Warnf("Ошибка при получении пользователя по id: %v", err)
		return nil, myErr.ErrDBInternal
	}

	return u, nil
}

// CheckUser - сверяет пароль с bcrypt-хешем из базы.
// Неизвестная почта и неверный пароль наружу неразличимы.
func (ur *UserDBRepository) CheckUser(email, password string) (*User, error) {
	query := `
	SELECT id,
		   email,
		   name,
		   role,
		   password_hash
	FROM users
	WHERE email = $1
	`
	u := &User{}
	err := ur.DB.QueryRow(query, email).
		Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrInvalidCredentials
		}
		ur.Logger.Warnf("Ошибка при поиске пользователя по почте: %v", err)
		return nil, myErr.ErrDBInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, myErr.ErrInvalidCredentials
	}

	return u, nil
}
