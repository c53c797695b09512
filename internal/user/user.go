package user

const RoleAdmin = "admin"

// User структура пользователя.
// Хеш пароля наружу не отдаем ни в одном ответе.
type User struct {
	ID           string `json:"id"` // uuid
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"` // admin | user
	PasswordHash string `json:"-"`
}

// IsAdmin - true для учетки администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRepo интерфейс удовлетворяющий методам сущности пользователя
//
//go:generate mockgen -source=internal/user/user.go -destination=internal/mocks/mock_user_repo.go -package=mocks
type UserRepo interface {
	// CheckUser - проверяет пользователя по почте и паролю
	CheckUser(email, password string) (*User, error)
	// GetByID возвращает пользователя по его id
	GetByID(userID string) (*User, error)
}
