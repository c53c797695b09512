package form

import (
	"time"
)

// FormField - одно поле анкеты. Порядок полей задается порядком в массиве.
type FormField struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Type     string `json:"type"` // text | textarea | rating | select ...
	Required bool   `json:"required"`
}

// Form структура анкеты обратной связи
type Form struct {
	ID          string      `json:"id"` // uuid
	Title       string      `json:"title"`
	Description string      `json:"description"`
	CreatedBy   string      `json:"createdBy"` // uuid администратора
	CreatedAt   time.Time   `json:"createdAt"`
	IsActive    bool        `json:"isActive"`
	Fields      []FormField `json:"fields"`
}

// CreateForm - тело запроса на создание анкеты
type CreateForm struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	IsActive    bool        `json:"isActive"`
	Fields      []FormField `json:"fields"`
}

// ChangeForm - частичное обновление анкеты.
// Указатели отличают "поле не передано" от переданного нулевого значения,
// иначе isActive=false было бы невозможно выставить через PATCH.
type ChangeForm struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	IsActive    *bool        `json:"isActive"`
	Fields      *[]FormField `json:"fields"`
}

// FormRepo интерфейс удовлетворяющий методам сущности анкеты
//
//go:generate mockgen -source=internal/form/form.go -destination=internal/mocks/mock_form_repo.go -package=mocks
type FormRepo interface {
	// List - возвращает все анкеты, новые первыми
	List() ([]*Form, error)
	// Create - создает анкету от имени администратора createdBy
	Create(createdBy string, cf CreateForm) (*Form, error)
	// GetByID - возвращает анкету по id
	GetByID(formID string) (*Form, error)
	// Update - меняет только переданные поля, остальные сохраняют прежние значения
	Update(formID string, changeForm ChangeForm) (*Form, error)
	// Delete - удаляет анкету вместе со всеми ее отзывами (сначала отзывы)
	Delete(formID string) error
}
