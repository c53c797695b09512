package feedback

import (
	"time"
)

// FormIDAll - сентинел "без фильтра по анкете" в запросах списка и аналитики.
const FormIDAll = "all"

// Feedback структура отзыва, оставленного через публичную анкету.
// Responses - объект "id поля анкеты -> ответ"; порядок показа
// определяется массивом fields самой анкеты.
type Feedback struct {
	ID        string                 `json:"id"` // uuid
	FormID    string                 `json:"formId"`
	Name      string                 `json:"name"`
	Email     string                 `json:"email"`
	Message   string                 `json:"message"`
	Rating    int                    `json:"rating"` // 1..5
	CreatedAt time.Time              `json:"createdAt"`
	Responses map[string]interface{} `json:"responses"`
}

// Filter - фильтры админского списка отзывов. Комбинируются через AND.
type Filter struct {
	FormID string // пусто или "all" - без фильтра
	Rating int    // 0 - без фильтра
	Search string // подстрока по name/email/message без учета регистра
}

// FeedbackRepo интерфейс удовлетворяющий методам сущности отзыва
//
//go:generate mockgen -source=internal/feedback/feedback.go -destination=internal/mocks/mock_feedback_repo.go -package=mocks
type FeedbackRepo interface {
	// Create - сохраняет новый отзыв, проставляя ID и CreatedAt
	// Возвращает созданный Feedback
	Create(feedback *Feedback) (*Feedback, error)
	// List - возвращает отзывы под фильтр, новые первыми
	List(filter Filter) ([]*Feedback, error)
}
