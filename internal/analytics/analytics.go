package analytics

// Summary - сводка по отзывам: количество, средняя оценка
// и разбивка на положительные (>=4), отрицательные (<3) и нейтральные (=3).
type Summary struct {
	TotalFeedbacks int     `json:"totalFeedbacks"`
	AverageRating  float64 `json:"averageRating"` // округлена до одного знака
	PositiveCount  int     `json:"positiveCount"`
	NegativeCount  int     `json:"negativeCount"`
	NeutralCount   int     `json:"neutralCount"`
}

// AnalyticsRepo — интерфейс репозитория аналитики по отзывам.
//
//go:generate mockgen -source=internal/analytics/analytics.go -destination=internal/mocks/mock_analytics_repo.go -package=mocks
type AnalyticsRepo interface {
	// Summarize - сводка по всем отзывам или по одной анкете.
	// formID пустой или "all" - без ограничения.
	Summarize(formID string) (*Summary, error)
}
