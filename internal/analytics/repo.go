package analytics

import (
	"database/sql"
	"math"

	"feedbackhub/internal/feedback"
	myErr "feedbackhub/internal/types/errors"

	"go.uber.org/zap"
)

type Repository struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

func NewRepository(db *sql.DB, logger *zap.SugaredLogger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Summarize(formID string) (*Summary, error) {
	query := `
	SELECT COUNT(*),
		   COALESCE(AVG(rating), 0),
		   COALESCE(SUM(CASE WHEN rating >= 4 THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN rating < 3 THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN rating = 3 THEN 1 ELSE 0 END), 0)
	FROM feedbacks
	`

	args := []interface{}{}
	if formID != "" && formID != feedback.FormIDAll {
		query += " WHERE form_id = $1"
		args = append(args, formID)
	}

	s := &Summary{}
	var avg float64

	err := r.db.QueryRow(query, args...).
		Scan(&s.TotalFeedbacks, &avg, &s.PositiveCount, &s.NegativeCount, &s.NeutralCount)
	if err != nil {
		r.logger.Error("Failed to summarize feedbacks", zap.Error(err))

		return nil, myErr.ErrDBInternal
	}

	// Средняя оценка с точностью до одного знака
	s.AverageRating = math.Round(avg*10) / 10

	return s, nil
}
