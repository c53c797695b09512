package feedback

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	myErr "feedbackhub/internal/types/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewFeedbackDBRepository(db *sql.DB, logger *zap.SugaredLogger) *FeedbackDBRepository {
	return &FeedbackDBRepository{
		DB:     db,
		Logger: logger,
	}
}

func (feedbackRepository *FeedbackDBRepository) Create(feedback *Feedback) (*Feedback, error) {
	feedback.ID = uuid.New().String()
	feedback.CreatedAt = time.Now().UTC()
	if feedback.Responses == nil {
		feedback.Responses = map[string]interface{}{}
	}

	responsesJSON, err := json.Marshal(feedback.Responses)
	if err != nil {
		feedbackRepository.Logger.Error("Failed encode responses to JSON", zap.Error(err))

		return nil, myErr.ErrDBInternal
	}

	query := `
	INSERT INTO feedbacks (id, form_id, name, email, message, rating, created_at, responses)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = feedbackRepository.DB.Exec(
		query,
		feedback.ID,
		feedback.FormID,
		feedback.Name,
		feedback.Email,
		feedback.Message,
		feedback.Rating,
		feedback.CreatedAt,
		string(responsesJSON),
	)
	if err != nil {
		feedbackRepository.Logger.Error(
			"Failed save feedback to DB",
			zap.Error(err),
			zap.String("feedbackID", feedback.ID),
		)

		return nil, myErr.ErrDBInternal
	}

	feedbackRepository.Logger.Info(
		fmt.Sprintf("Feedback with feedbackID %s created successfully", feedback.ID),
	)

	return feedback, nil
}

// List - собирает условия фильтра динамически, все через AND.
func (feedbackRepository *FeedbackDBRepository) List(filter Filter) ([]*Feedback, error) {
	query := `
	SELECT id, form_id, name, email, message, rating, created_at, responses
	FROM feedbacks
	`

	conditions := []string{}
	args := []interface{}{}
	argID := 1

	if filter.FormID != "" && filter.FormID != FormIDAll {
		conditions = append(conditions, "form_id = $"+strconv.Itoa(argID))
		args = append(args, filter.FormID)
		argID++
	}
	if filter.Rating != 0 {
		conditions = append(conditions, "rating = $"+strconv.Itoa(argID))
		args = append(args, filter.Rating)
		argID++
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d OR LOWER(message) LIKE $%d)",
			argID, argID+1, argID+2,
		))
		args = append(args, pattern, pattern, pattern)
		argID += 3
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := feedbackRepository.DB.Query(query, args...)
	if err != nil {
		feedbackRepository.Logger.Error("Failed to get feedbacks from DB", zap.Error(err))

		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var feedbacks []*Feedback
	for rows.Next() {
		f := &Feedback{}
		var responsesRaw string

		err := rows.Scan(
			&f.ID, &f.FormID, &f.Name, &f.Email, &f.Message, &f.Rating, &f.CreatedAt, &responsesRaw,
		)
		if err != nil {
			feedbackRepository.Logger.Error("Failed to scan feedback row from DB", zap.Error(err))

			return nil, myErr.ErrDBInternal
		}

		if err := json.Unmarshal([]byte(responsesRaw), &f.Responses); err != nil {
			feedbackRepository.Logger.Error("Failed decode responses from JSON", zap.Error(err))

			return nil, myErr.ErrDBInternal
		}

		feedbacks = append(feedbacks, f)
	}

	if err := rows.Err(); err != nil {
		feedbackRepository.Logger.Error("Error occurred while iterating over feedback rows from DB", zap.Error(err))

		return nil, myErr.ErrDBInternal
	}

	return feedbacks, nil
}
