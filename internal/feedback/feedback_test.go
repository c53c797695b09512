package feedback

import (
	"errors"
	"testing"
	"time"

	myErr "feedbackhub/internal/types/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupTestRepo(t *testing.T) (*FeedbackDBRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}

	logger := zaptest.NewLogger(t).Sugar()
	repo := NewFeedbackDBRepository(db, logger)

	return repo, mock, func() { db.Close() }
}

func feedbackColumns() []string {
	return []string{"id", "form_id", "name", "email", "message", "rating", "created_at", "responses"}
}

func TestFeedbackDBRepository_Create(t *testing.T) {
	repo, mock, teardown := setupTestRepo(t)
	defer teardown()

	tests := []struct {
		name     string
		feedback *Feedback
		mockFunc func()
		wantErr  error
	}{
		{
			name: "success",
			feedback: &Feedback{
				FormID:    "form-1",
				Name:      "John",
				Email:     "john@example.com",
				Message:   "Great service",
				Rating:    5,
				Responses: map[string]interface{}{"q1": "yes"},
			},
			mockFunc: func() {
				mock.ExpectExec(`INSERT INTO feedbacks`).
					WithArgs(
						sqlmock.AnyArg(), "form-1", "John", "john@example.com",
						"Great service", 5, sqlmock.AnyArg(), `{"q1":"yes"}`,
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			wantErr: nil,
		},
		{
			name: "nil responses become empty object",
			feedback: &Feedback{
				FormID:  "form-1",
				Name:    "Jane",
				Email:   "jane@example.com",
				Message: "ok",
				Rating:  3,
			},
			mockFunc: func() {
				mock.ExpectExec(`INSERT INTO feedbacks`).
					WithArgs(
						sqlmock.AnyArg(), "form-1", "Jane", "jane@example.com",
						"ok", 3, sqlmock.AnyArg(), `{}`,
					).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			wantErr: nil,
		},
		{
			name: "db error",
			feedback: &Feedback{
				FormID: "form-1",
				Rating: 1,
			},
			mockFunc: func() {
				mock.ExpectExec(`INSERT INTO feedbacks`).
					WillReturnError(errors.New("db error"))
			},
			wantErr: myErr.ErrDBInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockFunc()

			created, err := repo.Create(tt.feedback)

			assert.Equal(t, tt.wantErr, err)
			if tt.wantErr == nil {
				require.NotNil(t, created)
				assert.NotEmpty(t, created.ID)
				assert.False(t, created.CreatedAt.IsZero())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFeedbackDBRepository_List(t *testing.T) {
	repo, mock, teardown := setupTestRepo(t)
	defer teardown()

	createdAt := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("no filters", func(t *testing.T) {
		rows := sqlmock.NewRows(feedbackColumns()).
			AddRow("fb-1", "form-1", "John", "john@example.com", "hi", 5, createdAt, `{"q1":"yes"}`)
		mock.ExpectQuery(`SELECT id, form_id, name, email, message, rating, created_at, responses FROM feedbacks ORDER BY created_at DESC`).
			WillReturnRows(rows)

		feedbacks, err := repo.List(Filter{})
		require.NoError(t, err)
		require.Len(t, feedbacks, 1)
		assert.Equal(t, map[string]interface{}{"q1": "yes"}, feedbacks[0].Responses)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("formId all is not a filter", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, form_id, name, email, message, rating, created_at, responses FROM feedbacks ORDER BY created_at DESC`).
			WillReturnRows(sqlmock.NewRows(feedbackColumns()))

		_, err := repo.List(Filter{FormID: FormIDAll})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all filters are conjunctive", func(t *testing.T) {
		mock.ExpectQuery(`FROM feedbacks WHERE form_id = \$1 AND rating = \$2 AND \(LOWER\(name\) LIKE \$3 OR LOWER\(email\) LIKE \$4 OR LOWER\(message\) LIKE \$5\) ORDER BY created_at DESC`).
			WithArgs("form-1", 4, "%john%", "%john%", "%john%").
			WillReturnRows(sqlmock.NewRows(feedbackColumns()))

		feedbacks, err := repo.List(Filter{FormID: "form-1", Rating: 4, Search: "John"})
		require.NoError(t, err)
		assert.Empty(t, feedbacks)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rating only", func(t *testing.T) {
		rows := sqlmock.NewRows(feedbackColumns()).
			AddRow("fb-2", "form-2", "Jane", "jane@example.com", "meh", 3, createdAt, `{}`)
		mock.ExpectQuery(`FROM feedbacks WHERE rating = \$1 ORDER BY created_at DESC`).
			WithArgs(3).
			WillReturnRows(rows)

		feedbacks, err := repo.List(Filter{Rating: 3})
		require.NoError(t, err)
		require.Len(t, feedbacks, 1)
		assert.Equal(t, "fb-2", feedbacks[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(`FROM feedbacks ORDER BY created_at DESC`).
			WillReturnError(errors.New("db failure"))

		feedbacks, err := repo.List(Filter{})
		assert.Nil(t, feedbacks)
		assert.ErrorIs(t, err, myErr.ErrDBInternal)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
