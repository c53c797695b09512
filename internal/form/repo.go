package form

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	myErr "feedbackhub/internal/types/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FormDBRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewFormDBRepository(db *sql.DB, logger *zap.SugaredLogger) *FormDBRepository {
	return &FormDBRepository{
		DB:     db,
		Logger: logger,
	}
}

func (formRepository *FormDBRepository) List() ([]*Form, error) {
	query := `
	SELECT id, title, description, created_by, created_at, is_active, fields
	FROM feedback_forms
	ORDER BY created_at DESC
	`

	rows, err := formRepository.DB.Query(query)
	if err != nil {
		formRepository.Logger.Error("Failed to get forms from DB", zap.Error(err))

		return nil, myErr.ErrDBInternal
	}
	defer rows.Close()

	var forms []*Form
	for rows.Next() {
		f, err := scanForm(rows.Scan)
		if err != nil {
			formRepository.Logger.Error("Failed to scan form row from DB", zap.Error(err))

			return nil, myErr.ErrDBInternal
		}

		forms = append(forms, f)
	}

	if err := rows.Err(); err != nil {
		formRepository.Logger.Error("Error occurred while iterating over form rows from DB", zap.Error(err))

		return nil, myErr.ErrDBInternal
	}

	return forms, nil
}

func (formRepository *FormDBRepository) Create(createdBy string, cf CreateForm) (*Form, error) {
	f := &Form{
		ID:          uuid.New().String(),
		Title:       cf.Title,
		Description: cf.Description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
		IsActive:    cf.IsActive,
		Fields:      cf.Fields,
	}
	if f.Fields == nil {
		f.Fields = []FormField{}
	}

	fieldsJSON, err := json.Marshal(f.Fields)
	if err != nil {
		formRepository.Logger.Error("Failed encode form fields to JSON", zap.Error(err))

		return nil, myErr.ErrDBInternal
	}

	query := `
	INSERT INTO feedback_forms (id, title, description, created_by, created_at, is_active, fields)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = formRepository.DB.Exec(
		query,
		f.ID, f.Title, f.Description, f.CreatedBy, f.CreatedAt, f.IsActive, string(fieldsJSON),
	)
	if err != nil {
		formRepository.Logger.Error(
			"Failed save form to DB",
			zap.Error(err),
			zap.String("formID", f.ID),
		)

		return nil, myErr.ErrDBInternal
	}

	formRepository.Logger.Info(
		fmt.Sprintf("Form with formID %s created successfully", f.ID),
	)

	return f, nil
}

func (formRepository *FormDBRepository) GetByID(formID string) (*Form, error) {
	query := `
	SELECT id, title, description, created_by, created_at, is_active, fields
	FROM feedback_forms
	WHERE id = $1
	`

	f, err := scanForm(formRepository.DB.QueryRow(query, formID).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, myErr.ErrNotFound
		}
		formRepository.Logger.Warnf("Error while load form info: %v", err)

		return nil, myErr.ErrDBInternal
	}

	return f, nil
}

func (formRepository *FormDBRepository) Update(formID string, changeForm ChangeForm) (*Form, error) {
	fields := []string{}
	args := []interface{}{}
	argID := 1

	// Динамически добавляем поля в обновление
	if changeForm.Title != nil {
		fields = append(fields, "title = $"+strconv.Itoa(argID))
		args = append(args, *changeForm.Title)
		argID++
	}
	if changeForm.Description != nil {
		fields = append(fields, "description = $"+strconv.Itoa(argID))
		args = append(args, *changeForm.Description)
		argID++
	}
	if changeForm.IsActive != nil {
		fields = append(fields, "is_active = $"+strconv.Itoa(argID))
		args = append(args, *changeForm.IsActive)
		argID++
	}
	if changeForm.Fields != nil {
		fieldsJSON, err := json.Marshal(*changeForm.Fields)
		if err != nil {
			formRepository.Logger.Error("Failed encode form fields to JSON", zap.Error(err))

			return nil, myErr.ErrDBInternal
		}
		fields = append(fields, "fields = $"+strconv.Itoa(argID))
		args = append(args, string(fieldsJSON))
		argID++
	}

	if len(fields) == 0 {
		return formRepository.GetByID(formID) // Если ничего не обновляется, просто вернуть текущие данные
	}

	query := "UPDATE feedback_forms SET " + strings.Join(fields, ", ") +
		" WHERE id = $" + strconv.Itoa(argID) // nolint:gosec
	args = append(args, formID)

	result, err := formRepository.DB.Exec(query, args...)
	if err != nil {
		formRepository.Logger.Error(
			"Failed to update form",
			zap.Error(err),
			zap.String("formID", formID),
		)

		return nil, myErr.ErrDBInternal
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		formRepository.Logger.Error(
			"Failed to get rows affected while updating form",
			zap.Error(err),
			zap.String("formID", formID),
		)

		return nil, myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return nil, myErr.ErrNotFound
	}

	formRepository.Logger.Info(
		fmt.Sprintf("Form with formID %s updated successfully", formID),
	)

	return formRepository.GetByID(formID)
}

// Delete - сперва удаляет отзывы анкеты, затем саму анкету,
// чтобы не оставить отзывов, ссылающихся в никуда.
func (formRepository *FormDBRepository) Delete(formID string) error {
	_, err := formRepository.DB.Exec(`DELETE FROM feedbacks WHERE form_id = $1`, formID)
	if err != nil {
		formRepository.Logger.Error(
			"Failed to delete feedbacks of form",
			zap.Error(err),
			zap.String("formID", formID),
		)

		return myErr.ErrDBInternal
	}

	result, err := formRepository.DB.Exec(`DELETE FROM feedback_forms WHERE id = $1`, formID)
	if err != nil {
		formRepository.Logger.Error(
			"Failed to delete form",
			zap.Error(err),
			zap.String("formID", formID),
		)

		return myErr.ErrDBInternal
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		formRepository.Logger.Error(
			"Failed to get rows affected while deleting form",
			zap.Error(err),
			zap.String("formID", formID),
		)

		return myErr.ErrDBInternal
	}

	if rowsAffected == 0 {
		return myErr.ErrNotFound
	}

	formRepository.Logger.Info(
		fmt.Sprintf("Form with formID %s deleted successfully", formID),
	)

	return nil
}

func scanForm(scan func(dest ...interface{}) error) (*Form, error) {
	f := &Form{}
	var fieldsRaw string

	err := scan(&f.ID, &f.Title, &f.Description, &f.CreatedBy, &f.CreatedAt, &f.IsActive, &fieldsRaw)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fieldsRaw), &f.Fields); err != nil {
		return nil, err
	}

	return f, nil
}
