package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrDBInternal = errors.New("database internal error")
	ErrNotFound   = errors.New("record not found")

	ErrNoAuth             = errors.New("authorization required")
	ErrForbidden          = errors.New("not authorized as an admin")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingSecret      = errors.New("signing secret is not configured")

	ErrMissingEmailOrPassword = errors.New("please provide email and password")
	ErrInvalidJSONPayload     = errors.New("invalid JSON payload")

	ErrFormNotFound    = errors.New("form not found")
	ErrFormInactive    = errors.New("this form is no longer accepting responses")
	ErrRatingIsInvalid = errors.New("rating must be between 1 and 5")
)

type ErrorServer struct {
	Message string `json:"message"`
}

func (e *ErrorServer) Error() string {
	return e.Message
}

/*
NewErrorServer
Функция имеет возможность принимать "nil ошибку"
при получении nil наша функция понимает, что нам
просто надо отдать саксесс клиенту
*/
func NewErrorServer(err error) ErrorServer {
	if err == nil {
		return ErrorServer{
			Message: "success",
		}
	}

	return ErrorServer{
		Message: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}
