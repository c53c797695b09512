package feedback

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"feedbackhub/internal/feedback"
	"feedbackhub/internal/form"
	myErr "feedbackhub/internal/types/errors"

	"go.uber.org/zap"
)

const (
	minRating = 1
	maxRating = 5
)

type FeedbackHandler struct {
	Logger             *zap.SugaredLogger
	FeedbackRepository feedback.FeedbackRepo
	FormRepository     form.FormRepo
}

func NewFeedbackHandler(
	l *zap.SugaredLogger,
	feedbackRepo feedback.FeedbackRepo,
	formRepo form.FormRepo,
) *FeedbackHandler {
	return &FeedbackHandler{
		Logger:             l,
		FeedbackRepository: feedbackRepo,
		FormRepository:     formRepo,
	}
}

// Create - публичная отправка отзыва. Анкета должна существовать и быть активной.
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fb feedback.Feedback
	if err := json.NewDecoder(r.Body).Decode(&fb); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	if fb.Rating < minRating || fb.Rating > maxRating {
		myErr.SendErrorTo(w, myErr.ErrRatingIsInvalid, http.StatusBadRequest, h.Logger)
		return
	}

	f, err := h.FormRepository.GetByID(fb.FormID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrFormNotFound, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if !f.IsActive {
		myErr.SendErrorTo(w, myErr.ErrFormInactive, http.StatusBadRequest, h.Logger)
		return
	}

	created, err := h.FeedbackRepository.Create(&fb)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("Created feedback with id: %s", created.ID)
}

// List - админский список с фильтрами ?formId=&rating=&search=
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := feedback.Filter{
		FormID: r.URL.Query().Get("formId"),
		Search: r.URL.Query().Get("search"),
	}
	if ratingParam := r.URL.Query().Get("rating"); ratingParam != "" {
		if rating, err := strconv.Atoi(ratingParam); err == nil {
			filter.Rating = rating
		}
	}

	feedbacks, err := h.FeedbackRepository.List(filter)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if feedbacks == nil {
		feedbacks = []*feedback.Feedback{} // Пустой массив вместо null
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(feedbacks); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("listed %d feedbacks", len(feedbacks))
}
