package analytics

import (
	"encoding/json"
	"net/http"

	"feedbackhub/internal/analytics"
	myErr "feedbackhub/internal/types/errors"

	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	Logger              *zap.SugaredLogger
	AnalyticsRepository analytics.AnalyticsRepo
}

func NewAnalyticsHandler(l *zap.SugaredLogger, repo analytics.AnalyticsRepo) *AnalyticsHandler {
	return &AnalyticsHandler{
		Logger:              l,
		AnalyticsRepository: repo,
	}
}

// Get - сводка по отзывам, ?formId= ограничивает одной анкетой
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := r.URL.Query().Get("formId")

	summary, err := h.AnalyticsRepository.Summarize(formID)
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}
