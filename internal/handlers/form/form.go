package form

import (
	"encoding/json"
	"errors"
	"net/http"

	"feedbackhub/internal/contextutil"
	"feedbackhub/internal/form"
	myErr "feedbackhub/internal/types/errors"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type FormHandler struct {
	Logger         *zap.SugaredLogger
	FormRepository form.FormRepo
}

func NewFormHandler(l *zap.SugaredLogger, repo form.FormRepo) *FormHandler {
	return &FormHandler{
		Logger:         l,
		FormRepository: repo,
	}
}

func (h *FormHandler) List(w http.ResponseWriter, r *http.Request) {
	forms, err := h.FormRepository.List()
	if err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	if forms == nil {
		forms = []*form.Form{} // Пустой массив вместо null
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(forms); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("listed %d forms", len(forms))
}

func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	var cf form.CreateForm
	if err := json.NewDecoder(r.Body).Decode(&cf); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	userID, ok := contextutil.GetUserIDFromContext(r.Context())
	if !ok {
		myErr.SendErrorTo(w, myErr.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	created, err := h.FormRepository.Create(userID, cf)
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

	h.Logger.Infof("Created form with id: %s", created.ID)
}

func (h *FormHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	f, err := h.FormRepository.GetByID(formID)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrFormNotFound, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}
}

func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	var changeForm form.ChangeForm
	if err := json.NewDecoder(r.Body).Decode(&changeForm); err != nil {
		myErr.SendErrorTo(w, myErr.ErrInvalidJSONPayload, http.StatusBadRequest, h.Logger)
		return
	}

	updated, err := h.FormRepository.Update(formID, changeForm)
	if err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrFormNotFound, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("form updated successfully: %s", formID)
}

func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	if err := h.FormRepository.Delete(formID); err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			myErr.SendErrorTo(w, myErr.ErrFormNotFound, http.StatusNotFound, h.Logger)
			return
		}
		myErr.SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	myErr.SendErrorTo(w, nil, http.StatusOK, h.Logger)
	h.Logger.Infof("form deleted successfully: %s", formID)
}
