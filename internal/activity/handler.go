package activity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitness-fanatics/fitness-api/internal/auth"
	"github.com/fitness-fanatics/fitness-api/internal/httputil"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
)

// Handler contains the HTTP handlers for activity tracking.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// Create logs a new activity
// @Summary      Log an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        request body Input true "Activity data"
// @Security     BearerAuth
// @Success      201 {object} Activity
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Router       /api/activities [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}
	email, _ := auth.GetUserEmailFromContext(r.Context())

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := validateInput(in); err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	created, err := h.repo.Create(r.Context(), userID, email, in)
	if err != nil {
		logger.Error("failed to create activity", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("activity logged", "activity_id", created.ID, "user_id", userID)

	httputil.RespondJSON(w, created, http.StatusCreated)
}

// List returns the caller's activities
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Param        userID path string true "User ID"
// @Security     BearerAuth
// @Success      200 {array} Activity
// @Failure      403 {object} httputil.ErrorResponse "Not the caller's activities"
// @Router       /api/activities/{userID} [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || callerID != userID {
		httputil.RespondErrorWithCode(w, "you may only list your own activities", httputil.CodeInvalidToken, http.StatusForbidden)
		return
	}

	activities, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list activities", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, activities, http.StatusOK)
}

// Update overwrites an activity
// @Summary      Update an activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id path string true "Activity ID"
// @Param        request body Input true "Activity data"
// @Security     BearerAuth
// @Success      200 {object} Activity
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      404 {object} httputil.ErrorResponse "Activity not found"
// @Router       /api/activities/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid activity id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := validateInput(in); err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	updated, err := h.repo.Update(r.Context(), id, userID, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "activity not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to update activity", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// Delete removes an activity
// @Summary      Delete an activity
// @Tags         activities
// @Produce      json
// @Param        id path string true "Activity ID"
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "Activity not found"
// @Router       /api/activities/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid activity id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	if err := h.repo.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "activity not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to delete activity", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("activity deleted", "activity_id", id, "user_id", userID)

	httputil.RespondJSON(w, map[string]string{"message": "Activity deleted."}, http.StatusOK)
}
