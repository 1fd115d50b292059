package plan

import (
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/fitness-fanatics/fitness-api/internal/auth"
	"github.com/fitness-fanatics/fitness-api/internal/httputil"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
	"github.com/fitness-fanatics/fitness-api/internal/storage"
)

// 20 MB upload cap for plan documents.
const maxPlanSize = 20 << 20

// Handler contains the HTTP handlers for training plan documents.
type Handler struct {
	repo    *Repository
	objects storage.ObjectStorage
	logger  *logging.Logger
}

func NewHandler(repo *Repository, objects storage.ObjectStorage, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, objects: objects, logger: logger}
}

// List returns the caller's training plans
// @Summary      List training plans
// @Tags         plans
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Plan
// @Router       /api/plans [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	plans, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list plans", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, plans, http.StatusOK)
}

// Upload stores a new training plan document
// @Summary      Upload a training plan
// @Description  Store the uploaded document in object storage and record its metadata under the given title.
// @Tags         plans
// @Accept       multipart/form-data
// @Produce      json
// @Param        title formData string true "Plan title"
// @Param        file formData file true "Plan document"
// @Security     BearerAuth
// @Success      201 {object} Plan
// @Failure      400 {object} httputil.ErrorResponse "Missing title or file"
// @Router       /api/plans [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}
	email, _ := auth.GetUserEmailFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxPlanSize)
	if err := r.ParseMultipartForm(maxPlanSize); err != nil {
		httputil.RespondErrorWithCode(w, "invalid or oversized upload", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if err := validation.Validate(title, validation.Required, validation.Length(1, 200)); err != nil {
		httputil.RespondErrorWithCode(w, "title: "+err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondErrorWithCode(w, "missing plan file", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.NewObjectKey("plans")
	url, err := h.objects.Upload(r.Context(), key, contentType, file)
	if err != nil {
		logger.Error("failed to upload plan file", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	created, err := h.repo.Create(r.Context(), userID, email, title, header.Filename, url, key)
	if err != nil {
		logger.Error("failed to save plan", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("training plan uploaded", "plan_id", created.ID, "user_id", userID)

	httputil.RespondJSON(w, created, http.StatusCreated)
}
