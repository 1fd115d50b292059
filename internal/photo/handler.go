package photo

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitness-fanatics/fitness-api/internal/auth"
	"github.com/fitness-fanatics/fitness-api/internal/httputil"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
	"github.com/fitness-fanatics/fitness-api/internal/storage"
)

// 5 MB upload cap for avatars.
const maxPhotoSize = 5 << 20

// Handler contains the HTTP handlers for profile photos.
type Handler struct {
	repo    *Repository
	objects storage.ObjectStorage
	logger  *logging.Logger
}

func NewHandler(repo *Repository, objects storage.ObjectStorage, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, objects: objects, logger: logger}
}

// Get returns the user's profile photo metadata
// @Summary      Get profile photo
// @Tags         photos
// @Produce      json
// @Param        userID path string true "User ID"
// @Security     BearerAuth
// @Success      200 {object} Photo
// @Failure      404 {object} httputil.ErrorResponse "No photo uploaded"
// @Router       /api/photos/{userID} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := h.ownUserID(w, r)
	if !ok {
		return
	}

	ph, err := h.repo.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "no photo uploaded", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get photo", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ph, http.StatusOK)
}

// Upload stores a new profile photo, replacing any previous one
// @Summary      Upload profile photo
// @Description  Store the uploaded image and replace the user's previous photo. The old object is removed from storage.
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        userID path string true "User ID"
// @Param        photo formData file true "Image file"
// @Security     BearerAuth
// @Success      200 {object} Photo
// @Failure      400 {object} httputil.ErrorResponse "Missing or oversized file"
// @Router       /api/photos/{userID} [put]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := h.ownUserID(w, r)
	if !ok {
		return
	}
	email, _ := auth.GetUserEmailFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		httputil.RespondErrorWithCode(w, "invalid or oversized upload", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		httputil.RespondErrorWithCode(w, "missing photo file", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Remember the previous object so it can be removed after the
	// replacement row is in place.
	var previousKey string
	if existing, err := h.repo.GetByUser(r.Context(), userID); err == nil {
		previousKey = existing.StorageKey
	}

	key := storage.NewObjectKey("photos")
	url, err := h.objects.Upload(r.Context(), key, contentType, file)
	if err != nil {
		logger.Error("failed to upload photo", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	ph, err := h.repo.Upsert(r.Context(), userID, email, url, key)
	if err != nil {
		logger.Error("failed to save photo", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	if previousKey != "" && previousKey != key {
		if err := h.objects.Delete(r.Context(), previousKey); err != nil {
			logger.Warn("failed to remove previous photo object", "key", previousKey, "error", err.Error())
		}
	}

	logger.Info("profile photo uploaded", "user_id", userID)

	httputil.RespondJSON(w, ph, http.StatusOK)
}

// Delete removes the user's profile photo
// @Summary      Delete profile photo
// @Tags         photos
// @Produce      json
// @Param        userID path string true "User ID"
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      404 {object} httputil.ErrorResponse "No photo uploaded"
// @Router       /api/photos/{userID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := h.ownUserID(w, r)
	if !ok {
		return
	}

	existing, err := h.repo.GetByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "no photo uploaded", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get photo", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	if err := h.repo.Delete(r.Context(), userID); err != nil {
		logger.Error("failed to delete photo", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	if err := h.objects.Delete(r.Context(), existing.StorageKey); err != nil {
		logger.Warn("failed to remove photo object", "key", existing.StorageKey, "error", err.Error())
	}

	logger.Info("profile photo deleted", "user_id", userID)

	httputil.RespondJSON(w, map[string]string{"message": "Photo deleted."}, http.StatusOK)
}

func (h *Handler) ownUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return uuid.Nil, false
	}

	callerID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || callerID != userID {
		httputil.RespondErrorWithCode(w, "you may only manage your own photo", httputil.CodeInvalidToken, http.StatusForbidden)
		return uuid.Nil, false
	}

	return userID, true
}
