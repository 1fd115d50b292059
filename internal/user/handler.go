package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/fitness-fanatics/fitness-api/internal/crypto"
	"github.com/fitness-fanatics/fitness-api/internal/httputil"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
)

// CallerIDFunc extracts the authenticated user's ID from the request
// context, as placed there by the auth middleware.
type CallerIDFunc func(ctx context.Context) (uuid.UUID, bool)

// Handler contains the HTTP handlers for profile reads and updates.
type Handler struct {
	repo     *Repository
	callerID CallerIDFunc
	logger   *logging.Logger
}

func NewHandler(repo *Repository, callerID CallerIDFunc, logger *logging.Logger) *Handler {
	return &Handler{repo: repo, callerID: callerID, logger: logger}
}

// UpdateProfileRequest represents the profile update request body.
// Password is optional; when present it replaces the stored one.
type UpdateProfileRequest struct {
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	UserName   *string `json:"userName"`
	Gender     *string `json:"gender"`
	City       *string `json:"cityOfResidence"`
	Weight     *string `json:"weight"`
	BirthDate  *string `json:"birthDate"`
	Motivation *string `json:"motivation"`
	Password   *string `json:"password,omitempty"`
}

func (req UpdateProfileRequest) validate() error {
	if err := validation.Validate(req.FirstName, validation.Required); err != nil {
		return errors.New("firstName: " + err.Error())
	}
	if err := validation.Validate(req.LastName, validation.Required); err != nil {
		return errors.New("lastName: " + err.Error())
	}
	if req.Password != nil {
		if err := validation.Validate(*req.Password, validation.Required, validation.Length(8, 0)); err != nil {
			return errors.New("password: " + err.Error())
		}
	}
	return nil
}

// GetProfile returns a user's profile
// @Summary      Get profile
// @Description  Return the profile of the given user. Callers may only read their own profile.
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      403 {object} httputil.ErrorResponse "Not the caller's profile"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /api/users/{id} [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, ok := h.ownProfileID(w, r)
	if !ok {
		return
	}

	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get user", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, u, http.StatusOK)
}

// UpdateProfile updates a user's profile
// @Summary      Update profile
// @Description  Overwrite the profile fields of the given user. A password field, when present, replaces the stored password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Security     BearerAuth
// @Success      200 {object} User
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      403 {object} httputil.ErrorResponse "Not the caller's profile"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /api/users/{id} [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id, ok := h.ownProfileID(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := req.validate(); err != nil {
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	patch := ProfileUpdate{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		UserName:   req.UserName,
		Gender:     req.Gender,
		City:       req.City,
		Weight:     req.Weight,
		BirthDate:  req.BirthDate,
		Motivation: req.Motivation,
	}

	if req.Password != nil {
		hash, err := crypto.HashPassword(*req.Password)
		if err != nil {
			logger.Error("failed to hash password", "error", err.Error())
			httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
			return
		}
		patch.PasswordHash = &hash
	}

	updated, err := h.repo.UpdateProfile(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to update profile", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("profile updated", "user_id", id)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// ownProfileID parses the path ID and checks it matches the
// authenticated caller.
func (h *Handler) ownProfileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return uuid.Nil, false
	}

	callerID, ok := h.callerID(r.Context())
	if !ok || callerID != id {
		httputil.RespondErrorWithCode(w, "you may only access your own profile", httputil.CodeInvalidToken, http.StatusForbidden)
		return uuid.Nil, false
	}

	return id, true
}
