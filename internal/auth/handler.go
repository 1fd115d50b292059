package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fitness-fanatics/fitness-api/internal/httputil"
	"github.com/fitness-fanatics/fitness-api/internal/logging"
	"github.com/fitness-fanatics/fitness-api/internal/user"
)

// RateLimiter guards the credential endpoints against brute force.
type RateLimiter interface {
	CheckIP(ctx context.Context, ip, purpose string) (bool, error)
	RecordIP(ctx context.Context, ip, purpose string) error
}

// Handler contains the HTTP handlers for the credential lifecycle
// endpoints.
type Handler struct {
	service     *Service
	rateLimiter RateLimiter
	logger      *logging.Logger
}

func NewHandler(service *Service, rateLimiter RateLimiter, logger *logging.Logger) *Handler {
	return &Handler{
		service:     service,
		rateLimiter: rateLimiter,
		logger:      logger,
	}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// ActivationRequest carries the token from the emailed activation link
type ActivationRequest struct {
	Token string `json:"token"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents the password reset request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the replacement password
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// MessageResponse is a plain informational response
type MessageResponse struct {
	Message string `json:"message"`
}

// ActivationResponse returns the identity of the newly persisted user
type ActivationResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
	Email   string    `json:"email"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Validate registration data and send an activation email. The account is persisted only once the activation link is followed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      409 {object} httputil.ErrorResponse "Email already registered"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/users [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitExceeded(w, r, "register") {
		return
	}

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	err := h.service.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		h.respondFlowError(w, logger, "registration", err)
		return
	}

	logger.Info("registration accepted, activation email sent")

	httputil.RespondJSON(w, MessageResponse{
		Message: "To activate your account, please open the e-mail we have sent you.",
	}, http.StatusOK)
}

// Activate handles account activation
// @Summary      Activate an account
// @Description  Verify the activation token from the emailed link and persist the user record staged inside it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ActivationRequest true "Activation token"
// @Success      201 {object} ActivationResponse
// @Failure      401 {object} httputil.ErrorResponse "Invalid or expired token"
// @Failure      409 {object} httputil.ErrorResponse "Email already registered"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/users/activation [post]
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ActivationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid activation request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	newUser, err := h.service.Activate(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			logger.Warn("activation failed: invalid or expired token")
			httputil.RespondErrorWithCode(w,
				"The 15-minute activation window has expired. Please register again.",
				httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}
		h.respondFlowError(w, logger, "activation", err)
		return
	}

	logger.Info("account activated", "user_id", newUser.ID)

	httputil.RespondJSON(w, ActivationResponse{
		Message: "Account activated successfully. Redirecting you to the login page.",
		ID:      newUser.ID,
		Email:   newUser.Email,
	}, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Verify credentials and return a session token with identity claims.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResult
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      403 {object} httputil.ErrorResponse "Email or password incorrect"
// @Failure      404 {object} httputil.ErrorResponse "Email not registered"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitExceeded(w, r, "login") {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondFlowError(w, logger, "login", err)
		return
	}

	logger.Info("user logged in")

	httputil.RespondJSON(w, result, http.StatusOK)
}

// ForgotPassword handles password reset requests
// @Summary      Request a password reset
// @Description  Send a password reset link, valid for 15 minutes, to a registered email address.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ForgotPasswordRequest true "Email address"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} httputil.ErrorResponse "Email not registered"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/password [post]
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.limitExceeded(w, r, "password") {
		return
	}

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid forgot password request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			logger.Warn("password reset requested for unregistered email")
			httputil.RespondErrorWithCode(w,
				"This e-mail address has not yet been registered.",
				httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		h.respondFlowError(w, logger, "password reset request", err)
		return
	}

	logger.Info("password reset email sent")

	httputil.RespondJSON(w, MessageResponse{
		Message: "To change your password, please open the e-mail we have sent you.",
	}, http.StatusOK)
}

// ResetPassword completes a password reset
// @Summary      Reset password
// @Description  Verify the reset token from the emailed link and overwrite the user's password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        token path string true "Reset token"
// @Param        request body ResetPasswordRequest true "New password"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error"
// @Failure      401 {object} httputil.ErrorResponse "Invalid or expired token"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /api/password-reset/{id}/{token} [put]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("invalid user id in reset link")
		httputil.RespondErrorWithCode(w, "invalid user id", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	token := chi.URLParam(r, "token")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid reset password request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	if err := h.service.ResetPassword(r.Context(), userID, token, req.Password); err != nil {
		if errors.Is(err, ErrInvalidToken) {
			logger.Warn("password reset failed: invalid or expired token")
			httputil.RespondErrorWithCode(w,
				"The 15-minute window to change your password has expired. Please request a new link.",
				httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}
		h.respondFlowError(w, logger, "password reset", err)
		return
	}

	logger.Info("password reset completed", "user_id", userID)

	httputil.RespondJSON(w, MessageResponse{
		Message: "Your password has been changed. You can now log in.",
	}, http.StatusOK)
}

// respondFlowError maps the shared flow outcomes onto HTTP responses.
// Internal errors are logged in full and surfaced generically.
func (h *Handler) respondFlowError(w http.ResponseWriter, logger *logging.Logger, flow string, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.Warn(flow+" failed: validation error", "field", validationErr.Field, "error", validationErr.Message)
		httputil.RespondErrorWithCode(w, validationErr.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
	case errors.Is(err, user.ErrDuplicateEmail):
		logger.Warn(flow + " failed: email already registered")
		httputil.RespondErrorWithCode(w, "This e-mail address is already registered.", httputil.CodeEmailAlreadyExists, http.StatusConflict)
	case errors.Is(err, user.ErrNotFound):
		logger.Warn(flow + " failed: user not found")
		httputil.RespondErrorWithCode(w, "This e-mail address has not yet been registered.", httputil.CodeUserNotFound, http.StatusNotFound)
	case errors.Is(err, ErrInvalidCredentials):
		logger.Warn(flow + " failed: invalid credentials")
		httputil.RespondErrorWithCode(w, ErrInvalidCredentials.Error(), httputil.CodeInvalidCredentials, http.StatusForbidden)
	default:
		logger.Error(flow+" failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "something went wrong, please try again later", httputil.CodeInternalError, http.StatusInternalServerError)
	}
}

// limitExceeded applies the IP rate limit for the given purpose. Limiter
// failures are logged and waved through so Redis trouble never locks
// out legitimate users.
func (h *Handler) limitExceeded(w http.ResponseWriter, r *http.Request, purpose string) bool {
	logger := logging.GetLoggerFromContext(r.Context())
	ip := clientIP(r)

	exceeded, err := h.rateLimiter.CheckIP(r.Context(), ip, purpose)
	if err != nil {
		logger.Error("failed to check IP rate limit", "error", err.Error())
	} else if exceeded {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondErrorWithCode(w, "too many requests, please try again later", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return true
	}

	if err := h.rateLimiter.RecordIP(r.Context(), ip, purpose); err != nil {
		logger.Error("failed to record IP request", "error", err.Error())
	}

	return false
}

// clientIP extracts the client IP address from the request.
func clientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
