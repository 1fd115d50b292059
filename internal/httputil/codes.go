package httputil

// Machine-readable error codes returned alongside error messages so the
// SPA can branch without parsing human text.
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeMissingAuth        = "MISSING_AUTH"
	CodeInvalidAuthHeader  = "INVALID_AUTH_HEADER"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeInternalError      = "INTERNAL_ERROR"
)
