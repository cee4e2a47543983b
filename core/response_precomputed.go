package core

import (
	"encoding/json"
	"net/http"
)

// Standard response codes
const (
	// oks
	CodeOkLogout            = "ok_logout"
	CodeOkPasswordReset     = "ok_password_reset"
	CodeOkForgotPassword    = "ok_forgot_password"
	CodeOkTwoFactorEnabled  = "ok_two_factor_enabled"
	CodeOkTwoFactorDisabled = "ok_two_factor_disabled"

	// errors
	CodeErrorInvalidRequest       = "err_invalid_input"
	CodeErrorMissingFields        = "err_missing_fields"
	CodeErrorPasswordComplexity   = "err_password_complexity"
	CodeErrorEmailConflict        = "err_email_conflict"
	CodeErrorInvalidCredentials   = "err_invalid_credentials"
	CodeErrorAccountDisabled      = "err_account_disabled"
	CodeErrorTotpRequired         = "err_totp_required"
	CodeErrorTotpInvalid          = "err_totp_invalid"
	CodeErrorTotpNotSetup         = "err_totp_not_setup"
	CodeErrorNoAuthHeader         = "err_no_auth_header"
	CodeErrorInvalidTokenFormat   = "err_invalid_token_format"
	CodeErrorJwtInvalidSignMethod = "err_invalid_sign_method"
	CodeErrorJwtTokenExpired      = "err_token_expired"
	CodeErrorJwtInvalidToken      = "err_invalid_token"
	CodeErrorInvalidRefreshToken  = "err_invalid_refresh_token"
	CodeErrorResetTicketInvalid   = "err_invalid_reset_token"
	CodeErrorNotFound             = "err_not_found"
	CodeErrorTokenGeneration      = "err_token_generation"
	CodeErrorAuthDatabaseError    = "err_auth_database_error"
	CodeErrorMailDeliveryFailed   = "err_mail_delivery_failed"
	CodeErrorServiceUnavailable   = "err_service_unavailable"
	CodeErrorInvalidContentType   = "err_invalid_content_type"
)

// precomputeBasicResponse is executed during initialization (before main()
// runs): the JSON body is marshaled once and stored in the response
// variables as []byte. Any writeJsonError(w, response) in the handlers then
// simply writes the precomputed bytes, avoiding repeated marshaling on the
// request path.
func precomputeBasicResponse(status int, code, message string) jsonResponse {
	basic := JsonBasic{
		Status:  status,
		Code:    code,
		Message: message,
	}
	body, _ := json.Marshal(basic)
	return jsonResponse{status: status, body: body}
}

// Precomputed error and ok responses with status codes
var (
	// errors
	errorInvalidRequest     = precomputeBasicResponse(http.StatusBadRequest, CodeErrorInvalidRequest, "The request contains invalid data")
	errorMissingFields      = precomputeBasicResponse(http.StatusBadRequest, CodeErrorMissingFields, "Required fields are missing")
	errorPasswordComplexity = precomputeBasicResponse(http.StatusBadRequest, CodeErrorPasswordComplexity, "Password must be at least 8 characters with lowercase, uppercase, digit and symbol")
	errorEmailConflict      = precomputeBasicResponse(http.StatusConflict, CodeErrorEmailConflict, "Email address is already registered")

	// The credential error is deliberately identical for unknown email and
	// wrong password, so the response never confirms an account exists.
	errorInvalidCredentials   = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidCredentials, "Invalid credentials")
	errorAccountDisabled      = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorAccountDisabled, "Account disabled")
	errorTotpRequired         = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorTotpRequired, "TOTP required")
	errorTotpInvalid          = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorTotpInvalid, "Invalid TOTP")
	errorTotpNotSetup         = precomputeBasicResponse(http.StatusBadRequest, CodeErrorTotpNotSetup, "Two-factor setup has not been started")
	errorTotpCodeRejected     = precomputeBasicResponse(http.StatusBadRequest, CodeErrorTotpInvalid, "Invalid TOTP code")
	errorNoAuthHeader         = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorNoAuthHeader, "Authorization header is required")
	errorInvalidTokenFormat   = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidTokenFormat, "Invalid authorization token format")
	errorJwtInvalidSignMethod = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidSignMethod, "Invalid JWT signing method")
	errorJwtTokenExpired      = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtTokenExpired, "Authentication token has expired")
	errorJwtInvalidToken      = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorJwtInvalidToken, "Invalid authentication token")
	errorInvalidRefreshToken  = precomputeBasicResponse(http.StatusUnauthorized, CodeErrorInvalidRefreshToken, "Invalid refresh token")
	errorResetTicketInvalid   = precomputeBasicResponse(http.StatusBadRequest, CodeErrorResetTicketInvalid, "Invalid or expired token")
	errorNotFound             = precomputeBasicResponse(http.StatusNotFound, CodeErrorNotFound, "Requested resource not found")
	errorTokenGeneration      = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorTokenGeneration, "Failed to generate authentication token")
	errorAuthDatabaseError    = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorAuthDatabaseError, "Database error during authentication")
	errorMailDeliveryFailed   = precomputeBasicResponse(http.StatusInternalServerError, CodeErrorMailDeliveryFailed, "Failed to send email")
	errorServiceUnavailable   = precomputeBasicResponse(http.StatusServiceUnavailable, CodeErrorServiceUnavailable, "Service is temporarily unavailable")
	errorInvalidContentType   = precomputeBasicResponse(http.StatusUnsupportedMediaType, CodeErrorInvalidContentType, "Unsupported media type")

	// oks
	okLogout            = precomputeBasicResponse(http.StatusOK, CodeOkLogout, "Logged out successfully")
	okPasswordReset     = precomputeBasicResponse(http.StatusOK, CodeOkPasswordReset, "Password reset successfully")
	okForgotPassword    = precomputeBasicResponse(http.StatusOK, CodeOkForgotPassword, "If the email exists, password reset instructions have been sent")
	okTwoFactorEnabled  = precomputeBasicResponse(http.StatusOK, CodeOkTwoFactorEnabled, "Two-factor authentication enabled")
	okTwoFactorDisabled = precomputeBasicResponse(http.StatusOK, CodeOkTwoFactorDisabled, "Two-factor authentication disabled")
)
