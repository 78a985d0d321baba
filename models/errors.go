package models

import "fmt"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeFetchTimeout     = "FETCH_TIMEOUT"
	ErrCodeFetchConnection  = "FETCH_CONNECTION_FAILED"
	ErrCodeFetchStatus      = "FETCH_BAD_STATUS"
	ErrCodeTooManyRedirects = "FETCH_TOO_MANY_REDIRECTS"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeSessionNotFound  = "SESSION_NOT_FOUND"
	ErrCodeResultNotReady   = "RESULT_NOT_READY"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternal         = "INTERNAL_ERROR"

	// LLM-related error codes for the insight generator.
	ErrCodeLLMFailure     = "LLM_FAILURE"
	ErrCodeLLMRateLimited = "LLM_RATE_LIMITED"
	ErrCodeLLMTimeout     = "LLM_TIMEOUT"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AnalysisError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type AnalysisError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError creates a new AnalysisError.
func NewAnalysisError(code, message string, err error) *AnalysisError {
	return &AnalysisError{Code: code, Message: message, Err: err}
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *AnalysisError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// UserMessage maps an internal error to the short, non-technical text
// stored in session state. Diagnostic detail never reaches the session.
func (e *AnalysisError) UserMessage() string {
	switch e.Code {
	case ErrCodeFetchTimeout:
		return "Website took too long to respond"
	case ErrCodeFetchConnection:
		return "Could not reach this website"
	case ErrCodeFetchStatus:
		return "Website returned an error page"
	case ErrCodeTooManyRedirects:
		return "Website redirected too many times"
	default:
		return "Analysis failed, please try again"
	}
}
