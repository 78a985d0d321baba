package models

// AnalyzeAccepted is the immediate response for POST /api/v1/analyze.
type AnalyzeAccepted struct {
	SessionID string        `json:"session_id"`
	Status    SessionStatus `json:"status"`
	Message   string        `json:"message"`
}

// ProgressResponse is the response for GET /api/v1/analyze/:id/progress.
type ProgressResponse struct {
	SessionID string        `json:"session_id"`
	Status    SessionStatus `json:"status"`
	Progress  int           `json:"progress"`
	Message   string        `json:"message"`
}

// ErrorResponse wraps an ErrorDetail for non-2xx API responses.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status         string `json:"status"` // "healthy" or "degraded"
	Uptime         string `json:"uptime"`
	ActiveSessions int    `json:"active_sessions"`
	StoredAnalyses int    `json:"stored_analyses"`
	Version        string `json:"version"`
}
