package handlers

const (
	LearnerCookieName = "ws_learner"
	CSRFFieldName     = "csrf_token"

	ErrInvalidFormData     = "Invalid form data"
	ErrInvalidCSRFToken    = "Invalid or missing CSRF token"
	ErrTooManyRequests     = "Too many requests. Please slow down."
	ErrNoLearner           = "Unable to identify learner"
	ErrInternalServerError = "Internal server error"
	ErrNotFound            = "Not found"
)
