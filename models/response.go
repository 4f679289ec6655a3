package models

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

const (
	ErrClassValidation     = "validation_error"
	ErrClassAuthentication = "authentication_error"
	ErrClassNotFound       = "not_found"
	ErrClassRateLimited    = "too_many_requests"
	ErrClassStore          = "store_error"
)
