package utils

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

// NewErrorResponse creates a new ErrorResponse instance.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// SuccessResponse is returned by mutations that report nothing but success.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func NewSuccessResponse(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}
