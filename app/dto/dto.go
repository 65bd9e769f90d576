// Package dto contains request and response data transfer objects
package dto

// APIResponse is the standard response envelope
type APIResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail provides structured error information
type ErrorDetail struct {
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse creates a successful API response
func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrorResponse creates an error API response
func ErrorResponse(message, code string, details interface{}) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Error: &ErrorDetail{
			Code:    code,
			Details: details,
		},
	}
}
