package dto

// APIResponse is the standard response envelope: exactly one of Data or
// Error is set.
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse represents a bare success message
type SuccessResponse struct {
	Message string `json:"message"`
}
