package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Error codes carried in ErrorResponse.Error
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeExtractionFailed = "EXTRACTION_FAILED"
	ErrCodeUpstreamFailed   = "UPSTREAM_FAILED"
	ErrCodeInternal         = "INTERNAL_ERROR"
)
