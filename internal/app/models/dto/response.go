package dto

import "time"

// APIResponse is the standard success envelope for API endpoints.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2026-01-12T12:01:05.123Z"`
}

// SuccessResponse represents a bare confirmation message.
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginationInfo carries paging metadata for list endpoints.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"7"`
	PageSize    int   `json:"pageSize" example:"20"`
	TotalItems  int64 `json:"totalItems" example:"132"`
}

// PaginatedResponse wraps a list payload with its paging metadata.
type PaginatedResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
	Timestamp  time.Time      `json:"timestamp"`
}
