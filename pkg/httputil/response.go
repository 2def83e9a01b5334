package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yhonatan-qoretechnology/Bookmy-Admin-2026/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Debug   interface{} `json:"debug,omitempty"`
}

// Pagination mirrors the pagination metadata the booking API returns.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Items           interface{} `json:"items"`
	Pagination      Pagination  `json:"pagination"`
	FallbackApplied bool        `json:"fallback_applied"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 success response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	RespondWithErrorDebug(c, err, nil)
}

// RespondWithErrorDebug sends an error response carrying a debug snapshot.
// The reservation wizard uses this to surface the attempted payload when a
// submission fails.
func RespondWithErrorDebug(c *gin.Context, err error, debug interface{}) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		statusCode = appErr.HTTPStatus()
		message = appErr.Message
	} else if err != nil {
		message = err.Error()
	}

	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    statusCode,
			Message: message,
			Debug:   debug,
		},
	})
}

// RespondWithPagination sends a paginated response
func RespondWithPagination(c *gin.Context, items interface{}, p Pagination, fallbackApplied bool) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: PaginatedResponse{
			Items:           items,
			Pagination:      p,
			FallbackApplied: fallbackApplied,
		},
	})
}
