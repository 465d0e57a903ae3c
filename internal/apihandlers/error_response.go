package apihandlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sousnote/internal/store"
)

// APIError defines the standard error response
// Example: { "error": { "code": "bad_request", "message": "Invalid ID" } }
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error APIError `json:"error"`
}

// JSONError sends a structured error response
func JSONError(ctx *gin.Context, status int, code, msg string) {
	ctx.JSON(status, errorResponse{Error: APIError{Code: code, Message: msg}})
}

// Convenience wrappers
func BadRequest(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusBadRequest, "bad_request", msg)
}

func NotFound(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusNotFound, "not_found", msg)
}

func Internal(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusInternalServerError, "internal_error", msg)
}

func Conflict(ctx *gin.Context, msg string) {
	JSONError(ctx, http.StatusConflict, "conflict", msg)
}

// FromStoreError maps store sentinel errors onto the right HTTP status,
// falling back to a 500.
func FromStoreError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		NotFound(ctx, err.Error())
	case errors.Is(err, store.ErrTaskIndexOutOfRange):
		BadRequest(ctx, err.Error())
	case errors.Is(err, store.ErrDuplicate), errors.Is(err, store.ErrConflict):
		Conflict(ctx, err.Error())
	default:
		Internal(ctx, err.Error())
	}
}
