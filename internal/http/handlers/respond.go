package handlers

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/portfoliohub/internal/actorctx"
	"github.com/geocoder89/portfoliohub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// APIError is the body of every failed response. Errors is only set for validation failures.
type APIError struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	RequestID string       `json:"requestId,omitempty"`
	Errors    []FieldError `json:"errors,omitempty"`
}

func RespondError(ctx *gin.Context, status int, code, message string, errs []FieldError) {
	ctx.AbortWithStatusJSON(status, APIError{
		Code:      code,
		Message:   message,
		RequestID: middlewares.RequestIDFrom(ctx),
		Errors:    errs,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, nil)
}

func RespondValidation(ctx *gin.Context, errs []FieldError) {
	RespondError(ctx, http.StatusBadRequest, "validation_failed", "Validation failed", errs)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, "unauthorized", message, nil)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

// RespondConflict covers duplicate names and deletes blocked by dependents. Clients
// of this API expect those as 400, not 409.
func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, "conflict", message, nil)
}

// RespondInternal logs err under op and answers with a generic message.
func RespondInternal(ctx *gin.Context, op string, err error) {
	rctx := ctx.Request.Context()
	attrs := append([]any{"op", op, "err", err}, actorctx.LogAttrs(rctx)...)
	slog.Default().ErrorContext(rctx, "request failed", attrs...)

	RespondError(ctx, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
}
