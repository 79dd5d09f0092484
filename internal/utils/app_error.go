package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Sandeep010-hub/promptcraft-fusion/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies a failure for the client.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNotFound     ErrorKind = "not_found"
	KindUpstream     ErrorKind = "upstream"
	KindInternal     ErrorKind = "internal"
)

// InternalErrorMessage is what the client sees for any unclassified failure.
const InternalErrorMessage = "Internal server error"

// AppError carries the status and client-facing message of a failure. Err
// holds the cause, which is logged but never sent to the client.
type AppError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, StatusCode: http.StatusBadRequest}
}

func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message, StatusCode: http.StatusUnauthorized}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, StatusCode: http.StatusNotFound}
}

// Upstream wraps a failure of the store, the object storage or the text
// generation API behind a generic message.
func Upstream(err error, message string) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, StatusCode: http.StatusInternalServerError, Err: err}
}

// AbortWithError writes the {error} body for err and aborts the chain.
// Unclassified errors become a 500 with a generic message.
func AbortWithError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Kind: KindInternal, Message: InternalErrorMessage, StatusCode: http.StatusInternalServerError, Err: err}
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.Log.Error(appErr.Message,
			zap.String("request_id", c.GetString("RequestID")),
			zap.String("path", c.Request.URL.Path),
			zap.String("kind", string(appErr.Kind)),
			zap.Error(appErr.Err),
		)
	}

	c.AbortWithStatusJSON(appErr.StatusCode, NewErrorResponse(appErr.Message))
}
