package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mytheresa/interior-catalog/app/logger"
	"github.com/mytheresa/interior-catalog/app/validator"
	"github.com/mytheresa/interior-catalog/models"
)

type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeUnprocessable    ErrorCode = "UNPROCESSABLE"
	CodeUpstream         ErrorCode = "UPSTREAM_ERROR"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// AppError is an error with an HTTP status and a client-facing message.
type AppError struct {
	Code    ErrorCode
	Message string
	Status  int
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewError(code ErrorCode, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

func Wrap(err error, code ErrorCode, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

func BadRequest(message string) *AppError {
	return NewError(CodeBadRequest, message, http.StatusBadRequest)
}

func NotFound(message string) *AppError {
	return NewError(CodeNotFound, message, http.StatusNotFound)
}

func Upstream(err error) *AppError {
	return Wrap(err, CodeUpstream, "AI provider request failed", http.StatusBadGateway)
}

// Reference reports a lookup miss on a record referenced by the request
// body as 422 rather than 404. Other errors pass through.
func Reference(err error, notFound error) error {
	if errors.Is(err, notFound) {
		return Wrap(err, CodeUnprocessable, capitalize(notFound.Error()), http.StatusUnprocessableEntity)
	}
	return err
}

var notFoundErrors = []error{
	models.ErrTenantNotFound,
	models.ErrCategoryNotFound,
	models.ErrSubCategoryNotFound,
	models.ErrColorNotFound,
	models.ErrMaterialNotFound,
	models.ErrMaterialCategoryNotFound,
	models.ErrMaterialTypeNotFound,
	models.ErrTextureNotFound,
	models.ErrStyleNotFound,
	models.ErrRoomProfileNotFound,
}

// FromError classifies err into an AppError.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		e := Wrap(err, CodeValidationFailed, "Validation failed", http.StatusBadRequest)
		e.Details = vErr.Errors
		return e
	}

	for _, nf := range notFoundErrors {
		if errors.Is(err, nf) {
			return Wrap(err, CodeNotFound, capitalize(nf.Error()), http.StatusNotFound)
		}
	}
	switch {
	case errors.Is(err, models.ErrDuplicateSlug):
		return Wrap(err, CodeConflict, "Slug already exists", http.StatusConflict)
	case errors.Is(err, models.ErrInUse):
		return Wrap(err, CodeConflict, "Record is still referenced", http.StatusConflict)
	case errors.Is(err, models.ErrMissingReference):
		return Wrap(err, CodeUnprocessable, "Referenced record does not exist", http.StatusUnprocessableEntity)
	}
	return Wrap(err, CodeInternal, "Internal server error", http.StatusInternalServerError)
}

// WriteError renders err as {"error", "code", "details"} with its mapped
// status. Server-side failures are logged with the request context.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
	}

	body := map[string]any{
		"error": appErr.Message,
		"code":  appErr.Code,
	}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	JSONResponse(w, appErr.Status, body)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
