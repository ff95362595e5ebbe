package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies a business failure so the HTTP layer can map it to a
// status code without inspecting error strings.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindInternal
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Details []FieldError
}

func (e *AppError) Error() string {
	return e.Code
}

func ErrValidation(code, message string, details ...FieldError) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message, Details: details}
}

func ErrNotFound(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrForbidden(code, message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: code, Message: message}
}

func ErrConflict(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func Is(err error, code string) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func status(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps an AppError to its status code. Anything else is an
// unexpected persistence failure: logged, surfaced generically.
func WriteError(c *gin.Context, err error) {
	var ae *AppError
	if errors.As(err, &ae) {
		c.JSON(status(ae.Kind), HTTPError{
			Code:    ae.Code,
			Message: ae.Message,
			Details: ae.Details,
		})
		return
	}

	log.Printf("unexpected error: %v", err)
	Internal(c, "internal_error", "Erro interno.")
}
