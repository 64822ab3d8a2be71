package shared

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	m "inkfolio/internal/models"
)

// Classification is the reportable form of a failed operation: an HTTP status,
// a stable machine code, and a human-readable detail.
type Classification struct {
	Status int
	Code   string
	Detail string
}

// Classify maps a propagated failure to its reportable classification. It runs
// exactly once per failed operation, at the handler boundary. Ownership
// mismatches get a distinct client-error bucket rather than the generic 503,
// and partial writes are kept apart from clean failures so operators can
// trigger reconciliation.
func Classify(err error) Classification {
	var partial *m.PartialWriteError

	switch {
	case errors.As(err, &partial):
		return Classification{http.StatusServiceUnavailable, "PARTIAL_WRITE", partial.Error()}
	case errors.Is(err, m.ErrNotFound):
		return Classification{http.StatusNotFound, "NOT_FOUND", err.Error()}
	case errors.Is(err, m.ErrOwnershipMismatch):
		return Classification{http.StatusForbidden, "FORBIDDEN", err.Error()}
	case errors.Is(err, m.ErrUnauthorized):
		return Classification{http.StatusUnauthorized, "UNAUTHORIZED", err.Error()}
	case errors.Is(err, m.ErrValidation):
		return Classification{http.StatusBadRequest, "VALIDATION_ERROR", err.Error()}
	default:
		return Classification{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", err.Error()}
	}
}

// SendDomainError renders a classified failure. Validator errors keep their
// field-level details; everything else carries the classification detail.
func SendDomainError(c *gin.Context, err error) {
	if fieldErrors := FormatValidationErrors(err); len(fieldErrors) > 0 {
		SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", fieldErrors)
		return
	}

	cls := Classify(err)

	SendError(c, cls.Status, cls.Code, []ValidationError{
		{
			Field:   fieldFor(cls.Code),
			Message: cls.Detail,
		},
	})
}

func fieldFor(code string) string {
	switch code {
	case "NOT_FOUND":
		return "resource"
	case "FORBIDDEN":
		return "owner"
	case "UNAUTHORIZED":
		return "auth"
	case "VALIDATION_ERROR":
		return "request"
	default:
		return "server"
	}
}
