package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"opticrm/internal/domain"
	"opticrm/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const genericMessage = "an unexpected error occurred"

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Details   any    `json:"details,omitempty"`
}

// FieldError names one rejected field and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		RequestID: middleware.GetRequestID(c),
		Details:   details,
	})
}

// RespondDomainError maps domain errors to HTTP responses. Internal details
// never reach the client.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		var verr domain.ValidationError
		errors.As(err, &verr)
		var details any
		if verr.Field != "" {
			details = []FieldError{{Field: verr.Field, Rule: "invalid"}}
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case domain.IsForeignKey(err):
		respondError(c, http.StatusBadRequest, "invalid_reference", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", genericMessage, nil)
	}
}

// respondBindError reports a body or query that failed decoding or rules.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		respondError(c, http.StatusBadRequest, "validation_error", "request validation failed", details)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		respondError(c, http.StatusBadRequest, "validation_error", "request validation failed",
			[]FieldError{{Field: typeErr.Field, Rule: "type"}})
		return
	}
	respondError(c, http.StatusBadRequest, "validation_error", "malformed request: "+err.Error(), nil)
}
