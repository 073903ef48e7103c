package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ledgerlane/crm-api/internal/domain"
	"github.com/ledgerlane/crm-api/internal/service"
)

var validate = newValidator()

// newValidator reports field errors under their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondValidationError sends a 422 with one message per failing field
func respondValidationError(w http.ResponseWriter, err error) {
	fields := make(map[string]string)

	var ve validator.ValidationErrors
	var se *service.ValidationError
	switch {
	case errors.As(err, &ve):
		for _, fe := range ve {
			fields[fieldPath(fe)] = formatValidationError(fe)
		}
	case errors.As(err, &se):
		for k, msg := range se.Fields {
			fields[k] = msg
		}
	}

	respondJSON(w, http.StatusUnprocessableEntity, domain.APIError{
		Type:   domain.ErrorTypeValidation,
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
		Detail: "One or more fields failed validation",
		Errors: fields,
	})
}

// fieldPath drops the root struct name, so nested fields read like
// "scenarios[0].adjustment_factor"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("Must be a date in the format %s", fe.Param())
	default:
		return domain.GetValidationMessage(fe.Tag())
	}
}

// respondWithError sends a standardized JSON error response
func respondWithError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIError{
		Type:   getErrorType(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: message,
	})
}

func getErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return domain.ErrorTypeBadRequest
	case http.StatusNotFound:
		return domain.ErrorTypeNotFound
	case http.StatusConflict:
		return domain.ErrorTypeConflict
	case http.StatusUnprocessableEntity:
		return domain.ErrorTypeValidation
	default:
		return domain.ErrorTypeInternal
	}
}
