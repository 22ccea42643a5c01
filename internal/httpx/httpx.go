// Package httpx holds the JSON plumbing shared by both HTTP services:
// response writing, the error envelope, and request body decoding with
// struct-tag validation.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkordes/bluelotus-quotes/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope: {"error":{"code":..,"message":..}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// WriteError maps err to a status code and writes the error envelope.
// 5xx errors are logged with the request context.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := Classify(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	WriteJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: Message(err)}})
}

// Classify returns the HTTP status and envelope code for err.
func Classify(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, "service_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// Message extracts the human-readable part of a wrapped error.
// e.g. "service.QuoteService.Submit: validation error: id must be a positive integer"
// becomes "id must be a positive integer", and a wrapped NotFoundError becomes
// "vendor not found: Acme". Internal errors keep their text without the
// operation prefixes.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}

	for _, sentinel := range []error{
		domain.ErrValidation,
		domain.ErrBadRequest,
		domain.ErrConflict,
		domain.ErrUnavailable,
	} {
		if !errors.Is(err, sentinel) {
			continue
		}
		if detail, ok := domain.Detail(err, sentinel); ok {
			return detail
		}
		break
	}
	return stripOps(err.Error())
}

// stripOps drops leading "pkg.Type.Method: " segments.
func stripOps(msg string) string {
	for {
		op, rest, ok := strings.Cut(msg, ": ")
		if !ok || !strings.Contains(op, ".") || strings.ContainsAny(op, " \t") {
			return msg
		}
		msg = rest
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate runs the struct-tag rules on v. Failures wrap domain.ErrValidation
// with one problem per field.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, fieldProblem(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
}

func fieldProblem(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// DecodeJSON reads a JSON body into dst and validates it. A missing or
// malformed body wraps domain.ErrValidation; an oversize body returns the
// *http.MaxBytesError unchanged.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body is required", domain.ErrValidation)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytes):
			return err
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is required", domain.ErrValidation)
		default:
			return fmt.Errorf("%w: invalid JSON body: %v", domain.ErrValidation, err)
		}
	}
	return Validate(dst)
}
