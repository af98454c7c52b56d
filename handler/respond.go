package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront-api/service"
)

const maxBodyBytes = 1 << 20

// --- helpers ---
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func writeFieldErrors(w http.ResponseWriter, fields []service.FieldError) {
	writeJSON(w, http.StatusBadRequest, map[string][]service.FieldError{"errors": fields})
}

// writeErr maps a service error to its status code. Anything unrecognised is a 500
// carrying failMsg and the error text.
func (h *Handler) writeErr(w http.ResponseWriter, r *http.Request, err error, failMsg string) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		writeFieldErrors(w, ve.Fields)
		return
	}

	var code int
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrInsufficientStock):
		code = http.StatusConflict
	default:
		h.logger.Error(failMsg,
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": failMsg, "error": err.Error()})
		return
	}
	writeMessage(w, code, err.Error())
}

// decodeJSON reads a single JSON object from the body into dst and validates it.
// It writes the 400 response itself and reports false on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		msg := "invalid json"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		writeFieldErrors(w, []service.FieldError{{Field: "body", Message: msg}})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeFieldErrors(w, fieldErrors(err))
		return false
	}
	return true
}

// pathID parses a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func fieldErrors(err error) []service.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []service.FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]service.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, service.FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Please enter a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
