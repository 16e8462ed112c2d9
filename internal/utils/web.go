package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/form/v4"
	internal_errors "github.com/itchan-dev/forum/internal/errors"
	"github.com/itchan-dev/forum/internal/logger"
)

// formDecoder is safe for concurrent use and caches struct metadata.
var formDecoder = form.NewDecoder()

type Validator interface {
	Struct(s any) error
}

type validationResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if ve, ok := internal_errors.AsValidation(err); ok {
		WriteJSONStatus(w, http.StatusUnprocessableEntity, validationResponse{
			Message: "The given data was invalid.",
			Errors:  ve.Fields,
		})
		return
	}
	var e *internal_errors.ErrorWithStatusCode
	if errors.As(err, &e) {
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	// default error is 500
	logger.Log.Error("internal error", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func WriteJSON(w http.ResponseWriter, v any) {
	WriteJSONStatus(w, http.StatusOK, v)
}

func WriteJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// DecodeValidate fills body from a JSON or form-encoded request and validates it.
func DecodeValidate(r *http.Request, body any, v Validator) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	return v.Struct(body)
}

// Decode fills body from a JSON or form-encoded request without validating it.
// A value of the wrong type is reported as a field error, not as a malformed body.
func Decode(r *http.Request, body any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid form", StatusCode: http.StatusBadRequest}
		}
		return decodeForm(r.PostForm, body)
	default:
		if r.Body == nil {
			return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
		}
		err := json.NewDecoder(r.Body).Decode(body)
		if err == nil {
			return nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return invalidField(typeErr.Field)
		}
		logger.Log.Debug("invalid json body", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
}

func decodeForm(values url.Values, body any) error {
	err := formDecoder.Decode(body, values)
	if err == nil {
		return nil
	}
	var decodeErrs form.DecodeErrors
	if errors.As(err, &decodeErrs) {
		result := &internal_errors.ValidationError{}
		for field := range decodeErrs {
			result.Add(field, invalidMessage(field))
		}
		return result
	}
	logger.Log.Debug("invalid form body", "error", err)
	return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid form", StatusCode: http.StatusBadRequest}
}

func invalidField(field string) *internal_errors.ValidationError {
	return internal_errors.NewValidationError(field, invalidMessage(field))
}

func invalidMessage(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", strings.ReplaceAll(field, "_", " "))
}
