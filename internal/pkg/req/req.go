/*
Package req provides helper functions for HTTP request parsing, data binding and validation.

JSON bodies are decoded strictly and validated with struct tags. Every failure is reported as an
errs.CustomError carrying human-readable messages, ready to be written back to the client.
*/
package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"batepapo/internal/pkg/errs"
)

// MaxBodySize bounds every JSON request body (64 KB).
const MaxBodySize int64 = 64 << 10

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// BindJSON decodes the JSON request body into dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return withDetails(errs.ErrUnsupportedMediaType, `"Content-Type" must be application/json`)
	}

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return withDetails(errs.ErrInvalidJSONFormat, describeDecodeError(err))
	}

	if decoder.More() {
		return withDetails(errs.ErrExtraContentInBody, "request body must contain a single JSON object")
	}

	return nil
}

// Validate checks dst against its `validate` struct tags and reports every failing field at once.
func Validate(dst any) *errs.CustomError {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValidationError([]string{err.Error()})
	}

	return errs.NewValidationError(lo.Map(fieldErrs, func(fe validator.FieldError, _ int) string {
		return describeFieldError(fe)
	}))
}

// BindAndValidate decodes the body into dst, then validates it.
func BindAndValidate(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	if customErr := BindJSON(w, r, dst); customErr != nil {
		return customErr
	}
	return Validate(dst)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q failed on the '%s' rule", fe.Field(), fe.Tag())
	}
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%q must be a %s", typeErr.Field, typeErr.Type.Kind())
	case errors.As(err, &maxErr):
		return fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return fmt.Sprintf("%s is not allowed", strings.TrimPrefix(err.Error(), "json: unknown field "))
	default:
		return "request body must be valid JSON"
	}
}

func withDetails(code int, messages ...string) *errs.CustomError {
	customErr := errs.NewError(code)
	customErr.Details = messages
	return customErr
}
