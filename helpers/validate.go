package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/UmangSachdeva/StaffPortal/apperror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the `validate` tags on v and reports the first failing field.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.Validation("%s is invalid (%s)", lowerFirst(fe.Field()), fe.Tag())
	}

	return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
}

// DecodeJSON reads a JSON body into v and validates it.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.Validation("Request body is required")
		case errors.As(err, &maxErr):
			return apperror.Validation("Request body too large")
		default:
			return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
		}
	}

	return Validate(v)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
