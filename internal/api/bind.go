package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/lalith-99/lawdesk/internal/apperr"
	"github.com/lalith-99/lawdesk/internal/models"
)

func init() {
	// Update payloads are allow-lists: a key the struct does not declare
	// is rejected instead of silently dropped.
	binding.EnableDecoderDisallowUnknownFields = true

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// bindJSON decodes the body into dst, runs its binding tags and then its
// own Validate method. Every failure comes back as an apperr validation error.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return bindError(err)
	}
	if v, ok := dst.(models.Validator); ok {
		return v.Validate()
	}
	return nil
}

func bindError(err error) error {
	var (
		verrs   validator.ValidationErrors
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		fields := make([]apperr.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperr.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
		}
		return apperr.NewValidationErrors(fields)
	case errors.As(err, &typeErr):
		return apperr.NewValidationError(typeErr.Field, "Must be a "+typeErr.Type.Kind().String())
	case errors.As(err, &synErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperr.Invalid("Malformed JSON body")
	case errors.Is(err, io.EOF):
		return apperr.Invalid("Request body is required")
	}

	if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		return apperr.NewValidationError(strings.Trim(field, `"`), "Unknown field")
	}
	return apperr.Invalid("Invalid request body: " + err.Error())
}

// fieldPath drops the root struct name: "InvoiceInput.line_items[0].rate"
// becomes "line_items[0].rate".
func fieldPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	label := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Valid email is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	}
	return label + " is invalid"
}

// humanize turns "first_name" into "First name".
func humanize(field string) string {
	if field == "" {
		return "Value"
	}
	s := strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}
