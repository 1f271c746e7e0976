package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "hotelcomp/internal/errors"
)

// Validator validates request structs using their validate tags and
// reports failures with JSON field paths
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the custom tags registered
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("dataset_file", isDatasetFile)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct and returns an *apierrors.APIError
// listing every failing field
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apierrors.InvalidRequestWithError(err)
	}

	out := make([]apierrors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apierrors.ValidationError{
			Field:   fieldPath(fe),
			Message: formatValidationError(fe),
		})
	}
	return apierrors.NewValidationErrors(out)
}

// fieldPath drops the root struct name from the namespace,
// e.g. "ComparisonRequest.records[2].rooms" becomes "records[2].rooms"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// ContentTypeValidator answers 415 unless a request with a body uses one
// of the given media types
func ContentTypeValidator(contentTypes ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			contentType := strings.ToLower(r.Header.Get("Content-Type"))
			for _, allowed := range contentTypes {
				if contentType != "" && strings.HasPrefix(contentType, allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}

			detail := "Content-Type header is required"
			if contentType != "" {
				detail = fmt.Sprintf("Content type %q is not accepted here", contentType)
			}
			problem := apierrors.NewProblemDetails(
				http.StatusUnsupportedMediaType,
				apierrors.TypeUnsupportedMedia,
				"Unsupported Media Type",
				detail,
				r.URL.Path,
			).WithExtension("allowed", contentTypes).
				WithExtension("trace_id", GetRequestID(r.Context()))
			_ = render.Render(w, r, problem)
		})
	}
}

// formatValidationError formats validation error messages
func formatValidationError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if err.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "dataset_file":
		return fmt.Sprintf("%s must be a .xlsx, .xlsm or .csv file name", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isDatasetFile accepts plain workbook or CSV file names
func isDatasetFile(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 255 {
		return false
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return false
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".csv":
		return true
	default:
		return false
	}
}
