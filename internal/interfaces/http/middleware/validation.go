package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/eyedist/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors name fields by their json or
// form tag
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	}
	return name
}

// ValidationDetails turns validator errors into per-field details. It
// returns nil for any other error.
func ValidationDetails(err error) []dto.ValidationDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]dto.ValidationDetail, 0, len(verrs))
	for _, e := range verrs {
		details = append(details, dto.ValidationDetail{
			Field:   fieldPath(e),
			Message: validationMessage(e),
		})
	}
	return details
}

// fieldPath drops the struct name so items[0].quantity reads like the JSON
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " item(s)"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Invalid UUID format"
	case "oneof":
		return "Must be one of: " + e.Param()
	case "datetime":
		return "Must be a date in the format " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "lte":
		return "Must be less than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	default:
		return "Invalid value"
	}
}
