package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// Report the wire name (json, then mapstructure) instead of the Go field name.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "mapstructure"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
}

// FieldError describes the first failing rule of a struct.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Message() string {
	switch e.Tag {
	case "required":
		return "missing required field: " + e.Field
	case "oneof":
		return fmt.Sprintf("field %s must be one of [%s]", e.Field, e.Param)
	case "min", "gte":
		return fmt.Sprintf("field %s must be at least %s", e.Field, e.Param)
	case "max", "lte":
		return fmt.Sprintf("field %s must be at most %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("field %s failed %s validation", e.Field, e.Tag)
	}
}

// FirstError validates s and returns the first failing field, if any.
func FirstError(s interface{}) (*FieldError, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return nil, err
	}
	first := validationErrs[0]
	return &FieldError{Field: first.Field(), Tag: first.Tag(), Param: first.Param()}, nil
}

func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return err
		}
		var errMsgs []string
		for _, err := range validationErrs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				"Field: %s, Tag: %s, Param: %s", err.Namespace(), err.Tag(), err.Param(),
			))
		}
		return fmt.Errorf("validation failed: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}
