package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Inputs carry two extra struct tags: `label` names the field in messages and
// `invalid` replaces the default message for any rule other than required.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		return f.Name
	})
	return v
}

// checkInput validates in and turns the first failing rule into a validation error.
func checkInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return unexpected(err)
	}

	fe := fieldErrs[0]
	if fe.Tag() == "required" {
		return validationError(fe.Field() + " is required")
	}

	t := reflect.TypeOf(in)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if sf, ok := t.FieldByName(fe.StructField()); ok {
		if msg := sf.Tag.Get("invalid"); msg != "" {
			return validationError(msg)
		}
	}
	return validationError(fe.Field() + " is invalid")
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
