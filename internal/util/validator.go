package util

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator, reporting fields by their JSON name
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})

	return validate
}

// EchoValidator adapts Validator to echo.Validator
type EchoValidator struct{}

var _ echo.Validator = EchoValidator{}

func (EchoValidator) Validate(i any) error {
	return ValidateStruct(i)
}

// ValidateStruct validates i if it is a struct or pointer to a struct; other values pass
func ValidateStruct(i any) error {
	value := reflect.ValueOf(i)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}

	if err := Validator().Struct(i); err != nil {
		return errors.Wrap(err, "validation failed")
	}

	return nil
}
