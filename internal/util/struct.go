package util

import (
	"reflect"

	"github.com/pkg/errors"
)

// IsStructInitialized checks that no pointer, interface, map, slice or func
// field of the struct pointed to by v is nil. Fields tagged `wire:"-"` are skipped.
func IsStructInitialized(v any) error {
	value := reflect.ValueOf(v)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return errors.New("struct is nil")
		}
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return errors.Errorf("expected struct, got %s", value.Kind())
	}

	typ := value.Type()
	for i := range value.NumField() {
		field := typ.Field(i)
		if field.Tag.Get("wire") == "-" {
			continue
		}

		//nolint:exhaustive // other kinds can't be nil
		switch value.Field(i).Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if value.Field(i).IsNil() {
				return errors.Errorf("struct field %q is not initialized", field.Name)
			}
		}
	}

	return nil
}
