package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField matches every *UnknownFieldError.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnsupportedEncoding matches every *UnsupportedEncodingError.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// UnknownFieldError is returned when a field name is not part of the
// entity's schema. It is a local programming error and never reaches the
// remote service.
type UnknownFieldError struct {
	Entity string
	Field  string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field %q", e.Entity, e.Field)
}

func (e *UnknownFieldError) Is(target error) bool { return target == ErrUnknownField }

// UnsupportedEncodingError is returned when a value cannot be represented in
// the wire format, either as the declared type of a field or as a call
// argument at all.
type UnsupportedEncodingError struct {
	// Field is empty for positional call arguments.
	Field string
	// Type is the declared type of Field, empty for call arguments.
	Type  FieldType
	Value any
}

func (e *UnsupportedEncodingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot encode value of type %T", e.Value)
	}
	return fmt.Sprintf("field %q: cannot encode value of type %T as %s", e.Field, e.Value, e.Type)
}

func (e *UnsupportedEncodingError) Is(target error) bool { return target == ErrUnsupportedEncoding }
