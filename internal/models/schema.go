// Package models declares the entity kinds exchanged with the ad-management
// API. Each kind is a Record bound to a fixed Schema; the schemas are plain
// data and the Record type carries all of the behavior.
package models

import (
	"fmt"
	"slices"
)

// FieldType is the semantic type tag of a schema field.
type FieldType string

const (
	TypeInteger FieldType = "integer"
	TypeString  FieldType = "string"
	TypeDouble  FieldType = "double"
	// TypeDate fields hold a calendar date without a time zone.
	TypeDate FieldType = "date"
	// TypeCustom fields hold an opaque structured payload, e.g. a banner image.
	TypeCustom FieldType = "custom"
)

// Field is one named, typed entry of a Schema.
type Field struct {
	Name string
	Type FieldType
}

// Schema is an immutable, ordered table of the fields an entity kind may carry.
type Schema struct {
	name    string
	idField string
	fields  []Field
	types   map[string]FieldType
}

// NewSchema builds a schema for the named entity kind. idField names the
// integer field holding the remote identifier and may be empty for kinds
// without one. Duplicate field names are a declaration bug and panic.
func NewSchema(name, idField string, fields ...Field) *Schema {
	s := &Schema{
		name:    name,
		idField: idField,
		fields:  fields,
		types:   make(map[string]FieldType, len(fields)),
	}
	for _, f := range fields {
		if _, dup := s.types[f.Name]; dup {
			panic(fmt.Sprintf("models: duplicate field %q in %s schema", f.Name, name))
		}
		s.types[f.Name] = f.Type
	}
	if idField != "" && s.types[idField] != TypeInteger {
		panic(fmt.Sprintf("models: id field %q of %s schema must be an integer field", idField, name))
	}
	return s
}

// Name returns the entity kind, e.g. "campaign".
func (s *Schema) Name() string { return s.name }

// IDField returns the name of the identifier field, or "" if the kind has none.
func (s *Schema) IDField() string { return s.idField }

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field { return slices.Clone(s.fields) }

// Len returns the number of declared fields.
func (s *Schema) Len() int { return len(s.fields) }

// Has reports whether name is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.types[name]
	return ok
}

// FieldType returns the type tag of name or an *UnknownFieldError.
func (s *Schema) FieldType(name string) (FieldType, error) {
	t, ok := s.types[name]
	if !ok {
		return "", &UnknownFieldError{Entity: s.name, Field: name}
	}
	return t, nil
}
