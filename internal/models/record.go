package models

import (
	"maps"
	"time"
)

// Entity is implemented by every entity kind. All kinds embed Record.
type Entity interface {
	AsRecord() *Record
}

// AddDefaulter is implemented by kinds that fill documented defaults before
// their first "add" call.
type AddDefaulter interface {
	SetDefaultForAdd()
}

// Entry is one set field of a Record.
type Entry struct {
	Name  string
	Value any
}

// Record is a sparse set of field values bound to one Schema. A field is
// either absent, explicitly null, or holds a value of its declared type.
// Every read and write is checked against the schema.
//
// Record is a value object and is not safe for concurrent mutation.
type Record struct {
	schema *Schema
	values map[string]any
}

// NewRecord returns an empty record bound to schema.
func NewRecord(schema *Schema) *Record {
	r := newRecord(schema)
	return &r
}

func newRecord(schema *Schema) Record {
	return Record{schema: schema, values: make(map[string]any)}
}

// AsRecord returns r. It is promoted to every kind embedding Record.
func (r *Record) AsRecord() *Record { return r }

// Schema returns the bound schema.
func (r *Record) Schema() *Schema { return r.schema }

// Kind returns the entity kind name.
func (r *Record) Kind() string { return r.schema.Name() }

// FieldType returns the type tag of name or an *UnknownFieldError.
func (r *Record) FieldType(name string) (FieldType, error) {
	return r.schema.FieldType(name)
}

// Set assigns value to name. A nil value marks the field as explicitly null.
// Date values are truncated to their calendar date.
func (r *Record) Set(name string, value any) error {
	t, err := r.schema.FieldType(name)
	if err != nil {
		return err
	}
	if !t.accepts(value) {
		return &UnsupportedEncodingError{Field: name, Type: t, Value: value}
	}
	switch v := value.(type) {
	case time.Time:
		value = CalendarDate(v)
	case *Image:
		if v == nil {
			value = nil
		} else {
			value = *v
		}
	}
	r.values[name] = value
	return nil
}

// Unset removes name so it is neither sent nor reported.
func (r *Record) Unset(name string) error {
	if _, err := r.schema.FieldType(name); err != nil {
		return err
	}
	delete(r.values, name)
	return nil
}

// Get returns the value of name. ok is false when the field is absent or null.
func (r *Record) Get(name string) (value any, ok bool, err error) {
	if _, err := r.schema.FieldType(name); err != nil {
		return nil, false, err
	}
	v, present := r.values[name]
	if !present || v == nil {
		return nil, false, nil
	}
	return v, true, nil
}

// IsSet reports whether name holds a non-null value.
func (r *Record) IsSet(name string) (bool, error) {
	_, ok, err := r.Get(name)
	return ok, err
}

// IsNull reports whether name was explicitly set to null.
func (r *Record) IsNull(name string) (bool, error) {
	if _, err := r.schema.FieldType(name); err != nil {
		return false, err
	}
	v, present := r.values[name]
	return present && v == nil, nil
}

// GetInt returns name as an int.
func (r *Record) GetInt(name string) (int, bool, error) {
	v, ok, err := r.Get(name)
	if !ok || err != nil {
		return 0, false, err
	}
	i, ok := AsInt(v)
	return i, ok, nil
}

// GetFloat returns name as a float64.
func (r *Record) GetFloat(name string) (float64, bool, error) {
	v, ok, err := r.Get(name)
	if !ok || err != nil {
		return 0, false, err
	}
	f, ok := AsFloat(v)
	return f, ok, nil
}

// GetString returns name as a string.
func (r *Record) GetString(name string) (string, bool, error) {
	v, ok, err := r.Get(name)
	if !ok || err != nil {
		return "", false, err
	}
	s, ok := v.(string)
	return s, ok, nil
}

// GetDate returns name as a calendar date. A hydrated time.Time keeps its
// clock and zone in the record so it round-trips; GetDate drops them.
func (r *Record) GetDate(name string) (time.Time, bool, error) {
	v, ok, err := r.Get(name)
	if !ok || err != nil {
		return time.Time{}, false, err
	}
	switch d := v.(type) {
	case time.Time:
		return CalendarDate(d), true, nil
	case string:
		t, err := ParseDate(d)
		if err != nil {
			return time.Time{}, false, err
		}
		return t, true, nil
	}
	return time.Time{}, false, nil
}

// ID returns the remote identifier, if the kind has one and it is set.
func (r *Record) ID() (int, bool) {
	if r.schema.IDField() == "" {
		return 0, false
	}
	id, ok, _ := r.GetInt(r.schema.IDField())
	return id, ok
}

// ReadDataFromArray copies every schema field present in wire, leaving the
// others untouched so a record can be hydrated incrementally. Values are
// taken as decoded by the transport, except date fields delivered as strings,
// which are parsed into calendar dates. Keys not in the schema are ignored.
// On error the record is left unchanged.
func (r *Record) ReadDataFromArray(wire map[string]any) error {
	staged := make(map[string]any, len(wire))
	for _, f := range r.schema.fields {
		v, ok := wire[f.Name]
		if !ok {
			continue
		}
		if s, isString := v.(string); isString && f.Type == TypeDate {
			d, err := ParseDate(s)
			if err != nil {
				return &UnsupportedEncodingError{Field: f.Name, Type: f.Type, Value: v}
			}
			v = d
		}
		staged[f.Name] = v
	}
	maps.Copy(r.values, staged)
	return nil
}

// ToArray returns the wire map of every set, non-null field. Image values are
// encoded to their wire struct.
func (r *Record) ToArray() map[string]any {
	out := make(map[string]any, len(r.values))
	for _, e := range r.Entries() {
		out[e.Name] = e.Value
	}
	return out
}

// Entries returns the set, non-null fields in schema declaration order, with
// values encoded as in ToArray.
func (r *Record) Entries() []Entry {
	entries := make([]Entry, 0, len(r.values))
	for _, f := range r.schema.fields {
		v, ok := r.values[f.Name]
		if !ok || v == nil {
			continue
		}
		entries = append(entries, Entry{Name: f.Name, Value: encodeCustom(v)})
	}
	return entries
}

// Clone returns an independent copy bound to the same schema. Nested custom
// payloads are shared.
func (r *Record) Clone() *Record {
	return &Record{schema: r.schema, values: maps.Clone(r.values)}
}

// setDefault assigns value to name when the field is absent or null.
func (r *Record) setDefault(name string, value any) {
	if v, ok := r.values[name]; ok && v != nil {
		return
	}
	if !r.schema.Has(name) {
		panic("models: default for undeclared field " + name)
	}
	r.values[name] = value
}

func encodeCustom(v any) any {
	if img, ok := v.(Image); ok {
		return img.Wire()
	}
	return v
}
