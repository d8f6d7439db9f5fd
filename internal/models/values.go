package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the canonical calendar-day format.
const DayLayout = "2006-01-02"

// dateLayouts lists the encodings a remote date may arrive in, most specific
// first. The first is XML-RPC's dateTime.iso8601.
var dateLayouts = []string{
	"20060102T15:04:05",
	"20060102T15:04:05Z07:00",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DayLayout,
}

// NewDate returns the calendar date y-m-d.
func NewDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDate drops the clock and zone of t, keeping the wall-clock date.
func CalendarDate(t time.Time) time.Time {
	return NewDate(t.Date())
}

// ParseDate parses a remote date string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatDay renders a date value (time.Time or remote date string) as YYYY-MM-DD.
func FormatDay(v any) (string, error) {
	switch d := v.(type) {
	case time.Time:
		return d.Format(DayLayout), nil
	case *time.Time:
		if d == nil {
			return "", fmt.Errorf("nil date")
		}
		return d.Format(DayLayout), nil
	case string:
		t, err := ParseDate(d)
		if err != nil {
			return "", err
		}
		return t.Format(DayLayout), nil
	default:
		return "", fmt.Errorf("cannot interpret %T as a date", v)
	}
}

// AsInt converts a decoded wire value to an int. Transports differ in the Go
// type they decode integers to; floats are accepted only when integral.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case float32:
		if float64(n) == math.Trunc(float64(n)) {
			return int(n), true
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

// AsFloat converts a decoded wire value to a float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, true
		}
	}
	if i, ok := AsInt(v); ok {
		return float64(i), true
	}
	return 0, false
}

// AsBool converts a decoded wire value to a bool. The remote service answers
// some boolean procedures with 0/1 integers.
func AsBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		if p, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return p, true
		}
	}
	if i, ok := AsInt(v); ok {
		return i != 0, true
	}
	return false, false
}

// accepts reports whether v may be stored in a field of type t.
func (t FieldType) accepts(v any) bool {
	if v == nil {
		return true
	}
	switch t {
	case TypeInteger:
		switch v.(type) {
		case int, int8, int16, int32, int64, uint8, uint16, uint32:
			return true
		}
	case TypeDouble:
		switch v.(type) {
		case float32, float64, int, int8, int16, int32, int64, uint8, uint16, uint32:
			return true
		}
	case TypeString:
		_, ok := v.(string)
		return ok
	case TypeDate:
		_, ok := v.(time.Time)
		return ok
	case TypeCustom:
		switch v.(type) {
		case Image, *Image, map[string]any:
			return true
		}
	}
	return false
}
