package metadata

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the declared semantic type of a tag value.
type Kind int

const (
	KindAbsent Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "absent"
	}
}

// Value is an optional, typed tag value.
type Value struct {
	kind Kind
	num  float64
	text string
}

// NumberValue wraps a numeric tag value.
func NumberValue(v float64) Value { return Value{kind: KindNumber, num: v} }

// TextValue wraps a textual tag value.
func TextValue(s string) Value { return Value{kind: KindText, text: s} }

// Absent is the value returned for tags that are not present.
func Absent() Value { return Value{} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) Present() bool { return v.kind != KindAbsent }

// Text returns the textual form of the value. Numbers are formatted without
// trailing zeros; absent values yield false.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindText:
		return v.text, true
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Number returns the value as a real number. Text is parsed after trimming;
// text that is empty after trimming reports empty=true with a zero number.
func (v Value) Number() (num float64, empty bool, err error) {
	switch v.kind {
	case KindNumber:
		return v.num, false, nil
	case KindText:
		trimmed := strings.TrimSpace(v.text)
		if trimmed == "" {
			return 0, true, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false, fmt.Errorf("parse %q as number: %w", v.text, err)
		}
		return parsed, false, nil
	default:
		return 0, false, errValueAbsent
	}
}

// Int returns the value as an integer. Numbers must be integral and text must
// parse as a base-10 integer.
func (v Value) Int() (int, error) {
	switch v.kind {
	case KindNumber:
		if v.num != float64(int(v.num)) {
			return 0, fmt.Errorf("number %v is not integral", v.num)
		}
		return int(v.num), nil
	case KindText:
		parsed, err := strconv.Atoi(strings.TrimSpace(v.text))
		if err != nil {
			return 0, fmt.Errorf("parse %q as integer: %w", v.text, err)
		}
		return parsed, nil
	default:
		return 0, errValueAbsent
	}
}

func (v Value) String() string {
	if text, ok := v.Text(); ok {
		return text
	}
	return "<absent>"
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and absent
// values as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		return json.Marshal(v.num)
	case KindText:
		return json.Marshal(v.text)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}

// FromAny converts a decoded JSON scalar into a Value. Booleans and other
// composite values are kept as their textual form.
func FromAny(raw any) Value {
	switch typed := raw.(type) {
	case nil:
		return Absent()
	case float64:
		return NumberValue(typed)
	case int:
		return NumberValue(float64(typed))
	case int64:
		return NumberValue(float64(typed))
	case json.Number:
		if f, err := typed.Float64(); err == nil {
			return NumberValue(f)
		}
		return TextValue(typed.String())
	case string:
		return TextValue(typed)
	default:
		return TextValue(fmt.Sprint(typed))
	}
}
