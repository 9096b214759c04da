package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the closed set of value shapes a custom field can hold. Raw input
// is checked against the field's declared type once, at the parsing boundary;
// after that a Value is always well formed for its kind.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindInt
	KindBool
	KindDate
	KindStrings
	KindRaw
)

type Value struct {
	Kind Kind

	Str  string
	Num  float64
	Int  int
	Bool bool
	Strs []string
	Raw  interface{}
}

// ParseValue checks raw input against the value domain of the given field
// type. An unknown field type never fails: the value is carried as-is and
// rendered raw, the same fallback the dashboard's field renderer used.
func ParseValue(fieldType string, raw interface{}) (Value, error) {
	switch fieldType {
	case TypeCheckbox:
		b, ok := raw.(bool)
		if !ok {
			return Value{}, fmt.Errorf("checkbox field wants a boolean, got %T", raw)
		}
		return Value{Kind: KindBool, Bool: b}, nil

	case TypeProgressManual, TypeProgressAuto:
		n, err := toInt(raw)
		if err != nil {
			return Value{}, fmt.Errorf("progress field: %v", err)
		}
		if n < 0 || n > 100 {
			return Value{}, fmt.Errorf("progress must be between 0 and 100, got %d", n)
		}
		return Value{Kind: KindInt, Int: n}, nil

	case TypeRating:
		n, err := toInt(raw)
		if err != nil {
			return Value{}, fmt.Errorf("rating field: %v", err)
		}
		if n < 1 || n > 5 {
			return Value{}, fmt.Errorf("rating must be between 1 and 5, got %d", n)
		}
		return Value{Kind: KindInt, Int: n}, nil

	case TypeNumber, TypeMoney:
		f, err := toFloat(raw)
		if err != nil {
			return Value{}, fmt.Errorf("numeric field: %v", err)
		}
		return Value{Kind: KindNumber, Num: f}, nil

	case TypeDate:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("date field wants an ISO date string, got %T", raw)
		}
		if _, err := parseISODate(s); err != nil {
			return Value{}, err
		}
		return Value{Kind: KindDate, Str: s}, nil

	case TypeText, TypeTextArea, TypeWebsite, TypeEmail, TypePhone, TypeLocation, TypeDropdown:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("%s field wants a string, got %T", fieldType, raw)
		}
		return Value{Kind: KindString, Str: s}, nil

	case TypeLabels, TypePeople:
		switch v := raw.(type) {
		case []string:
			return Value{Kind: KindStrings, Strs: v}, nil
		case []interface{}:
			strs := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return Value{}, fmt.Errorf("%s field wants strings, got %T", fieldType, item)
				}
				strs = append(strs, s)
			}
			return Value{Kind: KindStrings, Strs: strs}, nil
		default:
			return Value{}, fmt.Errorf("%s field wants an array of strings, got %T", fieldType, raw)
		}

	default:
		return Value{Kind: KindRaw, Raw: raw}, nil
	}
}

// Render produces the display representation of a value. Raw values fall back
// to fmt formatting.
func (v Value) Render() string {
	switch v.Kind {
	case KindString, KindDate:
		return v.Str
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindInt:
		return strconv.Itoa(v.Int)
	case KindBool:
		if v.Bool {
			return "yes"
		}
		return "no"
	case KindStrings:
		return strings.Join(v.Strs, ", ")
	default:
		if v.Raw == nil {
			return ""
		}
		return fmt.Sprintf("%v", v.Raw)
	}
}

func parseISODate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q", s)
	}
	return t, nil
}

func toInt(raw interface{}) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("want an integer, got %v", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("want an integer, got %T", raw)
	}
}

func toFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("want a number, got %T", raw)
	}
}
