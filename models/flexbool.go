package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// FlexBool is a boolean flag tolerant of the loosely-typed representations
// the upstream store has used over time: native booleans, the strings
// "true"/"1", and the number 1 all decode to true. Everything else,
// including null and empty string, decodes to false.
type FlexBool bool

// CoerceFlag normalizes an arbitrary loosely-typed flag value to a boolean.
// Applied once at the data-access boundary so downstream logic only ever
// sees a real boolean.
func CoerceFlag(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s == "true" || s == "1"
	case int:
		return t == 1
	case int64:
		return t == 1
	case float64:
		return t == 1
	case json.Number:
		return t.String() == "1"
	default:
		return false
	}
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		*b = false
		return nil
	}
	*b = FlexBool(CoerceFlag(raw))
	return nil
}

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

// Scan implements sql.Scanner, accepting the same loose representations
// from the database driver.
func (b *FlexBool) Scan(src interface{}) error {
	if src == nil {
		*b = false
		return nil
	}
	if raw, ok := src.([]byte); ok {
		*b = FlexBool(CoerceFlag(string(raw)))
		return nil
	}
	*b = FlexBool(CoerceFlag(src))
	return nil
}

// Value implements driver.Valuer.
func (b FlexBool) Value() (driver.Value, error) {
	return bool(b), nil
}

// Bool returns the plain boolean value.
func (b FlexBool) Bool() bool {
	return bool(b)
}
