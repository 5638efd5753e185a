package fastly

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// The API is inconsistent about scalar encodings: depending on the age of
// the endpoint, booleans arrive as true/false or 0/1 or "0"/"1", and
// numbers arrive bare or quoted. The Flex types below absorb every
// variant so each resource struct can stay a plain typed record.

// FlexBool decodes JSON booleans that may be encoded as a bool, a number,
// or a numeric string.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "true", "1":
		*f = true
	case "false", "0", "null", "":
		*f = false
	default:
		return fmt.Errorf("fastly: cannot decode %q as bool", s)
	}
	return nil
}

// Bool returns the underlying value.
func (f FlexBool) Bool() bool {
	return bool(f)
}

// FlexInt decodes JSON numbers that may arrive bare or quoted.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" || s == "" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("fastly: cannot decode %q as int: %w", s, err)
	}
	*f = FlexInt(n)
	return nil
}

// Int returns the underlying value.
func (f FlexInt) Int() int {
	return int(f)
}

// unmarshalTuple decodes a fixed-length JSON array into the given
// targets. A few check endpoints return positional arrays instead of
// objects.
func unmarshalTuple(data []byte, targets []any) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, target := range targets {
		if i >= len(raw) {
			break
		}
		if err := json.Unmarshal(raw[i], target); err != nil {
			return err
		}
	}
	return nil
}
