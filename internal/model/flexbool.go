package model

import "strings"

// FlexBool is a flag as serialised by the order service, which does not
// guarantee a native boolean: the same field may arrive as true, "true" or 1.
// Absent and null values are distinct from an explicit false, so that a
// decision that has not been made yet is never reported as a negative one.
type FlexBool struct {
	set   bool
	value bool
}

// FlexTrue returns an explicitly-set true flag.
func FlexTrue() FlexBool {
	return FlexBool{set: true, value: true}
}

// FlexFalse returns an explicitly-set false flag.
func FlexFalse() FlexBool {
	return FlexBool{set: true, value: false}
}

// FlexUnset returns a flag with no decision recorded.
func FlexUnset() FlexBool {
	return FlexBool{}
}

// True reports whether the flag is explicitly set to true.
// Unset and unknown values normalise to false.
func (b FlexBool) True() bool {
	return b.set && b.value
}

// False reports whether the flag does not hold true.
// This is the normalising predicate: unset counts as false.
func (b FlexBool) False() bool {
	return !b.True()
}

// IsSet reports whether the flag carries an explicit value.
func (b FlexBool) IsSet() bool {
	return b.set
}

// UnmarshalJSON accepts booleans, "true"/"false" strings and 0/1 numbers.
// Null and unrecognised encodings normalise to unset rather than erroring.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true", `"true"`, "1", `"1"`:
		*b = FlexTrue()
	case "false", `"false"`, "0", `"0"`:
		*b = FlexFalse()
	default:
		*b = FlexUnset()
	}
	return nil
}

// MarshalJSON emits a plain boolean, or null when unset.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	if !b.set {
		return []byte("null"), nil
	}
	if b.value {
		return []byte("true"), nil
	}
	return []byte("false"), nil
}
