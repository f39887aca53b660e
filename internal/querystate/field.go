package querystate

import (
	"strconv"
	"strings"
)

// Kind is the value type of a bound field.
type Kind int

const (
	// KindString fields pass through verbatim.
	KindString Kind = iota
	// KindBool fields are serialized as "true" or "false".
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	default:
		return "string"
	}
}

// Field binds a view value to a URL query key.
type Field struct {
	Name     string
	Key      string
	Kind     Kind
	Default  string
	Remember bool

	get func() string
	set func(string)
}

// String declares a string field with accessor pair get/set.
func String(name, key, def string, get func() string, set func(string)) Field {
	return Field{Name: name, Key: key, Kind: KindString, Default: def, get: get, set: set}
}

// Bool declares a boolean field with accessor pair get/set.
func Bool(name, key string, def bool, get func() bool, set func(bool)) Field {
	return Field{
		Name:    name,
		Key:     key,
		Kind:    KindBool,
		Default: strconv.FormatBool(def),
		get:     func() string { return strconv.FormatBool(get()) },
		set: func(raw string) {
			if v, ok := parseBool(raw); ok {
				set(v)
			}
		},
	}
}

// Remembered marks the field so its value is saved to, and seeded from, the
// binder's fallback store.
func (f Field) Remembered() Field {
	f.Remember = true
	return f
}

// Value returns the field's current serialized value.
func (f Field) Value() string { return f.get() }

// IsDefault reports whether the current value equals the declared default.
func (f Field) IsDefault() bool { return f.get() == f.Default }

// apply sets the field from a raw value. Boolean fields ignore anything but a
// canonical literal and fall back to the default.
func (f Field) apply(raw string) {
	if f.Kind == KindBool {
		if _, ok := parseBool(raw); !ok {
			raw = f.Default
		}
	}
	f.set(raw)
}

func parseBool(raw string) (bool, bool) {
	switch {
	case strings.EqualFold(raw, "true"):
		return true, true
	case strings.EqualFold(raw, "false"):
		return false, true
	default:
		return false, false
	}
}
