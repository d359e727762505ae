package canon

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types that have a canonical encoding.
// Only Null, String, Exact, Int, Bool, Array and Object implement it.
type Value interface {
	canonValue()
}

// Null is the JSON null. It exists so decoded documents can be represented,
// but Marshal rejects it.
type Null struct{}

func (Null) canonValue() {}

// String is a JSON string.
type String string

func (String) canonValue() {}

// Exact is a JSON string written as given, without NFC normalization.
// Identifiers that are compared byte for byte elsewhere use it so that
// distinct values never share an encoding.
type Exact string

func (Exact) canonValue() {}

// Int is a JSON integer. Always int64.
type Int int64

func (Int) canonValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) canonValue() {}

// Array is an ordered list of values.
type Array []Value

func (Array) canonValue() {}

// Object maps string keys to values. Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) canonValue() {}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// This differs from sort.Strings for keys outside the BMP.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
