package shared

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Remove returns list without the first occurrence of item. The input slice
// is reused.
func Remove[T comparable](list []T, item T) []T {
	for i, v := range list {
		if v == item {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Extend copies every entry of from into to and returns to. A nil to is
// allocated.
func Extend[K comparable, V any](to, from map[K]V) map[K]V {
	if to == nil {
		to = make(map[K]V, len(from))
	}
	for k, v := range from {
		to[k] = v
	}
	return to
}

// IsPrimitive reports whether v is a string, number or boolean.
func IsPrimitive(v any) bool {
	rv := deref(reflect.ValueOf(v))
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ToDisplayString converts a value to the text that is actually rendered.
// nil and null render empty; sequences and mappings render as indented JSON;
// everything else uses its primitive string form.
func ToDisplayString(v any) string {
	rv := deref(reflect.ValueOf(v))
	if v == nil || isNull(v, rv) {
		return ""
	}
	if isComposite(v, rv) && !isDate(rv) {
		b, err := json.MarshalIndent(v, "", "  ")
		if err == nil {
			return string(b)
		}
	}
	return primitiveString(v, rv)
}

var numberPrefixRE = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ToNumber parses the leading number of s, ignoring leading whitespace and
// trailing garbage ("12px" -> 12). If no number can be read, s itself is
// returned unchanged.
func ToNumber(s string) any {
	m := numberPrefixRE.FindString(strings.TrimLeft(s, " \t\n\r\f\v"))
	if m == "" {
		return s
	}
	switch m {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return s
	}
	return f
}

// FormatNumber renders a float the way a display layer expects: integral
// values without a fraction, exponent form only below 1e-6 or from 1e21.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// Go pads the exponent to two digits ("1e-07"); trim it to "1e-7".
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
