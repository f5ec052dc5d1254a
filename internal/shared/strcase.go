package shared

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	camelizeRE  = regexp.MustCompile(`-(\w)`)
	hyphenateRE = regexp.MustCompile(`\B([A-Z])`)
)

// Camelize converts a hyphen-delimited string to camelCase: "foo-bar" -> "fooBar".
var Camelize = Cached(func(s string) string {
	return camelizeRE.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
})

// Capitalize upper-cases the first character: "foo" -> "Foo".
//
// Uses full Unicode special casing, so a leading "ß" becomes "SS".
var Capitalize = Cached(func(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	// Casers are stateful; one per call keeps Capitalize goroutine-safe.
	return cases.Upper(language.Und).String(s[:size]) + s[size:]
})

// Hyphenate converts a camelCase string to hyphen-delimited lower case:
// "fooBar" -> "foo-bar".
var Hyphenate = Cached(func(s string) string {
	return strings.ToLower(hyphenateRE.ReplaceAllString(s, "-$1"))
})
