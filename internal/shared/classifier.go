package shared

import "strings"

// Classifier reports whether a token belongs to a fixed set.
type Classifier func(token string) bool

// MakeClassifier builds a Classifier from a comma-separated token list.
//
// The set is a plain Go map, so tokens that happen to share a name with a
// method or field of some runtime type ("constructor", "__proto__") are never
// false positives.
//
// When caseInsensitive is set, tokens are lower-cased when the set is built
// AND the queried token is lower-cased on every lookup. MakeClassifier("A,B",
// true) therefore matches "a", "A", "b" and "B". Without the flag, both sides
// are compared verbatim.
func MakeClassifier(list string, caseInsensitive bool) Classifier {
	tokens := strings.Split(list, ",")
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if caseInsensitive {
			tok = strings.ToLower(tok)
		}
		set[tok] = struct{}{}
	}

	if caseInsensitive {
		return func(token string) bool {
			_, ok := set[strings.ToLower(token)]
			return ok
		}
	}
	return func(token string) bool {
		_, ok := set[token]
		return ok
	}
}

// IsBuiltInTag reports whether a component name collides with a built-in tag.
var IsBuiltInTag = MakeClassifier("slot,component", true)

// IsReservedAttribute reports whether a (hyphenated) key is reserved for the
// runtime and must not be used as a data or prop name.
var IsReservedAttribute = MakeClassifier("key,ref,slot,slot-scope,is", false)
