package shared

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type null struct{}

func (null) IsNull() bool { return true }

type point struct {
	X, Y int
}

type hidden struct {
	Name   string
	secret int
}

func TestLooseEqual(t *testing.T) {
	shared := []any{1, 2}
	sharedMap := map[string]any{"a": 1}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{name: "number and numeric string", a: 1, b: "1", want: true},
		{name: "float and int", a: 1.0, b: 1, want: true},
		{name: "float and string", a: 1.5, b: "1.5", want: true},
		{name: "bool and string", a: true, b: "true", want: true},
		{name: "different primitives", a: 1, b: 2, want: false},
		{name: "same sequence", a: []any{1, 2}, b: []any{1, 2}, want: true},
		{name: "sequence order matters", a: []any{1, 2}, b: []any{2, 1}, want: false},
		{name: "sequence length differs", a: []any{1, 2}, b: []any{1, 2, 3}, want: false},
		{name: "typed and untyped sequences", a: []int{1, 2}, b: []any{"1", "2"}, want: true},
		{name: "array and slice", a: [2]int{1, 2}, b: []int{1, 2}, want: true},
		{name: "same slice reference", a: shared, b: shared, want: true},
		{name: "mapping key order irrelevant", a: map[string]any{"a": 1, "b": 2}, b: map[string]any{"b": 2, "a": 1}, want: true},
		{name: "mapping value differs", a: map[string]any{"a": 1}, b: map[string]any{"a": 2}, want: false},
		{name: "mapping keys differ", a: map[string]any{"a": 1}, b: map[string]any{"b": 1}, want: false},
		{name: "mapping extra key", a: map[string]any{"a": 1}, b: map[string]any{"a": 1, "b": 2}, want: false},
		{name: "same map reference", a: sharedMap, b: sharedMap, want: true},
		{name: "nested", a: map[string]any{"list": []any{1, map[string]any{"x": "y"}}}, b: map[string]any{"list": []any{"1", map[string]any{"x": "y"}}}, want: true},
		{name: "sequence vs mapping", a: []any{1, 2}, b: map[string]any{"0": 1, "1": 2}, want: false},
		{name: "int-keyed map vs string-keyed map", a: map[int]any{0: 1}, b: map[string]any{"0": 1}, want: true},
		{name: "struct vs map", a: point{X: 1, Y: 2}, b: map[string]any{"X": 1, "Y": 2}, want: true},
		{name: "struct pointer vs struct", a: &point{X: 1, Y: 2}, b: point{X: 1, Y: 2}, want: true},
		{name: "same dates", a: time.Unix(0, 0), b: time.Unix(0, 0).UTC(), want: true},
		{name: "different dates", a: time.Unix(0, 0), b: time.Unix(1, 0), want: false},
		{name: "date vs mapping", a: time.Unix(0, 0), b: map[string]any{}, want: false},
		{name: "composite vs primitive", a: []any{1}, b: "1", want: false},
		{name: "primitive vs composite", a: "a", b: map[string]any{}, want: false},
		{name: "nil and nil", a: nil, b: nil, want: true},
		{name: "nil and null", a: nil, b: null{}, want: false},
		{name: "null and null string", a: null{}, b: "null", want: true},
		{name: "nil and undefined string", a: nil, b: "undefined", want: true},
		{name: "null vs empty mapping", a: null{}, b: map[string]any{}, want: false},
		{name: "nil pointer is null", a: (*point)(nil), b: null{}, want: true},
		{name: "NaN and NaN", a: math.NaN(), b: math.NaN(), want: true},
		{name: "nil slice vs empty slice", a: []any(nil), b: []any{}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooseEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, LooseEqual(tt.b, tt.a), "must be symmetric")
		})
	}
}

func TestLooseEqual_UnexportedFieldsIgnored(t *testing.T) {
	assert.True(t, LooseEqual(hidden{Name: "a", secret: 1}, hidden{Name: "a", secret: 2}))
	assert.False(t, LooseEqual(hidden{Name: "a"}, hidden{Name: "b"}))
}

func TestLooseEqual_OpaqueStructs(t *testing.T) {
	one, two := big.NewInt(1), big.NewInt(2)

	assert.False(t, LooseEqual(one, two))
	assert.False(t, LooseEqual(one, big.NewInt(1)), "no exported state to compare")
	assert.True(t, LooseEqual(one, one))
	assert.True(t, LooseEqual(struct{}{}, struct{}{}))
}

type node struct {
	Next *node
	V    int
}

func TestLooseEqual_TraversalFailureIsFalse(t *testing.T) {
	// func values are neither comparable nor composite.
	fa := map[string]any{"f": func() {}}
	fb := map[string]any{"f": func() {}}
	assert.NotPanics(t, func() { LooseEqual(fa, fb) })

	selfA := map[string]any{}
	selfA["self"] = selfA
	selfB := map[string]any{}
	selfB["self"] = selfB

	ringA := &node{V: 1}
	ringA.Next = ringA
	ringB := &node{V: 1}
	ringB.Next = ringB

	seqA := make([]any, 1)
	seqA[0] = seqA
	seqB := make([]any, 1)
	seqB[0] = seqB

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"cyclic maps", selfA, selfB, false},
		{"cyclic pointers", ringA, ringB, false},
		{"cyclic slices", seqA, seqB, false},
		{"cyclic map against itself", selfA, selfA, true},
		{"cyclic pointer against itself", ringA, ringA, true},
		{"cycle nested in a sequence", []any{selfA}, []any{selfB}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooseEqual(tt.a, tt.b))
		})
	}
}

func TestLooseEqual_SharedReferencesAreNotCycles(t *testing.T) {
	leafA := map[string]any{"k": 1}
	leafB := map[string]any{"k": "1"}
	a := map[string]any{"x": leafA, "y": leafA}
	b := map[string]any{"x": leafB, "y": leafB}

	assert.True(t, LooseEqual(a, b))
	assert.True(t, LooseEqual([]any{leafA, leafA}, []any{leafB, leafB}))
}

func TestLooseIndexOf(t *testing.T) {
	list := []any{1, "two", []any{3}, map[string]any{"k": 4}}

	assert.Equal(t, 0, LooseIndexOf(list, "1"))
	assert.Equal(t, 1, LooseIndexOf(list, "two"))
	assert.Equal(t, 2, LooseIndexOf(list, []int{3}))
	assert.Equal(t, 3, LooseIndexOf(list, map[string]any{"k": "4"}))
	assert.Equal(t, -1, LooseIndexOf(list, 5))
	assert.Equal(t, -1, LooseIndexOf([]any{}, 1))
}

func TestLooseIndexOf_FirstMatchWins(t *testing.T) {
	assert.Equal(t, 1, LooseIndexOf([]string{"0", "1", "1"}, 1))
}
