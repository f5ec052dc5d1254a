package ir

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/facet/internal/shared"
)

func TestValueSealed(t *testing.T) {
	var _ Value = Null{}
	var _ Value = String("test")
	var _ Value = Int(42)
	var _ Value = Float(1.5)
	var _ Value = Bool(true)
	var _ Value = Array{String("a"), Int(1)}
	var _ Value = Object{"key": String("value")}
	var _ shared.Nuller = Null{}
}

func TestObjectSortedKeys(t *testing.T) {
	obj := Object{
		"zebra":  String("z"),
		"apple":  String("a"),
		"banana": String("b"),
	}
	assert.Equal(t, []string{"apple", "banana", "zebra"}, obj.SortedKeys())
}

func TestObjectSortedKeysRFC8785Order(t *testing.T) {
	obj := Object{"a": Int(1), "A": Int(2), "aa": Int(3), "aA": Int(4), "Aa": Int(5), "AA": Int(6)}

	// 'A' = 65, 'a' = 97
	assert.Equal(t, []string{"A", "AA", "Aa", "a", "aA", "aa"}, obj.SortedKeys())
}

func TestObjectSortedKeysUTF16(t *testing.T) {
	// U+1F600 encodes as surrogates 0xD83D 0xDE00, which sort before U+FF01
	// in UTF-16 even though its UTF-8 bytes sort after.
	obj := Object{"\uFF01": Int(1), "\U0001F600": Int(2)}
	assert.Equal(t, []string{"\U0001F600", "\uFF01"}, obj.SortedKeys())
}

func TestObjectClone(t *testing.T) {
	orig := Object{"list": Array{Int(1)}, "nested": Object{"x": Int(1)}}
	clone := orig.Clone()

	clone["list"].(Array)[0] = Int(99)
	clone["nested"].(Object)["x"] = Int(99)

	assert.Equal(t, Int(1), orig["list"].(Array)[0])
	assert.Equal(t, Int(1), orig["nested"].(Object)["x"])
	assert.Equal(t, Object{}, Object(nil).Clone())
}

func TestFromGo(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{name: "nil", in: nil, want: Null{}},
		{name: "string", in: "hi", want: String("hi")},
		{name: "int", in: 3, want: Int(3)},
		{name: "uint8", in: uint8(7), want: Int(7)},
		{name: "integral float", in: 2.0, want: Int(2)},
		{name: "fraction", in: 2.5, want: Float(2.5)},
		{name: "bool", in: true, want: Bool(true)},
		{name: "json int", in: json.Number("12"), want: Int(12)},
		{name: "json float", in: json.Number("1.25"), want: Float(1.25)},
		{name: "time", in: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), want: String("2026-01-02T03:04:05Z")},
		{name: "value passthrough", in: String("x"), want: String("x")},
		{name: "slice", in: []any{1, "a"}, want: Array{Int(1), String("a")}},
		{name: "typed slice", in: []string{"a", "b"}, want: Array{String("a"), String("b")}},
		{name: "map", in: map[string]any{"n": 1}, want: Object{"n": Int(1)}},
		{name: "typed map", in: map[string]int{"n": 1}, want: Object{"n": Int(1)}},
		{name: "nil pointer", in: (*int)(nil), want: Null{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromGo(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromGoRejectsUnsupported(t *testing.T) {
	_, err := FromGo(map[int]string{1: "a"})
	assert.Error(t, err)

	_, err = FromGo(func() {})
	assert.Error(t, err)

	_, err = FromGo([]any{1, make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[1]")
}

func TestToGo(t *testing.T) {
	v := Object{
		"s": String("a"),
		"i": Int(1),
		"f": Float(1.5),
		"b": Bool(true),
		"n": Null{},
		"l": Array{Int(2)},
	}
	assert.Equal(t, map[string]any{
		"s": "a",
		"i": int64(1),
		"f": 1.5,
		"b": true,
		"n": nil,
		"l": []any{int64(2)},
	}, ToGo(v))
}

func TestUnmarshalValue(t *testing.T) {
	v, err := UnmarshalValue([]byte(`{"count": 1, "price": 9.99, "tags": ["a"], "none": null}`))
	require.NoError(t, err)

	assert.Equal(t, Object{
		"count": Int(1),
		"price": Float(9.99),
		"tags":  Array{String("a")},
		"none":  Null{},
	}, v)
}

func TestUnmarshalValueErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "{", `{"a":1} {"b":2}`} {
		_, err := UnmarshalValue([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestObjectUnmarshalJSON(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"a": [1, true]}`), &obj))
	assert.Equal(t, Object{"a": Array{Int(1), Bool(true)}}, obj)

	var notObj Object
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &notObj))

	var arr Array
	require.NoError(t, json.Unmarshal([]byte(`["x"]`), &arr))
	assert.Equal(t, Array{String("x")}, arr)
}

func TestLooseEqualOverValues(t *testing.T) {
	assert.True(t, shared.LooseEqual(Int(1), String("1")))
	assert.True(t, shared.LooseEqual(Float(1), Int(1)))
	assert.True(t, shared.LooseEqual(Array{Int(1), Int(2)}, []any{1, 2}))
	assert.True(t, shared.LooseEqual(Object{"a": Int(1)}, map[string]any{"a": "1"}))
	assert.True(t, shared.LooseEqual(Null{}, Null{}))
	assert.False(t, shared.LooseEqual(Null{}, Object{}))
	assert.False(t, shared.LooseEqual(Null{}, nil))
}

func TestDisplayAndTypeName(t *testing.T) {
	assert.Equal(t, "3", Display(Int(3)))
	assert.Equal(t, "", Display(Null{}))
	assert.Equal(t, "number", TypeName(Float(1)))
	assert.Equal(t, "undefined", TypeName(nil))
	assert.Equal(t, "object", TypeName(Object{}))
}
