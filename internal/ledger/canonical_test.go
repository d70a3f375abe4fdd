package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_SortsKeysUTF16(t *testing.T) {
	obj := Object{
		"b":    Int(2),
		"a":    Int(1),
		"ａ": Int(3), // fullwidth 'a' sorts after ASCII in UTF-16
	}

	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"ａ":3}`, string(out))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	out, err := MarshalCanonical(Object{"msg": String(`<a&b>`)})
	require.NoError(t, err)
	assert.Equal(t, `{"msg":"<a&b>"}`, string(out))
}

func TestMarshalCanonical_NFCNormalization(t *testing.T) {
	// "é" as combining sequence (e + U+0301) must normalize to the
	// precomposed form U+00E9.
	decomposed := "é"
	out, err := MarshalCanonical(String(decomposed))
	require.NoError(t, err)
	assert.Equal(t, "\"é\"", string(out))
}

func TestMarshalCanonical_EscapesControlCharacters(t *testing.T) {
	out, err := MarshalCanonical(String("line1\nline2\x01"))
	require.NoError(t, err)
	assert.Equal(t, "\"line1\\nline2\\u0001\"", string(out))
}

func TestMarshalCanonical_NestedStructures(t *testing.T) {
	obj := Object{
		"ops": Array{
			Object{"type": String("transfer"), "amount": Int(10)},
			Object{"type": String("secret_proof")},
		},
		"confirmed": Bool(true),
	}

	out, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t,
		`{"confirmed":true,"ops":[{"amount":10,"type":"transfer"},{"type":"secret_proof"}]}`,
		string(out))
}

func TestToValue_RejectsFloats(t *testing.T) {
	_, err := ToValue(map[string]any{"fee": 1.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")
}

func TestToValue_RejectsNull(t *testing.T) {
	_, err := ToValue(map[string]any{"fee": nil})
	require.Error(t, err)
}

func TestToValue_ConvertsNestedMaps(t *testing.T) {
	val, err := ToValue(map[string]any{
		"name":  "ga-tree",
		"count": 3,
		"tags":  []any{"a", "b"},
	})
	require.NoError(t, err)

	obj, ok := val.(Object)
	require.True(t, ok)
	assert.Equal(t, String("ga-tree"), obj["name"])
	assert.Equal(t, Int(3), obj["count"])
	assert.Equal(t, Array{String("a"), String("b")}, obj["tags"])
}
