package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualScalars(t *testing.T) {
	tests := []struct {
		name string
		a    *Value
		b    *Value
		want bool
	}{
		{"null_null", NewNull(), NewNull(), true},
		{"null_bool", NewNull(), NewBool(false), false},
		{"bool_same", NewBool(true), NewBool(true), true},
		{"bool_diff", NewBool(true), NewBool(false), false},
		{"int_same", NewInt(42), NewIntFromString("42", false), true},
		{"int_sign", NewInt(-42), NewInt(42), false},
		{"int_digit_strings_literal", NewIntFromString("007", false), NewIntFromString("7", false), false},
		{"int_big", NewIntFromString("1267650600228229401496703205376", false), NewIntFromString("1267650600228229401496703205376", false), true},
		{"float_same", NewFloat(3.14), NewFloat(3.14), true},
		{"float_diff", NewFloat(3.14), NewFloat(2.71), false},
		{"float_nan_nan", NewFloat(math.NaN()), NewFloat(math.NaN()), true},
		{"float_nan_num", NewFloat(math.NaN()), NewFloat(0), false},
		{"float_inf", NewFloat(math.Inf(1)), NewFloat(math.Inf(1)), true},
		{"float_inf_sign", NewFloat(math.Inf(1)), NewFloat(math.Inf(-1)), false},
		{"int_vs_float", NewInt(1), NewFloat(1), false},
		{"string_same", NewString("a"), NewString("a"), true},
		{"string_diff", NewString("a"), NewString("b"), false},
		{"bytes_same", NewBytes([]byte{1, 2}), BytesFromHex("0102"), true},
		{"bytes_diff_len", NewBytes([]byte{1}), NewBytes([]byte{1, 2}), false},
		{"bytes_empty", NewBytes(nil), BytesFromHex(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, Equal(tt.b, tt.a), "equality must be symmetric")
		})
	}
}

func TestEqualContainers(t *testing.T) {
	t.Run("array_order_matters", func(t *testing.T) {
		a := ArrayOf(NewInt(1), NewInt(2))
		b := ArrayOf(NewInt(2), NewInt(1))
		assert.False(t, Equal(a, b))
	})

	t.Run("object_order_ignored", func(t *testing.T) {
		a := NewObject().Set("x", NewInt(1)).Set("y", NewInt(2))
		b := NewObject().Set("y", NewInt(2)).Set("x", NewInt(1))
		assert.True(t, Equal(a, b))
	})

	t.Run("object_key_sets_must_match", func(t *testing.T) {
		a := NewObject().Set("x", NewInt(1))
		b := NewObject().Set("y", NewInt(1))
		assert.False(t, Equal(a, b))
	})

	t.Run("nested_nan_equal", func(t *testing.T) {
		a := NewObject().Set("v", ArrayOf(NewFloat(math.NaN())))
		b := NewObject().Set("v", ArrayOf(NewFloat(math.NaN())))
		assert.True(t, Equal(a, b))
	})

	t.Run("reflexive", func(t *testing.T) {
		v := NewObject().Set("a", ArrayOf(NewNull(), NewBool(true)))
		assert.True(t, Equal(v, v))
	})
}

func TestObjectSetReplacesInPlace(t *testing.T) {
	obj := NewObject().
		Set("a", NewInt(1)).
		Set("b", NewInt(2)).
		Set("a", NewInt(3))

	require.Equal(t, 2, obj.Len())

	pairs := obj.Pairs()
	assert.Equal(t, "a", pairs[0].Key)
	assert.True(t, Equal(NewInt(3), pairs[0].Value), "duplicate key must replace in place")
	assert.Equal(t, "b", pairs[1].Key)

	got, ok := obj.Get("a")
	require.True(t, ok)
	assert.True(t, Equal(NewInt(3), got))
}

func TestDebugString(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", NewNull(), "null"},
		{"true", NewBool(true), "true"},
		{"int", NewInt(42), "42n"},
		{"int_negative", NewIntFromString("17", true), "-17n"},
		{"float", NewFloat(2.5), "2.5"},
		{"nan", NewFloat(math.NaN()), "NaN"},
		{"infinity", NewFloat(math.Inf(1)), "Infinity"},
		{"neg_infinity", NewFloat(math.Inf(-1)), "-Infinity"},
		{"string", NewString("hi"), `"hi"`},
		{"bytes", BytesFromHex("b0b5"), "<b0b5>"},
		{"empty_bytes", NewBytes(nil), "<>"},
		{"array", ArrayOf(NewInt(1), NewString("x")), `[1n, "x"]`},
		{"object", NewObject().Set("a", NewInt(1)).Set("b", NewBool(false)), "{a: 1n, b: false}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "object", Object.String())
	assert.Equal(t, "bytes", NewBytes([]byte{0}).Kind().String())
}
