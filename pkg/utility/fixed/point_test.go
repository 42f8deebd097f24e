package fixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint_arithmetic(t *testing.T) {
	a := FromFloat64(1.5)
	b := FromFloat64(0.5)

	assert.Equal(t, "2.0", a.Add(b).String())
	assert.Equal(t, "1.0", a.Sub(b).String())
	assert.Equal(t, "0.75", a.Mul(b).String())
	assert.True(t, a.Div(b).Eq(FromInt(3, 0)))
	assert.Equal(t, "3.0", a.MulInt64(2).String())
}

func TestPoint_comparisons(t *testing.T) {
	assert.True(t, One.Lt(Two))
	assert.True(t, Two.Gt(One))
	assert.True(t, One.Gte(One))
	assert.True(t, One.Lte(One))
	assert.True(t, FromInt64(10, 1).Eq(One))

	assert.True(t, Zero.IsZero())
	assert.True(t, One.Neg().IsNeg())
	assert.True(t, One.IsPos())
}

func TestPoint_quantize(t *testing.T) {
	tick := FromFloat64(0.5)

	tests := []struct {
		in       float64
		expected string
	}{
		{105.3, "105.5"},
		{105.2, "105.0"},
		{105.76, "106.0"},
		{-1.3, "-1.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FromFloat64(tt.in).Quantize(tick).String())
	}

	// A zero tick leaves the price untouched.
	assert.Equal(t, "105.3", FromFloat64(105.3).Quantize(Zero).String())
}

func TestPoint_floorInt64(t *testing.T) {
	assert.Equal(t, "2", FromFloat64(2.9).Floor().String())
	assert.Equal(t, "-3", FromFloat64(-2.1).Floor().String())
	assert.EqualValues(t, 2, FromFloat64(2.9).Int64())
}

func TestPoint_minMax(t *testing.T) {
	assert.True(t, Min(One, Two).Eq(One))
	assert.True(t, Max(One, Two).Eq(Two))
	assert.True(t, Min(Two, One).Eq(One))
	assert.True(t, Max(Two, One).Eq(Two))
}

func TestPoint_fromString(t *testing.T) {
	p, err := FromString("123.45")
	require.NoError(t, err)
	assert.Equal(t, "123.45", p.String())

	_, err = FromString("not a number")
	require.Error(t, err)
}
