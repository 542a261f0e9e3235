package decimal

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2", "2"},
		{" -0.125 ", "-0.125"},
		{"1E-3", "0.001"},
		{"1.500", "1.5"},
		{"100", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Format(d))
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "1.2.3", "NaN", "Infinity", "-Inf"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.Error(t, err)
		})
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
	assert.NotPanics(t, func() { MustParse("3.25") })
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		d    *apd.Decimal
		want string
	}{
		{"integer", apd.New(8, 0), "8"},
		{"trailing zeros", apd.New(5000, -4), "0.5"},
		{"positive exponent", apd.New(1, 2), "100"},
		{"negative", apd.New(-25, -1), "-2.5"},
		{"zero with scale", apd.New(0, -5), "0"},
		{"small", apd.New(3, -8), "0.00000003"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.d))
		})
	}
}

func TestFormat_NegativeZero(t *testing.T) {
	// Floor-rounded x - x yields -0 in apd.
	var d apd.Decimal
	x := apd.New(3, 0)
	_, err := Floor.Sub(&d, x, x)
	require.NoError(t, err)
	assert.Equal(t, "0", Format(&d))
}

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{-1, "1"},
		{0, "1"},
		{1, "1"},
		{5, "120"},
		{10, "3628800"},
		{25, "15511210043330985984000000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(Factorial(tt.n)), "n=%d", tt.n)
	}
}

func TestDirectedContexts(t *testing.T) {
	one, three := apd.New(1, 0), apd.New(3, 0)

	var lo, hi, mid apd.Decimal
	_, err := Floor.Quo(&lo, one, three)
	require.NoError(t, err)
	_, err = Ceiling.Quo(&hi, one, three)
	require.NoError(t, err)
	_, err = Nearest.Quo(&mid, one, three)
	require.NoError(t, err)

	assert.Equal(t, "0.3333333333333333", Format(&lo))
	assert.Equal(t, "0.3333333333333334", Format(&hi))
	assert.Equal(t, "0.3333333333333333", Format(&mid))
	assert.True(t, lo.Cmp(&hi) < 0)
}

func TestMinMax(t *testing.T) {
	a, b := apd.New(-2, 0), apd.New(7, -1)
	assert.Same(t, a, Min(a, b))
	assert.Same(t, b, Max(a, b))

	c := apd.New(-20, -1)
	assert.Same(t, a, Min(a, c), "ties keep the first argument")
	assert.Same(t, a, Max(a, c), "ties keep the first argument")
}

func TestClone_Independent(t *testing.T) {
	a := apd.New(42, 0)
	b := Clone(a)
	b.SetInt64(7)
	assert.Equal(t, "42", Format(a))
}
