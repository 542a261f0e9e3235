package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fuzzint/internal/decimal"
	"github.com/roach88/fuzzint/internal/fuzzy"
	"github.com/roach88/fuzzint/internal/interval"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"empty string", "", `""`},
		{"int", 42, "42"},
		{"int64", int64(-100), "-100"},
		{"bool", true, "true"},
		{"empty array", []any{}, "[]"},
		{"string array", []string{"a", "b"}, `["a","b"]`},
		{"empty object", map[string]any{}, "{}"},
		{"decimal", decimal.MustParse("0.5000"), `"0.5"`},
		{"interval", interval.MustNew(decimal.MustParse("-1"), decimal.MustParse("2.50")), `"[-1, 2.5]"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestMarshalFuzzySet(t *testing.T) {
	f, err := fuzzy.Parse("{10, 2, 3}")
	require.NoError(t, err)
	got, err := Marshal(map[string]any{"result": f})
	require.NoError(t, err)
	assert.Equal(t, `{"result":"{10, 2, 3}"}`, string(got))
}

func TestMarshalSortedKeys(t *testing.T) {
	got, err := Marshal(map[string]any{
		"zebra": 1,
		"alpha": map[string]any{"b": 1, "a": 2},
		"beta":  3,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":2,"b":1},"beta":3,"zebra":1}`, string(got))
}

func TestMarshalUTF16Ordering(t *testing.T) {
	// U+10000 encodes as the surrogate pair D800 DC00, which sorts before
	// U+E000 in UTF-16 even though its UTF-8 bytes sort after.
	got, err := Marshal(map[string]any{
		"\uE000":     1,
		"\U00010000": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(got))
}

func TestMarshalNoHTMLEscape(t *testing.T) {
	got, err := Marshal("a < b && c > d")
	require.NoError(t, err)
	assert.Equal(t, `"a < b && c > d"`, string(got))
}

func TestMarshalLineSeparators(t *testing.T) {
	got, err := Marshal("a\u2028b\u2029c")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\u2029c\"", string(got))

	// A literal backslash followed by the text u2028 stays escaped.
	got, err = Marshal(`x\u2028`)
	require.NoError(t, err)
	assert.Equal(t, `"x\\u2028"`, string(got))
}

func TestMarshalNFC(t *testing.T) {
	composed, err := Marshal("caf\u00e9")
	require.NoError(t, err)
	decomposed, err := Marshal("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed, decomposed)
}

func TestMarshalRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
		msg   string
	}{
		{"nil", nil, "null"},
		{"float64", 3.14, "float"},
		{"float32", float32(1), "float"},
		{"nested float", map[string]any{"x": []any{1, 2.5}}, "float"},
		{"unsupported", struct{}{}, "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Marshal(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
