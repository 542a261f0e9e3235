package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Fixtures(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "fuzzy_load.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "fuzzy_load", s.Name)
	assert.Equal(t, 4, s.Terms)
	assert.Equal(t, []Definition{
		{Name: "base", Literal: "{10, 2, 3}"},
		{Name: "extra", Literal: "{5, 1, 2}"},
	}, s.Setup)
	require.Len(t, s.Steps, 6)
	assert.Equal(t, Step{
		Op:     "cos",
		Args:   []string{"[0.5, 0.5]"},
		Terms:  2,
		Expect: &Expect{Result: "[0.875, 0.875]"},
	}, s.Steps[4])
	assert.Equal(t, &Expect{Error: "UNRESOLVED"}, s.Steps[5].Expect)
	require.Len(t, s.Assertions, 3)
	assert.Equal(t, AssertTraceContains, s.Assertions[0].Type)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: tiny
description: "one step"
steps:
  - op: recip
    args: ["[2, 4]"]
`), 0644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Nil(t, s.Steps[0].Expect)
}

func TestParseScenario_Rejections(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "name: a\ndescription: b\nstep: []\n",
			want: "field step not found",
		},
		{
			name: "missing name",
			yaml: "description: b\nsteps: [{op: recip, args: ['[1, 2]']}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: a\nsteps: [{op: recip, args: ['[1, 2]']}]\n",
			want: "description is required",
		},
		{
			name: "no steps",
			yaml: "name: a\ndescription: b\n",
			want: "steps list is required",
		},
		{
			name: "negative terms",
			yaml: "name: a\ndescription: b\nterms: -1\nsteps: [{op: recip, args: ['[1, 2]']}]\n",
			want: "terms must be non-negative",
		},
		{
			name: "unknown op",
			yaml: "name: a\ndescription: b\nsteps: [{op: tan, args: ['[1, 2]']}]\n",
			want: `steps[0]: unknown op "tan"`,
		},
		{
			name: "expect both",
			yaml: "name: a\ndescription: b\nsteps: [{op: recip, args: ['[1, 2]'], expect: {result: '[0.5, 1]', error: X}}]\n",
			want: "exactly one of result and error",
		},
		{
			name: "expect neither",
			yaml: "name: a\ndescription: b\nsteps: [{op: recip, args: ['[1, 2]'], expect: {}}]\n",
			want: "exactly one of result and error",
		},
		{
			name: "setup without literal",
			yaml: "name: a\ndescription: b\nsetup: [{define: x}]\nsteps: [{op: recip, args: ['@x']}]\n",
			want: "setup[0]: literal is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: a\ndescription: b\nsteps: [{op: recip, args: ['[1, 2]']}]\nassertions: [{type: final_state}]\n",
			want: `unknown assertion type "final_state"`,
		},
		{
			name: "trace_order without ops",
			yaml: "name: a\ndescription: b\nsteps: [{op: recip, args: ['[1, 2]']}]\nassertions: [{type: trace_order}]\n",
			want: "ops list is required",
		},
		{
			name: "history_count without op",
			yaml: "name: a\ndescription: b\nsteps: [{op: recip, args: ['[1, 2]']}]\nassertions: [{type: history_count, count: 1}]\n",
			want: "op is required for history_count",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
