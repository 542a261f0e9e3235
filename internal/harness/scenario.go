package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fuzzint/internal/engine"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Terms is the default series length. Zero means engine.DefaultTerms.
	Terms int `yaml:"terms,omitempty"`

	// Setup defines catalog quantities before the first step.
	Setup []Definition `yaml:"setup,omitempty"`

	// Steps are evaluated in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and evaluation log.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Definition stores a literal under a name.
type Definition struct {
	Name    string `yaml:"define"`
	Literal string `yaml:"literal"`
}

// Step is one evaluation.
type Step struct {
	Op    string   `yaml:"op"`
	Args  []string `yaml:"args"`
	Terms int      `yaml:"terms,omitempty"`

	// Expect specifies the outcome. If nil the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect names either the result literal or the error code of a step.
type Expect struct {
	Result string `yaml:"result,omitempty"`
	Error  string `yaml:"error,omitempty"`
}

// Assertion validates the trace or the evaluation log.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op is the operation (trace_contains, trace_count, history_count).
	Op string `yaml:"op,omitempty"`

	// Args must match exactly when set (trace_contains).
	Args []string `yaml:"args,omitempty"`

	// Count is the expected number of evaluations (trace_count, history_count).
	Count int `yaml:"count,omitempty"`

	// Ops is the expected order (trace_order).
	Ops []string `yaml:"ops,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertHistoryCount  = "history_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields, or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Terms < 0 {
		return fmt.Errorf("terms must be non-negative")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, def := range s.Setup {
		if def.Name == "" {
			return fmt.Errorf("setup[%d]: define is required", i)
		}
		if def.Literal == "" {
			return fmt.Errorf("setup[%d]: literal is required", i)
		}
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
		if engine.Usage(step.Op) == "" {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Expect != nil {
			hasResult, hasError := step.Expect.Result != "", step.Expect.Error != ""
			if hasResult == hasError {
				return fmt.Errorf("steps[%d].expect: exactly one of result and error is required", i)
			}
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("assertions[%d]: ops list is required for trace_order", index)
		}
	case AssertTraceCount, AssertHistoryCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for %s", index, a.Type)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
