package harness

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/Bobfrat/RTI/internal/instrument"
)

// Scenario defines one conformance test: a serial number, a sequence of
// store mutations, and assertions on the final state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Serial is the default serial number for set_cepo steps. Steps may
	// override it per step.
	Serial string `yaml:"serial,omitempty"`

	// RunToken is an optional fixed run token. Scenarios compared
	// against golden files must pin one; otherwise a fresh UUIDv7 is
	// generated per run.
	RunToken string `yaml:"run_token,omitempty"`

	// Steps is the mutation sequence, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final store state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one store mutation. Op selects the operation; the remaining
// fields apply per op as described in the package documentation.
type Step struct {
	Op string `yaml:"op"`

	// Cepo is the candidate string for set_cepo.
	Cepo string `yaml:"cepo,omitempty"`

	// Serial overrides the scenario serial for set_cepo, and names the
	// serial to install for apply_serial.
	Serial string `yaml:"serial,omitempty"`

	// Code is the subsystem code for add and remove.
	Code string `yaml:"code,omitempty"`

	// ConfigIndex selects among same-code configurations for remove.
	ConfigIndex int `yaml:"config_index,omitempty"`

	// ExpectOK is the expected outcome for set_cepo, add, and remove.
	// Nil means success is expected.
	ExpectOK *bool `yaml:"expect_ok,omitempty"`

	// ExpectReset is the expected reset flag for apply_serial. Nil
	// leaves the flag unchecked.
	ExpectReset *bool `yaml:"expect_reset,omitempty"`
}

// Assertion validates one aspect of the final store state.
type Assertion struct {
	Type string `yaml:"type"`

	// Value is the expected CEPO string for cepo_equals.
	Value string `yaml:"value,omitempty"`

	// Code and ConfigIndex name a record for record_exists and
	// record_absent.
	Code        string `yaml:"code,omitempty"`
	ConfigIndex int    `yaml:"config_index,omitempty"`

	// Count is the expected record count for record_count.
	Count int `yaml:"count,omitempty"`

	// Records lists expected "code_index" keys in ping order for
	// ping_order.
	Records []string `yaml:"records,omitempty"`
}

// Step operation constants.
const (
	OpSetCEPO     = "set_cepo"
	OpAdd         = "add"
	OpRemove      = "remove"
	OpApplySerial = "apply_serial"
)

// Assertion type constants.
const (
	AssertCEPOEquals   = "cepo_equals"
	AssertRecordExists = "record_exists"
	AssertRecordAbsent = "record_absent"
	AssertRecordCount  = "record_count"
	AssertPingOrder    = "ping_order"
)

// validRecordKey matches the "code_index" form used by ping_order
// assertions, e.g. "2_0".
var validRecordKey = regexp.MustCompile(`^[0-9A-Za-z]_[0-9]+$`)

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos like "assertion:" fail loudly instead of
// silently dropping checks.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

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

// validateScenario checks required fields and per-op shapes. Serial
// strings are parsed here so a malformed serial fails at load, not
// halfway through a run.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if s.Serial != "" {
		if _, err := instrument.ParseSerialNumber(s.Serial); err != nil {
			return fmt.Errorf("serial: %w", err)
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step, s); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *Step, s *Scenario) error {
	if step.Serial != "" {
		if _, err := instrument.ParseSerialNumber(step.Serial); err != nil {
			return fmt.Errorf("steps[%d].serial: %w", index, err)
		}
	}

	switch step.Op {
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	case OpSetCEPO:
		if step.Serial == "" && s.Serial == "" {
			return fmt.Errorf("steps[%d]: set_cepo needs a serial, on the step or the scenario", index)
		}
	case OpAdd:
		if len(step.Code) != 1 {
			return fmt.Errorf("steps[%d]: add needs a single-character code", index)
		}
	case OpRemove:
		if len(step.Code) != 1 {
			return fmt.Errorf("steps[%d]: remove needs a single-character code", index)
		}
		if step.ConfigIndex < 0 {
			return fmt.Errorf("steps[%d]: config_index must be non-negative", index)
		}
	case OpApplySerial:
		if step.Serial == "" {
			return fmt.Errorf("steps[%d]: apply_serial needs a serial", index)
		}
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertCEPOEquals:
		// An empty value is legal; it asserts the string was emptied.
	case AssertRecordExists, AssertRecordAbsent:
		if len(a.Code) != 1 {
			return fmt.Errorf("assertions[%d]: %s needs a single-character code", index, a.Type)
		}
		if a.ConfigIndex < 0 {
			return fmt.Errorf("assertions[%d]: config_index must be non-negative", index)
		}
	case AssertRecordCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertPingOrder:
		for j, key := range a.Records {
			if !validRecordKey.MatchString(key) {
				return fmt.Errorf("assertions[%d].records[%d]: %q does not match code_index form", index, j, key)
			}
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
