package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bobfrat/RTI/internal/instrument"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: "decode then remove"
serial: "01230000000000000000000000000001"
run_token: "run-1"
steps:
  - op: set_cepo
    cepo: "232"
  - op: remove
    code: "2"
    config_index: 0
    expect_ok: true
assertions:
  - type: cepo_equals
    value: "32"
`)

	scenario, err := LoadScenario(path)

	require.NoError(t, err)
	assert.Equal(t, "basic", scenario.Name)
	assert.Equal(t, "run-1", scenario.RunToken)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, OpSetCEPO, scenario.Steps[0].Op)
	assert.Equal(t, "232", scenario.Steps[0].Cepo)
	assert.Nil(t, scenario.Steps[0].ExpectOK)
	require.NotNil(t, scenario.Steps[1].ExpectOK)
	assert.True(t, *scenario.Steps[1].ExpectOK)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, AssertCEPOEquals, scenario.Assertions[0].Type)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "unknown top-level field"
serial: "01230000000000000000000000000001"
stepz:
  - op: set_cepo
    cepo: "2"
steps:
  - op: set_cepo
    cepo: "2"
assertions:
  - type: record_count
    count: 1
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
description: "no name"
serial: "01230000000000000000000000000001"
steps:
  - op: set_cepo
    cepo: "2"
assertions:
  - type: record_count
    count: 1
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_MissingSteps(t *testing.T) {
	path := writeScenario(t, `
name: empty
description: "no steps"
assertions:
  - type: record_count
    count: 0
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps list is required")
}

func TestLoadScenario_MissingAssertions(t *testing.T) {
	path := writeScenario(t, `
name: unchecked
description: "no assertions"
serial: "01230000000000000000000000000001"
steps:
  - op: set_cepo
    cepo: "2"
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertions list is required")
}

func TestLoadScenario_BadSerialRejectedAtLoad(t *testing.T) {
	path := writeScenario(t, `
name: bad_serial
description: "serial too short"
serial: "0123"
steps:
  - op: set_cepo
    cepo: "2"
assertions:
  - type: record_count
    count: 1
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, instrument.ErrSerialLength)
}

func TestLoadScenario_SetCEPONeedsSomeSerial(t *testing.T) {
	path := writeScenario(t, `
name: no_serial
description: "set_cepo without any serial"
steps:
  - op: set_cepo
    cepo: "2"
assertions:
  - type: record_count
    count: 1
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a serial")
}

func TestLoadScenario_UnknownOp(t *testing.T) {
	path := writeScenario(t, `
name: bad_op
description: "op does not exist"
serial: "01230000000000000000000000000001"
steps:
  - op: frobnicate
assertions:
  - type: record_count
    count: 0
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "frobnicate"`)
}

func TestLoadScenario_AddNeedsSingleCharCode(t *testing.T) {
	path := writeScenario(t, `
name: long_code
description: "two characters is not a code"
serial: "01230000000000000000000000000001"
steps:
  - op: add
    code: "23"
assertions:
  - type: record_count
    count: 0
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "single-character code")
}

func TestLoadScenario_ApplySerialNeedsSerial(t *testing.T) {
	path := writeScenario(t, `
name: apply_nothing
description: "apply_serial without serial"
steps:
  - op: apply_serial
assertions:
  - type: record_count
    count: 0
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply_serial needs a serial")
}

func TestLoadScenario_UnknownAssertionType(t *testing.T) {
	path := writeScenario(t, `
name: bad_assert
description: "assertion type does not exist"
serial: "01230000000000000000000000000001"
steps:
  - op: set_cepo
    cepo: "2"
assertions:
  - type: cepo_matches
    value: "2"
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown assertion type "cepo_matches"`)
}

func TestLoadScenario_BadPingOrderKey(t *testing.T) {
	path := writeScenario(t, `
name: bad_key
description: "ping_order keys use code_index form"
serial: "01230000000000000000000000000001"
steps:
  - op: set_cepo
    cepo: "2"
assertions:
  - type: ping_order
    records: ["2-0"]
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match code_index form")
}

func TestLoadScenario_NegativeCount(t *testing.T) {
	path := writeScenario(t, `
name: negative
description: "negative record count"
serial: "01230000000000000000000000000001"
steps:
  - op: set_cepo
    cepo: "2"
assertions:
  - type: record_count
    count: -1
`)

	_, err := LoadScenario(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "count must be non-negative")
}
