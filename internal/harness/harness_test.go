package harness

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bobfrat/RTI/internal/testutil"
)

func ptr(b bool) *bool { return &b }

func TestRun_SetCEPODecodes(t *testing.T) {
	scenario := &Scenario{
		Name:        "decode",
		Description: "decode a simple string",
		Serial:      testutil.SerialString("23", 1),
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "232"},
		},
		Assertions: []Assertion{
			{Type: AssertCEPOEquals, Value: "232"},
			{Type: AssertRecordCount, Count: 3},
		},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "run-fixed", result.RunToken)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, TraceEvent{
		Step: 1, Op: OpSetCEPO, Arg: "232", OK: true, Cepo: "232", Records: 3,
	}, result.Trace[0])

	require.NotNil(t, result.State)
	assert.Equal(t, "232", result.State["cepo"])
	records, ok := result.State["records"].([]any)
	require.True(t, ok)
	assert.Len(t, records, 3)
}

func TestRun_GeneratesTokenWhenUnpinned(t *testing.T) {
	scenario := &Scenario{
		Name:        "fresh_token",
		Description: "token generated per run",
		Serial:      testutil.SerialString("23", 1),
		Steps:       []Step{{Op: OpSetCEPO, Cepo: "2"}},
		Assertions:  []Assertion{{Type: AssertRecordCount, Count: 1}},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	parsed, parseErr := uuid.Parse(result.RunToken)
	require.NoError(t, parseErr, "run token should be a UUID")
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRun_ExpectationMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "mismatch",
		Description: "step expects success but the store rejects",
		Serial:      testutil.SerialString("23", 1),
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "29"},
		},
		Assertions: []Assertion{{Type: AssertRecordCount, Count: 0}},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "step 1 (set_cepo): expected ok=true, got ok=false")
}

func TestRun_ExpectOKFalseHonored(t *testing.T) {
	scenario := &Scenario{
		Name:        "expected_rejection",
		Description: "rejection is the expected outcome",
		Serial:      testutil.SerialString("23", 1),
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "23"},
			{Op: OpSetCEPO, Cepo: "29", ExpectOK: ptr(false)},
		},
		Assertions: []Assertion{{Type: AssertCEPOEquals, Value: "23"}},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.False(t, result.Trace[1].OK)
	assert.Equal(t, "23", result.Trace[1].Cepo, "rejected string not adopted")
}

func TestRun_AddOutsideCatalogRejected(t *testing.T) {
	scenario := &Scenario{
		Name:        "add_unknown",
		Description: "adding a code the catalog lacks",
		Serial:      testutil.SerialString("23", 1),
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "23"},
			{Op: OpAdd, Code: "9", ExpectOK: ptr(false)},
		},
		Assertions: []Assertion{
			{Type: AssertCEPOEquals, Value: "23"},
			{Type: AssertRecordCount, Count: 2},
		},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_RemoveMissingRecordFailsExpectation(t *testing.T) {
	scenario := &Scenario{
		Name:        "remove_missing",
		Description: "removing a record that is not there",
		Serial:      testutil.SerialString("23", 1),
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "23"},
			{Op: OpRemove, Code: "2", ConfigIndex: 5},
		},
		Assertions: []Assertion{{Type: AssertRecordCount, Count: 2}},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "step 2 (remove)")
}

func TestRun_ApplySerialResetChecked(t *testing.T) {
	serialA := testutil.SerialString("23", 1)

	scenario := &Scenario{
		Name:        "no_reset_expected",
		Description: "same serial should not reset",
		Serial:      serialA,
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "23"},
			{Op: OpApplySerial, Serial: serialA, ExpectReset: ptr(false)},
		},
		Assertions: []Assertion{
			{Type: AssertCEPOEquals, Value: "23"},
			{Type: AssertRecordCount, Count: 2},
		},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.False(t, result.Trace[1].OK, "apply_serial trace records the reset flag")
}

func TestRun_ApplySerialResetMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name:        "unexpected_reset",
		Description: "scenario claims no reset, store resets",
		Serial:      testutil.SerialString("23", 1),
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "23"},
			{Op: OpApplySerial, Serial: testutil.SerialString("45", 2), ExpectReset: ptr(false)},
		},
		Assertions: []Assertion{{Type: AssertRecordCount, Count: 0}},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected reset=false, got reset=true")
}

func TestRun_UnknownOpErrors(t *testing.T) {
	// Bypasses LoadScenario validation to hit the runner's own check.
	scenario := &Scenario{
		Name:        "bad_op",
		Description: "op unknown to the runner",
		RunToken:    "run-fixed",
		Steps:       []Step{{Op: "frobnicate"}},
		Assertions:  []Assertion{{Type: AssertRecordCount, Count: 0}},
	}

	_, err := Run(scenario)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "frobnicate"`)
}

func TestRun_TraceTracksStateEvolution(t *testing.T) {
	scenario := &Scenario{
		Name:        "evolution",
		Description: "every step snapshots the store after it",
		Serial:      testutil.SerialString("23", 1),
		RunToken:    "run-fixed",
		Steps: []Step{
			{Op: OpSetCEPO, Cepo: "23"},
			{Op: OpAdd, Code: "2"},
			{Op: OpRemove, Code: "3", ConfigIndex: 0},
		},
		Assertions: []Assertion{
			{Type: AssertCEPOEquals, Value: "22"},
			{Type: AssertPingOrder, Records: []string{"2_0", "2_1"}},
		},
	}

	result, err := Run(scenario)

	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 3)
	assert.Equal(t, "23", result.Trace[0].Cepo)
	assert.Equal(t, "232", result.Trace[1].Cepo)
	assert.Equal(t, "22", result.Trace[2].Cepo)
	assert.Equal(t, "3_0", result.Trace[2].Arg)
}
