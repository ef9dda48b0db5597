package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Bobfrat/RTI/internal/canonical"
)

// Snapshot captures one scenario execution for golden comparison.
type Snapshot struct {
	ScenarioName string
	RunToken     string
	Pass         bool
	Trace        []TraceEvent
	State        map[string]any
}

// CanonicalMap flattens the snapshot into plain values for canonical
// JSON serialization. Golden files store exactly these bytes, whether
// written by goldie under -update or by the CLI test runner, so both
// paths must serialize through here.
func (s *Snapshot) CanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, ev := range s.Trace {
		eventMap := map[string]any{
			"step":    ev.Step,
			"op":      ev.Op,
			"ok":      ev.OK,
			"cepo":    ev.Cepo,
			"records": ev.Records,
		}
		if ev.Arg != "" {
			eventMap["arg"] = ev.Arg
		}
		traceList[i] = eventMap
	}

	out := map[string]any{
		"scenario_name": s.ScenarioName,
		"pass":          s.Pass,
		"trace":         traceList,
		"state":         s.State,
	}
	if s.RunToken != "" {
		out["run_token"] = s.RunToken
	}
	return out
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden. The scenario must pin a
// run_token or the snapshot cannot be reproducible.
//
// Regenerate golden files with:
//
//	go test ./internal/harness -update
//
// Returns an error when the scenario cannot be executed; a snapshot
// mismatch fails the test through goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	snapshot := Snapshot{
		ScenarioName: scenario.Name,
		RunToken:     result.RunToken,
		Pass:         result.Pass,
		Trace:        result.Trace,
		State:        result.State,
	}
	data, err := canonical.Marshal(snapshot.CanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
