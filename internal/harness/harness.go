package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Bobfrat/RTI/internal/instrument"
	"github.com/Bobfrat/RTI/internal/pingorder"
)

// Harness executes one scenario against a ping-order store.
type Harness struct {
	store  *pingorder.Config
	logger *slog.Logger
}

// Run executes a scenario against a fresh store and returns the result.
//
// Step expectation mismatches and failed assertions land in
// Result.Errors and clear Result.Pass; a returned error means the
// scenario itself could not be executed.
func Run(scenario *Scenario) (*Result, error) {
	var gen TokenGenerator = UUIDv7Generator{}
	if scenario.RunToken != "" {
		gen = NewFixedTokenGenerator(scenario.RunToken)
	}
	return runWith(scenario, gen)
}

func runWith(scenario *Scenario, gen TokenGenerator) (*Result, error) {
	h := &Harness{
		store:  pingorder.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	result := NewResult()
	result.RunToken = gen.Generate()

	for i, step := range scenario.Steps {
		if err := h.executeStep(i+1, step, scenario, result); err != nil {
			return nil, err
		}
	}

	result.State = snapshotState(h.store)
	for _, msg := range EvaluateAssertions(h.store, scenario.Assertions, result.Trace) {
		result.AddError(msg)
	}
	return result, nil
}

// executeStep applies one step to the store, records the trace event,
// and checks the step's expectation against what actually happened.
func (h *Harness) executeStep(num int, step Step, scenario *Scenario, result *Result) error {
	switch step.Op {
	case OpSetCEPO:
		serialStr := step.Serial
		if serialStr == "" {
			serialStr = scenario.Serial
		}
		sn, err := instrument.ParseSerialNumber(serialStr)
		if err != nil {
			return fmt.Errorf("step %d: %w", num, err)
		}
		_, ok := h.store.SetCEPO(step.Cepo, sn)
		h.checkOutcome(num, step, ok, result)
		result.AddTrace(h.traceEvent(num, step.Op, step.Cepo, ok))

	case OpAdd:
		code := step.Code[0]
		sub := h.store.Serial().SubsystemForCode(code)
		if sub.IsEmpty() {
			// Codes outside the catalog still reach the store, so the
			// rejection comes from validation rather than from a
			// missing argument.
			sub = instrument.Subsystem{Code: code}
		}
		_, ok := h.store.Add(sub)
		h.checkOutcome(num, step, ok, result)
		result.AddTrace(h.traceEvent(num, step.Op, step.Code, ok))

	case OpRemove:
		code := step.Code[0]
		sub := h.store.Serial().SubsystemForCode(code)
		ok := false
		if rec := h.store.Get(sub, step.ConfigIndex); rec != nil {
			ok = h.store.Remove(rec)
		}
		h.checkOutcome(num, step, ok, result)
		key := fmt.Sprintf("%c_%d", code, step.ConfigIndex)
		result.AddTrace(h.traceEvent(num, step.Op, key, ok))

	case OpApplySerial:
		sn, err := instrument.ParseSerialNumber(step.Serial)
		if err != nil {
			return fmt.Errorf("step %d: %w", num, err)
		}
		reset := h.store.ApplyNewSerial(sn)
		if step.ExpectReset != nil && *step.ExpectReset != reset {
			result.AddError(fmt.Sprintf("step %d (%s): expected reset=%v, got reset=%v",
				num, step.Op, *step.ExpectReset, reset))
		}
		result.AddTrace(h.traceEvent(num, step.Op, step.Serial, reset))

	default:
		return fmt.Errorf("step %d: unknown op %q", num, step.Op)
	}

	h.logger.Info("step executed",
		"step", num,
		"op", step.Op,
		"cepo", h.store.CEPO(),
		"records", h.store.Len(),
	)
	return nil
}

// checkOutcome compares a step's actual outcome against its expect_ok
// clause; success is expected when the clause is absent.
func (h *Harness) checkOutcome(num int, step Step, ok bool, result *Result) {
	want := true
	if step.ExpectOK != nil {
		want = *step.ExpectOK
	}
	if ok != want {
		result.AddError(fmt.Sprintf("step %d (%s): expected ok=%v, got ok=%v", num, step.Op, want, ok))
	}
}

func (h *Harness) traceEvent(num int, op, arg string, ok bool) TraceEvent {
	return TraceEvent{
		Step:    num,
		Op:      op,
		Arg:     arg,
		OK:      ok,
		Cepo:    h.store.CEPO(),
		Records: h.store.Len(),
	}
}

// snapshotState captures the final store state in plain values fit for
// canonical JSON.
func snapshotState(c *pingorder.Config) map[string]any {
	records := make([]any, 0, c.Len())
	for _, rec := range c.InPingOrder() {
		records = append(records, map[string]any{
			"code":         string(rec.Subsystem.Code),
			"config_index": rec.ConfigIndex,
			"cepo_index":   rec.CepoIndex,
		})
	}
	return map[string]any{
		"cepo":    c.CEPO(),
		"serial":  c.Serial().String(),
		"records": records,
	}
}
