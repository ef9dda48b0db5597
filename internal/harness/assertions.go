package harness

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Bobfrat/RTI/internal/pingorder"
)

// AssertionError is returned when an assertion fails. It carries the
// expected and actual outcomes plus the executed steps for context.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nSteps executed:\n")
		for _, ev := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s ok=%v cepo=%q records=%d\n",
				ev.Step, ev.Op, ev.Arg, ev.OK, ev.Cepo, ev.Records)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against the final store and
// returns one message per failure. Failed assertions embed trace for
// debugging context.
func EvaluateAssertions(c *pingorder.Config, assertions []Assertion, trace []TraceEvent) []string {
	var msgs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertCEPOEquals:
			err = assertCEPOEquals(c, assertion)
		case AssertRecordExists:
			err = assertRecordExists(c, assertion)
		case AssertRecordAbsent:
			err = assertRecordAbsent(c, assertion)
		case AssertRecordCount:
			err = assertRecordCount(c, assertion)
		case AssertPingOrder:
			err = assertPingOrder(c, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			var ae *AssertionError
			if errors.As(err, &ae) {
				ae.Trace = trace
			}
			msgs = append(msgs, err.Error())
		}
	}
	return msgs
}

func assertCEPOEquals(c *pingorder.Config, a Assertion) error {
	if c.CEPO() == a.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertCEPOEquals,
		Expected: fmt.Sprintf("CEPO %q", a.Value),
		Actual:   fmt.Sprintf("CEPO %q", c.CEPO()),
	}
}

func assertRecordExists(c *pingorder.Config, a Assertion) error {
	key := pingorder.ConfigKey{Code: a.Code[0], ConfigIndex: a.ConfigIndex}
	if _, ok := c.Records()[key]; ok {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecordExists,
		Expected: fmt.Sprintf("record %s present", key),
		Actual:   "not found",
	}
}

func assertRecordAbsent(c *pingorder.Config, a Assertion) error {
	key := pingorder.ConfigKey{Code: a.Code[0], ConfigIndex: a.ConfigIndex}
	if _, ok := c.Records()[key]; !ok {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecordAbsent,
		Expected: fmt.Sprintf("record %s absent", key),
		Actual:   "present",
	}
}

func assertRecordCount(c *pingorder.Config, a Assertion) error {
	if c.Len() == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRecordCount,
		Expected: fmt.Sprintf("%d records", a.Count),
		Actual:   fmt.Sprintf("%d records", c.Len()),
	}
}

func assertPingOrder(c *pingorder.Config, a Assertion) error {
	actual := make([]string, 0, c.Len())
	for _, rec := range c.InPingOrder() {
		actual = append(actual, rec.Key().String())
	}
	if slices.Equal(actual, a.Records) {
		return nil
	}
	return &AssertionError{
		Type:     AssertPingOrder,
		Expected: fmt.Sprintf("ping order %v", a.Records),
		Actual:   fmt.Sprintf("ping order %v", actual),
	}
}
