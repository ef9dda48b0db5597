// Package testutil provides deterministic builders shared by tests across
// packages. Nothing here is imported by production code.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bobfrat/RTI/internal/instrument"
)

// SerialString assembles a well-formed 32-character serial number string
// from a subsystem field and a unit serial. The subsystem field may be
// shorter than its 15 slots; remaining slots are padded with the spare
// code. Base hardware is fixed at "01".
//
// Panics when the inputs cannot form a valid serial; tests that need
// malformed strings should build them by hand.
func SerialString(subsystems string, serial int) string {
	if len(subsystems) > 15 {
		panic(fmt.Sprintf("testutil: subsystem field %q exceeds 15 slots", subsystems))
	}
	if serial < 0 || serial > 999999 {
		panic(fmt.Sprintf("testutil: unit serial %d outside 6 digits", serial))
	}
	padded := subsystems + strings.Repeat("0", 15-len(subsystems))
	return fmt.Sprintf("01%s%s%06d", padded, strings.Repeat("0", 9), serial)
}

// Serial parses the serial built by SerialString, failing the test on
// error.
func Serial(t *testing.T, subsystems string, serial int) instrument.SerialNumber {
	t.Helper()
	sn, err := instrument.ParseSerialNumber(SerialString(subsystems, serial))
	require.NoError(t, err, "building test serial from %q", subsystems)
	return sn
}

// Sub resolves a subsystem code against sn's catalog, failing the test
// when the code is absent.
func Sub(t *testing.T, sn instrument.SerialNumber, code byte) instrument.Subsystem {
	t.Helper()
	sub := sn.SubsystemForCode(code)
	require.False(t, sub.IsEmpty(), "code %c not in catalog of %s", code, sn)
	return sub
}
