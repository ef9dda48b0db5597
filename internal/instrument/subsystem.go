package instrument

import "fmt"

// CodeSpare is the subsystem code used for unpopulated serial-number slots.
// A slot holding CodeSpare contributes nothing to the catalog.
const CodeSpare byte = '0'

// Subsystem describes one physical subsystem (transducer) on an ADCP unit.
//
// A Subsystem is obtained from a SerialNumber's catalog and is immutable
// thereafter. The zero value is the "empty" sentinel: it represents "no such
// subsystem" and is what failed catalog lookups return. Callers must check
// IsEmpty before treating a descriptor as real.
type Subsystem struct {
	// Code is the printable single-byte subsystem type code ('2', '3', 'A', ...).
	Code byte

	// Slot is the zero-based position of this subsystem within the serial
	// number's subsystem field. Two subsystems of the same type on one unit
	// occupy distinct slots.
	Slot int
}

// IsEmpty reports whether s is the empty sentinel. The zero descriptor and
// any descriptor carrying the spare code are both empty.
func (s Subsystem) IsEmpty() bool {
	return s.Code == 0 || s.Code == CodeSpare
}

// Description returns the human-readable subsystem type description from the
// embedded type table, e.g. "1200 kHz, 4 beam, 20 degree piston".
func (s Subsystem) Description() string {
	return DescribeCode(s.Code)
}

// FrequencyKHz returns the nominal system frequency in kHz from the embedded
// type table, or 0 for unknown codes.
func (s Subsystem) FrequencyKHz() float64 {
	return CodeFrequencyKHz(s.Code)
}

// String renders the descriptor as "code[slot]" for diagnostics.
func (s Subsystem) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%c[%d]", s.Code, s.Slot)
}
