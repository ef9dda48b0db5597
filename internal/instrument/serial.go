package instrument

import (
	"errors"
	"fmt"
	"strconv"
)

// Serial number field layout. A serial number is exactly 32 characters:
// a two-character base hardware family, fifteen single-character subsystem
// slots, nine spare characters, and a six-digit unit serial.
const (
	SerialNumberLength = 32

	baseHardwareLen  = 2
	subsystemSlotLen = 15
	spareLen         = 9
	unitSerialLen    = 6

	subsystemFieldStart = baseHardwareLen
	spareFieldStart     = subsystemFieldStart + subsystemSlotLen
	unitSerialStart     = spareFieldStart + spareLen
)

// Serial number parse failures. Callers match with errors.Is.
var (
	ErrSerialLength  = errors.New("serial number must be exactly 32 characters")
	ErrSerialCharset = errors.New("serial number must be alphanumeric")
	ErrSerialDigits  = errors.New("unit serial field must be numeric")
)

// SerialNumber is a parsed 32-character ADCP serial number.
//
// The zero value is the empty serial: it has no catalog and renders as "".
// SerialNumber is a small comparable value type; equality of two parsed
// serials is equality of every field.
type SerialNumber struct {
	base       string
	subsystems string
	spare      string
	serial     int
}

// ParseSerialNumber parses and validates the 32-character serial form.
func ParseSerialNumber(s string) (SerialNumber, error) {
	if len(s) != SerialNumberLength {
		return SerialNumber{}, fmt.Errorf("%w: got %d", ErrSerialLength, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isAlphanumeric(s[i]) {
			return SerialNumber{}, fmt.Errorf("%w: %q at position %d", ErrSerialCharset, s[i], i)
		}
	}

	digits := s[unitSerialStart:]
	serial, err := strconv.Atoi(digits)
	if err != nil {
		return SerialNumber{}, fmt.Errorf("%w: %q", ErrSerialDigits, digits)
	}

	return SerialNumber{
		base:       s[:baseHardwareLen],
		subsystems: s[subsystemFieldStart:spareFieldStart],
		spare:      s[spareFieldStart:unitSerialStart],
		serial:     serial,
	}, nil
}

func isAlphanumeric(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// IsEmpty reports whether sn is the zero serial.
func (sn SerialNumber) IsEmpty() bool {
	return sn == SerialNumber{}
}

// String reassembles the 32-character serial form. The empty serial renders
// as the empty string.
func (sn SerialNumber) String() string {
	if sn.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%s%s%s%0*d", sn.base, sn.subsystems, sn.spare, unitSerialLen, sn.serial)
}

// BaseHardware returns the two-character base electronics family field.
func (sn SerialNumber) BaseHardware() string {
	return sn.base
}

// Serial returns the numeric unit serial from the final six digits.
func (sn SerialNumber) Serial() int {
	return sn.serial
}

// Subsystems returns the unit's catalog: one descriptor per populated
// subsystem slot, in slot order. Spare slots contribute nothing.
func (sn SerialNumber) Subsystems() []Subsystem {
	var subs []Subsystem
	for i := 0; i < len(sn.subsystems); i++ {
		if sn.subsystems[i] == CodeSpare {
			continue
		}
		subs = append(subs, Subsystem{Code: sn.subsystems[i], Slot: i})
	}
	return subs
}

// SubsystemCount returns the number of populated subsystem slots.
func (sn SerialNumber) SubsystemCount() int {
	n := 0
	for i := 0; i < len(sn.subsystems); i++ {
		if sn.subsystems[i] != CodeSpare {
			n++
		}
	}
	return n
}

// SubsystemForCode looks up a subsystem code in the catalog. It returns the
// descriptor for the first slot carrying the code, or the empty Subsystem
// when the code is not present on this unit. The spare code is never
// present. Lookups are pure: repeated calls with the same receiver and code
// return identical results.
func (sn SerialNumber) SubsystemForCode(code byte) Subsystem {
	if code == 0 || code == CodeSpare {
		return Subsystem{}
	}
	for i := 0; i < len(sn.subsystems); i++ {
		if sn.subsystems[i] == code {
			return Subsystem{Code: code, Slot: i}
		}
	}
	return Subsystem{}
}
