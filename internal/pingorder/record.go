package pingorder

import (
	"fmt"

	"github.com/Bobfrat/RTI/internal/instrument"
)

// ConfigKey identifies one subsystem configuration within a store. Two
// configurations of the same subsystem differ only in ConfigIndex.
type ConfigKey struct {
	// Code is the subsystem type code, one character of the serial
	// number's subsystem field.
	Code byte

	// ConfigIndex is the zero-based index of this configuration among
	// configurations sharing the same code.
	ConfigIndex int
}

// KeyFor derives the store key for the given subsystem and configuration
// index. It reports false when the subsystem is the empty sentinel, which
// has no identity to key on.
func KeyFor(sub instrument.Subsystem, configIndex int) (ConfigKey, bool) {
	if sub.IsEmpty() {
		return ConfigKey{}, false
	}
	return ConfigKey{Code: sub.Code, ConfigIndex: configIndex}, true
}

func (k ConfigKey) String() string {
	return fmt.Sprintf("%c_%d", k.Code, k.ConfigIndex)
}

// SubsystemConfig is one decoded entry of a CEPO string: a subsystem, its
// index among same-code configurations, and its slot in the ping order.
type SubsystemConfig struct {
	// Subsystem is the catalog entry this configuration pings.
	Subsystem instrument.Subsystem

	// ConfigIndex distinguishes repeated configurations of the same
	// subsystem. Assigned densely at decode time; removal may leave gaps.
	ConfigIndex int

	// CepoIndex is the position of this configuration's character in the
	// CEPO string, and therefore its slot in the ping cycle.
	CepoIndex int
}

// Key returns the store key for this record.
func (sc *SubsystemConfig) Key() ConfigKey {
	return ConfigKey{Code: sc.Subsystem.Code, ConfigIndex: sc.ConfigIndex}
}

func (sc *SubsystemConfig) String() string {
	return fmt.Sprintf("%s cfg=%d cepo=%d", sc.Subsystem, sc.ConfigIndex, sc.CepoIndex)
}
