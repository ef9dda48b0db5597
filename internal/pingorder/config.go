package pingorder

import (
	"slices"
	"strings"

	"github.com/Bobfrat/RTI/internal/commandset"
	"github.com/Bobfrat/RTI/internal/instrument"
)

// Config is the ping-order configuration store for one unit. It owns the
// command set holding the live CEPO string, the serial number whose catalog
// the string is validated against, and the decoded records keyed by
// (code, config index).
//
// A zero serial number means the unit is unresolved: validation rejects
// every string and the store stays empty until a serial arrives via
// SetCEPO or ApplyNewSerial.
type Config struct {
	commands *commandset.CommandSet
	serial   instrument.SerialNumber
	records  map[ConfigKey]*SubsystemConfig
}

// New returns an empty store holding the default command set and no serial
// number. The default CEPO string is present but undecoded; callers load a
// unit with SetCEPO or ApplyNewSerial.
func New() *Config {
	return &Config{
		commands: commandset.New(),
		records:  make(map[ConfigKey]*SubsystemConfig),
	}
}

// ValidateCEPO reports whether cepo is acceptable for the given serial
// number: non-empty, and every character resolves to a subsystem in the
// serial's catalog. Repeated characters are valid; they decode to distinct
// configurations. An empty serial has an empty catalog, so nothing
// validates against it.
func ValidateCEPO(cepo string, serial instrument.SerialNumber) bool {
	if cepo == "" {
		return false
	}
	for i := 0; i < len(cepo); i++ {
		if serial.SubsystemForCode(cepo[i]).IsEmpty() {
			return false
		}
	}
	return true
}

// SetCEPO validates cepo against serial and, on success, adopts both and
// rebuilds the record set from scratch. It returns the resulting records
// and whether the string was accepted. On rejection the store is
// unchanged and the returned map reflects the prior state.
func (c *Config) SetCEPO(cepo string, serial instrument.SerialNumber) (map[ConfigKey]*SubsystemConfig, bool) {
	if !ValidateCEPO(cepo, serial) {
		return c.Records(), false
	}
	next := decodeRecords(cepo, serial)
	c.serial = serial
	c.commands.SetCEPO(cepo)
	c.records = next
	return c.Records(), true
}

// decodeRecords builds a fresh record set from a validated CEPO string.
// Characters without a catalog entry contribute no record; validation
// normally rules them out, but decode stays lenient so a catalog that
// shrank between validate and decode degrades to dropped entries rather
// than a panic.
func decodeRecords(cepo string, serial instrument.SerialNumber) map[ConfigKey]*SubsystemConfig {
	records := make(map[ConfigKey]*SubsystemConfig, len(cepo))
	for i := 0; i < len(cepo); i++ {
		sub := serial.SubsystemForCode(cepo[i])
		if sub.IsEmpty() {
			continue
		}
		rec := &SubsystemConfig{
			Subsystem:   sub,
			ConfigIndex: countCode(records, sub.Code),
			CepoIndex:   i,
		}
		records[rec.Key()] = rec
	}
	return records
}

// countCode returns how many records in the set carry the given code. The
// next configuration of that code takes this value as its index, keeping
// per-code indices dense during a decode.
func countCode(records map[ConfigKey]*SubsystemConfig, code byte) int {
	n := 0
	for key := range records {
		if key.Code == code {
			n++
		}
	}
	return n
}

// Exists reports whether a configuration with the given subsystem and
// config index is present. False for the empty subsystem sentinel.
func (c *Config) Exists(sub instrument.Subsystem, configIndex int) bool {
	key, ok := KeyFor(sub, configIndex)
	if !ok {
		return false
	}
	_, ok = c.records[key]
	return ok
}

// Get returns the configuration for the given subsystem and config index,
// or nil when absent or when the subsystem is the empty sentinel.
func (c *Config) Get(sub instrument.Subsystem, configIndex int) *SubsystemConfig {
	key, ok := KeyFor(sub, configIndex)
	if !ok {
		return nil
	}
	return c.records[key]
}

// Add appends one configuration of sub to the end of the ping order. The
// candidate CEPO string (current string plus the subsystem's code) is
// validated against the stored serial before anything changes; the new
// record is inserted, then the candidate string is adopted. Returns the
// new record and true, or nil and false if validation or insertion
// rejects, in which case the store is unchanged.
func (c *Config) Add(sub instrument.Subsystem) (*SubsystemConfig, bool) {
	if sub.IsEmpty() {
		return nil, false
	}
	candidate := c.commands.CEPO() + string(sub.Code)
	if !ValidateCEPO(candidate, c.serial) {
		return nil, false
	}
	rec := &SubsystemConfig{
		Subsystem:   sub,
		ConfigIndex: countCode(c.records, sub.Code),
		CepoIndex:   len(candidate) - 1,
	}
	if !c.insert(rec) {
		return nil, false
	}
	c.commands.SetCEPO(candidate)
	return rec, true
}

// Remove deletes the configuration with rec's key, renumbers the
// survivors' ping-order slots to close the gap, and regenerates the CEPO
// string from the result. Config indices of survivors are deliberately
// left untouched, so removing subsystem 2's config 0 while config 1
// exists leaves a gap in 2's index range. Returns false and leaves the
// store unchanged when rec is nil, carries the empty subsystem, or names
// no present record.
func (c *Config) Remove(rec *SubsystemConfig) bool {
	if rec == nil {
		return false
	}
	key, ok := KeyFor(rec.Subsystem, rec.ConfigIndex)
	if !ok {
		return false
	}
	if _, ok := c.records[key]; !ok {
		return false
	}
	delete(c.records, key)

	survivors := c.InPingOrder()
	next := make(map[ConfigKey]*SubsystemConfig, len(survivors))
	for i, s := range survivors {
		s.CepoIndex = i
		next[s.Key()] = s
	}
	c.records = next
	c.commands.SetCEPO(c.RegenerateCEPO())
	return true
}

// ApplyNewSerial installs a serial number. When it differs from the
// stored one, the accumulated configuration no longer describes the unit:
// the record set is cleared and the CEPO string resets to the default,
// undecoded until the next SetCEPO. Applying the already-stored serial is
// a no-op. Reports whether a reset happened.
func (c *Config) ApplyNewSerial(serial instrument.SerialNumber) bool {
	if serial == c.serial {
		return false
	}
	c.serial = serial
	c.records = make(map[ConfigKey]*SubsystemConfig)
	c.commands.SetCEPO(commandset.DefaultCEPO)
	return true
}

// insert stores rec under its key, refusing a duplicate so an existing
// record is never silently overwritten.
func (c *Config) insert(rec *SubsystemConfig) bool {
	key := rec.Key()
	if _, dup := c.records[key]; dup {
		return false
	}
	c.records[key] = rec
	return true
}

// CEPO returns the live CEPO string.
func (c *Config) CEPO() string {
	return c.commands.CEPO()
}

// Serial returns the stored serial number; zero when unresolved.
func (c *Config) Serial() instrument.SerialNumber {
	return c.serial
}

// Commands exposes the underlying command set.
func (c *Config) Commands() *commandset.CommandSet {
	return c.commands
}

// Len returns the number of decoded configurations.
func (c *Config) Len() int {
	return len(c.records)
}

// Records returns a copy of the record map. Mutating the map does not
// affect the store; the records themselves are shared.
func (c *Config) Records() map[ConfigKey]*SubsystemConfig {
	out := make(map[ConfigKey]*SubsystemConfig, len(c.records))
	for k, v := range c.records {
		out[k] = v
	}
	return out
}

// InPingOrder returns the records sorted by ping-order slot.
func (c *Config) InPingOrder() []*SubsystemConfig {
	out := make([]*SubsystemConfig, 0, len(c.records))
	for _, rec := range c.records {
		out = append(out, rec)
	}
	slices.SortFunc(out, func(a, b *SubsystemConfig) int {
		return a.CepoIndex - b.CepoIndex
	})
	return out
}

// RegenerateCEPO rebuilds the CEPO string from the records alone: one
// code per record, in ping order. For a store that decoded a string and
// was not mutated since, the result equals that string.
func (c *Config) RegenerateCEPO() string {
	var b strings.Builder
	for _, rec := range c.InPingOrder() {
		b.WriteByte(rec.Subsystem.Code)
	}
	return b.String()
}
