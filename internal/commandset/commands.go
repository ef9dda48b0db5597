// Package commandset holds the instrument command set backing a
// configuration. Its one responsibility is owning the current CEPO
// (Ensemble Ping Order) string; the ping-order store drives every change
// to it. Rendering the set as command-file lines is provided for display
// and export, nothing more.
package commandset

import "fmt"

// DefaultCEPO is the factory-default single-slot ping order: one
// configuration of the 1200 kHz piston subsystem.
const DefaultCEPO = "2"

// CommandSet is the command set for one instrument configuration.
type CommandSet struct {
	cepo string
}

// New returns a command set holding the default ping order.
func New() *CommandSet {
	return &CommandSet{cepo: DefaultCEPO}
}

// CEPO returns the current Ensemble Ping Order string.
func (cs *CommandSet) CEPO() string {
	return cs.cepo
}

// SetCEPO replaces the Ensemble Ping Order string. The caller is
// responsible for having validated the string against the unit's catalog;
// the command set stores whatever ping order the store derived.
func (cs *CommandSet) SetCEPO(cepo string) {
	cs.cepo = cepo
}

// CommandStrings renders the set as instrument command lines, one command
// per element, in the order a deployment file lists them.
func (cs *CommandSet) CommandStrings() []string {
	return []string{fmt.Sprintf("CEPO %s", cs.cepo)}
}
