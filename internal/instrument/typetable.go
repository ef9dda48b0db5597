package instrument

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed subsystem_types.yaml
var typeTableYAML []byte

// typeEntry is one row of the embedded subsystem type table.
type typeEntry struct {
	Code         string  `yaml:"code"`
	Description  string  `yaml:"description"`
	FrequencyKHz float64 `yaml:"frequency_khz"`
}

type typeTable struct {
	Subsystems []typeEntry `yaml:"subsystems"`
}

var typesByCode = loadTypeTable()

// loadTypeTable parses the embedded table once at startup. The table is a
// build-time constant, so a malformed document is a build defect, not a
// runtime condition; it fails loudly.
func loadTypeTable() map[byte]typeEntry {
	var table typeTable
	dec := yaml.NewDecoder(bytes.NewReader(typeTableYAML))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		panic(fmt.Sprintf("instrument: embedded subsystem type table is malformed: %v", err))
	}

	byCode := make(map[byte]typeEntry, len(table.Subsystems))
	for _, entry := range table.Subsystems {
		if len(entry.Code) != 1 {
			panic(fmt.Sprintf("instrument: subsystem type code %q must be a single character", entry.Code))
		}
		code := entry.Code[0]
		if _, dup := byCode[code]; dup {
			panic(fmt.Sprintf("instrument: duplicate subsystem type code %q", entry.Code))
		}
		byCode[code] = entry
	}
	return byCode
}

// DescribeCode returns the type-table description for a subsystem code.
// Codes outside the table (including the spare code) are described as
// unknown; the catalog, not this table, decides whether a code is valid
// on a given unit.
func DescribeCode(code byte) string {
	if entry, ok := typesByCode[code]; ok {
		return entry.Description
	}
	if code == 0 {
		return "empty"
	}
	return fmt.Sprintf("unknown subsystem type '%c'", code)
}

// CodeFrequencyKHz returns the nominal frequency in kHz for a subsystem
// code, or 0 when the code is not in the type table.
func CodeFrequencyKHz(code byte) float64 {
	return typesByCode[code].FrequencyKHz
}
