// Package harness runs YAML-defined conformance scenarios against the
// ping-order configuration store.
//
// A scenario drives a fresh store through a sequence of mutations and
// then checks assertions against the final state. The harness executes
// the real store; expected outcomes in the scenario are compared against
// what the store actually did, and any mismatch fails the run.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: remove_renumbers
//	description: "Removal closes the ping-order gap"
//	serial: "01230000000000000000000000000001"
//	run_token: "run-00000000-0000-0000-0000-000000000002"
//	steps:
//	  - op: set_cepo
//	    cepo: "232"
//	  - op: remove
//	    code: "2"
//	    config_index: 0
//	assertions:
//	  - type: cepo_equals
//	    value: "32"
//	  - type: record_absent
//	    code: "2"
//	    config_index: 0
//	  - type: ping_order
//	    records: ["3_0", "2_1"]
//
// # Step Operations
//
//   - set_cepo: validate and decode a CEPO string. Uses the step's
//     serial when given, otherwise the scenario's.
//   - add: append one configuration of the named code.
//   - remove: remove the configuration named by code and config_index.
//   - apply_serial: install a serial number; the traced ok flag records
//     whether the store reset.
//
// Steps carry an optional expect_ok (expect_reset for apply_serial);
// when set, a differing actual outcome fails the scenario. Omitted
// expectations default to requiring success.
//
// # Assertion Types
//
//   - cepo_equals: the final CEPO string equals value
//   - record_exists: a record with (code, config_index) is present
//   - record_absent: no record with (code, config_index) is present
//   - record_count: the store holds exactly count records
//   - ping_order: records in ping order are exactly the listed
//     "code_index" keys
//
// # Deterministic Execution
//
// A run is tagged with a run token. Scenarios meant for golden snapshot
// comparison pin run_token in the YAML; otherwise a UUIDv7 is generated.
// Apart from the token, execution is deterministic by construction: the
// store is single-threaded and the trace serializes through canonical
// JSON, so identical scenarios produce byte-identical snapshots.
package harness
