// Package pingorder implements the ensemble ping-order configuration store.
//
// The store derives a keyed collection of subsystem-configuration records
// from a CEPO (Ensemble Ping Order) string and keeps that collection
// consistent under incremental mutation. Each character of a CEPO string
// names a subsystem code from the unit's serial-number catalog; the
// character's position is that configuration's slot in the ping order, and
// repeated characters are independent configurations of the same subsystem.
//
// Invariants maintained across every successful operation:
//
//   - Key uniqueness: records are keyed by (subsystem code, config index);
//     no two records share a key.
//   - Per-subsystem density after decode: a code appearing k times in the
//     decoded string yields config indices exactly {0, ..., k-1}. Removal
//     deliberately does NOT re-close these ranges; gaps left by removed
//     configurations are preserved so surviving identities stay stable.
//   - Ping-order bijection: CepoIndex values across all records are exactly
//     {0, ..., len(cepo)-1}, and the CEPO character at each CepoIndex is
//     that record's subsystem code.
//   - Atomic publication: mutations build replacement state first and adopt
//     it whole; a failed validate, add, or remove leaves the store
//     byte-for-byte unchanged.
//
// The store is single-threaded by contract: it performs no locking and
// assumes exclusive, non-reentrant access. Embedders running it under
// concurrency must wrap calls in their own mutual exclusion. All operations
// are linear in the CEPO length, which is single digits in practice.
package pingorder
