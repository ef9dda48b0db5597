// Package instrument provides the hardware-identity types for an ADCP unit.
//
// This package is the foundational layer: every other internal package
// imports instrument; instrument imports nothing internal. It owns three
// small, self-contained concerns:
//
//   - SerialNumber: the fixed 32-character unit serial, and the subsystem
//     catalog derived from its subsystem slots. The catalog is the single
//     source of truth for "which subsystem codes exist on this unit".
//   - Subsystem: a descriptor for one physical subsystem (transducer),
//     identified by a printable single-byte code. The zero descriptor is
//     the "empty" sentinel returned by failed catalog lookups.
//   - Firmware: the fixed 4-byte firmware version codec.
//
// Catalog lookups are pure: for a fixed serial number, SubsystemForCode
// returns identical results on every call and never mutates the serial.
//
// Subsystem type descriptions (frequency, beam geometry) come from a table
// embedded at build time; unknown codes describe themselves as unknown
// rather than failing, since the catalog - not the table - decides validity.
package instrument
