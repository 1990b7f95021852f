// Package format defines the on-disk vocabulary of the .usdc crate file
// format: the value-type, spec-type and specifier enumerations, the 64-bit
// representation word that classifies a field's value locus and payload,
// and the boot-header/table-of-contents layout constants.
//
// Nothing in this package touches I/O; it only encodes and decodes the
// small closed set of tags and bit patterns the format is built from.
package format
