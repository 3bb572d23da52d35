// Package solverio speaks the external NLFFF solver's file formats: it
// writes the per-level grid, boundary and mask inputs the solver relaxes
// from, and reads back the flat binary field cubes and quality logs the
// solver leaves behind.
//
// The byte-level layout of the .dat and .bin files is a contract with the
// compiled solver, not something this package gets to choose. Codec keeps
// the byte order pluggable so a solver built for a different convention
// can be matched without touching call sites; everything ships float64.
package solverio

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrSizeMismatch reports a binary file whose byte count disagrees with
	// the grid descriptor it is paired with. Fatal: misreading would hand
	// the analysis a silently corrupted field.
	ErrSizeMismatch = errors.New("binary size disagrees with grid descriptor")
)

// sampleSize is the on-disk width of one field sample.
const sampleSize = 8

// Codec fixes the byte-level conventions shared by the input writer and
// the cube reader.
type Codec struct {
	Order binary.ByteOrder
}

// DefaultCodec matches the solver builds we run: little-endian float64.
var DefaultCodec = Codec{Order: binary.LittleEndian}
