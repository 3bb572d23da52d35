// Package grid defines the grid descriptor shared between the input
// preparation pipeline and the solver output readers, plus the fixed-shape
// float64 array types the pipeline computes on.
package grid

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrParse reports a grid descriptor file that does not match the six-line
// label/value layout the solver writes and expects.
var ErrParse = errors.New("malformed grid descriptor")

// Size is the shape of one resolution level of the solver volume.
type Size struct {
	NX, NY, NZ int
}

// Voxels returns the total voxel count of the volume.
func (s Size) Voxels() int { return s.NX * s.NY * s.NZ }

func (s Size) String() string { return fmt.Sprintf("%dx%dx%d", s.NX, s.NY, s.NZ) }

// Valid reports whether every dimension is positive.
func (s Size) Valid() bool { return s.NX > 0 && s.NY > 0 && s.NZ > 0 }

// WriteFile writes the descriptor in the solver's six-line grid{N}.ini
// format: a label line followed by a tab-indented value line, for nx, ny
// and nz in that order. The integers therefore sit at line indexes 1, 3
// and 5 once the file is split on newlines.
func (s Size) WriteFile(path string) error {
	if !s.Valid() {
		return fmt.Errorf("refusing to write descriptor %s: %w", s, ErrParse)
	}
	body := fmt.Sprintf("nx\n\t%d\nny\n\t%d\nnz\n\t%d\n", s.NX, s.NY, s.NZ)
	return os.WriteFile(path, []byte(body), 0o644)
}

// SizeFromFile parses a grid{N}.ini descriptor written by WriteFile (or by
// the solver, which uses the same layout).
func SizeFromFile(path string) (Size, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Size{}, err
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) < 6 {
		return Size{}, fmt.Errorf("%s: got %d lines, want 6: %w", path, len(lines), ErrParse)
	}
	var dims [3]int
	for i, ln := range [3]int{1, 3, 5} {
		v, err := strconv.Atoi(strings.TrimSpace(lines[ln]))
		if err != nil {
			return Size{}, fmt.Errorf("%s line %d: %q is not an integer: %w", path, ln+1, strings.TrimSpace(lines[ln]), ErrParse)
		}
		dims[i] = v
	}
	s := Size{NX: dims[0], NY: dims[1], NZ: dims[2]}
	if !s.Valid() {
		return Size{}, fmt.Errorf("%s: non-positive dimension in %s: %w", path, s, ErrParse)
	}
	return s, nil
}
