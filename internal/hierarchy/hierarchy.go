// Package hierarchy turns a single finest-resolution vector magnetogram
// into the three-level coarse-to-fine stack of boundary conditions, masks
// and grid descriptors the multigrid solver starts from.
package hierarchy

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/nlfff.report/internal/grid"
)

var (
	// ErrShapeMismatch reports component planes of differing dimensions.
	ErrShapeMismatch = errors.New("component shapes differ")
	// ErrGridSize reports an input too small to coarsen into three levels.
	ErrGridSize = errors.New("input grid too small")
)

// Levels is the number of resolution levels in the hierarchy. Level 1 is
// the coarsest, level Levels the finest.
const Levels = 3

// minFineDim is the smallest finest-level dimension that still leaves a
// usable coarsest level after two halvings.
const minFineDim = 8

// Config carries the preparation parameters, set once per run and passed
// explicitly everywhere. Mu scales the pre-coarsening smoothing; Nd, Nue
// and Boundary are solver mode selectors recorded verbatim into
// boundary.ini and never touched by the builder arithmetic.
type Config struct {
	Mu       float64
	Nd       int
	Nue      float64
	Boundary int
}

// DefaultConfig matches the solver's documented defaults.
func DefaultConfig() Config {
	return Config{Mu: 0.1, Nd: 0, Nue: 0.001, Boundary: 0}
}

// BoundarySet holds the three boundary component planes of one level,
// in Gauss.
type BoundarySet struct {
	Br, Bt, Bp *grid.Plane
}

// Level is one resolution level of the hierarchy: its grid descriptor, its
// boundary field and its validity mask (1 where the boundary samples are
// trusted measurements, 0 where they were filled).
type Level struct {
	N      int // 1-based, 1 = coarsest
	Size   grid.Size
	Bounds BoundarySet
	Mask   *grid.Plane
}

// Build derives the full hierarchy from the finest-level component planes.
// Non-finite input samples become zero with mask 0. The returned slice is
// ordered coarsest first, so out[0] is level 1 and out[Levels-1] the
// finest level at the input's native resolution.
func Build(br, bt, bp *grid.Plane, cfg Config) ([]Level, error) {
	if !br.SameShape(bt) || !br.SameShape(bp) {
		return nil, fmt.Errorf("br %dx%d, bt %dx%d, bp %dx%d: %w",
			br.NX, br.NY, bt.NX, bt.NY, bp.NX, bp.NY, ErrShapeMismatch)
	}
	if br.NX < minFineDim || br.NY < minFineDim {
		return nil, fmt.Errorf("%dx%d input, need at least %dx%d: %w",
			br.NX, br.NY, minFineDim, minFineDim, ErrGridSize)
	}

	bounds, mask := sanitize(br, bt, bp)

	out := make([]Level, Levels)
	out[Levels-1] = Level{
		N:      Levels,
		Size:   levelSize(br.NX, br.NY),
		Bounds: bounds,
		Mask:   mask,
	}
	for n := Levels - 1; n >= 1; n-- {
		fine := out[n]
		coarse := Level{
			N: n,
			Bounds: BoundarySet{
				Br: coarsenPlane(fine.Bounds.Br, fine.Mask, cfg.Mu),
				Bt: coarsenPlane(fine.Bounds.Bt, fine.Mask, cfg.Mu),
				Bp: coarsenPlane(fine.Bounds.Bp, fine.Mask, cfg.Mu),
			},
			Mask: coarsenMask(fine.Mask),
		}
		coarse.Size = levelSize(coarse.Mask.NX, coarse.Mask.NY)
		out[n-1] = coarse
	}
	return out, nil
}

// levelSize sets the vertical extent of a level's volume from its boundary
// footprint: the solver integrates upward through a box as tall as the
// shorter horizontal side.
func levelSize(nx, ny int) grid.Size {
	nz := nx
	if ny < nz {
		nz = ny
	}
	return grid.Size{NX: nx, NY: ny, NZ: nz}
}

// sanitize deep-copies the component planes, replacing non-finite samples
// with zero, and derives the validity mask: 1 where all three components
// are finite measurements, 0 otherwise.
func sanitize(br, bt, bp *grid.Plane) (BoundarySet, *grid.Plane) {
	out := BoundarySet{Br: br.Clone(), Bt: bt.Clone(), Bp: bp.Clone()}
	mask := grid.NewPlane(br.NX, br.NY)
	for i := range mask.Data {
		ok := true
		for _, p := range []*grid.Plane{out.Br, out.Bt, out.Bp} {
			if v := p.Data[i]; math.IsNaN(v) || math.IsInf(v, 0) {
				p.Data[i] = 0
				ok = false
			}
		}
		if ok {
			mask.Data[i] = 1
		}
	}
	return out, mask
}
