// Package diag computes force-free quality diagnostics on reconstructed
// field cubes: the discrete current density, the current-weighted
// misalignment angle between current and field, and the magnetic energy
// proxy.
package diag

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/nlfff.report/internal/grid"
	"github.com/banshee-data/nlfff.report/internal/solverio"
)

// ErrTooSmall reports a cube with no interior for a centered stencil.
var ErrTooSmall = errors.New("cube too small for central differences")

// eps guards the magnitude denominators so field-free voxels contribute a
// finite angle instead of NaN.
const eps = 1e-10

// Curl computes the discrete current density J = curl B with central
// differences on unit grid spacing. The one-voxel border where a centered
// stencil is undefined is excluded, so the returned volumes have shape
// (nx-2, ny-2, nz-2); interior voxel (i, j, k) of the output corresponds
// to cube voxel (i+1, j+1, k+1).
func Curl(f *solverio.FieldCube) (jx, jy, jz *grid.Volume, err error) {
	s := f.Size
	if s.NX < 3 || s.NY < 3 || s.NZ < 3 {
		return nil, nil, nil, fmt.Errorf("grid %s: %w", s, ErrTooSmall)
	}
	in := grid.Size{NX: s.NX - 2, NY: s.NY - 2, NZ: s.NZ - 2}
	jx, jy, jz = grid.NewVolume(in), grid.NewVolume(in), grid.NewVolume(in)

	for i := 1; i < s.NX-1; i++ {
		for j := 1; j < s.NY-1; j++ {
			for k := 1; k < s.NZ-1; k++ {
				dyBz := f.At(solverio.Bz, i, j+1, k) - f.At(solverio.Bz, i, j-1, k)
				dzBy := f.At(solverio.By, i, j, k+1) - f.At(solverio.By, i, j, k-1)
				dzBx := f.At(solverio.Bx, i, j, k+1) - f.At(solverio.Bx, i, j, k-1)
				dxBz := f.At(solverio.Bz, i+1, j, k) - f.At(solverio.Bz, i-1, j, k)
				dxBy := f.At(solverio.By, i+1, j, k) - f.At(solverio.By, i-1, j, k)
				dyBx := f.At(solverio.Bx, i, j+1, k) - f.At(solverio.Bx, i, j-1, k)

				jx.Set(i-1, j-1, k-1, 0.5*(dyBz-dzBy))
				jy.Set(i-1, j-1, k-1, 0.5*(dzBx-dxBz))
				jz.Set(i-1, j-1, k-1, 0.5*(dxBy-dyBx))
			}
		}
	}
	return jx, jy, jz, nil
}

// CurrentWeightedAngle summarises how far the field departs from
// force-free (J parallel to B). At every interior voxel the angle between
// J and B comes from the arc-cosine of their normalised dot product; the
// per-voxel sines are then averaged with weight |J||B| and the result is
// asin of that mean, in degrees. Always in [0, 90]; 0 means current and
// field aligned everywhere that matters.
func CurrentWeightedAngle(f *solverio.FieldCube, jx, jy, jz *grid.Volume) float64 {
	var wsum, swsum float64
	in := jx.Size
	for i := 0; i < in.NX; i++ {
		for j := 0; j < in.NY; j++ {
			for k := 0; k < in.NZ; k++ {
				cjx, cjy, cjz := jx.At(i, j, k), jy.At(i, j, k), jz.At(i, j, k)
				bx := f.At(solverio.Bx, i+1, j+1, k+1)
				by := f.At(solverio.By, i+1, j+1, k+1)
				bz := f.At(solverio.Bz, i+1, j+1, k+1)

				jmag := math.Sqrt(cjx*cjx+cjy*cjy+cjz*cjz) + eps
				bmag := math.Sqrt(bx*bx+by*by+bz*bz) + eps
				cos := (cjx*bx + cjy*by + cjz*bz) / (jmag * bmag)
				if cos > 1 {
					cos = 1
				} else if cos < -1 {
					cos = -1
				}
				sin := math.Sqrt(1 - cos*cos)

				w := jmag * bmag
				wsum += w
				swsum += w * sin
			}
		}
	}
	if wsum == 0 {
		return 0
	}
	mean := swsum / wsum
	if mean > 1 {
		mean = 1
	}
	return math.Asin(mean) * 180 / math.Pi
}

// Energy returns the voxel sum of |B|^2. No cell-volume scaling is
// applied, so the absolute number is arbitrary; ratios between fields on
// the identical grid are what carry meaning.
func Energy(f *solverio.FieldCube) float64 {
	s := f.Size
	var sum float64
	for i := 0; i < s.NX; i++ {
		for j := 0; j < s.NY; j++ {
			for k := 0; k < s.NZ; k++ {
				bx := f.At(solverio.Bx, i, j, k)
				by := f.At(solverio.By, i, j, k)
				bz := f.At(solverio.Bz, i, j, k)
				sum += bx*bx + by*by + bz*bz
			}
		}
	}
	return sum
}
