package diag

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/nlfff.report/internal/solverio"
)

// Summary holds the range and mean of one scalar field over the cube.
type Summary struct {
	Min, Max, Mean float64
}

// ComponentSummary materialises one component and summarises it.
func ComponentSummary(f *solverio.FieldCube, comp solverio.Component) Summary {
	return summarise(componentSamples(f, comp))
}

// MagnitudeSummary summarises |B| over the cube.
func MagnitudeSummary(f *solverio.FieldCube) Summary {
	s := f.Size
	mag := make([]float64, 0, s.Voxels())
	for i := 0; i < s.NX; i++ {
		for j := 0; j < s.NY; j++ {
			for k := 0; k < s.NZ; k++ {
				bx := f.At(solverio.Bx, i, j, k)
				by := f.At(solverio.By, i, j, k)
				bz := f.At(solverio.Bz, i, j, k)
				mag = append(mag, math.Sqrt(bx*bx+by*by+bz*bz))
			}
		}
	}
	return summarise(mag)
}

func componentSamples(f *solverio.FieldCube, comp solverio.Component) []float64 {
	s := f.Size
	out := make([]float64, 0, s.Voxels())
	for i := 0; i < s.NX; i++ {
		for j := 0; j < s.NY; j++ {
			for k := 0; k < s.NZ; k++ {
				out = append(out, f.At(comp, i, j, k))
			}
		}
	}
	return out
}

func summarise(v []float64) Summary {
	if len(v) == 0 {
		return Summary{}
	}
	return Summary{
		Min:  floats.Min(v),
		Max:  floats.Max(v),
		Mean: stat.Mean(v, nil),
	}
}
