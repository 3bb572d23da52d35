package hierarchy

import "github.com/banshee-data/nlfff.report/internal/grid"

// The coarsening policy is fixed: a mu-weighted 3x3 binomial smoothing
// pass followed by decimation to the even-index samples, so a dimension n
// coarsens to (n+1)/2 (65 -> 33 -> 17, 64 -> 32 -> 16). Defined for every
// input size; nothing is padded. The smoothing damps small-scale structure
// that would otherwise alias into the coarse boundary.

// binomial3 is the 1-D binomial kernel; the 2-D stencil is its outer
// product (1-2-1 squared, total weight 16).
var binomial3 = [3]float64{1, 2, 1}

// coarseDim returns the coarsened extent of a dimension.
func coarseDim(n int) int { return (n + 1) / 2 }

// smoothPlane applies one mask-aware binomial smoothing pass. Each output
// sample blends the input sample with the weighted average of its valid
// 3x3 neighbourhood: out = (1-mu)*v + mu*avg. Invalid (mask 0) neighbours
// carry no weight, so filled zeros never bleed into measured samples. Mu
// is clamped to [0, 1].
func smoothPlane(p, mask *grid.Plane, mu float64) *grid.Plane {
	if mu <= 0 {
		return p.Clone()
	}
	if mu > 1 {
		mu = 1
	}
	out := grid.NewPlane(p.NX, p.NY)
	for i := 0; i < p.NX; i++ {
		for j := 0; j < p.NY; j++ {
			var sum, wsum float64
			for di := -1; di <= 1; di++ {
				for dj := -1; dj <= 1; dj++ {
					ni, nj := i+di, j+dj
					if ni < 0 || ni >= p.NX || nj < 0 || nj >= p.NY {
						continue
					}
					if mask.At(ni, nj) == 0 {
						continue
					}
					w := binomial3[di+1] * binomial3[dj+1]
					sum += w * p.At(ni, nj)
					wsum += w
				}
			}
			v := p.At(i, j)
			if wsum > 0 {
				v = (1-mu)*v + mu*sum/wsum
			}
			out.Set(i, j, v)
		}
	}
	return out
}

// coarsenPlane smooths then decimates one boundary component.
func coarsenPlane(p, mask *grid.Plane, mu float64) *grid.Plane {
	sm := smoothPlane(p, mask, mu)
	out := grid.NewPlane(coarseDim(p.NX), coarseDim(p.NY))
	for i := 0; i < out.NX; i++ {
		for j := 0; j < out.NY; j++ {
			out.Set(i, j, sm.At(2*i, 2*j))
		}
	}
	return out
}

// coarsenMask decimates the validity mask conservatively: a coarse sample
// is trusted only if every in-bounds fine sample under its smoothing
// stencil is trusted.
func coarsenMask(mask *grid.Plane) *grid.Plane {
	out := grid.NewPlane(coarseDim(mask.NX), coarseDim(mask.NY))
	for i := 0; i < out.NX; i++ {
		for j := 0; j < out.NY; j++ {
			valid := 1.0
			for di := -1; di <= 1; di++ {
				for dj := -1; dj <= 1; dj++ {
					ni, nj := 2*i+di, 2*j+dj
					if ni < 0 || ni >= mask.NX || nj < 0 || nj >= mask.NY {
						continue
					}
					if mask.At(ni, nj) == 0 {
						valid = 0
					}
				}
			}
			out.Set(i, j, valid)
		}
	}
	return out
}
