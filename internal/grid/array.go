package grid

import "fmt"

// Plane is a fixed-shape 2-D float64 array backed by a flat row-major
// slice. The shape is set at construction; all indexing goes through the
// stride computed from it, so a Plane can never silently change shape the
// way a nested-slice array can.
type Plane struct {
	NX, NY int
	Data   []float64 // len NX*NY, row-major (x outer, y inner)
}

// NewPlane allocates a zeroed nx-by-ny plane. Panics on a non-positive
// dimension: shape errors are programming errors, not runtime conditions.
func NewPlane(nx, ny int) *Plane {
	if nx <= 0 || ny <= 0 {
		panic(fmt.Sprintf("grid: invalid plane shape %dx%d", nx, ny))
	}
	return &Plane{NX: nx, NY: ny, Data: make([]float64, nx*ny)}
}

// At returns the sample at (i, j).
func (p *Plane) At(i, j int) float64 { return p.Data[i*p.NY+j] }

// Set stores v at (i, j).
func (p *Plane) Set(i, j int, v float64) { p.Data[i*p.NY+j] = v }

// SameShape reports whether q has identical dimensions.
func (p *Plane) SameShape(q *Plane) bool { return p.NX == q.NX && p.NY == q.NY }

// Clone returns a deep copy of the plane.
func (p *Plane) Clone() *Plane {
	out := NewPlane(p.NX, p.NY)
	copy(out.Data, p.Data)
	return out
}

// Volume is a fixed-shape 3-D float64 array backed by a flat slice in
// x-major order: index (i, j, k) maps to (i*NY+j)*NZ+k.
type Volume struct {
	Size Size
	Data []float64 // len Size.Voxels()
}

// NewVolume allocates a zeroed volume of the given size.
func NewVolume(s Size) *Volume {
	if !s.Valid() {
		panic(fmt.Sprintf("grid: invalid volume shape %s", s))
	}
	return &Volume{Size: s, Data: make([]float64, s.Voxels())}
}

// At returns the sample at (i, j, k).
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[(i*v.Size.NY+j)*v.Size.NZ+k]
}

// Set stores val at (i, j, k).
func (v *Volume) Set(i, j, k int, val float64) {
	v.Data[(i*v.Size.NY+j)*v.Size.NZ+k] = val
}
