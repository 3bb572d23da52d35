package solverio

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/banshee-data/nlfff.report/internal/grid"
)

// Component selects one of the three field components of a cube.
type Component int

const (
	Bx Component = iota
	By
	Bz
)

// FieldCube is a read-only 3-component volumetric field reconstructed from
// a solver B0.bin/Bout.bin file. The flat layout is component-major with x
// outermost within a component, so sample (c, i, j, k) sits at flat index
// ((c*nx+i)*ny+j)*nz+k.
//
// A cube is backed either by an eagerly read slice or by a memory-mapped
// file; element access behaves identically in both modes. Close releases
// the mapping and must be called on every path once the cube was opened —
// views handed out by At are plain values, so nothing can outlive the
// mapping.
type FieldCube struct {
	Size  grid.Size
	order binary.ByteOrder

	data []float64      // eager backing, nil when mapped
	m    *mmap.ReaderAt // mapped backing, nil when eager
}

// ReadCube opens a field cube with the default codec. When mapped is true
// the file is memory-mapped and paged in lazily instead of read up front,
// which keeps large volumes out of resident memory until touched.
func ReadCube(dataPath, gridPath string, mapped bool) (*FieldCube, error) {
	return DefaultCodec.ReadCube(dataPath, gridPath, mapped)
}

// ReadCube opens the flat binary at dataPath, validated against the grid
// descriptor at gridPath. The file must hold exactly 3*nx*ny*nz samples;
// anything else fails with ErrSizeMismatch before any field value is
// interpreted.
func (c Codec) ReadCube(dataPath, gridPath string, mapped bool) (*FieldCube, error) {
	size, err := grid.SizeFromFile(gridPath)
	if err != nil {
		return nil, err
	}
	want := 3 * size.Voxels() * sampleSize

	if mapped {
		r, err := mmap.Open(dataPath)
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", dataPath, err)
		}
		if r.Len() != want {
			r.Close()
			return nil, fmt.Errorf("%s: %d bytes for grid %s, want %d: %w",
				dataPath, r.Len(), size, want, ErrSizeMismatch)
		}
		return &FieldCube{Size: size, order: c.Order, m: r}, nil
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, err
	}
	if len(raw) != want {
		return nil, fmt.Errorf("%s: %d bytes for grid %s, want %d: %w",
			dataPath, len(raw), size, want, ErrSizeMismatch)
	}
	data := make([]float64, 3*size.Voxels())
	for i := range data {
		data[i] = math.Float64frombits(c.Order.Uint64(raw[i*sampleSize:]))
	}
	return &FieldCube{Size: size, order: c.Order, data: data}, nil
}

// At returns the field sample of component comp at voxel (i, j, k).
func (f *FieldCube) At(comp Component, i, j, k int) float64 {
	idx := (((int(comp)*f.Size.NX+i)*f.Size.NY + j) * f.Size.NZ) + k
	if f.data != nil {
		return f.data[idx]
	}
	var b [sampleSize]byte
	if _, err := f.m.ReadAt(b[:], int64(idx)*sampleSize); err != nil {
		// Length was validated at open; only an index bug lands here.
		panic(fmt.Sprintf("solverio: cube read at voxel (%d,%d,%d,%d): %v", comp, i, j, k, err))
	}
	return math.Float64frombits(f.order.Uint64(b[:]))
}

// Mapped reports whether the cube is backed by a memory mapping.
func (f *FieldCube) Mapped() bool { return f.m != nil }

// Close releases the memory mapping, if any. Safe to call on eager cubes
// and more than once.
func (f *FieldCube) Close() error {
	if f.m == nil {
		return nil
	}
	m := f.m
	f.m = nil
	return m.Close()
}

// WriteCube writes a cube-shaped flat sample slice, len 3*nx*ny*nz, in the
// codec's layout. The solver is the normal producer of cube files; this
// writer serves tests and synthetic-field tooling.
func (c Codec) WriteCube(path string, size grid.Size, samples []float64) error {
	if len(samples) != 3*size.Voxels() {
		return fmt.Errorf("%d samples for grid %s, want %d: %w",
			len(samples), size, 3*size.Voxels(), ErrSizeMismatch)
	}
	return c.writeSamples(path, samples)
}
