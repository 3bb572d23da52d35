// Package magnetogram reads and writes the calibrated vector-component
// rasters the preparation pipeline consumes. FITS parsing and calibration
// happen upstream; the hand-over format at that boundary is a small
// headered binary raster, one file per component (Br, Bt, Bp), values in
// Gauss.
//
// Layout, little-endian: 4-byte magic "BMGR", uint32 nx, uint32 ny, then
// nx*ny float64 samples in row-major order.
package magnetogram

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/banshee-data/nlfff.report/internal/grid"
)

// ErrFormat reports a component raster that does not match the headered
// binary layout.
var ErrFormat = errors.New("malformed component raster")

const (
	rasterMagic  = "BMGR"
	headerSize   = 4 + 4 + 4 // magic + nx + ny
	sampleSize   = 8
	maxDimension = 1 << 16 // sanity bound on header dimensions
)

// WriteComponent writes one component plane to path. Used by the FITS
// export step and by tests; the preparation CLI only reads.
func WriteComponent(path string, p *grid.Plane) error {
	buf := make([]byte, headerSize+len(p.Data)*sampleSize)
	copy(buf[0:4], rasterMagic)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.NX))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(p.NY))
	for i, v := range p.Data {
		off := headerSize + i*sampleSize
		binary.LittleEndian.PutUint64(buf[off:off+sampleSize], math.Float64bits(v))
	}
	return os.WriteFile(path, buf, 0o644)
}

// ReadComponent reads one component plane from path, validating the magic,
// the header dimensions and the exact file size before decoding.
func ReadComponent(path string) (*grid.Plane, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < headerSize || string(raw[0:4]) != rasterMagic {
		return nil, fmt.Errorf("%s: missing %q header: %w", path, rasterMagic, ErrFormat)
	}
	nx := int(binary.LittleEndian.Uint32(raw[4:8]))
	ny := int(binary.LittleEndian.Uint32(raw[8:12]))
	if nx <= 0 || ny <= 0 || nx > maxDimension || ny > maxDimension {
		return nil, fmt.Errorf("%s: implausible dimensions %dx%d: %w", path, nx, ny, ErrFormat)
	}
	want := headerSize + nx*ny*sampleSize
	if len(raw) != want {
		return nil, fmt.Errorf("%s: %d bytes for %dx%d raster, want %d: %w", path, len(raw), nx, ny, want, ErrFormat)
	}
	p := grid.NewPlane(nx, ny)
	for i := range p.Data {
		off := headerSize + i*sampleSize
		p.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off : off+sampleSize]))
	}
	return p, nil
}
