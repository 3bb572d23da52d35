package solverio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/nlfff.report/internal/grid"
	"github.com/banshee-data/nlfff.report/internal/hierarchy"
)

// InputFileNames lists the files a complete preparation run leaves in the
// project directory, in the order the solver documentation lists them.
var InputFileNames = []string{
	"allboundaries1.dat", "allboundaries2.dat", "allboundaries3.dat",
	"grid1.ini", "grid2.ini", "grid3.ini",
	"mask1.dat", "mask2.dat", "mask3.dat",
	"boundary.ini",
}

// WriteInputs serialises the hierarchy into dir using the default codec.
func WriteInputs(dir string, levels []hierarchy.Level, cfg hierarchy.Config) error {
	return DefaultCodec.WriteInputs(dir, levels, cfg)
}

// WriteInputs serialises the hierarchy into dir, creating it if absent:
// per level a grid{N}.ini descriptor, an allboundaries{N}.dat with the
// three packed component planes, and a mask{N}.dat; then one boundary.ini
// recording the run parameters. Writes are sequential and best-effort:
// the first failure aborts with the failing file named, with no cross-file
// rollback.
func (c Codec) WriteInputs(dir string, levels []hierarchy.Level, cfg hierarchy.Config) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create project dir: %w", err)
	}
	for _, lv := range levels {
		if err := c.writeLevel(dir, lv); err != nil {
			return fmt.Errorf("level %d: %w", lv.N, err)
		}
	}
	if err := c.writeBoundaryINI(filepath.Join(dir, "boundary.ini"), levels, cfg); err != nil {
		return fmt.Errorf("boundary.ini: %w", err)
	}
	return nil
}

func (c Codec) writeLevel(dir string, lv hierarchy.Level) error {
	gridPath := filepath.Join(dir, fmt.Sprintf("grid%d.ini", lv.N))
	if err := lv.Size.WriteFile(gridPath); err != nil {
		return fmt.Errorf("%s: %w", gridPath, err)
	}

	boundsPath := filepath.Join(dir, fmt.Sprintf("allboundaries%d.dat", lv.N))
	packed := make([]float64, 0, 3*len(lv.Bounds.Br.Data))
	packed = append(packed, lv.Bounds.Br.Data...)
	packed = append(packed, lv.Bounds.Bt.Data...)
	packed = append(packed, lv.Bounds.Bp.Data...)
	if err := c.writeSamples(boundsPath, packed); err != nil {
		return err
	}

	maskPath := filepath.Join(dir, fmt.Sprintf("mask%d.dat", lv.N))
	return c.writeSamples(maskPath, lv.Mask.Data)
}

func (c Codec) writeSamples(path string, samples []float64) error {
	buf := make([]byte, len(samples)*sampleSize)
	for i, v := range samples {
		c.Order.PutUint64(buf[i*sampleSize:], math.Float64bits(v))
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readSamples is the inverse of writeSamples, validating the exact byte
// count first.
func (c Codec) readSamples(path string, want int) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) != want*sampleSize {
		return nil, fmt.Errorf("%s: %d bytes, want %d: %w", path, len(raw), want*sampleSize, ErrSizeMismatch)
	}
	out := make([]float64, want)
	for i := range out {
		out[i] = math.Float64frombits(c.Order.Uint64(raw[i*sampleSize:]))
	}
	return out, nil
}

// ReadBoundaries reconstructs the three component planes of one level from
// its allboundaries file and grid descriptor. The solver itself is the
// usual consumer; this reader exists for verification and tests.
func (c Codec) ReadBoundaries(path string, s grid.Size) (hierarchy.BoundarySet, error) {
	samples, err := c.readSamples(path, 3*s.NX*s.NY)
	if err != nil {
		return hierarchy.BoundarySet{}, err
	}
	n := s.NX * s.NY
	set := hierarchy.BoundarySet{
		Br: grid.NewPlane(s.NX, s.NY),
		Bt: grid.NewPlane(s.NX, s.NY),
		Bp: grid.NewPlane(s.NX, s.NY),
	}
	copy(set.Br.Data, samples[0:n])
	copy(set.Bt.Data, samples[n:2*n])
	copy(set.Bp.Data, samples[2*n:3*n])
	return set, nil
}

// ReadMask reconstructs one level's validity mask from its mask file and
// grid descriptor.
func (c Codec) ReadMask(path string, s grid.Size) (*grid.Plane, error) {
	samples, err := c.readSamples(path, s.NX*s.NY)
	if err != nil {
		return nil, err
	}
	p := grid.NewPlane(s.NX, s.NY)
	copy(p.Data, samples)
	return p, nil
}

func (c Codec) writeBoundaryINI(path string, levels []hierarchy.Level, cfg hierarchy.Config) error {
	body := fmt.Sprintf("mu: %g\nnd: %d\nnue: %g\nboundary: %d\nlevels: %d\n",
		cfg.Mu, cfg.Nd, cfg.Nue, cfg.Boundary, len(levels))
	for _, lv := range levels {
		body += fmt.Sprintf("grid%d: grid%d.ini\n", lv.N, lv.N)
	}
	return os.WriteFile(path, []byte(body), 0o644)
}
