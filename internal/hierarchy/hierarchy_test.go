package hierarchy

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/nlfff.report/internal/grid"
)

func uniformPlane(nx, ny int, v float64) *grid.Plane {
	p := grid.NewPlane(nx, ny)
	for i := range p.Data {
		p.Data[i] = v
	}
	return p
}

func TestBuildUniform65(t *testing.T) {
	br := uniformPlane(65, 65, 10.0)
	bt := uniformPlane(65, 65, 10.0)
	bp := uniformPlane(65, 65, 10.0)

	levels, err := Build(br, bt, bp, DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(levels) != Levels {
		t.Fatalf("got %d levels, want %d", len(levels), Levels)
	}

	wantSizes := []grid.Size{
		{NX: 17, NY: 17, NZ: 17},
		{NX: 33, NY: 33, NZ: 33},
		{NX: 65, NY: 65, NZ: 65},
	}
	for i, lv := range levels {
		if lv.N != i+1 {
			t.Errorf("levels[%d].N = %d, want %d", i, lv.N, i+1)
		}
		if lv.Size != wantSizes[i] {
			t.Errorf("level %d size = %v, want %v", lv.N, lv.Size, wantSizes[i])
		}
		for _, m := range lv.Mask.Data {
			if m != 1 {
				t.Fatalf("level %d: expected all-ones mask", lv.N)
			}
		}
		// Smoothing a constant field is the identity, at every level.
		for _, v := range lv.Bounds.Br.Data {
			if math.Abs(v-10.0) > 1e-12 {
				t.Fatalf("level %d: Br sample %v, want 10.0", lv.N, v)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	mk := func() (*grid.Plane, *grid.Plane, *grid.Plane) {
		br := grid.NewPlane(33, 65)
		bt := grid.NewPlane(33, 65)
		bp := grid.NewPlane(33, 65)
		for i := range br.Data {
			br.Data[i] = math.Sin(float64(i) * 0.01)
			bt.Data[i] = math.Cos(float64(i) * 0.02)
			bp.Data[i] = float64(i%7) - 3
		}
		return br, bt, bp
	}
	cfg := Config{Mu: 0.25, Nd: 1, Nue: 0.01, Boundary: 2}

	br, bt, bp := mk()
	first, err := Build(br, bt, bp, cfg)
	if err != nil {
		t.Fatal(err)
	}
	br2, bt2, bp2 := mk()
	second, err := Build(br2, bt2, bp2, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rebuild differs (-first +second):\n%s", diff)
	}

	// Non-square input: nz follows the shorter horizontal side.
	if got := first[Levels-1].Size; got != (grid.Size{NX: 33, NY: 65, NZ: 33}) {
		t.Errorf("finest size = %v", got)
	}
}

func TestBuildInputUntouched(t *testing.T) {
	br := uniformPlane(16, 16, 1)
	br.Set(3, 3, math.NaN())
	bt := uniformPlane(16, 16, 2)
	bp := uniformPlane(16, 16, 3)

	if _, err := Build(br, bt, bp, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(br.At(3, 3)) {
		t.Error("Build must not mutate its input planes")
	}
}

func TestBuildMasksNonFinite(t *testing.T) {
	br := uniformPlane(16, 16, 100)
	bt := uniformPlane(16, 16, 100)
	bp := uniformPlane(16, 16, 100)
	br.Set(5, 5, math.NaN())
	bt.Set(8, 2, math.Inf(-1))

	levels, err := Build(br, bt, bp, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	fine := levels[Levels-1]
	if fine.Mask.At(5, 5) != 0 || fine.Mask.At(8, 2) != 0 {
		t.Error("non-finite samples must be masked out")
	}
	if fine.Mask.At(0, 0) != 1 {
		t.Error("clean samples must stay trusted")
	}
	if fine.Bounds.Br.At(5, 5) != 0 {
		t.Errorf("masked Br sample = %v, want 0", fine.Bounds.Br.At(5, 5))
	}
	// No NaN may leak into any level of the hierarchy.
	for _, lv := range levels {
		for _, p := range []*grid.Plane{lv.Bounds.Br, lv.Bounds.Bt, lv.Bounds.Bp} {
			for _, v := range p.Data {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("level %d: non-finite sample leaked", lv.N)
				}
			}
		}
	}
	// Conservative coarsening: the coarse sample over a bad fine sample is
	// itself distrusted.
	mid := levels[1]
	if mid.Mask.At(2, 2) != 0 { // fine (5,5) sits under coarse (2,2)'s stencil
		t.Error("mask coarsening must distrust stencils covering bad samples")
	}
}

func TestBuildErrors(t *testing.T) {
	t.Run("shape mismatch", func(t *testing.T) {
		_, err := Build(uniformPlane(16, 16, 0), uniformPlane(16, 17, 0), uniformPlane(16, 16, 0), DefaultConfig())
		if !errors.Is(err, ErrShapeMismatch) {
			t.Errorf("got %v, want ErrShapeMismatch", err)
		}
	})
	t.Run("too small", func(t *testing.T) {
		_, err := Build(uniformPlane(4, 16, 0), uniformPlane(4, 16, 0), uniformPlane(4, 16, 0), DefaultConfig())
		if !errors.Is(err, ErrGridSize) {
			t.Errorf("got %v, want ErrGridSize", err)
		}
	})
}

func TestSmoothingReducesVariance(t *testing.T) {
	// Alternating +/-100 checkerboard: aggressive smoothing must shrink the
	// amplitude that reaches the coarse level.
	mk := func() *grid.Plane {
		p := grid.NewPlane(33, 33)
		for i := 0; i < p.NX; i++ {
			for j := 0; j < p.NY; j++ {
				if (i+j)%2 == 0 {
					p.Set(i, j, 100)
				} else {
					p.Set(i, j, -100)
				}
			}
		}
		return p
	}
	amplitude := func(levels []Level) float64 {
		max := 0.0
		for _, v := range levels[0].Bounds.Br.Data {
			if a := math.Abs(v); a > max {
				max = a
			}
		}
		return max
	}

	rough, err := Build(mk(), mk(), mk(), Config{Mu: 0})
	if err != nil {
		t.Fatal(err)
	}
	smooth, err := Build(mk(), mk(), mk(), Config{Mu: 0.9})
	if err != nil {
		t.Fatal(err)
	}
	if amplitude(smooth) >= amplitude(rough) {
		t.Errorf("mu=0.9 coarse amplitude %v not below mu=0 amplitude %v",
			amplitude(smooth), amplitude(rough))
	}
}
