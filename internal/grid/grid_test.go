package grid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSizeRoundTrip(t *testing.T) {
	cases := []Size{
		{NX: 65, NY: 65, NZ: 65},
		{NX: 17, NY: 33, NZ: 9},
		{NX: 1, NY: 1, NZ: 1},
		{NX: 400, NY: 200, NZ: 128},
	}
	for _, want := range cases {
		t.Run(want.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "grid3.ini")
			if err := want.WriteFile(path); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := SizeFromFile(path)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != want {
				t.Errorf("round trip: got %v, want %v", got, want)
			}
		})
	}
}

func TestSizeFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid1.ini")
	if err := (Size{NX: 17, NY: 17, NZ: 17}).WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "nx\n\t17\nny\n\t17\nnz\n\t17\n"
	if string(raw) != want {
		t.Errorf("file body = %q, want %q", raw, want)
	}
}

func TestSizeFromFileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("too few lines", func(t *testing.T) {
		path := write("short.ini", "nx\n\t65\nny\n\t65\n")
		if _, err := SizeFromFile(path); !errors.Is(err, ErrParse) {
			t.Errorf("got %v, want ErrParse", err)
		}
	})

	t.Run("non-integer value", func(t *testing.T) {
		path := write("junk.ini", "nx\n\tsixty-five\nny\n\t65\nnz\n\t65\n")
		if _, err := SizeFromFile(path); !errors.Is(err, ErrParse) {
			t.Errorf("got %v, want ErrParse", err)
		}
	})

	t.Run("non-positive dimension", func(t *testing.T) {
		path := write("zero.ini", "nx\n\t0\nny\n\t65\nnz\n\t65\n")
		if _, err := SizeFromFile(path); !errors.Is(err, ErrParse) {
			t.Errorf("got %v, want ErrParse", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := SizeFromFile(filepath.Join(dir, "nope.ini")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestWriteInvalidSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ini")
	err := Size{NX: -1, NY: 2, NZ: 3}.WriteFile(path)
	if !errors.Is(err, ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("invalid descriptor must not be written")
	}
}

func TestPlaneIndexing(t *testing.T) {
	p := NewPlane(3, 4)
	n := 0.0
	for i := 0; i < p.NX; i++ {
		for j := 0; j < p.NY; j++ {
			p.Set(i, j, n)
			n++
		}
	}
	// Row-major: (i, j) lands at i*NY+j.
	want := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if diff := cmp.Diff(want, p.Data); diff != "" {
		t.Errorf("plane layout mismatch (-want +got):\n%s", diff)
	}
	if got := p.At(2, 1); got != 9 {
		t.Errorf("At(2,1) = %v, want 9", got)
	}
}

func TestVolumeIndexing(t *testing.T) {
	v := NewVolume(Size{NX: 2, NY: 3, NZ: 4})
	v.Set(1, 2, 3, 42)
	if got := v.At(1, 2, 3); got != 42 {
		t.Errorf("At(1,2,3) = %v, want 42", got)
	}
	// Last flat element corresponds to the last index triple.
	if got := v.Data[len(v.Data)-1]; got != 42 {
		t.Errorf("flat index of (1,2,3) = last element; got %v", got)
	}
}

func TestPlaneClone(t *testing.T) {
	p := NewPlane(2, 2)
	p.Set(0, 0, 5)
	q := p.Clone()
	q.Set(0, 0, 7)
	if p.At(0, 0) != 5 {
		t.Error("clone aliases the original backing slice")
	}
}
