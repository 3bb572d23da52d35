// Command gen-magnetogram writes a synthetic bipole vector magnetogram as
// three component rasters (Bp, Bt, Br), for exercising the preparation
// pipeline without SHARP data on hand.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/banshee-data/nlfff.report/internal/grid"
	"github.com/banshee-data/nlfff.report/internal/magnetogram"
)

func main() {
	var (
		outDir string
		nx, ny int
		peak   float64
	)
	flag.StringVar(&outDir, "o", ".", "output directory")
	flag.IntVar(&nx, "nx", 65, "raster width")
	flag.IntVar(&ny, "ny", 65, "raster height")
	flag.Float64Var(&peak, "peak", 1500, "peak |Br| in Gauss")
	flag.Parse()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("create %s: %v", outDir, err)
	}

	br, bt, bp := bipole(nx, ny, peak)
	for _, c := range []struct {
		name  string
		plane *grid.Plane
	}{
		{"Br.bmgr", br}, {"Bt.bmgr", bt}, {"Bp.bmgr", bp},
	} {
		path := filepath.Join(outDir, c.name)
		if err := magnetogram.WriteComponent(path, c.plane); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("✓ %s\n", path)
	}
}

// bipole places two opposite-polarity Gaussian spots a third of the raster
// apart, with a weak transverse field bridging them.
func bipole(nx, ny int, peak float64) (br, bt, bp *grid.Plane) {
	br = grid.NewPlane(nx, ny)
	bt = grid.NewPlane(nx, ny)
	bp = grid.NewPlane(nx, ny)

	sigma := float64(nx) / 10
	x1, y1 := float64(nx)/3, float64(ny)/2
	x2, y2 := 2*float64(nx)/3, float64(ny)/2

	spot := func(x, y, cx, cy float64) float64 {
		d2 := (x-cx)*(x-cx) + (y-cy)*(y-cy)
		return math.Exp(-d2 / (2 * sigma * sigma))
	}
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x, y := float64(i), float64(j)
			pos := spot(x, y, x1, y1)
			neg := spot(x, y, x2, y2)
			br.Set(i, j, peak*(pos-neg))
			// Transverse field points from the positive to the negative
			// spot, strongest between them.
			bridge := peak * 0.3 * pos * neg * 4
			bp.Set(i, j, bridge)
			bt.Set(i, j, 0.1*bridge)
		}
	}
	return br, bt, bp
}
