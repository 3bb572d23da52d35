// Command prepare turns three calibrated SHARP CEA vector-magnetogram
// component rasters into the multi-grid input files the external NLFFF
// solver consumes: allboundaries{1,2,3}.dat, grid{1,2,3}.ini,
// mask{1,2,3}.dat and boundary.ini.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/nlfff.report/internal/grid"
	"github.com/banshee-data/nlfff.report/internal/hierarchy"
	"github.com/banshee-data/nlfff.report/internal/magnetogram"
	"github.com/banshee-data/nlfff.report/internal/rundb"
	"github.com/banshee-data/nlfff.report/internal/solverio"
	"github.com/banshee-data/nlfff.report/internal/version"
)

func main() {
	var (
		bpPath  string
		btPath  string
		brPath  string
		outDir  string
		dbPath  string
		showVer bool
		cfgFlag = hierarchy.DefaultConfig()
	)
	flag.StringVar(&bpPath, "bp", "", "path to Bp (phi component) raster")
	flag.StringVar(&btPath, "bt", "", "path to Bt (theta component) raster")
	flag.StringVar(&brPath, "br", "", "path to Br (radial component) raster")
	flag.StringVar(&outDir, "output", "", "output directory for solver input files")
	flag.StringVar(&outDir, "o", "", "shorthand for -output")
	flag.Float64Var(&cfgFlag.Mu, "mu", cfgFlag.Mu, "smoothing parameter")
	flag.IntVar(&cfgFlag.Nd, "nd", cfgFlag.Nd, "nd parameter")
	flag.Float64Var(&cfgFlag.Nue, "nue", cfgFlag.Nue, "nue regularisation parameter")
	flag.IntVar(&cfgFlag.Boundary, "boundary", cfgFlag.Boundary, "boundary condition mode")
	flag.StringVar(&dbPath, "db", "", "optional run catalog sqlite path")
	flag.BoolVar(&showVer, "version", false, "print version and exit")
	flag.Parse()

	if showVer {
		fmt.Println(version.String())
		return
	}
	if bpPath == "" || btPath == "" || brPath == "" || outDir == "" {
		flag.Usage()
		os.Exit(1)
	}
	for _, in := range []struct{ name, path string }{
		{"Bp", bpPath}, {"Bt", btPath}, {"Br", brPath},
	} {
		if _, err := os.Stat(in.path); err != nil {
			log.Fatalf("%s file not found: %s", in.name, in.path)
		}
	}

	fmt.Println("Creating NLFFF input files from SHARP cutout...")
	fmt.Printf("  Bp: %s\n", bpPath)
	fmt.Printf("  Bt: %s\n", btPath)
	fmt.Printf("  Br: %s\n", brPath)
	fmt.Printf("  Output: %s/\n", outDir)
	fmt.Printf("  Parameters: mu=%g, nd=%d, nue=%g, boundary=%d\n\n",
		cfgFlag.Mu, cfgFlag.Nd, cfgFlag.Nue, cfgFlag.Boundary)

	levels, err := prepare(bpPath, btPath, brPath, outDir, cfgFlag)
	if err != nil {
		log.Fatalf("preparation failed: %v", err)
	}

	fmt.Println("✓ Successfully created NLFFF input files:")
	for _, name := range solverio.InputFileNames {
		path := filepath.Join(outDir, name)
		info, err := os.Stat(path)
		if err != nil {
			log.Fatalf("  ✗ %-25s (missing!)", name)
		}
		fmt.Printf("  ✓ %-25s (%8.1f KB)\n", name, float64(info.Size())/1024)
	}

	fmt.Println("\nGrid hierarchy:")
	for _, lv := range levels {
		fmt.Printf("  Level %d: %3d × %3d × %3d = %d voxels\n",
			lv.N, lv.Size.NX, lv.Size.NY, lv.Size.NZ, lv.Size.Voxels())
	}

	if dbPath != "" {
		recordRun(dbPath, outDir, cfgFlag, levels[len(levels)-1].Size)
	}
}

// prepare reads the component rasters, builds the hierarchy and writes the
// solver inputs. Each stage is named in its error so a failure reports
// whether reading, resampling or writing broke.
func prepare(bpPath, btPath, brPath, outDir string, cfg hierarchy.Config) ([]hierarchy.Level, error) {
	bp, err := magnetogram.ReadComponent(bpPath)
	if err != nil {
		return nil, fmt.Errorf("read Bp: %w", err)
	}
	bt, err := magnetogram.ReadComponent(btPath)
	if err != nil {
		return nil, fmt.Errorf("read Bt: %w", err)
	}
	br, err := magnetogram.ReadComponent(brPath)
	if err != nil {
		return nil, fmt.Errorf("read Br: %w", err)
	}

	levels, err := hierarchy.Build(br, bt, bp, cfg)
	if err != nil {
		return nil, fmt.Errorf("build hierarchy: %w", err)
	}
	if err := solverio.WriteInputs(outDir, levels, cfg); err != nil {
		return nil, fmt.Errorf("write inputs: %w", err)
	}
	return levels, nil
}

// recordRun is best-effort: a broken catalog should not fail a run whose
// files are already on disk.
func recordRun(dbPath, outDir string, cfg hierarchy.Config, finest grid.Size) {
	db, err := rundb.Open(dbPath)
	if err != nil {
		log.Printf("run catalog unavailable: %v", err)
		return
	}
	defer db.Close()
	id, err := db.RecordPrepRun(outDir, cfg, finest)
	if err != nil {
		log.Printf("record run: %v", err)
		return
	}
	fmt.Printf("\nRecorded run %s in %s\n", id, dbPath)
}
