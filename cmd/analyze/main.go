// Command analyze reads the binary field cubes and quality logs an NLFFF
// solver run left in a project directory and prints a force-free quality
// report.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/banshee-data/nlfff.report/internal/diag"
	"github.com/banshee-data/nlfff.report/internal/grid"
	"github.com/banshee-data/nlfff.report/internal/hierarchy"
	"github.com/banshee-data/nlfff.report/internal/rundb"
	"github.com/banshee-data/nlfff.report/internal/solverio"
	"github.com/banshee-data/nlfff.report/internal/version"
)

func main() {
	var dbPath string
	var showVer bool
	flag.StringVar(&dbPath, "db", "", "optional run catalog sqlite path")
	flag.BoolVar(&showVer, "version", false, "print version and exit")
	flag.Parse()

	if showVer {
		fmt.Println(version.String())
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-db catalog.db] <project-dir>\n", os.Args[0])
		os.Exit(1)
	}
	projectDir := flag.Arg(0)
	if info, err := os.Stat(projectDir); err != nil || !info.IsDir() {
		log.Fatalf("directory not found: %s", projectDir)
	}
	gridPath := filepath.Join(projectDir, "grid3.ini")
	if _, err := os.Stat(gridPath); err != nil {
		log.Fatalf("grid3.ini not found in %s; run prepare (and the solver) first", projectDir)
	}

	result, err := analyze(projectDir, gridPath)
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}

	if dbPath != "" {
		recordAnalysis(dbPath, projectDir, result)
	}
}

// report collects what the run produced; missing cube files leave the
// corresponding fields nil.
type report struct {
	energyPotential *float64
	energyNLFFF     *float64
	cwAngleDeg      *float64
	metrics         map[int]solverio.Metrics
}

func analyze(projectDir, gridPath string) (*report, error) {
	size, err := grid.SizeFromFile(gridPath)
	if err != nil {
		return nil, err
	}
	fmt.Printf("Project: %s\n", projectDir)
	fmt.Printf("Grid size: %d × %d × %d = %d voxels\n\n", size.NX, size.NY, size.NZ, size.Voxels())

	out := &report{metrics: map[int]solverio.Metrics{}}

	// Potential field, when the solver kept it.
	if path := filepath.Join(projectDir, "B0.bin"); exists(path) {
		fmt.Println("Potential field (B0.bin)")
		e, err := cubeSection(path, gridPath, false, out)
		if err != nil {
			return nil, fmt.Errorf("B0.bin: %w", err)
		}
		out.energyPotential = &e
	}

	// Relaxed NLFFF field.
	if path := filepath.Join(projectDir, "Bout.bin"); exists(path) {
		fmt.Println("NLFFF field (Bout.bin)")
		e, err := cubeSection(path, gridPath, true, out)
		if err != nil {
			return nil, fmt.Errorf("Bout.bin: %w", err)
		}
		out.energyNLFFF = &e
		if out.energyPotential != nil && *out.energyPotential != 0 {
			fmt.Printf("Energy ratio (NLFFF/potential): %.4f\n\n", e / *out.energyPotential)
		}
	}

	// Per-level solver quality logs, all optional.
	for level := 1; level <= hierarchy.Levels; level++ {
		path := filepath.Join(projectDir, solverio.QualityLogName(level))
		m, err := solverio.ParseQualityLog(path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		if len(m) == 0 {
			continue
		}
		out.metrics[level] = m
		fmt.Printf("Grid level %d quality:\n", level)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-20s: %s\n", k, m[k])
		}
		fmt.Println()
	}

	fmt.Println("Analysis complete.")
	return out, nil
}

// cubeSection prints the component ranges and energy of one cube and, for
// the NLFFF field, the force-free misalignment diagnostics. Cubes are
// memory-mapped so large volumes page in lazily; the mapping is released
// before returning.
func cubeSection(dataPath, gridPath string, forceFree bool, out *report) (energy float64, err error) {
	cube, err := solverio.ReadCube(dataPath, gridPath, true)
	if err != nil {
		return 0, err
	}
	defer cube.Close()

	names := []string{"Bx", "By", "Bz"}
	for comp := solverio.Bx; comp <= solverio.Bz; comp++ {
		s := diag.ComponentSummary(cube, comp)
		fmt.Printf("%s range: [%8.2f, %8.2f] G, mean %8.2f G\n", names[comp], s.Min, s.Max, s.Mean)
	}
	mag := diag.MagnitudeSummary(cube)
	fmt.Printf("|B| range: [%8.2f, %8.2f] G, mean %8.2f G\n", mag.Min, mag.Max, mag.Mean)

	energy = diag.Energy(cube)
	fmt.Printf("Energy (sum |B|^2): %.3e\n", energy)

	if forceFree {
		jx, jy, jz, err := diag.Curl(cube)
		if err != nil {
			return 0, err
		}
		angle := diag.CurrentWeightedAngle(cube, jx, jy, jz)
		out.cwAngleDeg = &angle
		fmt.Printf("Current-weighted angle (J∥B): %.2f° (< 10° is good, < 5° excellent)\n", angle)
	}
	fmt.Println()
	return energy, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func recordAnalysis(dbPath, projectDir string, r *report) {
	db, err := rundb.Open(dbPath)
	if err != nil {
		log.Printf("run catalog unavailable: %v", err)
		return
	}
	defer db.Close()
	id, err := db.RecordAnalysis(rundb.Analysis{
		ProjectDir:      projectDir,
		EnergyPotential: r.energyPotential,
		EnergyNLFFF:     r.energyNLFFF,
		CWAngleDeg:      r.cwAngleDeg,
		Metrics:         r.metrics,
	})
	if err != nil {
		log.Printf("record analysis: %v", err)
		return
	}
	fmt.Printf("Recorded analysis %s in %s\n", id, dbPath)
}
