// Command quality-plot renders the solver's per-level quality metrics
// (NLFFFquality{1,2,3}.log) as a PNG, one line per numeric metric across
// the three grid levels.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/nlfff.report/internal/hierarchy"
	"github.com/banshee-data/nlfff.report/internal/solverio"
)

func main() {
	var projectDir, outPath, metric string
	flag.StringVar(&projectDir, "project", "", "NLFFF project directory")
	flag.StringVar(&outPath, "out", "quality.png", "output PNG path")
	flag.StringVar(&metric, "metric", "", "plot only this metric (default: all numeric metrics)")
	flag.Parse()
	if projectDir == "" {
		flag.Usage()
		log.Fatal("missing -project")
	}

	series, err := collect(projectDir, metric)
	if err != nil {
		log.Fatalf("collect metrics: %v", err)
	}
	if len(series) == 0 {
		log.Fatalf("no numeric quality metrics found in %s", projectDir)
	}

	if err := render(series, outPath); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("✓ wrote %s (%d metrics)\n", outPath, len(series))
}

// collect gathers metric -> (level, value) points from the per-level logs.
func collect(projectDir, only string) (map[string]plotter.XYs, error) {
	series := map[string]plotter.XYs{}
	for level := 1; level <= hierarchy.Levels; level++ {
		path := filepath.Join(projectDir, solverio.QualityLogName(level))
		m, err := solverio.ParseQualityLog(path)
		if err != nil {
			return nil, err
		}
		for k, v := range m {
			if !v.IsNumber {
				continue
			}
			if only != "" && k != only {
				continue
			}
			series[k] = append(series[k], plotter.XY{X: float64(level), Y: v.Number})
		}
	}
	return series, nil
}

func render(series map[string]plotter.XYs, outPath string) error {
	p := plot.New()
	p.Title.Text = "NLFFF solver quality per grid level"
	p.X.Label.Text = "grid level (1 = coarsest)"
	p.Y.Label.Text = "metric value"
	p.Legend.Top = true

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		pts := series[name]
		sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
		line, scatter, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("series %s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		scatter.Color = plotutil.Color(i)
		p.Add(line, scatter)
		p.Legend.Add(name, line, scatter)
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, outPath)
}
