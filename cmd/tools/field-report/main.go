// Command field-report renders an HTML report for a solved NLFFF project:
// component statistics of the reconstructed field cubes plus the solver's
// per-level quality metrics, charted with go-echarts.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/nlfff.report/internal/diag"
	"github.com/banshee-data/nlfff.report/internal/hierarchy"
	"github.com/banshee-data/nlfff.report/internal/solverio"
)

func main() {
	var projectDir, outPath string
	flag.StringVar(&projectDir, "project", "", "NLFFF project directory")
	flag.StringVar(&outPath, "out", "field-report.html", "output HTML path")
	flag.Parse()
	if projectDir == "" {
		flag.Usage()
		log.Fatal("missing -project")
	}
	gridPath := filepath.Join(projectDir, "grid3.ini")
	if _, err := os.Stat(gridPath); err != nil {
		log.Fatalf("grid3.ini not found in %s", projectDir)
	}

	page := components.NewPage()
	page.PageTitle = "NLFFF field report"

	charted := 0
	for _, cube := range []string{"B0.bin", "Bout.bin"} {
		path := filepath.Join(projectDir, cube)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		bar, err := cubeChart(path, gridPath, cube)
		if err != nil {
			log.Fatalf("%s: %v", cube, err)
		}
		page.AddCharts(bar)
		charted++
	}
	if line := qualityChart(projectDir); line != nil {
		page.AddCharts(line)
		charted++
	}
	if charted == 0 {
		log.Fatalf("nothing to report: no cube files or quality logs in %s", projectDir)
	}

	f, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("create %s: %v", outPath, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		log.Fatalf("render: %v", err)
	}
	fmt.Printf("✓ wrote %s\n", outPath)
}

// cubeChart summarises one cube file as a grouped bar chart of min, max
// and mean per component.
func cubeChart(dataPath, gridPath, title string) (*charts.Bar, error) {
	cube, err := solverio.ReadCube(dataPath, gridPath, true)
	if err != nil {
		return nil, err
	}
	defer cube.Close()

	var mins, maxs, means []opts.BarData
	for comp := solverio.Bx; comp <= solverio.Bz; comp++ {
		s := diag.ComponentSummary(cube, comp)
		mins = append(mins, opts.BarData{Value: s.Min})
		maxs = append(maxs, opts.BarData{Value: s.Max})
		means = append(means, opts.BarData{Value: s.Mean})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("grid %s, energy %.3e", cube.Size, diag.Energy(cube)),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Gauss"}),
	)
	bar.SetXAxis([]string{"Bx", "By", "Bz"}).
		AddSeries("min", mins).
		AddSeries("max", maxs).
		AddSeries("mean", means)
	return bar, nil
}

// qualityChart plots every numeric metric across grid levels, or nil when
// no logs were found.
func qualityChart(projectDir string) *charts.Line {
	series := map[string][]opts.LineData{}
	for level := 1; level <= hierarchy.Levels; level++ {
		m, err := solverio.ParseQualityLog(filepath.Join(projectDir, solverio.QualityLogName(level)))
		if err != nil {
			log.Printf("skipping level %d log: %v", level, err)
			continue
		}
		for k, v := range m {
			if v.IsNumber {
				series[k] = append(series[k], opts.LineData{Value: v.Number})
			}
		}
	}
	if len(series) == 0 {
		return nil
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Solver quality per grid level"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "grid level"}),
	)
	line.SetXAxis([]string{"1", "2", "3"})
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		line.AddSeries(name, series[name])
	}
	return line
}
