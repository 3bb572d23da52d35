// Package rundb keeps a small sqlite catalog of preparation runs and
// analysis results, so a season of solver runs stays queryable after the
// project directories have been archived.
package rundb

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/nlfff.report/internal/grid"
	"github.com/banshee-data/nlfff.report/internal/hierarchy"
	"github.com/banshee-data/nlfff.report/internal/solverio"
)

//go:embed schema.sql
var schemaSQL string

// RunDB wraps the catalog database handle.
type RunDB struct {
	*sql.DB
}

// Open opens (creating if needed) the catalog at path and applies the
// schema.
func Open(path string) (*RunDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &RunDB{db}, nil
}

// PrepRun is one recorded preparation run: the parameters used and the
// finest grid they produced.
type PrepRun struct {
	RunID     string
	Created   time.Time
	OutputDir string
	Config    hierarchy.Config
	Finest    grid.Size
}

// RecordPrepRun stores a preparation run and returns its generated ID.
func (db *RunDB) RecordPrepRun(outputDir string, cfg hierarchy.Config, finest grid.Size) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO prep_runs (run_id, created_unix, output_dir, mu, nd, nue, boundary, nx, ny, nz)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().Unix(), outputDir,
		cfg.Mu, cfg.Nd, cfg.Nue, cfg.Boundary,
		finest.NX, finest.NY, finest.NZ)
	if err != nil {
		return "", fmt.Errorf("insert prep run: %w", err)
	}
	return id, nil
}

// ListPrepRuns returns all recorded runs, newest first.
func (db *RunDB) ListPrepRuns() ([]PrepRun, error) {
	rows, err := db.Query(`
		SELECT run_id, created_unix, output_dir, mu, nd, nue, boundary, nx, ny, nz
		FROM prep_runs ORDER BY created_unix DESC, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PrepRun
	for rows.Next() {
		var r PrepRun
		var created int64
		if err := rows.Scan(&r.RunID, &created, &r.OutputDir,
			&r.Config.Mu, &r.Config.Nd, &r.Config.Nue, &r.Config.Boundary,
			&r.Finest.NX, &r.Finest.NY, &r.Finest.NZ); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Analysis is one recorded field analysis. Energy values are absent when
// the corresponding cube file was missing.
type Analysis struct {
	AnalysisID      string
	Created         time.Time
	ProjectDir      string
	EnergyPotential *float64
	EnergyNLFFF     *float64
	CWAngleDeg      *float64
	Metrics         map[int]solverio.Metrics // per solver level
}

// RecordAnalysis stores one analysis and returns its generated ID.
func (db *RunDB) RecordAnalysis(a Analysis) (string, error) {
	id := uuid.NewString()
	metricsJSON, err := json.Marshal(a.Metrics)
	if err != nil {
		return "", fmt.Errorf("encode metrics: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO analyses (analysis_id, created_unix, project_dir, energy_potential, energy_nlfff, cw_angle_deg, metrics_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().Unix(), a.ProjectDir,
		a.EnergyPotential, a.EnergyNLFFF, a.CWAngleDeg, string(metricsJSON))
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	return id, nil
}

// AnalysesFor returns the recorded analyses of one project directory,
// newest first.
func (db *RunDB) AnalysesFor(projectDir string) ([]Analysis, error) {
	rows, err := db.Query(`
		SELECT analysis_id, created_unix, project_dir, energy_potential, energy_nlfff, cw_angle_deg, metrics_json
		FROM analyses WHERE project_dir = ? ORDER BY created_unix DESC, analysis_id`, projectDir)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		var created int64
		var metricsJSON string
		if err := rows.Scan(&a.AnalysisID, &created, &a.ProjectDir,
			&a.EnergyPotential, &a.EnergyNLFFF, &a.CWAngleDeg, &metricsJSON); err != nil {
			return nil, err
		}
		a.Created = time.Unix(created, 0)
		if err := json.Unmarshal([]byte(metricsJSON), &a.Metrics); err != nil {
			return nil, fmt.Errorf("decode metrics for %s: %w", a.AnalysisID, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
