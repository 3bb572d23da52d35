package solverio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseQualityLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NLFFFquality3.log")
	body := "chi2: 0.0123\n" +
		"status: converged\n" +
		"this line has no colon and is skipped\n" +
		"L: 1.5e-4\n" +
		"  iterations :  1200  \n" +
		"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := ParseQualityLog(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(m) != 4 {
		t.Fatalf("got %d metrics (%v), want 4", len(m), m)
	}
	if v := m["chi2"]; !v.IsNumber || v.Number != 0.0123 {
		t.Errorf("chi2 = %+v", v)
	}
	if v := m["status"]; v.IsNumber || v.Text != "converged" {
		t.Errorf("status = %+v", v)
	}
	if v := m["L"]; !v.IsNumber || v.Number != 1.5e-4 {
		t.Errorf("L = %+v", v)
	}
	if v := m["iterations"]; !v.IsNumber || v.Number != 1200 {
		t.Errorf("iterations = %+v", v)
	}
}

func TestParseQualityLogMissingFile(t *testing.T) {
	m, err := ParseQualityLog(filepath.Join(t.TempDir(), "NLFFFquality1.log"))
	if err != nil {
		t.Fatalf("missing log must not error, got %v", err)
	}
	if len(m) != 0 {
		t.Errorf("missing log must parse empty, got %v", m)
	}
}

func TestQualityLogName(t *testing.T) {
	if got := QualityLogName(2); got != "NLFFFquality2.log" {
		t.Errorf("got %q", got)
	}
}

func TestMetricValueString(t *testing.T) {
	if got := (MetricValue{Number: 0.5, IsNumber: true}).String(); got != "0.5" {
		t.Errorf("numeric String() = %q", got)
	}
	if got := (MetricValue{Text: "diverged"}).String(); got != "diverged" {
		t.Errorf("text String() = %q", got)
	}
}
