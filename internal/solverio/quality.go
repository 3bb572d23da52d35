package solverio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MetricValue is one parsed quality metric: numeric-looking values carry a
// float, everything else stays text.
type MetricValue struct {
	Number   float64
	Text     string
	IsNumber bool
}

func (v MetricValue) String() string {
	if v.IsNumber {
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	}
	return v.Text
}

// Metrics maps metric names to their parsed values.
type Metrics map[string]MetricValue

// QualityLogName returns the solver's per-level quality log filename.
func QualityLogName(level int) string {
	return fmt.Sprintf("NLFFFquality%d.log", level)
}

// ParseQualityLog reads a solver quality log of "key: value" lines. Lines
// without a colon are skipped; a missing file yields empty metrics and no
// error, since the logs are optional diagnostic output.
func ParseQualityLog(path string) (Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metrics{}, nil
		}
		return nil, err
	}
	defer f.Close()

	out := Metrics{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, val, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)
		if key == "" {
			continue
		}
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			out[key] = MetricValue{Number: n, IsNumber: true}
		} else {
			out[key] = MetricValue{Text: val}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}
