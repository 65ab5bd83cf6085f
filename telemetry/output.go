package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/spin/config"
)

// OutputManager handles structured drag output with CSV logging.
type OutputManager struct {
	dir         string
	traceFile   *os.File
	sessionFile *os.File
	perfFile    *os.File

	// Track if headers have been written
	traceHeaderWritten   bool
	sessionHeaderWritten bool
	perfHeaderWritten    bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). trace controls whether
// trace.csv is written.
func NewOutputManager(dir string, trace bool) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	// Create output directory
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	if trace {
		f, err := os.Create(filepath.Join(dir, "trace.csv"))
		if err != nil {
			return nil, fmt.Errorf("creating trace.csv: %w", err)
		}
		om.traceFile = f
	}

	f, err := os.Create(filepath.Join(dir, "sessions.csv"))
	if err != nil {
		om.Close()
		return nil, fmt.Errorf("creating sessions.csv: %w", err)
	}
	om.sessionFile = f

	f, err = os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		om.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	om.perfFile = f

	return om, nil
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTrace writes a move record to trace.csv.
func (om *OutputManager) WriteTrace(rec TraceRecord) error {
	if om == nil || om.traceFile == nil {
		return nil
	}
	if err := writeRecords(om.traceFile, []TraceRecord{rec}, &om.traceHeaderWritten); err != nil {
		return fmt.Errorf("writing trace: %w", err)
	}
	return nil
}

// WriteSession writes a drag session summary to sessions.csv.
func (om *OutputManager) WriteSession(s SessionStats) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.sessionFile, []SessionStats{s}, &om.sessionHeaderWritten); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// WritePerf writes a frame timing record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}
	if err := writeRecords(om.perfFile, []PerfStatsCSV{stats.ToCSV(frame)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// writeRecords marshals records, including the CSV header on first write only.
func writeRecords(f *os.File, records any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(records, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, f)
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, f := range []*os.File{om.traceFile, om.sessionFile, om.perfFile} {
		if f != nil {
			if err := f.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
