package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/vincentfiestada/ai-nav/config"
	"github.com/vincentfiestada/ai-nav/scenario"
)

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir      string
	runsFile *os.File
	pathFile *os.File

	// Track if headers have been written
	runsHeaderWritten bool
	pathHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}
	om.runsFile = f

	f, err = os.Create(filepath.Join(dir, "path.csv"))
	if err != nil {
		om.runsFile.Close()
		return nil, fmt.Errorf("creating path.csv: %w", err)
	}
	om.pathFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteScenario saves the scenario that was searched, so random batches can be replayed.
func (om *OutputManager) WriteScenario(sc *scenario.Scenario) error {
	if om == nil || sc == nil {
		return nil
	}
	name := sc.Name
	if name == "" {
		name = "scenario"
	}
	return sc.WriteYAML(filepath.Join(om.dir, name+".yaml"))
}

// WriteRun writes a run record to runs.csv.
func (om *OutputManager) WriteRun(r RunRecord) error {
	if om == nil {
		return nil
	}

	records := []RunRecord{r}

	if !om.runsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.runsFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
		om.runsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.runsFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
	}

	return nil
}

// WritePath writes one row per path step to path.csv. Empty paths write nothing.
func (om *OutputManager) WritePath(records []PathRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}

	if !om.pathHeaderWritten {
		if err := gocsv.Marshal(records, om.pathFile); err != nil {
			return fmt.Errorf("writing path: %w", err)
		}
		om.pathHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.pathFile); err != nil {
			return fmt.Errorf("writing path: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.runsFile != nil {
		if err := om.runsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.pathFile != nil {
		if err := om.pathFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// ReadRuns loads a runs.csv written by an OutputManager.
func ReadRuns(path string) ([]RunRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening runs file: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("parsing runs file: %w", err)
	}
	return records, nil
}
