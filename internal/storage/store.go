package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/glide/internal/config"
	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/sim"
	"github.com/san-kum/glide/internal/trace"
)

// ErrNotFound means no run with the given id exists.
var ErrNotFound = errors.New("storage: run not found")

// Store keeps headless runs on disk, one directory per run holding
// metadata.json, config.yaml and trace.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Params    kinematics.Params  `json:"params"`
	Dt        float64            `json:"dt"`
	Stats     sim.Stats          `json:"stats"`
	Summary   trace.Summary      `json:"summary"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	Reason    string             `json:"reason,omitempty"`
}

type Run struct {
	Name    string
	Config  *config.Config
	Trace   *trace.Recorder
	Stats   sim.Stats
	Metrics map[string]float64
	Reason  string
}

func (s *Store) Save(run Run) (string, error) {
	sum, err := run.Trace.Summary()
	if err != nil {
		return "", err
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%s", run.Name, now.Format("20060102-150405.000"))
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      run.Name,
		Timestamp: now,
		Params:    run.Config.EntityParams(),
		Dt:        run.Config.Loop.Dt,
		Stats:     run.Stats,
		Summary:   sum,
		Metrics:   run.Metrics,
		Reason:    run.Reason,
	}

	if err := s.writeRun(runDir, meta, run); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}

	return runID, nil
}

func (s *Store) writeRun(runDir string, meta RunMetadata, run Run) error {
	err := writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}

	if err := config.Save(filepath.Join(runDir, "config.yaml"), run.Config); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	if err := writeFile(filepath.Join(runDir, "trace.csv"), run.Trace.WriteCSV); err != nil {
		return fmt.Errorf("write trace: %w", err)
	}
	return nil
}

// writeFile creates path and reports the first of the write and close
// errors.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns saved runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, "config.yaml"), nil)
}

func (s *Store) LoadTrace(runID string) (*trace.Recorder, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return trace.ReadCSV(file)
}
