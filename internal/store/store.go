// Package store archives finished runs on disk, one directory per run.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/report"
)

const (
	metadataFile = "metadata.json"
	historyFile  = "history.csv"
	summaryFile  = "summary.json"
)

var ErrRunNotFound = errors.New("store: run not found")

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
	ID         string             `json:"id"`
	UnitID     string             `json:"unit_id"`
	UnitName   string             `json:"unit_name"`
	Preset     string             `json:"preset,omitempty"`
	Controller string             `json:"controller"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	FirstTrip  float64            `json:"first_trip"`
	Status     string             `json:"status"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save archives a run summary and returns the new run id.
func (s *Store) Save(sum report.Summary) (string, error) {
	label := sum.Preset
	if label == "" {
		label = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", label, now.Unix(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		UnitID:     sum.UnitID,
		UnitName:   sum.UnitName,
		Preset:     sum.Preset,
		Controller: sum.Controller,
		Timestamp:  now,
		Dt:         sum.Dt,
		Duration:   sum.Duration,
		Steps:      sum.Steps,
		FirstTrip:  sum.FirstTrip,
		Status:     sum.Telemetry.Status.String(),
		Metrics:    sum.Metrics,
	}

	if err := writeFile(filepath.Join(runDir, metadataFile), func(f *os.File) error {
		return report.WriteJSON(f, meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, summaryFile), func(f *os.File) error {
		return report.WriteJSON(f, sum)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, historyFile), func(f *os.File) error {
		return report.WriteCSV(f, sum.History)
	}); err != nil {
		return "", err
	}

	return runID, nil
}

func writeFile(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the archived runs, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := s.read(runID, metadataFile)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSummary(runID string) (*report.Summary, error) {
	f, err := s.open(runID, summaryFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return report.ReadSummary(f)
}

func (s *Store) LoadHistory(runID string) ([]reactor.Sample, error) {
	f, err := s.open(runID, historyFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return report.ReadCSV(f)
}

func (s *Store) read(runID, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return data, err
}

func (s *Store) open(runID, name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return f, err
}
