package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/report"
	"github.com/san-kum/reactorsim/internal/sim"
)

func testSummary(t *testing.T) report.Summary {
	t.Helper()
	u := reactor.New("unit-1", "Unit 1")
	r := sim.New(nil)
	metrics.Attach(r)
	cfg := sim.Config{Dt: 0.1, Duration: 5}
	res, err := r.Run(context.Background(), u, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return report.NewSummary("steady", "none", cfg, res)
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	sum := testSummary(t)
	runID, err := st.Save(sum)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Preset != "steady" {
		t.Errorf("expected preset 'steady', got '%s'", meta.Preset)
	}
	if meta.UnitID != "unit-1" {
		t.Errorf("expected unit id 'unit-1', got '%s'", meta.UnitID)
	}
	if meta.Steps != 50 {
		t.Errorf("expected 50 steps, got %d", meta.Steps)
	}
	if meta.FirstTrip != -1 {
		t.Errorf("expected no trip, got %f", meta.FirstTrip)
	}
	if meta.Status != "Nominal" {
		t.Errorf("expected Nominal, got %s", meta.Status)
	}

	history, err := st.LoadHistory(runID)
	if err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != len(sum.History) {
		t.Errorf("expected %d samples, got %d", len(sum.History), len(history))
	}

	loaded, err := st.LoadSummary(runID)
	if err != nil {
		t.Fatalf("load summary failed: %v", err)
	}
	if loaded.Steps != sum.Steps || loaded.Telemetry.Status != sum.Telemetry.Status {
		t.Errorf("summary mismatch: %+v", loaded)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	sum := testSummary(t)
	for i := 0; i < 2; i++ {
		if _, err := st.Save(sum); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("expected empty list, got %v %v", runs, err)
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadHistory("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(testSummary(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{metadataFile, historyFile, summaryFile} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}
