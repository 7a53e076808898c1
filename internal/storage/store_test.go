package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/glide/internal/config"
	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/sim"
	"github.com/san-kum/glide/internal/trace"
)

func testRun(t *testing.T) Run {
	t.Helper()
	cfg := config.GetPreset("sprint")
	e, err := kinematics.New(mgl64.Vec2{10, 20}, cfg.EntityParams())
	if err != nil {
		t.Fatal(err)
	}
	rec := trace.NewRecorder(e.Snapshot())
	for i := 1; i <= 20; i++ {
		e.Advance(kinematics.South, cfg.Loop.Dt)
		rec.OnStep(float64(i)*cfg.Loop.Dt, e.Snapshot())
	}
	return Run{
		Name:   "sprint",
		Config: cfg,
		Trace:  rec,
		Stats:  sim.Stats{Frames: 12, Steps: 20, MaxCatchUp: 2},
		Reason: "script finished",
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run := testRun(t)
	runID, err := st.Save(run)
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

	if meta.Name != "sprint" {
		t.Errorf("expected name 'sprint', got '%s'", meta.Name)
	}
	if meta.Params.MaxSpeed != 3.0 {
		t.Errorf("expected max speed 3, got %f", meta.Params.MaxSpeed)
	}
	if meta.Stats.Steps != 20 {
		t.Errorf("expected 20 steps, got %d", meta.Stats.Steps)
	}
	if meta.Summary.Final.Facing != kinematics.South {
		t.Errorf("expected facing south, got %s", meta.Summary.Final.Facing)
	}

	rec, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if rec.Steps() != 20 {
		t.Errorf("expected 20 steps, got %d", rec.Steps())
	}
	sum, _ := rec.Summary()
	if math.Abs(sum.Final.Position.Y()-meta.Summary.Final.Position.Y()) > 1e-5 {
		t.Errorf("trace and metadata disagree: %f vs %f", sum.Final.Position.Y(), meta.Summary.Final.Position.Y())
	}

	cfg, err := st.LoadConfig(runID)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Entity.MaxSpeed != 3.0 {
		t.Errorf("config did not round trip, max speed %f", cfg.Entity.MaxSpeed)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(testRun(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	// stray directories are ignored
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LoadTrace("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSaveFailureLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	// an out-of-range facing cannot be encoded into metadata.json
	run := testRun(t)
	run.Trace = trace.NewRecorder(kinematics.State{Facing: kinematics.Direction(9)})

	if _, err := st.Save(run); err == nil {
		t.Fatal("expected save to fail")
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save left %d entries behind", len(entries))
	}
}
