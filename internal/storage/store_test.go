package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/physstate"
)

func testSamples() []physstate.Sample {
	return []physstate.Sample{
		{Time: 0, Position: engine.Vec2{X: 100, Y: 50}, Velocity: engine.Vec2{},
			Speed: 0, KineticEnergy: 0, PotentialEnergy: 431.64, TotalEnergy: 431.64},
		{Time: 1.0 / 60, Position: engine.Vec2{X: 100, Y: 50.27}, Velocity: engine.Vec2{Y: 16.35},
			Speed: 16.35, KineticEnergy: 1.07, PotentialEnergy: 430.5, TotalEnergy: 431.57},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	meta := RunMetadata{
		Preset:    "free-fall",
		Duration:  5,
		Gravity:   1,
		TimeScale: 1,
		Objects:   2,
		Final:     map[string]float64{"speed": 163.5, "ke": 106.9},
	}
	runID, err := store.Save(meta, testSamples())
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load(runID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ID != runID {
		t.Errorf("id = %q, want %q", loaded.ID, runID)
	}
	if loaded.Preset != "free-fall" || loaded.Duration != 5 || loaded.Objects != 2 {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Final["speed"] != 163.5 {
		t.Errorf("final readouts = %v", loaded.Final)
	}
	if loaded.Timestamp.IsZero() {
		t.Error("timestamp not stamped on save")
	}
}

func TestLoadSamplesRoundTrip(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	want := testSamples()
	runID, err := store.Save(RunMetadata{Preset: "free-fall"}, want)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadSamples(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("samples = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i].Time-want[i].Time) > 1e-6 {
			t.Errorf("sample %d time = %f", i, got[i].Time)
		}
		if math.Abs(got[i].Position.Y-want[i].Position.Y) > 1e-6 {
			t.Errorf("sample %d y = %f", i, got[i].Position.Y)
		}
		if math.Abs(got[i].TotalEnergy-want[i].TotalEnergy) > 1e-6 {
			t.Errorf("sample %d total = %f", i, got[i].TotalEnergy)
		}
	}
}

func TestLoadSamplesSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := store.Save(RunMetadata{Preset: "free-fall"}, testSamples())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, runID, "samples.csv")
	extra := "0.5,not-a-number,1,2,3,4,5,6,7\n0.6,1\n"
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString(extra); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := store.LoadSamples(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("samples = %d, malformed rows not skipped", len(got))
	}
}

func TestListReturnsAllRuns(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Save(RunMetadata{Preset: "free-fall"}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(RunMetadata{Preset: "wind-tunnel"}, nil); err != nil {
		t.Fatal(err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d", len(runs))
	}
	presets := map[string]bool{}
	for _, r := range runs {
		presets[r.Preset] = true
	}
	if !presets["free-fall"] || !presets["wind-tunnel"] {
		t.Errorf("presets = %v", presets)
	}
}

func TestListOnMissingDirIsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("runs = %d", len(runs))
	}
}

func TestLoadUnknownRunFails(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Load("nope_0"); err == nil {
		t.Error("expected an error for a missing run")
	}
}
