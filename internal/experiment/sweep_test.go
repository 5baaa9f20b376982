package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/scenelab/internal/catalog"
)

func TestSweepRunsEveryPreset(t *testing.T) {
	c := testCatalog(t)
	addPreset(t, c, catalog.Preset{
		ID: "a",
		Placements: []catalog.Placement{
			{Definition: "ball", Position: point(100, 100)},
		},
	})
	addPreset(t, c, catalog.Preset{
		ID: "b",
		Placements: []catalog.Placement{
			{Definition: "crate", Position: point(200, 100)},
		},
	})

	sweep := NewSweep(c, 800, 600)
	results := sweep.Run(context.Background(), []string{"a", "b"}, 0.5)

	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Fatalf("preset %s: %v", res.Preset, res.Err)
		}
		if len(res.Samples) == 0 {
			t.Errorf("preset %s recorded no samples", res.Preset)
		}
		if res.Final == nil {
			t.Errorf("preset %s has no final readout", res.Preset)
		}
	}
	if results[0].Preset != "a" || results[1].Preset != "b" {
		t.Error("results out of input order")
	}
}

func TestSweepReportsBadPresetWithoutAbortingOthers(t *testing.T) {
	c := testCatalog(t)
	addPreset(t, c, catalog.Preset{
		ID: "good",
		Placements: []catalog.Placement{
			{Definition: "ball", Position: point(100, 100)},
		},
	})

	sweep := NewSweep(c, 800, 600)
	results := sweep.Run(context.Background(), []string{"missing", "good"}, 0.2)

	if !errors.Is(results[0].Err, catalog.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", results[0].Err)
	}
	if results[1].Err != nil {
		t.Errorf("good preset failed: %v", results[1].Err)
	}
}

func TestSweepHonorsCancellation(t *testing.T) {
	c := testCatalog(t)
	addPreset(t, c, catalog.Preset{
		ID: "a",
		Placements: []catalog.Placement{
			{Definition: "ball", Position: point(100, 100)},
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sweep := NewSweep(c, 800, 600)
	results := sweep.Run(ctx, []string{"a"}, 10)

	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[0].Err)
	}
}
