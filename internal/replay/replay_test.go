package replay

import (
	"os"
	"path/filepath"
	"testing"

	"quantum-harvest/internal/config"
	"quantum-harvest/internal/game"
)

// playShortMatch runs a few recorded turns and returns the recorder.
func playShortMatch(t *testing.T) *Recorder {
	t.Helper()

	cfg := config.DefaultGame()
	rec := NewRecorder()
	rec.RecordConfig(cfg.Match, 99, []string{"alpha", "beta"})

	eng := game.NewEngine(cfg)
	eng.SetSink(rec)
	if _, _, err := eng.Reset(99); err != nil {
		t.Fatalf("reset: %v", err)
	}

	actions := []game.UnitAction{
		{Key: "p0_0", Action: game.Action{Type: game.ActionMove, DX: 1, DY: 0}},
		{Key: "p1_0", Action: game.Action{Type: game.ActionMove, DX: 0, DY: -1}},
	}
	for i := 0; i < 3; i++ {
		if _, err := eng.Step(actions, true); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	return rec
}

// TestRecorderEntrySequence verifies the config, reset and step entries
// land in order with the right payloads.
func TestRecorderEntrySequence(t *testing.T) {
	rec := playShortMatch(t)
	entries := rec.Entries()

	if len(entries) != 5 {
		t.Fatalf("expected 5 entries (config, reset, 3 steps), got %d", len(entries))
	}

	cfgEntry := entries[0]
	if cfgEntry.Type != "game_config" || cfgEntry.MapSize != 12 || cfgEntry.Seed == nil || *cfgEntry.Seed != 99 {
		t.Errorf("bad config entry: %+v", cfgEntry)
	}
	if len(cfgEntry.Players) != 2 || cfgEntry.Players[0] != "alpha" {
		t.Errorf("bad players: %v", cfgEntry.Players)
	}

	if entries[1].Type != "reset" || entries[1].Observation == nil || entries[1].Info == nil {
		t.Errorf("bad reset entry: %+v", entries[1])
	}

	for i, e := range entries[2:] {
		if e.Type != "step" {
			t.Fatalf("entry %d should be a step, got %q", i+2, e.Type)
		}
		if e.Turn != i+1 {
			t.Errorf("step %d recorded turn %d", i, e.Turn)
		}
		if e.Action == nil || e.Reward == nil {
			t.Errorf("step %d missing action or reward", i)
		}
		if _, ok := e.Action["p0_0"]; !ok {
			t.Errorf("step %d lost the p0_0 order", i)
		}
	}
}

// TestSaveLoadPlain verifies an uncompressed round trip.
func TestSaveLoadPlain(t *testing.T) {
	rec := playShortMatch(t)
	path := filepath.Join(t.TempDir(), "match.json")

	if err := rec.SaveFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != rec.Len() {
		t.Fatalf("round trip lost entries: %d vs %d", len(loaded), rec.Len())
	}
	if loaded[0].Type != "game_config" {
		t.Errorf("first entry should be config, got %q", loaded[0].Type)
	}
}

// TestSaveLoadCompressed verifies the lz4 round trip and that the file
// on disk really is an lz4 frame.
func TestSaveLoadCompressed(t *testing.T) {
	rec := playShortMatch(t)
	path := filepath.Join(t.TempDir(), "match.json.lz4")

	if err := rec.SaveFile(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(raw) < 4 || raw[0] != 0x04 || raw[1] != 0x22 || raw[2] != 0x4d || raw[3] != 0x18 {
		t.Fatal("file does not start with the lz4 frame magic")
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != rec.Len() {
		t.Fatalf("round trip lost entries: %d vs %d", len(loaded), rec.Len())
	}

	obs := loaded[1].Observation
	if obs == nil || len(obs.Map) != 12 {
		t.Error("reset observation did not survive compression")
	}
}

// TestLoadMissingFile verifies a missing path surfaces an error.
func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing replay")
	}
}
