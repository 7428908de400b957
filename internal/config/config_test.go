package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaults verifies the core balance values the engine depends on.
func TestDefaults(t *testing.T) {
	cfg := DefaultGame()

	if cfg.Match.MapSize != 12 {
		t.Errorf("expected map size 12, got %d", cfg.Match.MapSize)
	}
	if cfg.Match.MaxTurns != 1000 {
		t.Errorf("expected max turns 1000, got %d", cfg.Match.MaxTurns)
	}
	if cfg.Units.Costs.Warrior != 100 {
		t.Errorf("expected warrior cost 100, got %v", cfg.Units.Costs.Warrior)
	}
	if cfg.Buildings.QuantumBarrier != 200 {
		t.Errorf("expected barrier cost 200, got %v", cfg.Buildings.QuantumBarrier)
	}
	if cfg.Combat.BoostedAttackRange <= cfg.Combat.NormalAttackRange {
		t.Error("boosted attack range must exceed normal range")
	}
	if cfg.Economy.NodeMinValue > cfg.Economy.NodeMaxValue {
		t.Error("node value range is inverted")
	}
}

// TestMatchFromEnv verifies environment variables override defaults.
func TestMatchFromEnv(t *testing.T) {
	t.Setenv("QH_MAP_SIZE", "20")
	t.Setenv("QH_MAX_TURNS", "500")

	cfg := MatchFromEnv()

	if cfg.MapSize != 20 {
		t.Errorf("expected map size 20 from env, got %d", cfg.MapSize)
	}
	if cfg.MaxTurns != 500 {
		t.Errorf("expected max turns 500 from env, got %d", cfg.MaxTurns)
	}
	if cfg.EnergyVictoryThreshold != 100000.0 {
		t.Errorf("untouched field should keep default, got %v", cfg.EnergyVictoryThreshold)
	}
}

// TestMatchFromEnvIgnoresGarbage verifies malformed env values fall back
// to defaults instead of zeroing the config.
func TestMatchFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("QH_MAP_SIZE", "not-a-number")

	cfg := MatchFromEnv()
	if cfg.MapSize != 12 {
		t.Errorf("expected default map size 12, got %d", cfg.MapSize)
	}
}

// TestLoadFile verifies a partial YAML file overrides only the keys it names.
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "balance.yaml")
	data := []byte("game:\n  match:\n    map_size: 16\n  combat:\n    warrior_base_damage: 25.0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Game.Match.MapSize != 16 {
		t.Errorf("expected map size 16 from file, got %d", cfg.Game.Match.MapSize)
	}
	if cfg.Game.Combat.WarriorBaseDamage != 25.0 {
		t.Errorf("expected warrior damage 25 from file, got %v", cfg.Game.Combat.WarriorBaseDamage)
	}
	if cfg.Game.Units.Costs.Scout != 10 {
		t.Errorf("unnamed key should keep default, got %v", cfg.Game.Units.Costs.Scout)
	}
}

// TestLoadFileMissing verifies a missing file surfaces an error.
func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/balance.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
