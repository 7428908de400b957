// Package replay records matches as a stream of JSON entries and saves
// them to disk, optionally lz4-compressed. A replay opens with one
// config entry, then a reset entry, then one step entry per Step call.
package replay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"

	"quantum-harvest/internal/config"
	"quantum-harvest/internal/game"
)

// Entry is one replay record. Type is "game_config", "reset" or "step";
// unrelated fields stay empty and are omitted from the JSON.
type Entry struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`

	// game_config fields
	MapSize                   int      `json:"map_size,omitempty"`
	MaxTurns                  int      `json:"max_turns,omitempty"`
	EnergyVictoryThreshold    float64  `json:"energy_victory_threshold,omitempty"`
	TerritoryVictoryThreshold float64  `json:"territory_victory_threshold,omitempty"`
	TerritoryVictoryTurns     int      `json:"territory_victory_turns,omitempty"`
	Seed                      *int64   `json:"seed,omitempty"`
	Players                   []string `json:"players,omitempty"`

	// reset and step fields
	Turn        int               `json:"turn"`
	Observation *game.Observation `json:"observation,omitempty"`
	Info        *game.Info        `json:"info,omitempty"`

	// step-only fields
	Action     map[string][]int `json:"action,omitempty"`
	Reward     *float64         `json:"reward,omitempty"`
	Terminated bool             `json:"terminated,omitempty"`
	Truncated  bool             `json:"truncated,omitempty"`
	Winner     *int             `json:"winner,omitempty"`
}

// Recorder collects replay entries. It implements game.Sink so it can be
// attached to an engine directly. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry

	// now is swappable for tests.
	now func() time.Time
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) stamp() string {
	return r.now().Format(time.RFC3339Nano)
}

// RecordConfig writes the opening entry describing the match rules.
// Call it once, before Reset.
func (r *Recorder) RecordConfig(cfg config.MatchConfig, seed int64, players []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Type:                      "game_config",
		Timestamp:                 r.stamp(),
		MapSize:                   cfg.MapSize,
		MaxTurns:                  cfg.MaxTurns,
		EnergyVictoryThreshold:    cfg.EnergyVictoryThreshold,
		TerritoryVictoryThreshold: cfg.TerritoryVictoryThreshold,
		TerritoryVictoryTurns:     cfg.TerritoryVictoryTurns,
		Seed:                      &seed,
		Players:                   players,
	})
}

// RecordReset implements game.Sink.
func (r *Recorder) RecordReset(obs *game.Observation, info *game.Info) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Type:        "reset",
		Timestamp:   r.stamp(),
		Turn:        obs.Turn,
		Observation: obs,
		Info:        info,
	})
}

// RecordStep implements game.Sink.
func (r *Recorder) RecordStep(actions map[string][]int, obs *game.Observation, info *game.Info, reward float64, terminated, truncated bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := Entry{
		Type:        "step",
		Timestamp:   r.stamp(),
		Turn:        obs.Turn,
		Observation: obs,
		Info:        info,
		Action:      actions,
		Reward:      &reward,
		Terminated:  terminated,
		Truncated:   truncated,
	}
	if terminated && info != nil {
		e.Winner = info.Winner
	}
	r.entries = append(r.entries, e)
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Len returns the number of recorded entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// SaveFile writes the recorded entries as a JSON array. A path ending in
// .lz4 is compressed.
func (r *Recorder) SaveFile(path string) error {
	return SaveFile(path, r.Entries())
}

// SaveFile writes entries to path, lz4-compressing when the path ends
// in .lz4.
func SaveFile(path string, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode replay: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create replay: %w", err)
	}

	var w io.Writer = f
	var zw *lz4.Writer
	if strings.HasSuffix(path, ".lz4") {
		zw = lz4.NewWriter(f)
		w = zw
	}
	if _, err := w.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write replay: %w", err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			f.Close()
			return fmt.Errorf("flush replay: %w", err)
		}
	}
	return f.Close()
}

// lz4Magic opens every lz4 frame.
var lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}

// LoadFile reads a replay written by SaveFile, sniffing the lz4 frame
// magic rather than trusting the file extension.
func LoadFile(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read replay: %w", err)
	}

	if bytes.HasPrefix(raw, lz4Magic) {
		raw, err = io.ReadAll(lz4.NewReader(bytes.NewReader(raw)))
		if err != nil {
			return nil, fmt.Errorf("decompress replay: %w", err)
		}
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode replay %s: %w", path, err)
	}
	return entries, nil
}
