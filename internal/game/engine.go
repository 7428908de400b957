// Package game implements the deterministic turn-based match engine.
//
// The engine is a pure state machine: Reset seeds it, Step advances it by
// one batch of unit orders, and all randomness flows through a single
// seeded source so identical seeds and orders replay identical matches.
package game

import (
	"fmt"
	"log"
	"math/rand"
	"sync"

	"quantum-harvest/internal/config"
)

// Renderer receives the full state after Reset and each Step. The engine
// owns no drawing code; spectator surfaces implement this.
type Renderer interface {
	Render(obs *Observation, info *Info) bool
}

// Sink receives replay events. Implementations must not retain the
// observation or info pointers past the call.
type Sink interface {
	RecordReset(obs *Observation, info *Info)
	RecordStep(actions map[string][]int, obs *Observation, info *Info, reward float64, terminated, truncated bool)
}

// StepResult bundles everything one Step produces.
type StepResult struct {
	Obs        *Observation
	Reward     float64
	Terminated bool
	Truncated  bool
	Info       *Info
}

// Engine is the match state machine. All exported methods are safe for
// concurrent use; Step and Reset take the write lock, readers take the
// read lock.
type Engine struct {
	mu  sync.RWMutex
	cfg config.GameConfig

	rng  *rand.Rand
	seed int64

	grid   *Grid
	starts [2]Position

	units      []*Unit
	nextUnitID [2]int

	playerEnergy    [2]float64
	turn            int
	territory       [2]float64
	territoryStreak [2]int

	energyNodes  []Position
	energyValues []float64

	zones     []Position
	zonePower []float64

	explored [2]map[Position]bool

	combatEvents []CombatEvent

	terminated bool
	winner     *int

	renderer Renderer
	sink     Sink
}

// NewEngine creates an engine with the given balance. Call Reset before
// the first Step.
func NewEngine(cfg config.GameConfig) *Engine {
	return &Engine{cfg: cfg}
}

// SetRenderer attaches a renderer. Pass nil to detach.
func (e *Engine) SetRenderer(r Renderer) {
	e.mu.Lock()
	e.renderer = r
	e.mu.Unlock()
}

// SetSink attaches a replay sink. Pass nil to detach.
func (e *Engine) SetSink(s Sink) {
	e.mu.Lock()
	e.sink = s
	e.mu.Unlock()
}

// Reset reseeds the engine and builds a fresh match: a new symmetric map
// and one scout per player on the start cells. It returns the initial
// observation and info.
func (e *Engine) Reset(seed int64) (*Observation, *Info, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rng = rand.New(rand.NewSource(seed))
	e.seed = seed

	e.turn = 0
	e.playerEnergy = [2]float64{}
	e.territory = [2]float64{}
	e.territoryStreak = [2]int{}
	e.explored = [2]map[Position]bool{{}, {}}
	e.zones = nil
	e.zonePower = nil
	e.combatEvents = nil
	e.terminated = false
	e.winner = nil

	gm, err := generateMap(&e.cfg, e.rng)
	if err != nil {
		return nil, nil, fmt.Errorf("reset: %w", err)
	}
	e.grid = gm.grid
	e.starts = gm.starts
	e.energyNodes = gm.energyNodes
	e.energyValues = gm.energyValues

	// Each player opens with a single scout on their start cell.
	e.units = nil
	e.nextUnitID = [2]int{}
	for player := 0; player < 2; player++ {
		u := newUnit(&e.cfg, e.nextUnitID[player], player, UnitScout, e.starts[player])
		e.nextUnitID[player]++
		e.units = append(e.units, u)
	}

	e.updateTerritory()
	e.updateExploration()

	obs := e.buildObservation()
	info := e.buildInfo()

	if e.sink != nil {
		e.sink.RecordReset(obs, info)
	}

	log.Printf("🎮 Match reset: seed=%d size=%d", seed, e.cfg.Match.MapSize)
	return obs, info, nil
}

// Step resolves one batch of unit orders in slice order, then runs the
// end-of-step pipeline: quantum drift, dead unit cleanup, exploration,
// territory and victory checks. advanceTurn controls whether the turn
// counter moves; pass false for mid-round sub-steps so a full round
// advances the counter once.
func (e *Engine) Step(actions []UnitAction, advanceTurn bool) (StepResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.grid == nil {
		return StepResult{}, fmt.Errorf("step before reset")
	}

	e.combatEvents = e.combatEvents[:0]

	var total float64
	for _, ua := range actions {
		unit, err := e.resolveActor(ua.Key)
		if err != nil {
			return StepResult{}, err
		}
		if unit == nil {
			continue
		}
		total += e.executeAction(unit, ua.Action)
	}

	e.driftQuantumStates()
	e.purgeDead()
	e.updateExploration()
	e.updateTerritory()

	terminated, winner := e.checkVictory()

	if advanceTurn {
		e.turn++
	}
	truncated := e.turn >= e.cfg.Match.MaxTurns

	obs := e.buildObservation()
	info := e.buildInfo()
	if terminated {
		e.terminated = true
		e.winner = winner
		info.Winner = winner
	}

	if e.sink != nil {
		e.sink.RecordStep(encodeActions(actions), obs, info, total, terminated, truncated)
	}

	return StepResult{
		Obs:        obs,
		Reward:     total,
		Terminated: terminated,
		Truncated:  truncated,
		Info:       info,
	}, nil
}

// resolveActor maps an action key to a living unit. Unknown units are
// skipped rather than rejected so stale orders for defeated units are
// harmless; malformed keys are errors.
func (e *Engine) resolveActor(key string) (*Unit, error) {
	player, unitID, legacy, err := ParseActionKey(key)
	if err != nil {
		return nil, err
	}
	for _, u := range e.units {
		if u.ID != unitID {
			continue
		}
		if legacy || u.Player == player {
			return u, nil
		}
	}
	return nil, nil
}

// Render delegates to the attached renderer, if any.
func (e *Engine) Render() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.renderer == nil || e.grid == nil {
		return true
	}
	return e.renderer.Render(e.buildObservation(), e.buildInfo())
}

// Turn returns the current turn counter.
func (e *Engine) Turn() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.turn
}

// Seed returns the seed of the current match.
func (e *Engine) Seed() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seed
}

// Terminated reports whether the match has ended and, if a side won,
// which player.
func (e *Engine) Terminated() (bool, *int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.terminated, e.winner
}

// LivingUnits returns the number of units on the board per player.
func (e *Engine) LivingUnits() [2]int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var counts [2]int
	for _, u := range e.units {
		if u.Alive() {
			counts[u.Player]++
		}
	}
	return counts
}

// PlayerEnergy returns both players' energy pools.
func (e *Engine) PlayerEnergy() [2]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.playerEnergy
}

// unitsAt collects all living units standing on p.
func (e *Engine) unitsAt(p Position) []*Unit {
	var out []*Unit
	for _, u := range e.units {
		if u.Pos == p {
			out = append(out, u)
		}
	}
	return out
}

// firstUnitAt returns the first unit standing on p, or nil.
func (e *Engine) firstUnitAt(p Position) *Unit {
	for _, u := range e.units {
		if u.Pos == p {
			return u
		}
	}
	return nil
}

// hasOpposingUnits reports whether an enemy of player stands on p.
// Quantum gate tiles allow shared occupancy and never block.
func (e *Engine) hasOpposingUnits(p Position, player int) bool {
	if e.grid.At(p) == TileQuantumGate {
		return false
	}
	for _, u := range e.units {
		if u.Pos == p && u.Player != player {
			return true
		}
	}
	return false
}

// purgeDead drops every unit at or below zero health.
func (e *Engine) purgeDead() {
	alive := e.units[:0]
	for _, u := range e.units {
		if u.Alive() {
			alive = append(alive, u)
		}
	}
	e.units = alive
}

func encodeActions(actions []UnitAction) map[string][]int {
	if len(actions) == 0 {
		return nil
	}
	out := make(map[string][]int, len(actions))
	for _, ua := range actions {
		out[ua.Key] = ua.Action.Encode()
	}
	return out
}
