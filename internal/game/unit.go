package game

import "quantum-harvest/internal/config"

// UnitType identifies a unit's role.
type UnitType int8

const (
	UnitHarvester UnitType = iota
	UnitWarrior
	UnitScout
)

func (t UnitType) String() string {
	switch t {
	case UnitHarvester:
		return "harvester"
	case UnitWarrior:
		return "warrior"
	case UnitScout:
		return "scout"
	default:
		return "invalid"
	}
}

// valueFor picks the balance value for a unit type out of a per-type triple.
func valueFor(p config.PerUnit, t UnitType) float64 {
	switch t {
	case UnitHarvester:
		return p.Harvester
	case UnitWarrior:
		return p.Warrior
	case UnitScout:
		return p.Scout
	default:
		return 0
	}
}

// Unit is a single piece on the board. IDs are assigned per player, so a
// full identity is the (Player, ID) pair.
type Unit struct {
	ID     int
	Player int
	Type   UnitType
	Pos    Position
	Health float64
	Energy float64

	// Boosted marks a warrior standing on a friendly entanglement zone.
	// The boost decays after BoostAttacksRemaining attacks or when the
	// warrior enters a decoherence field.
	Boosted               bool
	BoostAttacksRemaining int

	// QuantumState is the latent two-component state vector. It drifts with
	// Gaussian noise each step and is renormalized to unit length.
	QuantumState [2]float64
}

// newUnit creates a unit with the default health, energy and latent state.
func newUnit(cfg *config.GameConfig, id, player int, t UnitType, pos Position) *Unit {
	return &Unit{
		ID:           id,
		Player:       player,
		Type:         t,
		Pos:          pos,
		Health:       cfg.Units.DefaultHealth,
		Energy:       cfg.Units.DefaultEnergy,
		QuantumState: [2]float64{1, 0},
	}
}

// Alive reports whether the unit is still on the board.
func (u *Unit) Alive() bool {
	return u.Health > 0
}

// Cost returns the spawn cost for a unit type.
func Cost(cfg *config.GameConfig, t UnitType) float64 {
	return valueFor(cfg.Units.Costs, t)
}

// HarvestEfficiency returns the harvest multiplier for a unit type.
// Warriors cannot harvest and have efficiency zero.
func HarvestEfficiency(cfg *config.GameConfig, t UnitType) float64 {
	return valueFor(cfg.Units.HarvestEfficiency, t)
}

// CombatPower returns the damage multiplier for a unit type.
func CombatPower(cfg *config.GameConfig, t UnitType) float64 {
	return valueFor(cfg.Units.CombatPower, t)
}

// ExplorationRange returns the Manhattan vision radius for a unit type.
func ExplorationRange(cfg *config.GameConfig, t UnitType) int {
	return int(valueFor(cfg.Units.ExplorationRange, t))
}
