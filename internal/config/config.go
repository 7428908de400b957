// Package config provides centralized configuration management.
// This is the SINGLE SOURCE OF TRUTH for all match rules and balance values.
//
// IMPORTANT: When tuning the game, only modify this file (or supply a YAML
// balance file). All other parts of the codebase should reference these values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MATCH RULES
// =============================================================================

// MatchConfig holds the outer rules of a single match: board size, turn
// limit and the three victory thresholds.
type MatchConfig struct {
	MapSize                   int     `yaml:"map_size"`
	MaxTurns                  int     `yaml:"max_turns"`
	EnergyVictoryThreshold    float64 `yaml:"energy_victory_threshold"`
	TerritoryVictoryThreshold float64 `yaml:"territory_victory_threshold"`
	TerritoryVictoryTurns     int     `yaml:"territory_victory_turns"`
}

// DefaultMatch returns the default match rules.
func DefaultMatch() MatchConfig {
	return MatchConfig{
		MapSize:                   12,
		MaxTurns:                  1000,
		EnergyVictoryThreshold:    100000.0,
		TerritoryVictoryThreshold: 0.7,
		TerritoryVictoryTurns:     10,
	}
}

// MatchFromEnv returns match rules with environment variable overrides.
// Environment variables take precedence over defaults.
func MatchFromEnv() MatchConfig {
	cfg := DefaultMatch()

	if s := getEnvInt("QH_MAP_SIZE", 0); s > 0 {
		cfg.MapSize = s
	}
	if t := getEnvInt("QH_MAX_TURNS", 0); t > 0 {
		cfg.MaxTurns = t
	}
	if e := getEnvFloat("QH_ENERGY_VICTORY", 0); e > 0 {
		cfg.EnergyVictoryThreshold = e
	}
	if t := getEnvFloat("QH_TERRITORY_VICTORY", 0); t > 0 {
		cfg.TerritoryVictoryThreshold = t
	}
	if n := getEnvInt("QH_TERRITORY_TURNS", 0); n > 0 {
		cfg.TerritoryVictoryTurns = n
	}

	return cfg
}

// =============================================================================
// UNITS
// =============================================================================

// PerUnit holds one balance value per unit type.
type PerUnit struct {
	Harvester float64 `yaml:"harvester"`
	Warrior   float64 `yaml:"warrior"`
	Scout     float64 `yaml:"scout"`
}

// UnitConfig holds per-type unit costs, stats and vision radii.
type UnitConfig struct {
	Costs             PerUnit `yaml:"costs"`
	HarvestEfficiency PerUnit `yaml:"harvest_efficiency"`
	CombatPower       PerUnit `yaml:"combat_power"`
	ExplorationRange  PerUnit `yaml:"exploration_range"` // Manhattan radius
	DefaultHealth     float64 `yaml:"default_health"`
	DefaultEnergy     float64 `yaml:"default_energy"`
	SpawnSearchRadius int     `yaml:"spawn_search_radius"` // BFS cap for blocked spawns
}

// DefaultUnits returns the default unit balance.
func DefaultUnits() UnitConfig {
	return UnitConfig{
		Costs:             PerUnit{Harvester: 10, Warrior: 100, Scout: 10},
		HarvestEfficiency: PerUnit{Harvester: 2.0, Warrior: 0, Scout: 1.0},
		CombatPower:       PerUnit{Harvester: 0, Warrior: 2.0, Scout: 0},
		ExplorationRange:  PerUnit{Harvester: 1, Warrior: 1, Scout: 3},
		DefaultHealth:     45,
		DefaultEnergy:     0,
		SpawnSearchRadius: 10,
	}
}

// =============================================================================
// BUILDINGS
// =============================================================================

// BuildingConfig holds the energy cost of each placeable tile.
type BuildingConfig struct {
	DecoherenceField float64 `yaml:"decoherence_field"`
	QuantumBarrier   float64 `yaml:"quantum_barrier"`
	QuantumGate      float64 `yaml:"quantum_gate"`
	EntanglementZone float64 `yaml:"entanglement_zone"`
}

// DefaultBuildings returns the default building costs.
func DefaultBuildings() BuildingConfig {
	return BuildingConfig{
		DecoherenceField: 100,
		QuantumBarrier:   200,
		QuantumGate:      100,
		EntanglementZone: 100,
	}
}

// =============================================================================
// COMBAT
// =============================================================================

// CombatConfig holds attack costs, damage scaling and boost mechanics.
type CombatConfig struct {
	WarriorBaseDamage            float64 `yaml:"warrior_base_damage"`
	AttackEnergyCost             float64 `yaml:"attack_energy_cost"`
	NormalAttackRange            int     `yaml:"normal_attack_range"`
	BoostedAttackRange           int     `yaml:"boosted_attack_range"`
	EnergyBoostMultiplier        float64 `yaml:"energy_boost_multiplier"` // per boost point
	EntanglementDamageMultiplier float64 `yaml:"entanglement_damage_multiplier"`
	DecoherenceDamageReduction   float64 `yaml:"decoherence_damage_reduction"`
	UnitDefeatReward             float64 `yaml:"unit_defeat_reward"`
}

// DefaultCombat returns the default combat balance.
func DefaultCombat() CombatConfig {
	return CombatConfig{
		WarriorBaseDamage:            15.0,
		AttackEnergyCost:             15,
		NormalAttackRange:            1,
		BoostedAttackRange:           4,
		EnergyBoostMultiplier:        0.2,
		EntanglementDamageMultiplier: 1.5,
		DecoherenceDamageReduction:   0.5,
		UnitDefeatReward:             50.0,
	}
}

// =============================================================================
// ECONOMY
// =============================================================================

// EconomyConfig holds the finite energy-node resource model.
type EconomyConfig struct {
	NodeMinValue       float64 `yaml:"node_min_value"`
	NodeMaxValue       float64 `yaml:"node_max_value"`
	NodeDepletionRate  float64 `yaml:"node_depletion_rate"` // per harvest
	HarvestBaseAmounts PerUnit `yaml:"harvest_base_amounts"`
}

// DefaultEconomy returns the default economy balance.
func DefaultEconomy() EconomyConfig {
	return EconomyConfig{
		NodeMinValue:       1000,
		NodeMaxValue:       2000,
		NodeDepletionRate:  1.0,
		HarvestBaseAmounts: PerUnit{Harvester: 0.5, Warrior: 0, Scout: 0.25},
	}
}

// =============================================================================
// QUANTUM MECHANICS
// =============================================================================

// QuantumConfig holds entanglement zones, gates and the latent state drift.
type QuantumConfig struct {
	ZoneInitialPower   float64 `yaml:"zone_initial_power"`
	ZoneBoostCost      float64 `yaml:"zone_boost_cost"` // power per warrior boost
	ZoneBoostAttacks   int     `yaml:"zone_boost_attacks"`
	GateMaxHealth      float64 `yaml:"gate_max_health"`
	GateHealthGainCost float64 `yaml:"gate_health_gain_cost"`
	GateHealthGain     float64 `yaml:"gate_health_gain"`
	GateTeleportCost   float64 `yaml:"gate_teleport_cost"`
	NoiseMean          float64 `yaml:"noise_mean"`
	NoiseStd           float64 `yaml:"noise_std"`
}

// DefaultQuantum returns the default quantum mechanics balance.
func DefaultQuantum() QuantumConfig {
	return QuantumConfig{
		ZoneInitialPower:   200,
		ZoneBoostCost:      50,
		ZoneBoostAttacks:   2,
		GateMaxHealth:      300.0,
		GateHealthGainCost: 50,
		GateHealthGain:     50.0,
		GateTeleportCost:   25,
		NoiseMean:          0.0,
		NoiseStd:           0.01,
	}
}

// =============================================================================
// MAP GENERATION
// =============================================================================

// MapGenConfig holds the per-category pair-count ranges, expressed as map-size
// divisors: a category draws between mapSize/MinRatio and mapSize/MaxRatio
// mirrored pairs (MinRatio > MaxRatio, so the larger divisor gives the floor).
type MapGenConfig struct {
	EnergyMinRatio      int `yaml:"energy_min_ratio"`
	EnergyMaxRatio      int `yaml:"energy_max_ratio"`
	BarrierMinRatio     int `yaml:"barrier_min_ratio"`
	BarrierMaxRatio     int `yaml:"barrier_max_ratio"`
	DecoherenceMinRatio int `yaml:"decoherence_min_ratio"`
	DecoherenceMaxRatio int `yaml:"decoherence_max_ratio"`
	GateMinRatio        int `yaml:"gate_min_ratio"`
	GateMaxRatio        int `yaml:"gate_max_ratio"`
}

// DefaultMapGen returns the default map generation ratios.
func DefaultMapGen() MapGenConfig {
	return MapGenConfig{
		EnergyMinRatio:      4,
		EnergyMaxRatio:      2,
		BarrierMinRatio:     8,
		BarrierMaxRatio:     4,
		DecoherenceMinRatio: 12,
		DecoherenceMaxRatio: 6,
		GateMinRatio:        16,
		GateMaxRatio:        8,
	}
}

// =============================================================================
// ACTION REWARDS
// =============================================================================

// RewardConfig holds the shaped reward for every action outcome.
type RewardConfig struct {
	Move                   float64 `yaml:"move"`
	QuantumMoveBase        float64 `yaml:"quantum_move_base"`
	EntangleBase           float64 `yaml:"entangle_base"`
	ZoneBonusMultiplier    float64 `yaml:"zone_bonus_multiplier"`
	MeasureBase            float64 `yaml:"measure_base"`
	ScoutMeasureMultiplier float64 `yaml:"scout_measure_multiplier"`
	ShieldBase             float64 `yaml:"shield_base"`
	ShieldEnergyMultiplier float64 `yaml:"shield_energy_multiplier"`
	GateShieldMultiplier   float64 `yaml:"gate_shield_multiplier"`
	BoostBase              float64 `yaml:"boost_base"`
	BoostEnergyMultiplier  float64 `yaml:"boost_energy_multiplier"`
	SpawnHarvester         float64 `yaml:"spawn_harvester"`
	SpawnWarrior           float64 `yaml:"spawn_warrior"`
	SpawnScout             float64 `yaml:"spawn_scout"`
	CreateZone             float64 `yaml:"create_zone"`
	GateHealthGain         float64 `yaml:"gate_health_gain"`
	GateTeleport           float64 `yaml:"gate_teleport"`
	Build                  float64 `yaml:"build"`
	BuildGate              float64 `yaml:"build_gate"`
}

// DefaultRewards returns the default reward shaping table.
func DefaultRewards() RewardConfig {
	return RewardConfig{
		Move:                   1.0,
		QuantumMoveBase:        2.0,
		EntangleBase:           5.0,
		ZoneBonusMultiplier:    1.5,
		MeasureBase:            3.0,
		ScoutMeasureMultiplier: 1.3,
		ShieldBase:             2.0,
		ShieldEnergyMultiplier: 0.5,
		GateShieldMultiplier:   1.5,
		BoostBase:              1.0,
		BoostEnergyMultiplier:  0.3,
		SpawnHarvester:         20.0,
		SpawnWarrior:           30.0,
		SpawnScout:             25.0,
		CreateZone:             30.0,
		GateHealthGain:         10.0,
		GateTeleport:           15.0,
		Build:                  10.0,
		BuildGate:              25.0,
	}
}

// =============================================================================
// SERVER
// =============================================================================

// ServerConfig holds the localhost observability/spectator server settings.
type ServerConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultServer returns safe server defaults. Localhost only - the spectator
// feed is a renderer hand-off, never an external surface.
func DefaultServer() ServerConfig {
	return ServerConfig{
		Enabled:    true,
		ListenAddr: "127.0.0.1:6060",
	}
}

// ServerFromEnv returns server configuration with environment overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()

	if os.Getenv("QH_DISABLE_SERVER") == "true" {
		cfg.Enabled = false
	}
	if addr := os.Getenv("QH_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	return cfg
}

// =============================================================================
// COMPLETE CONFIGURATION
// =============================================================================

// GameConfig holds every rule the engine needs for one match.
type GameConfig struct {
	Match     MatchConfig    `yaml:"match"`
	Units     UnitConfig     `yaml:"units"`
	Buildings BuildingConfig `yaml:"buildings"`
	Combat    CombatConfig   `yaml:"combat"`
	Economy   EconomyConfig  `yaml:"economy"`
	Quantum   QuantumConfig  `yaml:"quantum"`
	MapGen    MapGenConfig   `yaml:"mapgen"`
	Rewards   RewardConfig   `yaml:"rewards"`
}

// DefaultGame returns the complete default balance.
func DefaultGame() GameConfig {
	return GameConfig{
		Match:     DefaultMatch(),
		Units:     DefaultUnits(),
		Buildings: DefaultBuildings(),
		Combat:    DefaultCombat(),
		Economy:   DefaultEconomy(),
		Quantum:   DefaultQuantum(),
		MapGen:    DefaultMapGen(),
		Rewards:   DefaultRewards(),
	}
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Game   GameConfig   `yaml:"game"`
	Server ServerConfig `yaml:"server"`
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	game := DefaultGame()
	game.Match = MatchFromEnv()
	return AppConfig{
		Game:   game,
		Server: ServerFromEnv(),
	}
}

// LoadFile reads a YAML balance file and applies it over the defaults.
// Missing keys keep their default values.
func LoadFile(path string) (AppConfig, error) {
	cfg := Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
