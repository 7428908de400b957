package game

import "sort"

// Observation is the serialized game state handed to agents, renderers
// and replays. Units are rows of eight ints:
// [id, player, type, x, y, health, boosted, boost_attacks_remaining].
type Observation struct {
	Map                   [][]int   `json:"map"`
	FogMaps               [][][]int `json:"fog_maps"`
	Units                 [][]int   `json:"units"`
	PlayerEnergy          []float64 `json:"player_energy"`
	Turn                  int       `json:"turn"`
	TerritoryControl      []float64 `json:"territory_control"`
	ExplorationPercentage []float64 `json:"exploration_percentage"`
}

// InfoUnit is the compact per-unit summary in Info.
type InfoUnit struct {
	ID       int      `json:"unit_id"`
	Player   int      `json:"player_id"`
	Type     int      `json:"unit_type"`
	Position Position `json:"position"`
}

// Info carries diagnostic state alongside each observation. Unlike the
// observation it never hides anything, so it must not be forwarded to
// agents.
type Info struct {
	Turn                  int           `json:"turn"`
	PlayerEnergy          []float64     `json:"player_energy"`
	TerritoryControl      []float64     `json:"territory_control"`
	TerritoryControlTurns []int         `json:"territory_control_turns"`
	Units                 []InfoUnit    `json:"units"`
	EnergyNodes           []Position    `json:"energy_nodes"`
	EnergyValues          []float64     `json:"energy_values"`
	ExplorationPercentage []float64     `json:"exploration_percentage"`
	ExploredTiles         [][]Position  `json:"explored_tiles"`
	CombatEvents          []CombatEvent `json:"combat_events"`
	EntanglementZones     []Position    `json:"entanglement_zones"`
	EntanglementZonePower []float64     `json:"entanglement_zone_power"`
	Winner                *int          `json:"winner,omitempty"`
}

// buildObservation snapshots the full state. Callers hold at least the
// read lock.
func (e *Engine) buildObservation() *Observation {
	units := make([][]int, 0, len(e.units))
	for _, u := range e.units {
		health := int(u.Health)
		if health <= 0 {
			continue
		}
		boosted := 0
		if u.Boosted {
			boosted = 1
		}
		units = append(units, []int{
			u.ID, u.Player, int(u.Type),
			u.Pos.X, u.Pos.Y,
			health, boosted, u.BoostAttacksRemaining,
		})
	}

	fogs := make([][][]int, 2)
	for player := 0; player < 2; player++ {
		fogs[player] = e.fogMap(player)
	}

	exp := e.explorationPercentage()

	return &Observation{
		Map:                   e.grid.Rows(),
		FogMaps:               fogs,
		Units:                 units,
		PlayerEnergy:          []float64{e.playerEnergy[0], e.playerEnergy[1]},
		Turn:                  e.turn,
		TerritoryControl:      []float64{e.territory[0], e.territory[1]},
		ExplorationPercentage: []float64{exp[0], exp[1]},
	}
}

// fogMap renders the board as one player has seen it: explored cells show
// their current tile, everything else the unknown sentinel.
func (e *Engine) fogMap(player int) [][]int {
	size := e.grid.Size
	fog := make([][]int, size)
	for x := 0; x < size; x++ {
		row := make([]int, size)
		for y := 0; y < size; y++ {
			p := Position{X: x, Y: y}
			if e.explored[player][p] {
				row[y] = int(e.grid.At(p))
			} else {
				row[y] = int(TileUnknown)
			}
		}
		fog[x] = row
	}
	return fog
}

// PlayerObservation narrows the full observation to what one player may
// see: only their fog map and exploration figure, with enemy units
// hidden unless they stand on a cell the player has explored.
func (e *Engine) PlayerObservation(player int) *Observation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.grid == nil {
		return nil
	}
	obs := e.buildObservation()
	obs.FogMaps = [][][]int{obs.FogMaps[player]}
	obs.ExplorationPercentage = []float64{obs.ExplorationPercentage[player]}

	filtered := make([][]int, 0, len(obs.Units))
	for _, row := range obs.Units {
		if row[1] == player {
			filtered = append(filtered, row)
			continue
		}
		if e.explored[player][Position{X: row[3], Y: row[4]}] {
			filtered = append(filtered, row)
		}
	}
	obs.Units = filtered

	return obs
}

// buildInfo snapshots the unfogged diagnostic state. Callers hold at
// least the read lock.
func (e *Engine) buildInfo() *Info {
	units := make([]InfoUnit, 0, len(e.units))
	for _, u := range e.units {
		units = append(units, InfoUnit{
			ID:       u.ID,
			Player:   u.Player,
			Type:     int(u.Type),
			Position: u.Pos,
		})
	}

	explored := make([][]Position, 2)
	for player := 0; player < 2; player++ {
		tiles := make([]Position, 0, len(e.explored[player]))
		for p := range e.explored[player] {
			tiles = append(tiles, p)
		}
		sort.Slice(tiles, func(i, j int) bool {
			if tiles[i].X != tiles[j].X {
				return tiles[i].X < tiles[j].X
			}
			return tiles[i].Y < tiles[j].Y
		})
		explored[player] = tiles
	}

	exp := e.explorationPercentage()

	return &Info{
		Turn:                  e.turn,
		PlayerEnergy:          []float64{e.playerEnergy[0], e.playerEnergy[1]},
		TerritoryControl:      []float64{e.territory[0], e.territory[1]},
		TerritoryControlTurns: []int{e.territoryStreak[0], e.territoryStreak[1]},
		Units:                 units,
		EnergyNodes:           append([]Position(nil), e.energyNodes...),
		EnergyValues:          append([]float64(nil), e.energyValues...),
		ExplorationPercentage: []float64{exp[0], exp[1]},
		ExploredTiles:         explored,
		CombatEvents:          append([]CombatEvent(nil), e.combatEvents...),
		EntanglementZones:     append([]Position(nil), e.zones...),
		EntanglementZonePower: append([]float64(nil), e.zonePower...),
	}
}

// Snapshot returns the current full observation and info, or nils if
// the engine has not been reset yet.
func (e *Engine) Snapshot() (*Observation, *Info) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.grid == nil {
		return nil, nil
	}
	return e.buildObservation(), e.buildInfo()
}
