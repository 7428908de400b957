package main

import (
	"math/rand"

	"quantum-harvest/internal/config"
	"quantum-harvest/internal/game"
)

// scriptedAgent drives one player with simple role heuristics: harvesters
// chase energy nodes, warriors hunt visible enemies, scouts push the
// explored frontier and fund new units from the start cell.
//
// It only ever reads the player's fogged observation, so it plays under
// the same information limits a real agent would.
type scriptedAgent struct {
	player int
	cfg    config.GameConfig
	rng    *rand.Rand
}

func newScriptedAgent(player int, cfg config.GameConfig, seed int64) *scriptedAgent {
	return &scriptedAgent{
		player: player,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Actions builds one order per living unit from the player's view.
func (a *scriptedAgent) Actions(obs *game.Observation) []game.UnitAction {
	if obs == nil || len(obs.FogMaps) == 0 {
		return nil
	}
	fog := obs.FogMaps[0]
	energy := obs.PlayerEnergy[a.player]

	var mine, enemies [][]int
	harvesters := 0
	for _, row := range obs.Units {
		if row[1] == a.player {
			mine = append(mine, row)
			if game.UnitType(row[2]) == game.UnitHarvester {
				harvesters++
			}
		} else {
			enemies = append(enemies, row)
		}
	}

	actions := make([]game.UnitAction, 0, len(mine))
	for _, row := range mine {
		pos := game.Position{X: row[3], Y: row[4]}

		var act game.Action
		switch game.UnitType(row[2]) {
		case game.UnitHarvester:
			act = a.harvesterAction(pos, fog)
		case game.UnitWarrior:
			act = a.warriorAction(pos, fog, enemies)
		case game.UnitScout:
			act = a.scoutAction(pos, fog, &energy, &harvesters)
		}

		actions = append(actions, game.UnitAction{
			Key:    game.FormatActionKey(a.player, row[0]),
			Action: act,
		})
	}
	return actions
}

// harvesterAction harvests in place when standing on a node, otherwise
// walks toward the nearest node the player has seen.
func (a *scriptedAgent) harvesterAction(pos game.Position, fog [][]int) game.Action {
	if fog[pos.X][pos.Y] == int(game.TileEnergyNode) {
		return game.Action{Type: game.ActionHarvest}
	}
	if target, ok := nearestTile(pos, fog, game.TileEnergyNode); ok {
		return a.stepToward(pos, target, fog)
	}
	return a.wander(pos, fog)
}

// warriorAction attacks an adjacent enemy, closes on the nearest visible
// one, or drifts toward the board center looking for a fight.
func (a *scriptedAgent) warriorAction(pos game.Position, fog [][]int, enemies [][]int) game.Action {
	if len(enemies) > 0 {
		best := game.Position{X: enemies[0][3], Y: enemies[0][4]}
		bestDist := pos.Manhattan(best)
		for _, row := range enemies[1:] {
			p := game.Position{X: row[3], Y: row[4]}
			if d := pos.Manhattan(p); d < bestDist {
				best, bestDist = p, d
			}
		}

		dx := sign(best.X - pos.X)
		dy := sign(best.Y - pos.Y)
		if pos.X+dx == best.X && pos.Y+dy == best.Y {
			return game.Action{Type: game.ActionAttack, DX: dx, DY: dy}
		}
		return a.stepToward(pos, best, fog)
	}

	center := game.Position{X: len(fog) / 2, Y: len(fog) / 2}
	if pos == center {
		return a.wander(pos, fog)
	}
	return a.stepToward(pos, center, fog)
}

// scoutAction spends spare energy on spawns at the start cell, otherwise
// walks toward the nearest unexplored cell. The energy and harvester
// counters are shared across the player's scouts within one turn so two
// scouts do not both budget for the same spawn.
func (a *scriptedAgent) scoutAction(pos game.Position, fog [][]int, energy *float64, harvesters *int) game.Action {
	costs := a.cfg.Units.Costs

	if *harvesters < 3 && *energy >= costs.Harvester*2 {
		*energy -= costs.Harvester
		*harvesters++
		return game.Action{Type: game.ActionSpawnHarvester}
	}
	if *energy >= costs.Warrior*3 && a.rng.Intn(4) == 0 {
		*energy -= costs.Warrior
		return game.Action{Type: game.ActionSpawnWarrior}
	}

	if target, ok := nearestTile(pos, fog, game.TileUnknown); ok {
		return a.stepToward(pos, target, fog)
	}
	return a.wander(pos, fog)
}

// stepToward moves one cell toward target, steering around barriers the
// player has already seen.
func (a *scriptedAgent) stepToward(pos, target game.Position, fog [][]int) game.Action {
	dx := sign(target.X - pos.X)
	dy := sign(target.Y - pos.Y)

	candidates := [][2]int{{dx, dy}, {dx, 0}, {0, dy}}
	for _, c := range candidates {
		if c[0] == 0 && c[1] == 0 {
			continue
		}
		if passable(pos.X+c[0], pos.Y+c[1], fog) {
			return game.Action{Type: game.ActionMove, DX: c[0], DY: c[1]}
		}
	}
	return a.wander(pos, fog)
}

// wander picks a random passable direction, or stays put when boxed in.
func (a *scriptedAgent) wander(pos game.Position, fog [][]int) game.Action {
	dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	start := a.rng.Intn(len(dirs))
	for i := 0; i < len(dirs); i++ {
		d := dirs[(start+i)%len(dirs)]
		if passable(pos.X+d[0], pos.Y+d[1], fog) {
			return game.Action{Type: game.ActionMove, DX: d[0], DY: d[1]}
		}
	}
	return game.Action{Type: game.ActionMove}
}

// nearestTile scans the fog map for the closest cell of the wanted type.
func nearestTile(pos game.Position, fog [][]int, want game.TileType) (game.Position, bool) {
	var best game.Position
	bestDist := -1
	for x := range fog {
		for y := range fog[x] {
			if fog[x][y] != int(want) {
				continue
			}
			p := game.Position{X: x, Y: y}
			if d := pos.Manhattan(p); bestDist < 0 || d < bestDist {
				best, bestDist = p, d
			}
		}
	}
	return best, bestDist >= 0
}

// passable reports whether a cell is worth stepping into: in bounds and
// not a known barrier. Unknown cells are treated as open.
func passable(x, y int, fog [][]int) bool {
	if x < 0 || y < 0 || x >= len(fog) || y >= len(fog[0]) {
		return false
	}
	return fog[x][y] != int(game.TileQuantumBarrier)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
