package game

// Action resolution. Every executor returns the shaped reward for the
// order; rule violations are silent zero-reward no-ops so agents can
// submit freely without crashing the match.

// executeAction dispatches one decoded order for a unit. For attacks the
// boost energy is checked and deducted up front: an unaffordable boost is
// zeroed, and a deducted boost is spent even if the attack then fails.
func (e *Engine) executeAction(unit *Unit, a Action) float64 {
	boost := a.Boost
	if a.Type == ActionAttack {
		if boost > 0 && e.playerEnergy[unit.Player] < float64(boost) {
			boost = 0
		}
		if boost > 0 {
			e.playerEnergy[unit.Player] -= float64(boost)
		}
	}

	switch a.Type {
	case ActionMove:
		return e.execMove(unit, a.DX, a.DY)
	case ActionQuantumMove:
		return e.execQuantumMove(unit, a.DX, a.DY, boost)
	case ActionHarvest:
		return e.execHarvest(unit)
	case ActionEntangle:
		return e.execEntangle(unit, a.DX, a.DY, boost)
	case ActionMeasure:
		return e.execMeasure(unit, a.DX, a.DY, boost)
	case ActionShield:
		return e.execShield(unit, boost)
	case ActionBoost:
		return e.execBoost(unit, boost)
	case ActionAttack:
		return e.execAttack(unit, a.DX, a.DY, boost)
	case ActionSpawnHarvester:
		return e.execSpawn(unit, UnitHarvester, e.cfg.Rewards.SpawnHarvester)
	case ActionSpawnWarrior:
		return e.execSpawn(unit, UnitWarrior, e.cfg.Rewards.SpawnWarrior)
	case ActionSpawnScout:
		return e.execSpawn(unit, UnitScout, e.cfg.Rewards.SpawnScout)
	case ActionCreateEntanglementZone:
		return e.execCreateZone(unit, a.DX, a.DY)
	case ActionGateHealthGain:
		return e.execGateHealthGain(unit)
	case ActionGateTeleport:
		return e.execGateTeleport(unit, a.DX, a.DY)
	case ActionBuildDecoherenceField:
		return e.execBuild(unit, a.DX, a.DY, TileDecoherenceField, e.cfg.Buildings.DecoherenceField, e.cfg.Rewards.Build)
	case ActionBuildQuantumBarrier:
		return e.execBuild(unit, a.DX, a.DY, TileQuantumBarrier, e.cfg.Buildings.QuantumBarrier, e.cfg.Rewards.Build)
	case ActionBuildQuantumGate:
		return e.execBuild(unit, a.DX, a.DY, TileQuantumGate, e.cfg.Buildings.QuantumGate, e.cfg.Rewards.BuildGate)
	default:
		return 0
	}
}

// afterMove applies tile effects on the cell a unit just entered:
// warriors pick up an entanglement boost from a friendly-powered zone,
// and a decoherence field strips any active boost.
func (e *Engine) afterMove(unit *Unit, applyZoneBoost bool) {
	if applyZoneBoost && unit.Type == UnitWarrior {
		e.tryEntanglementBoost(unit)
	}
	if e.grid.At(unit.Pos) == TileDecoherenceField {
		if unit.Type == UnitWarrior && unit.Boosted {
			unit.Boosted = false
			unit.BoostAttacksRemaining = 0
		}
	}
}

func (e *Engine) execMove(unit *Unit, dx, dy int) float64 {
	dest := Position{X: unit.Pos.X + dx, Y: unit.Pos.Y + dy}
	if !e.grid.InBounds(dest) {
		return 0
	}
	if e.hasOpposingUnits(dest, unit.Player) {
		return 0
	}
	if e.grid.At(dest) == TileQuantumBarrier {
		return 0
	}

	unit.Pos = dest
	e.afterMove(unit, true)
	return e.cfg.Rewards.Move
}

// execQuantumMove phases through barriers at a flat cost of half a
// barrier's build price. Zone boosts do not trigger on quantum entry.
func (e *Engine) execQuantumMove(unit *Unit, dx, dy, boost int) float64 {
	dest := Position{X: unit.Pos.X + dx, Y: unit.Pos.Y + dy}
	if !e.grid.InBounds(dest) {
		return 0
	}
	if e.hasOpposingUnits(dest, unit.Player) {
		return 0
	}

	cost := e.cfg.Buildings.QuantumBarrier * 0.5
	if e.playerEnergy[unit.Player] < cost {
		return 0
	}
	e.playerEnergy[unit.Player] -= cost

	unit.Pos = dest
	e.afterMove(unit, false)
	return e.cfg.Rewards.QuantumMoveBase + float64(boost)
}

func (e *Engine) execHarvest(unit *Unit) float64 {
	if unit.Type == UnitWarrior {
		return 0
	}
	if e.grid.At(unit.Pos) != TileEnergyNode {
		return 0
	}

	nodeIdx := -1
	for i, p := range e.energyNodes {
		if p == unit.Pos {
			nodeIdx = i
			break
		}
	}
	if nodeIdx < 0 {
		return 0
	}

	amount := valueFor(e.cfg.Economy.HarvestBaseAmounts, unit.Type) * HarvestEfficiency(&e.cfg, unit.Type)
	e.playerEnergy[unit.Player] += amount

	e.energyValues[nodeIdx] -= e.cfg.Economy.NodeDepletionRate
	if e.energyValues[nodeIdx] <= 0 {
		e.grid.Set(unit.Pos, TileEmpty)
		e.energyNodes = append(e.energyNodes[:nodeIdx], e.energyNodes[nodeIdx+1:]...)
		e.energyValues = append(e.energyValues[:nodeIdx], e.energyValues[nodeIdx+1:]...)
	}

	return amount
}

func (e *Engine) execEntangle(unit *Unit, dx, dy, boost int) float64 {
	target := Position{X: unit.Pos.X + dx, Y: unit.Pos.Y + dy}
	if !e.grid.InBounds(target) {
		return 0
	}
	other := e.firstUnitAt(target)
	if other == nil || other.Player == unit.Player {
		return 0
	}

	reward := e.cfg.Rewards.EntangleBase + float64(boost)
	if e.grid.At(unit.Pos) == TileEntanglementZone {
		reward *= e.cfg.Rewards.ZoneBonusMultiplier
	}
	return reward
}

func (e *Engine) execMeasure(unit *Unit, dx, dy, boost int) float64 {
	target := Position{X: unit.Pos.X + dx, Y: unit.Pos.Y + dy}
	if !e.grid.InBounds(target) {
		return 0
	}
	if e.firstUnitAt(target) == nil {
		return 0
	}

	reward := e.cfg.Rewards.MeasureBase + float64(boost)
	if unit.Type == UnitScout {
		reward *= e.cfg.Rewards.ScoutMeasureMultiplier
	}
	return reward
}

func (e *Engine) execShield(unit *Unit, boost int) float64 {
	reward := e.cfg.Rewards.ShieldBase + float64(boost)*e.cfg.Rewards.ShieldEnergyMultiplier
	if e.grid.At(unit.Pos) == TileQuantumGate {
		reward *= e.cfg.Rewards.GateShieldMultiplier
	}
	return reward
}

func (e *Engine) execBoost(unit *Unit, boost int) float64 {
	amount := e.cfg.Rewards.BoostBase + float64(boost)*e.cfg.Rewards.BoostEnergyMultiplier
	unit.Energy += amount
	return amount
}

// execSpawn creates a new unit at the actor's start cell. Only scouts can
// spawn. A blocked start cell falls back to the nearest valid cell by
// BFS; the cost is charged only when a unit actually appears.
func (e *Engine) execSpawn(unit *Unit, t UnitType, reward float64) float64 {
	if unit.Type != UnitScout {
		return 0
	}

	player := unit.Player
	cost := Cost(&e.cfg, t)
	if e.playerEnergy[player] < cost {
		return 0
	}

	pos := e.starts[player]
	if !e.isValidSpawn(pos, player) {
		alt, ok := e.nearestSpawn(pos, player)
		if !ok {
			return 0
		}
		pos = alt
	}

	id := e.nextUnitID[player]
	e.nextUnitID[player]++
	e.playerEnergy[player] -= cost
	e.units = append(e.units, newUnit(&e.cfg, id, player, t, pos))

	return reward
}

func (e *Engine) isValidSpawn(p Position, player int) bool {
	if !e.grid.InBounds(p) {
		return false
	}
	if e.grid.At(p) == TileQuantumBarrier {
		return false
	}
	return !e.hasOpposingUnits(p, player)
}

// nearestSpawn runs a bounded BFS outward from p for the closest cell a
// new unit may occupy.
func (e *Engine) nearestSpawn(p Position, player int) (Position, bool) {
	maxRadius := min(e.grid.Size/2, e.cfg.Units.SpawnSearchRadius)

	type node struct {
		pos  Position
		dist int
	}
	queue := []node{{pos: p}}
	visited := map[Position]bool{p: true}
	var buf [4]Position

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.dist > maxRadius {
			continue
		}
		if e.isValidSpawn(cur.pos, player) {
			return cur.pos, true
		}
		for _, n := range e.grid.Neighbors(cur.pos, buf[:0]) {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, node{pos: n, dist: cur.dist + 1})
			}
		}
	}
	return Position{}, false
}

// execCreateZone places a powered entanglement zone on an empty cell.
// Warriors and scouts only; direction (0,0) targets the actor's own cell.
func (e *Engine) execCreateZone(unit *Unit, dx, dy int) float64 {
	if unit.Type != UnitWarrior && unit.Type != UnitScout {
		return 0
	}

	target := Position{X: unit.Pos.X + dx, Y: unit.Pos.Y + dy}
	if !e.grid.InBounds(target) {
		return 0
	}
	if e.grid.At(target) != TileEmpty {
		return 0
	}
	if e.hasOpposingUnits(target, unit.Player) {
		return 0
	}

	cost := e.cfg.Buildings.EntanglementZone
	if e.playerEnergy[unit.Player] < cost {
		return 0
	}
	e.playerEnergy[unit.Player] -= cost

	e.grid.Set(target, TileEntanglementZone)
	e.zones = append(e.zones, target)
	e.zonePower = append(e.zonePower, e.cfg.Quantum.ZoneInitialPower)

	return e.cfg.Rewards.CreateZone
}

// tryEntanglementBoost arms an unboosted warrior standing on a zone,
// draining the zone's power. A drained zone reverts to empty ground.
func (e *Engine) tryEntanglementBoost(unit *Unit) bool {
	if unit.Type != UnitWarrior || unit.Boosted {
		return false
	}

	zoneIdx := -1
	for i, p := range e.zones {
		if p == unit.Pos {
			zoneIdx = i
			break
		}
	}
	if zoneIdx < 0 {
		return false
	}
	if e.zonePower[zoneIdx] < e.cfg.Quantum.ZoneBoostCost {
		return false
	}

	unit.Boosted = true
	unit.BoostAttacksRemaining = e.cfg.Quantum.ZoneBoostAttacks
	e.zonePower[zoneIdx] -= e.cfg.Quantum.ZoneBoostCost

	if e.zonePower[zoneIdx] <= 0 {
		e.grid.Set(e.zones[zoneIdx], TileEmpty)
		e.zones = append(e.zones[:zoneIdx], e.zones[zoneIdx+1:]...)
		e.zonePower = append(e.zonePower[:zoneIdx], e.zonePower[zoneIdx+1:]...)
	}
	return true
}

func (e *Engine) execGateHealthGain(unit *Unit) float64 {
	if e.grid.At(unit.Pos) != TileQuantumGate {
		return 0
	}
	if e.playerEnergy[unit.Player] < e.cfg.Quantum.GateHealthGainCost {
		return 0
	}
	e.playerEnergy[unit.Player] -= e.cfg.Quantum.GateHealthGainCost

	unit.Health += e.cfg.Quantum.GateHealthGain
	if unit.Health > e.cfg.Quantum.GateMaxHealth {
		unit.Health = e.cfg.Quantum.GateMaxHealth
	}

	return e.cfg.Rewards.GateHealthGain
}

// execGateTeleport jumps a unit standing on a gate to another gate. The
// direction components address the target cell directly, wrapping
// negative components around the far edge.
func (e *Engine) execGateTeleport(unit *Unit, dx, dy int) float64 {
	if e.grid.At(unit.Pos) != TileQuantumGate {
		return 0
	}

	target := Position{X: wrapCoord(dx, e.grid.Size), Y: wrapCoord(dy, e.grid.Size)}
	if !e.grid.InBounds(target) {
		return 0
	}
	if e.grid.At(target) != TileQuantumGate {
		return 0
	}
	if e.playerEnergy[unit.Player] < e.cfg.Quantum.GateTeleportCost {
		return 0
	}
	e.playerEnergy[unit.Player] -= e.cfg.Quantum.GateTeleportCost

	unit.Pos = target
	return e.cfg.Rewards.GateTeleport
}

func wrapCoord(v, size int) int {
	if v >= 0 {
		return v
	}
	return size + v
}

// execBuild places a constructed tile on an adjacent empty cell free of
// enemy units.
func (e *Engine) execBuild(unit *Unit, dx, dy int, tile TileType, cost, reward float64) float64 {
	target := Position{X: unit.Pos.X + dx, Y: unit.Pos.Y + dy}
	if !e.grid.InBounds(target) {
		return 0
	}
	if e.grid.At(target) != TileEmpty {
		return 0
	}
	if e.hasOpposingUnits(target, unit.Player) {
		return 0
	}
	if e.playerEnergy[unit.Player] < cost {
		return 0
	}
	e.playerEnergy[unit.Player] -= cost

	e.grid.Set(target, tile)
	return reward
}
