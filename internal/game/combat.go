package game

// CombatEvent records one resolved attack for spectators and replays.
// Damage is the amount rolled before any decoherence reduction; the
// DecoherenceReduction flag marks when the applied damage was halved.
type CombatEvent struct {
	Type                 string   `json:"type"`
	AttackerPos          Position `json:"attacker_pos"`
	TargetPos            Position `json:"target_pos"`
	Damage               float64  `json:"damage"`
	AttackerPlayer       int      `json:"attacker_player"`
	TargetPlayer         int      `json:"target_player"`
	TargetHealthBefore   float64  `json:"target_health_before"`
	EnergyBoost          int      `json:"energy_boost"`
	IsBoosted            bool     `json:"is_boosted"`
	IsLongRange          bool     `json:"is_long_range"`
	DecoherenceReduction bool     `json:"decoherence_reduction"`
	Defeated             bool     `json:"defeated"`
}

// execAttack resolves a warrior attack along a direction. The boost
// energy was already deducted by the dispatcher; a failed attack does
// not refund it.
func (e *Engine) execAttack(unit *Unit, dx, dy, boost int) float64 {
	if unit.Type != UnitWarrior {
		return 0
	}

	maxRange := e.cfg.Combat.NormalAttackRange
	if unit.Boosted {
		maxRange = e.cfg.Combat.BoostedAttackRange
	}

	target := e.findAttackTarget(unit, dx, dy, maxRange)
	if target == nil {
		return 0
	}

	if e.playerEnergy[unit.Player] < e.cfg.Combat.AttackEnergyCost {
		return 0
	}
	e.playerEnergy[unit.Player] -= e.cfg.Combat.AttackEnergyCost

	damage := e.cfg.Combat.WarriorBaseDamage * CombatPower(&e.cfg, unit.Type) *
		(1 + float64(boost)*e.cfg.Combat.EnergyBoostMultiplier)

	if unit.Boosted {
		damage *= e.cfg.Combat.EntanglementDamageMultiplier
		unit.BoostAttacksRemaining--
		if unit.BoostAttacksRemaining <= 0 {
			unit.Boosted = false
			unit.BoostAttacksRemaining = 0
		}
	}

	ev := CombatEvent{
		Type:               "attack",
		AttackerPos:        unit.Pos,
		TargetPos:          target.Pos,
		Damage:             damage,
		AttackerPlayer:     unit.Player,
		TargetPlayer:       target.Player,
		TargetHealthBefore: target.Health,
		EnergyBoost:        boost,
		IsBoosted:          unit.Boosted || unit.BoostAttacksRemaining > 0,
		IsLongRange:        unit.Pos.Manhattan(target.Pos) > 1,
	}

	applied := damage
	if e.grid.At(target.Pos) == TileDecoherenceField {
		applied *= e.cfg.Combat.DecoherenceDamageReduction
		ev.DecoherenceReduction = true
	}

	target.Health -= applied

	var reward float64
	if target.Health <= 0 {
		target.Health = 0
		e.removeUnit(target)
		ev.Defeated = true
		reward = e.cfg.Combat.UnitDefeatReward
	} else {
		reward = applied
	}

	e.combatEvents = append(e.combatEvents, ev)
	return reward
}

// findAttackTarget scans outward along the direction, stopping at the
// first cell holding enemies or at a barrier. Among co-located enemies
// the most valuable target is picked.
func (e *Engine) findAttackTarget(unit *Unit, dx, dy, maxRange int) *Unit {
	for dist := 1; dist <= maxRange; dist++ {
		p := Position{X: unit.Pos.X + dx*dist, Y: unit.Pos.Y + dy*dist}
		if !e.grid.InBounds(p) {
			break
		}

		var enemies []*Unit
		for _, u := range e.unitsAt(p) {
			if u.Player != unit.Player {
				enemies = append(enemies, u)
			}
		}
		if len(enemies) > 0 {
			return selectAttackTarget(enemies)
		}

		if e.grid.At(p) == TileQuantumBarrier {
			break
		}
	}
	return nil
}

// selectAttackTarget picks the target with the best combined score of
// low health and type value: harvesters over scouts over warriors.
// The first unit wins score ties.
func selectAttackTarget(enemies []*Unit) *Unit {
	typePriority := func(t UnitType) float64 {
		switch t {
		case UnitHarvester:
			return 3
		case UnitScout:
			return 2
		case UnitWarrior:
			return 1
		default:
			return 0
		}
	}

	var best *Unit
	bestScore := 0.0
	for _, u := range enemies {
		score := (100 - u.Health) + typePriority(u.Type)*50
		if best == nil || score > bestScore {
			best = u
			bestScore = score
		}
	}
	return best
}

// removeUnit drops a defeated unit from the board immediately.
func (e *Engine) removeUnit(target *Unit) {
	for i, u := range e.units {
		if u == target {
			e.units = append(e.units[:i], e.units[i+1:]...)
			return
		}
	}
}
