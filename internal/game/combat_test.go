package game

import "testing"

// attackSetup builds a clean dueling ground: a funded player 0 warrior
// at (5,5) with cleared tiles east of it.
func attackSetup(t *testing.T) (*Engine, *Unit) {
	t.Helper()
	eng := newTestEngine(t, 101)
	for x := 5; x <= 9; x++ {
		clearTile(eng, Position{X: x, Y: 5}, TileEmpty)
	}
	w := placeUnit(eng, 0, UnitWarrior, Position{X: 5, Y: 5})
	eng.playerEnergy[0] = 1000
	return eng, w
}

// TestAttackBaseDamage verifies an adjacent unboosted attack deals base
// damage, charges the attack cost and records a combat event.
func TestAttackBaseDamage(t *testing.T) {
	eng, w := attackSetup(t)
	target := placeUnit(eng, 1, UnitHarvester, Position{X: 6, Y: 5})

	res, err := eng.Step([]UnitAction{
		{Key: FormatActionKey(0, w.ID), Action: Action{Type: ActionAttack, DX: 1, DY: 0}},
	}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	// Base 15 x warrior combat power 2 = 30.
	wantDamage := 30.0
	if target.Health != 45-wantDamage {
		t.Errorf("expected target at %v health, got %v", 45-wantDamage, target.Health)
	}
	if res.Reward != wantDamage {
		t.Errorf("non-lethal attack should reward damage dealt, got %v", res.Reward)
	}
	if got := eng.PlayerEnergy()[0]; got != 1000-eng.cfg.Combat.AttackEnergyCost {
		t.Errorf("attack cost not charged, energy %v", got)
	}

	if len(res.Info.CombatEvents) != 1 {
		t.Fatalf("expected 1 combat event, got %d", len(res.Info.CombatEvents))
	}
	ev := res.Info.CombatEvents[0]
	if ev.Damage != wantDamage || ev.Defeated || ev.IsLongRange {
		t.Errorf("unexpected event: %+v", ev)
	}
}

// TestAttackRangeLimits verifies unboosted warriors only reach adjacent
// cells while boosted warriors reach out to the extended range.
func TestAttackRangeLimits(t *testing.T) {
	eng, w := attackSetup(t)
	placeUnit(eng, 1, UnitHarvester, Position{X: 8, Y: 5})

	key := FormatActionKey(0, w.ID)
	res, err := eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionAttack, DX: 1, DY: 0}}}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Reward != 0 || len(res.Info.CombatEvents) != 0 {
		t.Error("unboosted warrior should not reach a target 3 cells away")
	}

	w.Boosted = true
	w.BoostAttacksRemaining = 2
	res, err = eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionAttack, DX: 1, DY: 0}}}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(res.Info.CombatEvents) != 1 {
		t.Fatal("boosted warrior should reach the distant target")
	}
	if !res.Info.CombatEvents[0].IsLongRange {
		t.Error("event should be flagged long range")
	}
}

// TestAttackBlockedByBarrier verifies a barrier between attacker and
// target stops the scan.
func TestAttackBlockedByBarrier(t *testing.T) {
	eng, w := attackSetup(t)
	clearTile(eng, Position{X: 6, Y: 5}, TileQuantumBarrier)
	placeUnit(eng, 1, UnitHarvester, Position{X: 7, Y: 5})

	w.Boosted = true
	w.BoostAttacksRemaining = 2

	res, err := eng.Step([]UnitAction{
		{Key: FormatActionKey(0, w.ID), Action: Action{Type: ActionAttack, DX: 1, DY: 0}},
	}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(res.Info.CombatEvents) != 0 {
		t.Error("attack should be blocked by the barrier")
	}
}

// TestBoostLifecycle verifies the entanglement boost multiplies damage,
// decays after its attack allowance and drains the zone.
func TestBoostLifecycle(t *testing.T) {
	eng, w := attackSetup(t)

	// Hand-build a zone under the warrior with power for one boost only.
	clearTile(eng, w.Pos, TileEntanglementZone)
	eng.zones = append(eng.zones, w.Pos)
	eng.zonePower = append(eng.zonePower, eng.cfg.Quantum.ZoneBoostCost)

	// Step onto the zone: move off and back to trigger the pickup.
	key := FormatActionKey(0, w.ID)
	if _, err := eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionMove, DX: 1, DY: 0}}}, true); err != nil {
		t.Fatalf("step: %v", err)
	}
	if _, err := eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionMove, DX: -1, DY: 0}}}, true); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !w.Boosted || w.BoostAttacksRemaining != eng.cfg.Quantum.ZoneBoostAttacks {
		t.Fatalf("warrior should be boosted, got %v/%d", w.Boosted, w.BoostAttacksRemaining)
	}
	// The drained zone reverts to empty ground.
	if eng.grid.At(w.Pos) != TileEmpty {
		t.Error("depleted zone should clear the tile")
	}
	if len(eng.zones) != 0 {
		t.Error("depleted zone still registered")
	}

	// Boosted attacks deal multiplied damage and consume the allowance.
	tough := placeUnit(eng, 1, UnitWarrior, Position{X: 6, Y: 5})
	tough.Health = 1000
	res, err := eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionAttack, DX: 1, DY: 0}}}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	// 15 x 2 x 1.5 = 45.
	if res.Reward != 45 {
		t.Errorf("expected boosted damage 45, got %v", res.Reward)
	}
	if w.BoostAttacksRemaining != 1 {
		t.Errorf("expected 1 boost attack left, got %d", w.BoostAttacksRemaining)
	}

	if _, err := eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionAttack, DX: 1, DY: 0}}}, true); err != nil {
		t.Fatalf("step: %v", err)
	}
	if w.Boosted || w.BoostAttacksRemaining != 0 {
		t.Errorf("boost should be spent, got %v/%d", w.Boosted, w.BoostAttacksRemaining)
	}
}

// TestDecoherenceStripsBoost verifies entering a decoherence field
// removes an active boost.
func TestDecoherenceStripsBoost(t *testing.T) {
	eng, w := attackSetup(t)
	w.Boosted = true
	w.BoostAttacksRemaining = 2
	clearTile(eng, Position{X: 6, Y: 5}, TileDecoherenceField)

	if _, err := eng.Step([]UnitAction{
		{Key: FormatActionKey(0, w.ID), Action: Action{Type: ActionMove, DX: 1, DY: 0}},
	}, true); err != nil {
		t.Fatalf("step: %v", err)
	}
	if w.Boosted || w.BoostAttacksRemaining != 0 {
		t.Errorf("decoherence field should strip the boost, got %v/%d", w.Boosted, w.BoostAttacksRemaining)
	}
}

// TestDecoherenceHalvesDamage verifies a target standing on a
// decoherence field takes reduced damage while the event keeps the
// pre-reduction figure.
func TestDecoherenceHalvesDamage(t *testing.T) {
	eng, w := attackSetup(t)
	clearTile(eng, Position{X: 6, Y: 5}, TileDecoherenceField)
	target := placeUnit(eng, 1, UnitWarrior, Position{X: 6, Y: 5})
	target.Health = 1000

	res, err := eng.Step([]UnitAction{
		{Key: FormatActionKey(0, w.ID), Action: Action{Type: ActionAttack, DX: 1, DY: 0}},
	}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	if target.Health != 1000-15 {
		t.Errorf("expected halved damage 15 applied, target at %v", target.Health)
	}
	ev := res.Info.CombatEvents[0]
	if !ev.DecoherenceReduction {
		t.Error("event should flag the reduction")
	}
	if ev.Damage != 30 {
		t.Errorf("event should keep pre-reduction damage 30, got %v", ev.Damage)
	}
	if res.Reward != 15 {
		t.Errorf("reward should track applied damage, got %v", res.Reward)
	}
}

// TestLethalAttackRemovesUnit verifies a killing blow removes the target
// immediately and pays the defeat reward instead of damage.
func TestLethalAttackRemovesUnit(t *testing.T) {
	eng, w := attackSetup(t)
	target := placeUnit(eng, 1, UnitHarvester, Position{X: 6, Y: 5})
	target.Health = 5

	res, err := eng.Step([]UnitAction{
		{Key: FormatActionKey(0, w.ID), Action: Action{Type: ActionAttack, DX: 1, DY: 0}},
	}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	if res.Reward != eng.cfg.Combat.UnitDefeatReward {
		t.Errorf("expected defeat reward, got %v", res.Reward)
	}
	if !res.Info.CombatEvents[0].Defeated {
		t.Error("event should flag the defeat")
	}
	for _, u := range eng.units {
		if u == target {
			t.Error("defeated unit still on the board")
		}
	}
}

// TestAttackTargetPriority verifies the scan picks the most valuable
// target on a shared cell: harvesters over scouts over warriors,
// weighted by missing health.
func TestAttackTargetPriority(t *testing.T) {
	eng, w := attackSetup(t)

	// A gate tile lets enemies stack on one cell.
	cell := Position{X: 6, Y: 5}
	clearTile(eng, cell, TileQuantumGate)
	warrior := placeUnit(eng, 1, UnitWarrior, cell)
	harvester := placeUnit(eng, 1, UnitHarvester, cell)
	_ = warrior

	res, err := eng.Step([]UnitAction{
		{Key: FormatActionKey(0, w.ID), Action: Action{Type: ActionAttack, DX: 1, DY: 0}},
	}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	if len(res.Info.CombatEvents) != 1 {
		t.Fatal("expected one combat event")
	}
	if harvester.Health != 15 {
		t.Errorf("harvester should have soaked the hit, at %v health", harvester.Health)
	}
}

// TestAttackBoostPreDeducted verifies boost energy is zeroed when
// unaffordable and spent even when the attack finds no target.
func TestAttackBoostPreDeducted(t *testing.T) {
	eng, w := attackSetup(t)

	// Unaffordable boost: zeroed, attack still lands at base damage.
	eng.playerEnergy[0] = eng.cfg.Combat.AttackEnergyCost
	target := placeUnit(eng, 1, UnitWarrior, Position{X: 6, Y: 5})
	target.Health = 1000

	key := FormatActionKey(0, w.ID)
	res, err := eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionAttack, DX: 1, DY: 0, Boost: 500}}}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Reward != 30 {
		t.Errorf("unaffordable boost should fall back to base damage, got %v", res.Reward)
	}

	// Affordable boost on a whiffed attack is still spent.
	eng.removeUnit(target)
	eng.playerEnergy[0] = 100
	res, err = eng.Step([]UnitAction{{Key: key, Action: Action{Type: ActionAttack, DX: 1, DY: 0, Boost: 40}}}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Reward != 0 {
		t.Errorf("whiffed attack should earn nothing, got %v", res.Reward)
	}
	if got := eng.PlayerEnergy()[0]; got != 60 {
		t.Errorf("boost should be spent on the whiff, energy %v", got)
	}
}

// TestNonWarriorCannotAttack verifies scouts and harvesters never deal
// damage.
func TestNonWarriorCannotAttack(t *testing.T) {
	eng := newTestEngine(t, 103)
	clearTile(eng, Position{X: 5, Y: 5}, TileEmpty)
	clearTile(eng, Position{X: 6, Y: 5}, TileEmpty)

	s := placeUnit(eng, 0, UnitScout, Position{X: 5, Y: 5})
	target := placeUnit(eng, 1, UnitHarvester, Position{X: 6, Y: 5})
	eng.playerEnergy[0] = 1000

	res, err := eng.Step([]UnitAction{
		{Key: FormatActionKey(0, s.ID), Action: Action{Type: ActionAttack, DX: 1, DY: 0}},
	}, true)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if res.Reward != 0 || target.Health != 45 {
		t.Error("scout attack should be a no-op")
	}
}
