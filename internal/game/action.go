package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionType identifies what a unit is ordered to do this step.
type ActionType int

const (
	ActionMove ActionType = iota
	ActionQuantumMove
	ActionHarvest
	ActionEntangle
	ActionMeasure
	ActionShield
	ActionBoost
	ActionAttack
	ActionSpawnHarvester
	ActionSpawnWarrior
	ActionSpawnScout
	ActionCreateEntanglementZone
	ActionGateHealthGain
	ActionGateTeleport
	ActionBuildDecoherenceField
	ActionBuildQuantumBarrier
	ActionBuildQuantumGate

	actionTypeCount
)

func (a ActionType) String() string {
	names := [...]string{
		"move", "quantum_move", "harvest", "entangle", "measure",
		"shield", "boost", "attack", "spawn_harvester", "spawn_warrior",
		"spawn_scout", "create_entanglement_zone", "gate_health_gain",
		"gate_teleport", "build_decoherence_field", "build_quantum_barrier",
		"build_quantum_gate",
	}
	if a < 0 || int(a) >= len(names) {
		return "invalid"
	}
	return names[a]
}

// Action is one decoded order. DX and DY are direction components in
// -1..1; Boost is extra energy spent to amplify the action.
type Action struct {
	Type  ActionType
	DX    int
	DY    int
	Boost int
}

// DecodeAction parses the wire form of an action: four ints
// [type, dx+1, dy+1, boost]. A legacy five-int form with a leading unit id
// is accepted and the id is dropped (the map key already carries it).
func DecodeAction(raw []int) (Action, error) {
	switch len(raw) {
	case 4:
	case 5:
		raw = raw[1:]
	default:
		return Action{}, fmt.Errorf("action needs 4 or 5 ints, got %d", len(raw))
	}

	t := ActionType(raw[0])
	if t < 0 || t >= actionTypeCount {
		return Action{}, fmt.Errorf("unknown action type %d", raw[0])
	}
	if raw[1] < 0 || raw[1] > 2 || raw[2] < 0 || raw[2] > 2 {
		return Action{}, fmt.Errorf("direction components must be 0..2, got (%d, %d)", raw[1], raw[2])
	}
	if raw[3] < 0 {
		return Action{}, fmt.Errorf("negative boost %d", raw[3])
	}

	return Action{
		Type:  t,
		DX:    raw[1] - 1,
		DY:    raw[2] - 1,
		Boost: raw[3],
	}, nil
}

// Encode returns the four-int wire form of the action.
func (a Action) Encode() []int {
	return []int{int(a.Type), a.DX + 1, a.DY + 1, a.Boost}
}

// UnitAction binds a decoded action to the unit key that submitted it.
// Orders are resolved in slice order.
type UnitAction struct {
	Key    string
	Action Action
}

// ParseActionKey splits an action key into its player and unit id. Keys are
// "p<player>_<unitID>"; a bare numeric id is accepted as a legacy form that
// matches the first living unit with that id regardless of owner.
func ParseActionKey(key string) (player, unitID int, legacy bool, err error) {
	if rest, ok := strings.CutPrefix(key, "p"); ok {
		p, r, found := strings.Cut(rest, "_")
		if !found {
			return 0, 0, false, fmt.Errorf("malformed action key %q", key)
		}
		player, err = strconv.Atoi(p)
		if err != nil || player < 0 || player > 1 {
			return 0, 0, false, fmt.Errorf("bad player in action key %q", key)
		}
		unitID, err = strconv.Atoi(r)
		if err != nil {
			return 0, 0, false, fmt.Errorf("bad unit id in action key %q", key)
		}
		return player, unitID, false, nil
	}

	unitID, err = strconv.Atoi(key)
	if err != nil {
		return 0, 0, false, fmt.Errorf("malformed action key %q", key)
	}
	return 0, unitID, true, nil
}

// FormatActionKey builds the canonical "p<player>_<unitID>" key.
func FormatActionKey(player, unitID int) string {
	return "p" + strconv.Itoa(player) + "_" + strconv.Itoa(unitID)
}
