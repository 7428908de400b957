package game

// checkVictory evaluates the end conditions in precedence order:
// elimination, energy threshold, sustained territory control, turn limit.
// A nil winner with terminated=true is a tie.
func (e *Engine) checkVictory() (bool, *int) {
	var unitCounts [2]int
	for _, u := range e.units {
		unitCounts[u.Player]++
	}

	switch {
	case unitCounts[0] == 0 && unitCounts[1] > 0:
		return true, playerRef(1)
	case unitCounts[1] == 0 && unitCounts[0] > 0:
		return true, playerRef(0)
	case unitCounts[0] == 0 && unitCounts[1] == 0:
		return true, nil
	}

	for player := 0; player < 2; player++ {
		if e.playerEnergy[player] >= e.cfg.Match.EnergyVictoryThreshold {
			return true, playerRef(player)
		}
	}

	// Territory control must hold for consecutive turns; the streak
	// resets the moment control dips below the threshold.
	for player := 0; player < 2; player++ {
		if e.territory[player] >= e.cfg.Match.TerritoryVictoryThreshold {
			e.territoryStreak[player]++
			if e.territoryStreak[player] >= e.cfg.Match.TerritoryVictoryTurns {
				return true, playerRef(player)
			}
		} else {
			e.territoryStreak[player] = 0
		}
	}

	if e.turn >= e.cfg.Match.MaxTurns {
		switch {
		case e.playerEnergy[0] > e.playerEnergy[1]:
			return true, playerRef(0)
		case e.playerEnergy[1] > e.playerEnergy[0]:
			return true, playerRef(1)
		default:
			return true, nil
		}
	}

	return false, nil
}

func playerRef(p int) *int {
	return &p
}
