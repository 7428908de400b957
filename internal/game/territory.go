package game

// updateTerritory recomputes each player's share of controlled cells.
// A cell is controlled by the player with a unit standing on it; when
// both players share a cell (possible on quantum gates), the lower
// player id holds it so the result does not depend on unit order.
func (e *Engine) updateTerritory() {
	owner := make(map[Position]int, len(e.units))
	for _, u := range e.units {
		if prev, ok := owner[u.Pos]; ok && prev <= u.Player {
			continue
		}
		owner[u.Pos] = u.Player
	}

	var counts [2]int
	for _, player := range owner {
		counts[player]++
	}

	total := float64(e.grid.Size * e.grid.Size)
	e.territory = [2]float64{
		float64(counts[0]) / total,
		float64(counts[1]) / total,
	}
}
