package game

// updateExploration adds every cell within each living unit's vision
// radius to its owner's explored set. Exploration is permanent; the sets
// only grow.
func (e *Engine) updateExploration() {
	for _, u := range e.units {
		if !u.Alive() {
			continue
		}
		r := ExplorationRange(&e.cfg, u.Type)
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if abs(dx)+abs(dy) > r {
					continue
				}
				p := Position{X: u.Pos.X + dx, Y: u.Pos.Y + dy}
				if e.grid.InBounds(p) {
					e.explored[u.Player][p] = true
				}
			}
		}
	}
}

// explorationPercentage returns each player's explored share of the board.
func (e *Engine) explorationPercentage() [2]float64 {
	total := float64(e.grid.Size * e.grid.Size)
	return [2]float64{
		float64(len(e.explored[0])) / total,
		float64(len(e.explored[1])) / total,
	}
}
