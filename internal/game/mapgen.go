package game

import (
	"fmt"
	"log"
	"math/rand"

	"quantum-harvest/internal/config"
)

// generatedMap is the output of map generation: the board plus the energy
// node registry. Nodes are listed in placement order, paired values shared
// between a cell and its mirror.
type generatedMap struct {
	grid         *Grid
	starts       [2]Position
	energyNodes  []Position
	energyValues []float64
}

// pairRange converts a ratio pair into a draw range. Divisors come from the
// balance file: the larger divisor gives the floor, the smaller the ceiling.
func pairRange(size, minRatio, maxRatio int) (int, int) {
	lo := size / minRatio
	if lo < 1 {
		lo = 1
	}
	hi := size / maxRatio
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func drawPairs(rng *rand.Rand, size, minRatio, maxRatio int) int {
	lo, hi := pairRange(size, minRatio, maxRatio)
	return lo + rng.Intn(hi-lo+1)
}

// generateMap builds a board with perfect point symmetry between the two
// players. All special tiles are drawn inside player 0's quadrant and
// mirrored through the board center, so both players face identical terrain.
func generateMap(cfg *config.GameConfig, rng *rand.Rand) (*generatedMap, error) {
	size := cfg.Match.MapSize
	g := NewGrid(size)

	starts := [2]Position{
		{X: 0, Y: 0},
		{X: size - 1, Y: size - 1},
	}

	numEnergy := drawPairs(rng, size, cfg.MapGen.EnergyMinRatio, cfg.MapGen.EnergyMaxRatio)
	numBarrier := drawPairs(rng, size, cfg.MapGen.BarrierMinRatio, cfg.MapGen.BarrierMaxRatio)
	numDecoherence := drawPairs(rng, size, cfg.MapGen.DecoherenceMinRatio, cfg.MapGen.DecoherenceMaxRatio)
	numGate := drawPairs(rng, size, cfg.MapGen.GateMinRatio, cfg.MapGen.GateMaxRatio)

	// Candidate cells: player 0's quadrant minus both start cells.
	var avail []Position
	for x := 0; x < size/2; x++ {
		for y := 0; y < size/2; y++ {
			p := Position{X: x, Y: y}
			if p != starts[0] && p != starts[1] {
				avail = append(avail, p)
			}
		}
	}

	// Shrink counts proportionally when the quadrant cannot hold them all.
	if numEnergy+numBarrier+numDecoherence+numGate > len(avail) {
		cap := len(avail) / 5
		numEnergy = min(numEnergy, cap)
		numBarrier = min(numBarrier, cap)
		numDecoherence = min(numDecoherence, cap)
		numGate = min(numGate, cap)
	}

	take := func() (Position, bool) {
		if len(avail) == 0 {
			return Position{}, false
		}
		i := rng.Intn(len(avail))
		p := avail[i]
		avail = append(avail[:i], avail[i+1:]...)
		return p, true
	}

	gm := &generatedMap{grid: g, starts: starts}

	for i := 0; i < numEnergy; i++ {
		p, ok := take()
		if !ok {
			break
		}
		m := p.Mirror(size)
		g.Set(p, TileEnergyNode)
		g.Set(m, TileEnergyNode)

		// Mirrored nodes share one value so neither player is favored.
		val := cfg.Economy.NodeMinValue + float64(rng.Intn(int(cfg.Economy.NodeMaxValue-cfg.Economy.NodeMinValue)+1))
		gm.energyNodes = append(gm.energyNodes, p, m)
		gm.energyValues = append(gm.energyValues, val, val)
	}

	placePairs := func(n int, t TileType) {
		for i := 0; i < n; i++ {
			p, ok := take()
			if !ok {
				return
			}
			g.Set(p, t)
			g.Set(p.Mirror(size), t)
		}
	}
	placePairs(numBarrier, TileQuantumBarrier)
	placePairs(numDecoherence, TileDecoherenceField)
	placePairs(numGate, TileQuantumGate)

	if err := verifySymmetry(g); err != nil {
		return nil, err
	}

	log.Printf("🗺️ Generated %dx%d map: %d energy, %d barrier, %d decoherence, %d gate pairs",
		size, size, numEnergy, numBarrier, numDecoherence, numGate)

	return gm, nil
}

// verifySymmetry checks that every non-empty cell matches its mirror.
func verifySymmetry(g *Grid) error {
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			p := Position{X: x, Y: y}
			t := g.At(p)
			if t == TileEmpty {
				continue
			}
			m := p.Mirror(g.Size)
			if mt := g.At(m); mt != t {
				return fmt.Errorf("map asymmetry: (%d,%d)=%s but mirror (%d,%d)=%s",
					p.X, p.Y, t, m.X, m.Y, mt)
			}
		}
	}
	return nil
}
