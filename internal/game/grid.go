package game

// Position is a cell coordinate on the square board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Manhattan returns the L1 distance to other.
func (p Position) Manhattan(other Position) int {
	return abs(p.X-other.X) + abs(p.Y-other.Y)
}

// Mirror returns the point-symmetric cell on a board of the given size.
func (p Position) Mirror(size int) Position {
	return Position{X: size - 1 - p.X, Y: size - 1 - p.Y}
}

// TileType identifies what occupies a board cell.
type TileType int8

const (
	TileEmpty TileType = iota
	TileEnergyNode
	TileQuantumBarrier
	TileEntanglementZone
	TileDecoherenceField
	TileQuantumGate
)

// TileUnknown is the fog sentinel used in per-player views for cells the
// player has never explored. It never appears on the real board.
const TileUnknown TileType = -1

func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileEnergyNode:
		return "energy_node"
	case TileQuantumBarrier:
		return "quantum_barrier"
	case TileEntanglementZone:
		return "entanglement_zone"
	case TileDecoherenceField:
		return "decoherence_field"
	case TileQuantumGate:
		return "quantum_gate"
	case TileUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Grid is the square board. Cells are stored row-major.
type Grid struct {
	Size  int
	tiles []TileType
}

// NewGrid returns an all-empty board of size x size cells.
func NewGrid(size int) *Grid {
	return &Grid{
		Size:  size,
		tiles: make([]TileType, size*size),
	}
}

// InBounds reports whether p lies on the board.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// At returns the tile at p. Callers must pass an in-bounds position.
func (g *Grid) At(p Position) TileType {
	return g.tiles[p.Y*g.Size+p.X]
}

// Set writes the tile at p.
func (g *Grid) Set(p Position, t TileType) {
	g.tiles[p.Y*g.Size+p.X] = t
}

// Clone returns a deep copy of the board.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Size)
	copy(out.tiles, g.tiles)
	return out
}

// Rows returns the board as a fresh [x][y] matrix of tile codes,
// suitable for JSON serialization.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.Size)
	for x := 0; x < g.Size; x++ {
		row := make([]int, g.Size)
		for y := 0; y < g.Size; y++ {
			row[y] = int(g.At(Position{X: x, Y: y}))
		}
		rows[x] = row
	}
	return rows
}

// neighborDirs are the four cardinal step offsets.
var neighborDirs = [4]Position{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}}

// Neighbors appends the in-bounds cardinal neighbors of p to buf and
// returns it. Pass a reusable slice to avoid allocation in hot loops.
func (g *Grid) Neighbors(p Position, buf []Position) []Position {
	for _, d := range neighborDirs {
		n := Position{X: p.X + d.X, Y: p.Y + d.Y}
		if g.InBounds(n) {
			buf = append(buf, n)
		}
	}
	return buf
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
