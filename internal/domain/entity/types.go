package entity

// ID is a unique identifier for a combatant within a session
type ID uint32

// Vec2 is a 2D vector in pixels or pixels per second
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in world pixels
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps reports whether two rectangles share interior area.
// Touching edges do not count as an overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Layer identifies one of the stage's drawing layers
type Layer int

const (
	LayerBackground Layer = iota
	LayerDetail
	LayerGround
	LayerForeground
	layerCount
)

// LayerCount is the number of drawing layers a stage carries
const LayerCount = int(layerCount)

// TileEmpty is the tile id for an empty, non-solid cell
const TileEmpty = 0

// Stage holds the active level geometry.
// Tile grids are row-major; only Collision participates in physics.
type Stage struct {
	Index    int
	Width    float64
	TileSize int
	Columns  int
	Rows     int
	GroundY  float64

	Layers    [LayerCount][]int
	Collision []int
	Obstacles []Rect
}

// HasTiles reports whether the collision grid is usable
func (s *Stage) HasTiles() bool {
	return s != nil && s.TileSize > 0 && s.Columns > 0 && s.Rows > 0 &&
		len(s.Collision) >= s.Columns*s.Rows
}

// TileAt returns the tile id of a layer cell, or TileEmpty when out of range
func (s *Stage) TileAt(layer Layer, col, row int) int {
	if s == nil || layer < 0 || layer >= layerCount {
		return TileEmpty
	}
	return cell(s.Layers[layer], s.Columns, s.Rows, col, row)
}

// IsSolid reports whether the collision cell at (col, row) blocks movement
func (s *Stage) IsSolid(col, row int) bool {
	if !s.HasTiles() {
		return false
	}
	return cell(s.Collision, s.Columns, s.Rows, col, row) != TileEmpty
}

// TileRect returns the world rectangle covered by a cell
func (s *Stage) TileRect(col, row int) Rect {
	ts := float64(s.TileSize)
	return Rect{X: float64(col) * ts, Y: float64(row) * ts, W: ts, H: ts}
}

func cell(grid []int, cols, rows, col, row int) int {
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return TileEmpty
	}
	i := row*cols + col
	if i >= len(grid) {
		return TileEmpty
	}
	return grid[i]
}
