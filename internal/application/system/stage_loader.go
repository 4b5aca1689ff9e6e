package system

import (
	"errors"
	"fmt"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// ErrInvalidStage is returned when a stage cannot be built from its parameters
var ErrInvalidStage = errors.New("invalid stage")

// atlas source regions
const (
	walkwayCol  = 3
	walkwayCols = 7
	walkwayRow  = 14
	walkwayRows = 9
	facadeRows  = 6
	facadeWidth = 14
)

var (
	doorColumns     = []int{20, 52, 74, 90}
	windowColumns   = []int{26, 58, 82, 106}
	archColumns     = []int{34}
	barsColumns     = []int{38, 70}
	graffitiColumns = []int{34, 106}
	garageColumns   = []int{52, 88}
)

// LoadStage builds the stage for a definition index. Out of range indices
// clamp to the nearest definition. Every call allocates a fresh Stage.
func LoadStage(index int, cfg *config.GameConfig) (*entity.Stage, error) {
	def, index := entity.StageDefinitionAt(index)

	sc := cfg.Stage
	if sc.TileSize <= 0 || sc.Rows <= 0 || sc.AtlasColumns <= 0 {
		return nil, fmt.Errorf("stage %d: tile geometry %dx%d: %w", index, sc.TileSize, sc.Rows, ErrInvalidStage)
	}
	cols := entity.StageWidth / sc.TileSize
	groundY := cfg.Physics.GroundY
	groundRow := int(groundY) / sc.TileSize
	if cols <= 0 || groundY <= 0 || groundRow >= sc.Rows {
		return nil, fmt.Errorf("stage %d (%s): ground row %d outside %d rows: %w", index, def.Name, groundRow, sc.Rows, ErrInvalidStage)
	}

	stage := &entity.Stage{
		Index:     index,
		Width:     float64(cols * sc.TileSize),
		TileSize:  sc.TileSize,
		Columns:   cols,
		Rows:      sc.Rows,
		GroundY:   groundY,
		Collision: make([]int, cols*sc.Rows),
		Obstacles: entity.StageObstacles(def.Obstacles, groundY),
	}
	for l := range stage.Layers {
		stage.Layers[l] = make([]int, cols*sc.Rows)
	}

	p := painter{cols: cols, rows: sc.Rows, atlas: sc.AtlasColumns}
	p.paint(stage, def, groundRow)
	return stage, nil
}

// painter writes atlas regions into row-major tile layers
type painter struct {
	cols, rows, atlas int
}

func (p painter) tileID(col, row int) int {
	if col < 0 || row < 0 {
		return entity.TileEmpty
	}
	return row*p.atlas + col + 1
}

func (p painter) paint(stage *entity.Stage, def entity.StageDefinition, groundRow int) {
	index := stage.Index
	ground := stage.Layers[entity.LayerGround]
	detail := stage.Layers[entity.LayerDetail]
	background := stage.Layers[entity.LayerBackground]

	walkwayTop := maxInt(groundRow-walkwayRows+1, 0)
	offset := index * 3
	p.strip(ground, walkwayTop, walkwayRows, walkwayRow, offset)

	// solid floor from the ground plane down
	floorRow := walkwayRow + walkwayRows - 1
	for row := groundRow; row < p.rows; row++ {
		for col := 0; col < p.cols; col++ {
			stage.Collision[row*p.cols+col] = p.tileID(walkwayCol+wrap(col+offset, walkwayCols), floorRow)
		}
	}

	facadeTop := maxInt(walkwayTop-facadeRows, 0)
	shift := minInt(index*6, 12)

	p.region(background, 0, facadeTop, facadeWidth, facadeRows, 0, 0)
	for x := facadeWidth; x < p.cols-facadeWidth; {
		p.region(background, x, facadeTop, 2, facadeRows, 15, 0)
		x += 2
		if x >= p.cols-facadeWidth {
			break
		}
		p.region(background, x, facadeTop, facadeWidth, facadeRows, 18, 0)
		x += facadeWidth
	}
	rightSrc := 18
	if index == 1 {
		rightSrc = 0
	}
	p.region(background, p.cols-facadeWidth, facadeTop, facadeWidth, facadeRows, rightSrc, 0)
	if index == 2 {
		p.region(background, p.cols/2-7, facadeTop, facadeWidth, facadeRows, 0, 0)
	}

	p.shifted(detail, doorColumns, shift, facadeTop, 3, facadeRows, 12, 7)
	p.shifted(detail, windowColumns, shift, facadeTop, 3, facadeRows, 16, 7)
	p.shifted(detail, archColumns, shift, facadeTop, 2, facadeRows, 20, 7)
	p.shifted(detail, barsColumns, shift, facadeTop, 2, facadeRows, 23, 7)
	if index >= 1 {
		p.shifted(detail, []int{44}, shift/2, facadeTop, 3, facadeRows, 16, 7)
	}
	if index >= 2 {
		p.shifted(detail, []int{62, 98}, shift/2, facadeTop, 3, facadeRows, 12, 7)
	}

	p.shifted(ground, graffitiColumns, shift, walkwayTop, 6, 6, 27, 14)
	p.shifted(ground, garageColumns, shift, walkwayTop, 7, 6, 19, 14)

	if def.HasBoss() {
		// boss entrance near the stage end
		entrance := p.cols - 36
		p.region(ground, entrance, walkwayTop, 7, 6, 19, 14)
		p.region(detail, entrance-4, facadeTop, 3, facadeRows, 12, 7)
	}
}

// strip fills rows with a horizontally repeating walkway pattern
func (p painter) strip(layer []int, top, rows, srcRow, offset int) {
	for dy := 0; dy < rows; dy++ {
		row := top + dy
		if row < 0 || row >= p.rows {
			continue
		}
		for col := 0; col < p.cols; col++ {
			layer[row*p.cols+col] = p.tileID(walkwayCol+wrap(col+offset, walkwayCols), srcRow+dy)
		}
	}
}

// region copies a w x h block of atlas tiles to (x, y), clipping at the edges
func (p painter) region(layer []int, x, y, w, h, srcCol, srcRow int) {
	for dy := 0; dy < h; dy++ {
		row := y + dy
		if row < 0 || row >= p.rows {
			continue
		}
		for dx := 0; dx < w; dx++ {
			col := x + dx
			if col < 0 || col >= p.cols {
				continue
			}
			layer[row*p.cols+col] = p.tileID(srcCol+dx, srcRow+dy)
		}
	}
}

// shifted places a region at each column plus shift, skipping any that would
// run past the right edge
func (p painter) shifted(layer []int, columns []int, shift, y, w, h, srcCol, srcRow int) {
	for _, c := range columns {
		x := c + shift
		if x < 0 || x+w > p.cols {
			continue
		}
		p.region(layer, x, y, w, h, srcCol, srcRow)
	}
}

func wrap(v, m int) int {
	if m <= 0 {
		return 0
	}
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
