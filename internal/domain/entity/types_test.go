package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestStage() *Stage {
	// 4x3 stage with a solid bottom row and one floating block
	cols, rows := 4, 3
	collision := make([]int, cols*rows)
	for c := 0; c < cols; c++ {
		collision[2*cols+c] = 1
	}
	collision[0*cols+3] = 7

	return &Stage{
		Width:     64,
		TileSize:  16,
		Columns:   cols,
		Rows:      rows,
		GroundY:   32,
		Collision: collision,
	}
}

func TestRect_Overlaps(t *testing.T) {
	base := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", Rect{X: 0, Y: 0, W: 10, H: 10}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"contained", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"touching right edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching bottom edge", Rect{X: 0, Y: 10, W: 5, H: 5}, false},
		{"far away", Rect{X: 100, Y: 100, W: 5, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestRect_Edges(t *testing.T) {
	r := Rect{X: 3, Y: 4, W: 10, H: 20}
	assert.Equal(t, 13.0, r.Right())
	assert.Equal(t, 24.0, r.Bottom())
	assert.False(t, r.Empty())
	assert.True(t, Rect{W: 0, H: 5}.Empty())
}

func TestStage_IsSolid(t *testing.T) {
	stage := createTestStage()

	tests := []struct {
		name     string
		col, row int
		want     bool
	}{
		{"ground left", 0, 2, true},
		{"ground right", 3, 2, true},
		{"air", 1, 1, false},
		{"floating block", 3, 0, true},
		{"negative col", -1, 2, false},
		{"row past bottom", 0, 3, false},
		{"col past right", 4, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stage.IsSolid(tt.col, tt.row))
		})
	}
}

func TestStage_HasTiles(t *testing.T) {
	assert.True(t, createTestStage().HasTiles())

	var nilStage *Stage
	assert.False(t, nilStage.HasTiles())
	assert.False(t, nilStage.IsSolid(0, 0))

	empty := &Stage{TileSize: 16, Columns: 4, Rows: 3}
	assert.False(t, empty.HasTiles(), "grid shorter than columns*rows is unusable")
	assert.False(t, empty.IsSolid(0, 2))
}

func TestStage_TileAt(t *testing.T) {
	stage := createTestStage()
	stage.Layers[LayerGround] = append([]int(nil), stage.Collision...)

	assert.Equal(t, 7, stage.TileAt(LayerGround, 3, 0))
	assert.Equal(t, TileEmpty, stage.TileAt(LayerBackground, 0, 0))
	assert.Equal(t, TileEmpty, stage.TileAt(Layer(99), 0, 0))
	assert.Equal(t, TileEmpty, stage.TileAt(LayerGround, 10, 10))
}

func TestStage_TileRect(t *testing.T) {
	stage := createTestStage()
	assert.Equal(t, Rect{X: 32, Y: 16, W: 16, H: 16}, stage.TileRect(2, 1))
}
