package system

import (
	"math/rand"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

// testRNG returns a deterministic RNG for testing
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func createTestConfig() *config.GameConfig {
	return config.Default()
}

// createTestStage builds a 640px wide stage whose two bottom rows are solid
// from the ground plane (y=448) down
func createTestStage(obstacles ...entity.Rect) *entity.Stage {
	cols, rows := 40, 30
	collision := make([]int, cols*rows)
	for row := 28; row < rows; row++ {
		for col := 0; col < cols; col++ {
			collision[row*cols+col] = 1
		}
	}
	return &entity.Stage{
		Width:     float64(cols * 16),
		TileSize:  16,
		Columns:   cols,
		Rows:      rows,
		GroundY:   448,
		Collision: collision,
		Obstacles: obstacles,
	}
}

func createTestFighter(id entity.ID, x float64) *entity.Combatant {
	c := entity.NewCombatant(id, entity.RoleFighter, x, 401, 100)
	c.Box = entity.Rect{X: x, Y: 401, W: 47, H: 47}
	return &c
}

func createTestOpponent(id entity.ID, x float64) entity.Combatant {
	c := entity.NewCombatant(id, entity.RoleOpponent, x, 401, 50)
	c.Box = entity.Rect{X: x, Y: 401, W: 47, H: 47}
	return c
}

// recordingAudio captures emitted cues
type recordingAudio struct {
	cues []Cue
}

func (r *recordingAudio) Play(cue Cue) {
	r.cues = append(r.cues, cue)
}

func (r *recordingAudio) count(cue Cue) int {
	n := 0
	for _, c := range r.cues {
		if c == cue {
			n++
		}
	}
	return n
}
