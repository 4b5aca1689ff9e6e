package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawler/internal/domain/entity"
)

func newTestPhysics(stage *entity.Stage) *PhysicsSystem {
	cfg := createTestConfig()
	return NewPhysicsSystem(&cfg.Physics, stage)
}

func TestPhysicsSystem_FallLandsOnGround(t *testing.T) {
	sys := newTestPhysics(createTestStage())
	c := createTestFighter(1, 100)
	c.Pos.Y = 300
	c.Grounded = false

	for i := 0; i < 120 && !c.Grounded; i++ {
		sys.Update(c, testDT)
	}

	require.True(t, c.Grounded)
	assert.InDelta(t, 401.0, c.Pos.Y, 1e-9, "feet flush with the ground row")
	assert.Equal(t, 0.0, c.Vel.Y)
	assert.Equal(t, c.Pos.Y, c.Box.Y)
}

func TestPhysicsSystem_StandingStaysGrounded(t *testing.T) {
	sys := newTestPhysics(createTestStage())
	c := createTestFighter(1, 100)

	for i := 0; i < 60; i++ {
		sys.Update(c, testDT)
		require.True(t, c.Grounded, "tick %d lost ground contact", i)
		require.Equal(t, 401.0, c.Pos.Y)
		require.Equal(t, 0.0, c.Vel.Y)
	}
}

func TestPhysicsSystem_JumpAndLand(t *testing.T) {
	sys := newTestPhysics(createTestStage())
	c := createTestFighter(1, 100)
	c.Vel.Y = -400
	c.Grounded = false

	sys.Update(c, testDT)
	assert.Less(t, c.Pos.Y, 401.0)
	assert.False(t, c.Grounded)

	for i := 0; i < 120 && !c.Grounded; i++ {
		sys.Update(c, testDT)
	}
	assert.True(t, c.Grounded)
	assert.InDelta(t, 401.0, c.Pos.Y, 1e-9)
}

func TestPhysicsSystem_HorizontalObstacleSnap(t *testing.T) {
	obstacle := entity.Rect{X: 200, Y: 400, W: 48, H: 48}

	tests := []struct {
		name  string
		x, vx float64
		wantX float64
	}{
		{"moving right stops at left face", 150, 280, 153},
		{"moving left stops at right face", 252, -280, 248},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestPhysics(createTestStage(obstacle))
			c := createTestFighter(1, tt.x)
			c.Vel.X = tt.vx

			sys.Update(c, testDT)

			assert.Equal(t, tt.wantX, c.Pos.X)
			assert.Equal(t, 0.0, c.Vel.X, "velocity zeroed on the blocked axis")
			assert.False(t, c.Box.Overlaps(obstacle))
		})
	}
}

func TestPhysicsSystem_SnapsToFirstOverlap(t *testing.T) {
	crate := entity.Rect{X: 200, Y: 400, W: 48, H: 48}
	post := entity.Rect{X: 196, Y: 400, W: 10, H: 48}
	sys := newTestPhysics(createTestStage(crate, post))
	c := createTestFighter(1, 150)
	c.Vel.X = 280

	sys.Update(c, testDT)

	assert.Equal(t, 153.0, c.Pos.X, "snaps to the crate, listed first")
	assert.Equal(t, 0.0, c.Vel.X)
}

func TestPhysicsSystem_StandOnObstacle(t *testing.T) {
	obstacle := entity.Rect{X: 200, Y: 400, W: 48, H: 48}
	sys := newTestPhysics(createTestStage(obstacle))
	c := createTestFighter(1, 200)
	c.Pos.Y = 300
	c.Grounded = false

	for i := 0; i < 120 && !c.Grounded; i++ {
		sys.Update(c, testDT)
	}

	assert.True(t, c.Grounded)
	assert.InDelta(t, 353.0, c.Pos.Y, 1e-9)

	sys.Update(c, testDT)
	assert.True(t, c.Grounded, "resting on the obstacle keeps grounded")
}

func TestPhysicsSystem_CeilingSnap(t *testing.T) {
	stage := createTestStage()
	for col := 9; col <= 13; col++ {
		stage.Collision[22*stage.Columns+col] = 1
	}
	sys := newTestPhysics(stage)
	c := createTestFighter(1, 160)
	c.Pos.Y = 380
	c.Vel.Y = -400
	c.Grounded = false

	for i := 0; i < 10; i++ {
		sys.Update(c, testDT)
		if c.Vel.Y == 0 {
			break
		}
	}

	assert.Equal(t, 368.0, c.Pos.Y, "head flush with the tile bottom")
	assert.Equal(t, 0.0, c.Vel.Y)
	assert.False(t, c.Grounded)
}

func TestPhysicsSystem_NoGridStillClamps(t *testing.T) {
	tests := []struct {
		name  string
		stage *entity.Stage
	}{
		{"nil stage", nil},
		{"zero-sized grid", &entity.Stage{Width: 640, TileSize: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestPhysics(tt.stage)
			c := createTestFighter(1, 100)
			c.Pos.Y = 380
			c.Grounded = false

			assert.NotPanics(t, func() {
				for i := 0; i < 60; i++ {
					sys.Update(c, testDT)
				}
			})
			assert.True(t, c.Grounded)
			assert.Equal(t, 401.0, c.Pos.Y, "ground plane clamp acts as the floor")
		})
	}
}

func TestPhysicsSystem_WorldBounds(t *testing.T) {
	sys := newTestPhysics(createTestStage())

	left := createTestFighter(1, 2)
	left.Vel.X = -280
	sys.Update(left, testDT)
	assert.Equal(t, 0.0, left.Pos.X)

	right := createTestFighter(2, 590)
	right.Vel.X = 280
	sys.Update(right, testDT)
	assert.Equal(t, 640.0-47, right.Pos.X)
}

func TestPhysicsSystem_ScaledBox(t *testing.T) {
	sys := newTestPhysics(createTestStage())
	c := createTestFighter(1, 300)
	c.Scale = 1.5

	box := sys.BodyBox(c)
	assert.InDelta(t, 70.5, box.W, 1e-9)
	assert.InDelta(t, 70.5, box.H, 1e-9)
	assert.InDelta(t, c.Pos.X+47.0/2, box.X+box.W/2, 1e-9, "scaled box stays centered on the footprint")

	c.Pos.Y = 300
	c.Grounded = false
	for i := 0; i < 120 && !c.Grounded; i++ {
		sys.Update(c, testDT)
	}
	assert.InDelta(t, 448.0, c.Box.Bottom(), 1e-9)
}

func TestPhysicsSystem_ApplyFriction(t *testing.T) {
	sys := newTestPhysics(createTestStage())

	tests := []struct {
		name     string
		vx       float64
		grounded bool
		limit    float64
		want     float64
	}{
		{"capped then damped", 300, true, 200, 180},
		{"damped", 100, true, 200, 90},
		{"settles to zero", 4, true, 200, 0},
		{"default cap", 400, true, 0, 252},
		{"airborne untouched", 300, false, 200, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := createTestFighter(1, 100)
			c.Vel.X = tt.vx
			c.Grounded = tt.grounded

			sys.ApplyFriction(c, tt.limit)
			assert.InDelta(t, tt.want, c.Vel.X, 1e-9)
		})
	}
}

func TestPhysicsSystem_NilCombatant(t *testing.T) {
	sys := newTestPhysics(createTestStage())
	assert.NotPanics(t, func() {
		sys.Update(nil, testDT)
		sys.ApplyFriction(nil, 100)
	})
}
