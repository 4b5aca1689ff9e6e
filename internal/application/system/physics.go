package system

import (
	"math"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// PhysicsSystem integrates velocity and resolves collisions against the
// stage's collision grid and static obstacles
type PhysicsSystem struct {
	config *config.PhysicsConfig
	stage  *entity.Stage
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig, stage *entity.Stage) *PhysicsSystem {
	return &PhysicsSystem{
		config: cfg,
		stage:  stage,
	}
}

// SetStage swaps the geometry collisions are resolved against
func (s *PhysicsSystem) SetStage(stage *entity.Stage) {
	s.stage = stage
}

// Update advances one combatant by dt seconds: gravity, horizontal pass,
// vertical pass, then the world clamp.
func (s *PhysicsSystem) Update(c *entity.Combatant, dt float64) {
	if c == nil {
		return
	}

	if !c.Grounded {
		c.Vel.Y += s.config.Gravity * dt
	}

	s.moveX(c, c.Vel.X*dt)
	s.moveY(c, c.Vel.Y*dt)
	s.clampToWorld(c)

	c.Box = s.BodyBox(c)
}

// ApplyFriction slows a grounded combatant. Horizontal speed is first capped
// at maxSpeed (MaxEntitySpeed when maxSpeed is not positive).
func (s *PhysicsSystem) ApplyFriction(c *entity.Combatant, maxSpeed float64) {
	if c == nil || !c.Grounded {
		return
	}
	if maxSpeed <= 0 {
		maxSpeed = s.config.MaxEntitySpeed
	}

	c.Vel.X = clamp(c.Vel.X, -maxSpeed, maxSpeed)
	c.Vel.X *= s.config.Friction
	if math.Abs(c.Vel.X) < s.config.MinVelocity {
		c.Vel.X = 0
	}
}

// BodyBox returns the collision box for a combatant
func (s *PhysicsSystem) BodyBox(c *entity.Combatant) entity.Rect {
	return BodyBox(s.config, c)
}

// BodyBox returns the collision box for a combatant. Scaled boxes are
// centered on the unscaled sprite footprint anchored at Pos.
func BodyBox(cfg *config.PhysicsConfig, c *entity.Combatant) entity.Rect {
	offX, offY, w, h := boxGeometry(cfg, c.Scale)
	return entity.Rect{X: c.Pos.X - offX, Y: c.Pos.Y - offY, W: w, H: h}
}

func boxGeometry(cfg *config.PhysicsConfig, scale float64) (offX, offY, w, h float64) {
	if scale <= 0 {
		scale = 1
	}
	w = cfg.BodyWidth * scale
	h = cfg.BodyHeight * scale
	offX = (w - cfg.BodyWidth) / 2
	offY = (h - cfg.BodyHeight) / 2
	return offX, offY, w, h
}

// moveX resolves horizontal motion, snapping flush to the first blocking
// surface found on the side of motion
func (s *PhysicsSystem) moveX(c *entity.Combatant, dx float64) {
	if dx == 0 {
		return
	}

	offX, _, _, _ := boxGeometry(s.config, c.Scale)
	box := s.BodyBox(c)
	box.X += dx

	collided := false
	s.eachOverlap(box, func(hit entity.Rect) bool {
		if dx > 0 {
			box.X = hit.X - box.W
		} else {
			box.X = hit.Right()
		}
		collided = true
		return false
	})

	if collided {
		c.Vel.X = 0
	}
	c.Pos.X = box.X + offX
}

// moveY resolves vertical motion. Downward contact, or resting flush on a
// surface, marks the combatant grounded.
func (s *PhysicsSystem) moveY(c *entity.Combatant, dy float64) {
	_, offY, _, _ := boxGeometry(s.config, c.Scale)
	box := s.BodyBox(c)
	c.Grounded = false

	if dy != 0 {
		box.Y += dy

		collided := false
		s.eachOverlap(box, func(hit entity.Rect) bool {
			if dy > 0 {
				box.Y = hit.Y - box.H
			} else {
				box.Y = hit.Bottom()
			}
			collided = true
			return false
		})

		if collided {
			if dy > 0 {
				c.Grounded = true
			}
			c.Vel.Y = 0
		}
	}

	if !c.Grounded && c.Vel.Y >= 0 && s.supported(box) {
		c.Grounded = true
		c.Vel.Y = 0
	}
	c.Pos.Y = box.Y + offY
}

// supported reports whether something sits directly under the box
func (s *PhysicsSystem) supported(box entity.Rect) bool {
	if box.Bottom() >= s.config.GroundY {
		return true
	}
	below := box
	below.Y++
	found := false
	s.eachOverlap(below, func(entity.Rect) bool {
		found = true
		return false
	})
	return found
}

// eachOverlap calls fn for every solid cell in the minimal tile range the box
// covers, then for every obstacle the box overlaps, until fn returns false.
// Cells are scanned row by row, left to right.
func (s *PhysicsSystem) eachOverlap(box entity.Rect, fn func(entity.Rect) bool) {
	stage := s.stage
	if stage == nil {
		return
	}

	if stage.HasTiles() {
		ts := float64(stage.TileSize)
		minCol := maxInt(0, int(math.Floor(box.X/ts)))
		maxCol := minInt(stage.Columns-1, int(math.Floor(box.Right()/ts)))
		minRow := maxInt(0, int(math.Floor(box.Y/ts)))
		maxRow := minInt(stage.Rows-1, int(math.Floor(box.Bottom()/ts)))

		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				if !stage.IsSolid(col, row) {
					continue
				}
				tile := stage.TileRect(col, row)
				if box.Overlaps(tile) && !fn(tile) {
					return
				}
			}
		}
	}

	for _, ob := range stage.Obstacles {
		if box.Overlaps(ob) && !fn(ob) {
			return
		}
	}
}

// clampToWorld keeps the box inside the stage horizontally and above the
// ground plane
func (s *PhysicsSystem) clampToWorld(c *entity.Combatant) {
	offX, offY, w, h := boxGeometry(s.config, c.Scale)
	box := entity.Rect{X: c.Pos.X - offX, Y: c.Pos.Y - offY, W: w, H: h}

	if s.stage != nil && s.stage.Width > 0 {
		box.X = clamp(box.X, 0, math.Max(0, s.stage.Width-w))
	}
	if box.Y < 0 {
		box.Y = 0
	}
	if box.Bottom() > s.config.GroundY {
		box.Y = s.config.GroundY - h
		if c.Vel.Y > 0 {
			c.Vel.Y = 0
		}
		c.Grounded = true
	}

	c.Pos.X = box.X + offX
	c.Pos.Y = box.Y + offY
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
