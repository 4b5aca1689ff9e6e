package system

import (
	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// FrameTable supplies the total frame count of each animation. It stands in
// for the sprite metadata owned by the asset store.
type FrameTable interface {
	FrameCount(role entity.Role, anim entity.AnimationID) int
}

// StaticFrameTable is a FrameTable backed by fixed per-role maps
type StaticFrameTable map[entity.Role]map[entity.AnimationID]int

// FrameCount implements FrameTable. Unknown animations report zero frames.
func (t StaticFrameTable) FrameCount(role entity.Role, anim entity.AnimationID) int {
	return t[role][anim]
}

// DefaultFrameTable returns the frame counts of the bundled sprite sheets.
// Opponents have no kick or jump sheets and reuse punch and walk.
func DefaultFrameTable() StaticFrameTable {
	return StaticFrameTable{
		entity.RoleFighter: {
			entity.AnimIdle:     4,
			entity.AnimWalk:     10,
			entity.AnimJump:     4,
			entity.AnimJab:      3,
			entity.AnimPunch:    3,
			entity.AnimKick:     5,
			entity.AnimJumpKick: 3,
			entity.AnimDiveKick: 5,
			entity.AnimHurt:     2,
		},
		entity.RoleOpponent: {
			entity.AnimIdle:  4,
			entity.AnimWalk:  4,
			entity.AnimJump:  4,
			entity.AnimPunch: 3,
			entity.AnimKick:  3,
			entity.AnimHurt:  4,
		},
	}
}

// AnimationSystem advances per-combatant frame state. It knows nothing about
// which state selected the animation.
type AnimationSystem struct {
	config *config.AnimationConfig
	frames FrameTable
}

// NewAnimationSystem creates an animation driver over a frame table
func NewAnimationSystem(cfg *config.AnimationConfig, frames FrameTable) *AnimationSystem {
	if frames == nil {
		frames = DefaultFrameTable()
	}
	return &AnimationSystem{config: cfg, frames: frames}
}

// Sync resets frame state when the active animation differs from the one
// seen last tick
func (s *AnimationSystem) Sync(c *entity.Combatant) {
	a := &c.Anim
	if a.ID == a.Prev {
		return
	}
	a.Prev = a.ID
	a.Frame = 0
	a.Timer = 0
	a.TotalFrames = s.frames.FrameCount(c.Role, a.ID)
	if a.TotalFrames < 1 {
		a.TotalFrames = 1
	}
}

// Advance accumulates dt at the animation's cadence scaled by rate and steps
// frames, stopping on the last one
func (s *AnimationSystem) Advance(c *entity.Combatant, dt, rate float64) {
	a := &c.Anim
	if a.TotalFrames <= 1 {
		a.Frame = 0
		return
	}

	fps := s.config.LongRate
	if a.TotalFrames <= s.config.ShortFrames {
		fps = s.config.ShortRate
	}

	a.Timer += dt * fps * rate
	for a.Timer >= 1 {
		a.Timer--
		if a.Frame < a.TotalFrames-1 {
			a.Frame++
		}
	}
	if a.Frame >= a.TotalFrames {
		a.Frame = a.TotalFrames - 1
	}
}

// Update syncs and advances a combatant's animation. Opponent swings play
// back slower than fighter swings.
func (s *AnimationSystem) Update(c *entity.Combatant, dt float64) {
	if c == nil {
		return
	}
	s.Sync(c)

	rate := 1.0
	if c.Role == entity.RoleOpponent && c.Attack.Active {
		rate = s.config.OpponentAttackDamping
	}
	s.Advance(c, dt, rate)
}
