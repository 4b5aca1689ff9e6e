// Package session owns one run of the simulation: the combatant arenas, the
// active stage and the ordered tick pipeline that advances them.
package session

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/younwookim/brawler/internal/application/system"
	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// MaxFighters is the number of controllable fighter slots
const MaxFighters = 2

// Options configures a new Session. Only Config is required.
type Options struct {
	Config *config.GameConfig
	Logger *zap.Logger
	Rand   *rand.Rand
	Audio  system.AudioSink
	Frames system.FrameTable
	Keys   system.KeyReader
}

// Session is the explicit simulation context
type Session struct {
	config *config.GameConfig
	logger *zap.Logger
	rng    *rand.Rand

	Fighters  *entity.Pool
	Opponents *entity.Pool
	stage     *entity.Stage

	physics   *system.PhysicsSystem
	animation *system.AnimationSystem
	combat    *system.CombatSystem
	ai        *system.AISystem
	input     *system.InputSystem
	spawner   *system.SpawnDirector

	nextID entity.ID
	idle   float64 // seconds since fighter 2 last gave input
	ticks  uint64
}

// New creates a session with fighter 1 placed on stage 0
func New(opts Options) (*Session, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("session: %w: nil config", config.ErrInvalidConfig)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	cfg := opts.Config

	s := &Session{
		config:    cfg,
		logger:    logger,
		rng:       rng,
		Fighters:  entity.NewPool(MaxFighters),
		Opponents: entity.NewPool(cfg.Spawn.MaxOpponents),
	}
	s.combat = system.NewCombatSystem(cfg, opts.Audio)
	s.physics = system.NewPhysicsSystem(&cfg.Physics, nil)
	s.animation = system.NewAnimationSystem(&cfg.Animation, opts.Frames)
	s.ai = system.NewAISystem(&cfg.Opponent, s.combat, rng)
	s.input = system.NewInputSystem(&cfg.Fighter, s.combat, opts.Keys)
	s.spawner = system.NewSpawnDirector(cfg, rng, s.newID, logger.Named("spawn"))

	s.Fighters.Add(s.newFighter(0))
	if err := s.LoadStage(0); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) newID() entity.ID {
	s.nextID++
	return s.nextID
}

func (s *Session) spawnPoint(slot int) (float64, float64) {
	x := 100.0
	if xs := s.config.Fighter.SpawnX; slot < len(xs) {
		x = xs[slot]
	}
	return x, s.config.Physics.GroundY - s.config.Physics.BodyHeight
}

func (s *Session) newFighter(slot int) entity.Combatant {
	x, y := s.spawnPoint(slot)
	f := entity.NewCombatant(s.newID(), entity.RoleFighter, x, y, s.config.Fighter.MaxHealth)
	f.Box = system.BodyBox(&s.config.Physics, &f)
	return f
}

// LoadStage builds and activates stage index. On failure the current stage,
// arenas and spawn state are left untouched.
func (s *Session) LoadStage(index int) error {
	stage, err := system.LoadStage(index, s.config)
	if err != nil {
		s.logger.Warn("stage load failed", zap.Int("stage", index), zap.Error(err))
		return fmt.Errorf("load stage %d: %w", index, err)
	}

	s.stage = stage
	s.physics.SetStage(stage)
	s.Opponents.Reset()
	s.resetFighters()

	def, _ := entity.StageDefinitionAt(stage.Index)
	s.spawner.Begin(stage.Index, def, stage.Width, s.Opponents)

	s.logger.Info("stage loaded",
		zap.Int("stage", stage.Index),
		zap.String("name", def.Name),
		zap.Int("quota", def.Quota),
		zap.Bool("boss", def.HasBoss()),
	)
	return nil
}

// resetFighters puts every fighter back at its spawn point. Health carries
// over; downed fighters stay down.
func (s *Session) resetFighters() {
	for i := 0; i < s.Fighters.Len(); i++ {
		f := s.Fighters.At(i)
		fresh := s.newFighter(i)
		fresh.ID = f.ID
		if !f.IsAlive() {
			fresh.Health = 0
			fresh.State = entity.StateDead
		} else {
			fresh.Health = f.Health
		}
		*f = fresh
	}
}

// Step advances the simulation by one fixed substep. intents are indexed by
// fighter slot.
func (s *Session) Step(dt float64, intents [MaxFighters]system.Intent) {
	s.ticks++
	s.updatePresence(dt, intents[1])

	for i := 0; i < s.Fighters.Len(); i++ {
		s.tickTimers(s.Fighters.At(i), dt)
	}
	for i := 0; i < s.Opponents.Len(); i++ {
		s.tickTimers(s.Opponents.At(i), dt)
	}

	for i := 0; i < s.Fighters.Len(); i++ {
		s.input.Apply(s.Fighters.At(i), intents[i], s.Fighters, s.Opponents, dt)
	}

	s.resolveCombat()
	s.integrate(dt)

	for i := 0; i < s.Fighters.Len(); i++ {
		f := s.Fighters.At(i)
		s.animation.Update(f, dt)
		s.combat.UpdateAttack(f, dt)
	}
	for i := 0; i < s.Opponents.Len(); i++ {
		o := s.Opponents.At(i)
		s.animation.Update(o, dt)
		s.combat.UpdateAttack(o, dt)
	}

	for i := 0; i < s.Opponents.Len(); i++ {
		o := s.Opponents.At(i)
		if !o.IsAlive() || o.StunTimer > 0 || s.held(i) {
			continue
		}
		s.ai.Update(o, s.Fighters, dt)
	}

	s.reap()
	s.spawner.Update(dt, s.LeadX(), s.Opponents)
}

// tickTimers counts down state, stun, cooldown and death timers. Death
// takes precedence over stun.
func (s *Session) tickTimers(c *entity.Combatant, dt float64) {
	c.StateTimer += dt
	s.combat.TickCooldown(c, dt)

	if c.Health <= 0 {
		c.BeginDeath(s.config.Combat.DeathTime)
		if c.DeathTimer > 0 {
			c.DeathTimer -= dt
			if c.DeathTimer < 0 {
				c.DeathTimer = 0
			}
		}
		c.Vel = entity.Vec2{}
		c.SetAnimation(entity.AnimHurt)
		s.settle(c)
		return
	}

	if c.StunTimer > 0 {
		c.StunTimer -= dt
		if c.StunTimer <= 0 {
			c.StunTimer = 0
			if c.State == entity.StateHurt {
				s.recover(c)
			}
		}
	}
}

// settle drops a dying combatant onto the ground plane
func (s *Session) settle(c *entity.Combatant) {
	box := system.BodyBox(&s.config.Physics, c)
	c.Pos.Y += s.stage.GroundY - box.Bottom()
	c.Box = system.BodyBox(&s.config.Physics, c)
	c.Grounded = true
}

func (s *Session) recover(c *entity.Combatant) {
	if c.Grounded {
		c.SetState(entity.StateIdle)
		c.ForceAnimation(entity.AnimIdle)
	} else {
		c.SetState(entity.StateJump)
		c.ForceAnimation(entity.AnimJump)
	}
}

// resolveCombat runs hit checks for every attacker and pins held opponents
func (s *Session) resolveCombat() {
	for i := 0; i < s.Fighters.Len(); i++ {
		f := s.Fighters.At(i)
		s.combat.ResolveHit(f, s.Opponents)
		s.combat.HoldGrab(f, s.Opponents)
	}
	for i := 0; i < s.Opponents.Len(); i++ {
		o := s.Opponents.At(i)
		if s.held(i) {
			continue
		}
		s.combat.ResolveHit(o, s.Fighters)
	}
}

// integrate applies friction and physics to every combatant that is not
// in its death countdown
func (s *Session) integrate(dt float64) {
	fc := s.config.Fighter
	for i := 0; i < s.Fighters.Len(); i++ {
		f := s.Fighters.At(i)
		if !f.IsAlive() {
			continue
		}
		wasGrounded := f.Grounded
		s.physics.ApplyFriction(f, fc.Speed)
		s.physics.Update(f, dt)

		if !wasGrounded && f.Grounded && !f.Attack.Active && f.StunTimer <= 0 {
			switch f.State {
			case entity.StateDead, entity.StateGrabbing:
			default:
				f.SetState(entity.StateIdle)
				f.ForceAnimation(entity.AnimIdle)
			}
		}
	}

	for i := 0; i < s.Opponents.Len(); i++ {
		o := s.Opponents.At(i)
		if !o.IsAlive() {
			continue
		}
		switch {
		case o.Anim.ID == entity.AnimWalk:
			s.physics.ApplyFriction(o, s.ai.SpeedLimit(o))
		case o.Vel.X != 0:
			s.physics.ApplyFriction(o, s.config.Opponent.RetreatSpeed)
		}
		s.physics.Update(o, dt)
	}
}

// held reports whether any fighter holds the opponent at index
func (s *Session) held(index int) bool {
	return system.HolderOf(s.Fighters, s.Opponents, index) != nil
}

// reap removes opponents whose death countdown finished, then rebinds grab
// references to opponents the swap-remove moved
func (s *Session) reap() {
	removed := false
	for i := 0; i < s.Opponents.Len(); {
		o := s.Opponents.At(i)
		if o.Health <= 0 && o.DeathTimer <= 0 && o.State == entity.StateDead {
			s.Opponents.Remove(i)
			removed = true
			continue
		}
		i++
	}
	if !removed {
		return
	}

	for i := 0; i < s.Fighters.Len(); i++ {
		f := s.Fighters.At(i)
		if !f.Grab.Held() || s.Opponents.Resolve(f.Grab) != nil {
			continue
		}
		for j := 0; j < s.Opponents.Len(); j++ {
			if s.Opponents.At(j).ID == f.Grab.ID {
				f.Grab.Index = j
				break
			}
		}
	}
}

// updatePresence joins fighter 2 on its first input and drops it after the
// inactivity timeout. Fighter 1 never drops.
func (s *Session) updatePresence(dt float64, in system.Intent) {
	if in.Active() {
		s.idle = 0
		if s.Fighters.Len() < MaxFighters {
			s.join()
		}
		return
	}
	if s.Fighters.Len() < MaxFighters {
		return
	}

	s.idle += dt
	if s.idle > s.config.Fighter.InactivityTimeout {
		s.Fighters.Remove(1)
		s.idle = 0
		s.logger.Info("fighter dropped", zap.Int("slot", 2))
	}
}

func (s *Session) join() {
	f := s.newFighter(1)
	if lead := s.Fighters.At(0); lead != nil {
		f.Pos = entity.Vec2{X: lead.Pos.X + 50, Y: lead.Pos.Y}
		f.Box = system.BodyBox(&s.config.Physics, &f)
	}
	if s.Fighters.Add(f) >= 0 {
		s.logger.Info("fighter joined", zap.Int("slot", 2), zap.Float64("x", f.Pos.X))
	}
}

// LeadX is the largest x among living fighters, or fighter 1's x when all
// are down
func (s *Session) LeadX() float64 {
	lead, found := 0.0, false
	for i := 0; i < s.Fighters.Len(); i++ {
		f := s.Fighters.At(i)
		if f.IsAlive() && (!found || f.Pos.X > lead) {
			lead, found = f.Pos.X, true
		}
	}
	if !found {
		if f := s.Fighters.At(0); f != nil {
			return f.Pos.X
		}
	}
	return lead
}

// AllFightersDown reports whether every fighter is dead and done dying
func (s *Session) AllFightersDown() bool {
	for i := 0; i < s.Fighters.Len(); i++ {
		f := s.Fighters.At(i)
		if f.Health > 0 || f.DeathTimer > 0 {
			return false
		}
	}
	return true
}

// ReadyToAdvance reports whether the stage is cleared and the lead fighter
// has reached the stage end
func (s *Session) ReadyToAdvance() bool {
	return s.spawner.Cleared(s.Opponents) && s.LeadX() >= s.spawner.EndX()
}

// AdvanceStage loads the next stage. It reports won when the last stage was
// already cleared; err is set when the next stage failed to load.
func (s *Session) AdvanceStage() (won bool, err error) {
	next := s.stage.Index + 1
	if next >= len(entity.StageDefinitions) {
		s.logger.Info("final stage cleared", zap.Int("stage", s.stage.Index))
		return true, nil
	}
	return false, s.LoadStage(next)
}

// Restart resets fighters and returns to stage 0. Fighter 2 stays joined.
func (s *Session) Restart() error {
	n := s.Fighters.Len()
	s.Fighters.Reset()
	for i := 0; i < n; i++ {
		s.Fighters.Add(s.newFighter(i))
	}
	s.idle = 0
	return s.LoadStage(0)
}

// Intents reads this frame's intents for both fighter slots
func (s *Session) Intents() [MaxFighters]system.Intent {
	var in [MaxFighters]system.Intent
	for i := range in {
		in[i] = s.input.Intent(i)
	}
	return in
}

// Stage returns the active stage
func (s *Session) Stage() *entity.Stage { return s.stage }

// Spawner exposes stage progress counters
func (s *Session) Spawner() *system.SpawnDirector { return s.spawner }

// Ticks returns the number of substeps run
func (s *Session) Ticks() uint64 { return s.ticks }

// AttackBox returns a combatant's current hitbox, for debug drawing
func (s *Session) AttackBox(c *entity.Combatant) entity.Rect { return s.combat.AttackBox(c) }
