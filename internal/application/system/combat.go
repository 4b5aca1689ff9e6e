package system

import (
	"math"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// CombatSystem starts attacks, resolves hits, applies damage and runs the
// grab/throw mechanic
type CombatSystem struct {
	config *config.GameConfig
	audio  AudioSink
}

// NewCombatSystem creates a new combat system
func NewCombatSystem(cfg *config.GameConfig, audio AudioSink) *CombatSystem {
	if audio == nil {
		audio = NopAudio{}
	}
	return &CombatSystem{
		config: cfg,
		audio:  audio,
	}
}

// CanAttack reports whether a new swing may start
func (s *CombatSystem) CanAttack(c *entity.Combatant) bool {
	if !c.IsAlive() || c.Attack.Active || c.Attack.Cooldown > 0 {
		return false
	}
	switch c.State {
	case entity.StateHurt, entity.StateDead, entity.StateAttack:
		return false
	}
	return true
}

// StartAttack begins a grounded swing with the given profile
func (s *CombatSystem) StartAttack(c *entity.Combatant, p entity.AttackProfile) bool {
	if c == nil || !s.CanAttack(c) {
		return false
	}

	s.begin(c, p.Anim, p.Damage, p.Cooldown, p.WindowStart, p.WindowEnd)
	c.Vel.X = 0

	if p.IsKick() {
		s.audio.Play(CueKick)
	} else {
		s.audio.Play(CuePunch)
	}
	return true
}

// StartAirAttack begins a mid-air swing. It uses a fixed hit window, adds the
// air damage bonus and keeps part of the horizontal momentum.
func (s *CombatSystem) StartAirAttack(c *entity.Combatant, base entity.AttackProfile) bool {
	if c == nil || !s.CanAttack(c) {
		return false
	}

	anim := entity.AnimDiveKick
	if c.Vel.Y < 0 {
		anim = entity.AnimJumpKick
	}
	f := s.config.Fighter
	s.begin(c, anim, base.Damage+f.AirAttackBonus, f.AirAttackCooldown, 1, 2)
	c.Vel.X *= f.AirMomentum

	s.audio.Play(CueKick)
	return true
}

func (s *CombatSystem) begin(c *entity.Combatant, anim entity.AnimationID, damage int, cooldown float64, start, end int) {
	c.SetState(entity.StateAttack)
	c.Attack = entity.Attack{
		Active:      true,
		Damage:      damage,
		Cooldown:    cooldown,
		WindowStart: start,
		WindowEnd:   end,
	}
	c.IdleTimer = 0
	c.ForceAnimation(anim)
}

// TickCooldown counts the attack cooldown down
func (s *CombatSystem) TickCooldown(c *entity.Combatant, dt float64) {
	if c.Attack.Cooldown > 0 {
		c.Attack.Cooldown -= dt
		if c.Attack.Cooldown < 0 {
			c.Attack.Cooldown = 0
		}
	}
}

// HitWindowOpen reports whether the current frame lies inside the swing's hit
// window, clamped to the frames the active animation really has. A swing
// whose animation has not been synced yet is never open.
func (s *CombatSystem) HitWindowOpen(c *entity.Combatant) bool {
	if c.Anim.ID != c.Anim.Prev {
		return false
	}
	last := c.Anim.TotalFrames - 1
	if last < 0 {
		last = 0
	}
	end := clampInt(c.Attack.WindowEnd, 0, last)
	start := clampInt(c.Attack.WindowStart, 0, end)
	return c.Anim.Frame >= start && c.Anim.Frame <= end
}

// AttackBox derives the swing hitbox from the attacker's body box. It reaches
// forward on the facing side and overlaps part of the attacker's own box.
func (s *CombatSystem) AttackBox(c *entity.Combatant) entity.Rect {
	cc := s.config.Combat
	b := c.Box
	reach := cc.AttackReach
	overlap := b.W * cc.HitboxOverlap

	box := entity.Rect{
		W: b.W + reach,
		H: b.H * cc.HitboxHeightScale,
		Y: b.Y - b.H*(cc.HitboxHeightScale-1)/2,
	}
	if c.FacingRight {
		box.X = b.X + overlap
	} else {
		box.X = b.X - overlap - reach
	}
	return box
}

// ResolveHit tests an attacking combatant's hitbox against every living
// target. At most one target is damaged per swing; the index of the target
// hit is returned, or -1.
func (s *CombatSystem) ResolveHit(attacker *entity.Combatant, targets *entity.Pool) int {
	if attacker == nil || targets == nil {
		return -1
	}
	if !attacker.Attack.Active || attacker.Attack.HasHit || !s.HitWindowOpen(attacker) {
		return -1
	}

	box := s.AttackBox(attacker)
	for i := 0; i < targets.Len(); i++ {
		t := targets.At(i)
		if !t.IsAlive() || !box.Overlaps(t.Box) {
			continue
		}
		s.ApplyDamage(t, attacker, attacker.Attack.Damage)
		attacker.Attack.HasHit = true
		return i
	}
	return -1
}

// ApplyDamage hurts target on behalf of attacker
func (s *CombatSystem) ApplyDamage(target, attacker *entity.Combatant, damage int) {
	if target == nil || attacker == nil || !target.IsAlive() {
		return
	}
	cc := s.config.Combat

	target.Health = clampInt(target.Health-damage, 0, target.MaxHealth)
	target.ClearAttack()

	recovery := cc.RecoveryCooldown
	if attacker.Role == entity.RoleFighter {
		recovery = math.Max(entity.OpponentPunch.Cooldown, recovery)
	}
	target.Attack.Cooldown = math.Max(target.Attack.Cooldown, recovery)

	target.SetState(entity.StateHurt)
	target.ForceAnimation(entity.AnimHurt)
	target.IdleTimer = 0

	dir := -1.0
	if target.Pos.X > attacker.Pos.X {
		dir = 1.0
	}
	target.Vel.X = clamp(dir*cc.KnockbackForce, -cc.MaxKnockback, cc.MaxKnockback)

	if attacker.Role == entity.RoleFighter {
		target.StunTimer = s.config.Opponent.StunTime
	} else {
		target.StunTimer = s.config.Fighter.StunTime
	}
	if target.Role == entity.RoleOpponent {
		target.AI.State = entity.AIRetreat
		target.AI.Timer = s.config.Opponent.RetreatTime
		target.AI.WasHurt = true
	}

	// a hurt holder lets go without a throw
	if target.Grab.Held() {
		target.Grab = entity.NoGrab
	}

	if target.Health == 0 && target.BeginDeath(cc.DeathTime) {
		s.audio.Play(CueDeath)
	}
}

// UpdateAttack runs attack completion and reports whether the swing ended.
// Fighters end on the last animation frame; opponents also need the minimum
// attack time. Both end on the timeout.
func (s *CombatSystem) UpdateAttack(c *entity.Combatant, dt float64) bool {
	if c == nil || !c.Attack.Active {
		return false
	}
	c.Attack.Elapsed += dt

	done := c.Anim.ID.IsAttack() && c.Anim.Finished()
	if c.Role == entity.RoleOpponent {
		done = done && c.Attack.Elapsed >= s.config.Opponent.MinAttackTime
	}
	if !done && c.Attack.Elapsed < s.config.Combat.AttackTimeout {
		return false
	}

	c.ClearAttack()
	if c.Role == entity.RoleOpponent {
		c.AI.State = entity.AIChase
		c.SetState(entity.StateMove)
		c.SetAnimation(entity.AnimWalk)
		return true
	}

	if c.Grounded {
		c.SetState(entity.StateIdle)
		c.ForceAnimation(entity.AnimIdle)
	} else {
		c.SetState(entity.StateJump)
		c.ForceAnimation(entity.AnimJump)
	}
	return true
}

// InControl reports whether a fighter may act on its intents
func (s *CombatSystem) InControl(c *entity.Combatant) bool {
	if !c.IsAlive() || c.StunTimer > 0 {
		return false
	}
	switch c.State {
	case entity.StateAttack, entity.StateHurt, entity.StateDead:
		return false
	}
	return true
}

// HolderOf returns the fighter currently holding the opponent at index, if any
func HolderOf(fighters, opponents *entity.Pool, index int) *entity.Combatant {
	o := opponents.At(index)
	if o == nil || fighters == nil {
		return nil
	}
	for i := 0; i < fighters.Len(); i++ {
		f := fighters.At(i)
		if f.Grab.Index == index && f.Grab.ID == o.ID {
			return f
		}
	}
	return nil
}

// TryGrab lets a grounded fighter in control seize the nearest living
// opponent within the grab radius that nobody else holds
func (s *CombatSystem) TryGrab(holder *entity.Combatant, opponents, fighters *entity.Pool) bool {
	if holder == nil || opponents == nil || holder.Grab.Held() || !holder.Grounded {
		return false
	}
	if !s.InControl(holder) || holder.State == entity.StateGrabbing {
		return false
	}

	radius := s.config.Fighter.GrabRadius
	best, bestDist := -1, 0.0
	for i := 0; i < opponents.Len(); i++ {
		o := opponents.At(i)
		if !o.IsAlive() || HolderOf(fighters, opponents, i) != nil {
			continue
		}
		d := math.Hypot(o.Pos.X-holder.Pos.X, o.Pos.Y-holder.Pos.Y)
		if d <= radius && (best < 0 || d < bestDist) {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return false
	}

	o := opponents.At(best)
	holder.Grab = entity.GrabRef{Index: best, ID: o.ID}
	holder.SetState(entity.StateGrabbing)
	holder.ForceAnimation(entity.AnimPunch)
	holder.Vel.X = 0

	o.SetState(entity.StateHurt)
	o.Vel = entity.Vec2{}
	o.StunTimer = s.config.Fighter.GrabStun
	o.ClearAttack()
	o.AI.State = entity.AIIdle
	o.ForceAnimation(entity.AnimHurt)
	return true
}

// HoldGrab pins the held opponent in front of the holder. A stale or dead
// reference is cleared and the holder returns to Idle.
func (s *CombatSystem) HoldGrab(holder *entity.Combatant, opponents *entity.Pool) bool {
	if holder == nil || !holder.Grab.Held() {
		return false
	}
	o := opponents.Resolve(holder.Grab)
	if !o.IsAlive() {
		s.clearGrab(holder)
		return false
	}

	f := s.config.Fighter
	o.Pos.X = holder.Pos.X + holder.Facing()*f.GrabOffset
	o.Pos.Y = holder.Pos.Y
	o.Vel = entity.Vec2{}
	o.Grounded = holder.Grounded
	o.SetState(entity.StateHurt)
	o.ClearAttack()
	o.AI.State = entity.AIIdle

	holder.Vel.X *= f.GrabSlowdown
	return true
}

// ReleaseGrab throws the held opponent in the holder's facing direction.
// It reports whether a throw happened.
func (s *CombatSystem) ReleaseGrab(holder *entity.Combatant, opponents *entity.Pool) bool {
	if holder == nil || !holder.Grab.Held() {
		return false
	}

	thrown := false
	if o := opponents.Resolve(holder.Grab); o.IsAlive() {
		f := s.config.Fighter
		s.ApplyDamage(o, holder, f.ThrowDamage)
		if o.IsAlive() {
			o.Vel = entity.Vec2{X: holder.Facing() * f.ThrowVX, Y: f.ThrowVY}
			o.Grounded = false
			o.SetState(entity.StateMove)
			o.StunTimer = f.ThrowStun
		}
		thrown = true
	}

	s.clearGrab(holder)
	return thrown
}

func (s *CombatSystem) clearGrab(holder *entity.Combatant) {
	holder.Grab = entity.NoGrab
	if holder.State == entity.StateGrabbing {
		holder.SetState(entity.StateIdle)
		holder.ForceAnimation(entity.AnimIdle)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
