package system

import (
	"math"
	"math/rand"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// AISystem runs the opponent decision state machine
type AISystem struct {
	config *config.OpponentConfig
	combat *CombatSystem
	rng    *rand.Rand
}

// NewAISystem creates the opponent AI. rng drives evade rolls and the
// punch/kick choice.
func NewAISystem(cfg *config.OpponentConfig, combat *CombatSystem, rng *rand.Rand) *AISystem {
	return &AISystem{
		config: cfg,
		combat: combat,
		rng:    rng,
	}
}

// tuning is the per-opponent view of the AI distances and speeds
type tuning struct {
	sight    float64
	reach    float64
	chase    float64
	position float64
	retreat  float64
}

func (s *AISystem) tuningFor(e *entity.Combatant) tuning {
	t := tuning{
		sight:    s.config.SightRadius,
		reach:    s.config.AttackRange,
		chase:    s.config.ChaseSpeed,
		position: s.config.PositionSpeed,
		retreat:  s.config.RetreatSpeed,
	}
	if e.IsBoss(s.config.MaxHealth) {
		b := s.config.Boss
		t.sight *= b.Sight
		t.reach *= b.Range
		t.chase *= b.Chase
		t.position *= b.Position
		t.retreat *= b.Retreat
	}
	return t
}

// SpeedLimit returns the horizontal speed cap friction applies for the
// opponent's current AI state
func (s *AISystem) SpeedLimit(e *entity.Combatant) float64 {
	t := s.tuningFor(e)
	switch e.AI.State {
	case entity.AIChase:
		return t.chase
	case entity.AIPosition:
		return t.position
	case entity.AIRetreat, entity.AIEvade:
		return t.retreat
	default:
		return 0
	}
}

// Target returns the nearest living fighter within sight on the horizontal
// axis and its distance
func (s *AISystem) Target(e *entity.Combatant, fighters *entity.Pool) (*entity.Combatant, float64) {
	sight := s.tuningFor(e).sight
	var best *entity.Combatant
	bestDist := 0.0
	for i := 0; i < fighters.Len(); i++ {
		f := fighters.At(i)
		if !f.IsAlive() {
			continue
		}
		d := math.Abs(f.Pos.X - e.Pos.X)
		if d <= sight && (best == nil || d < bestDist) {
			best, bestDist = f, d
		}
	}
	return best, bestDist
}

// Update re-evaluates one opponent. Callers skip opponents that are dying,
// stunned or held.
func (s *AISystem) Update(e *entity.Combatant, fighters *entity.Pool, dt float64) {
	if e == nil || !e.IsAlive() {
		return
	}
	t := s.tuningFor(e)

	target, dist := s.Target(e, fighters)
	if target == nil {
		e.AI.State = entity.AIIdle
		e.Vel.X = 0
		e.SetState(entity.StateIdle)
		e.SetAnimation(entity.AnimIdle)
		return
	}

	// a recent hit interrupts whatever state the opponent was in
	if e.AI.WasHurt && e.AI.State != entity.AIRetreat {
		e.AI.State = entity.AIRetreat
		e.AI.Timer = s.config.RetreatTime
		e.ClearAttack()
	} else if e.AI.Timer > 0 {
		e.AI.Timer -= dt
	}

	dir := 1.0
	if target.Pos.X < e.Pos.X {
		dir = -1.0
	}
	if e.AI.State != entity.AIAttack {
		e.Vel.X = 0
	}

	switch e.AI.State {
	case entity.AIIdle:
		e.SetState(entity.StateIdle)
		e.SetAnimation(entity.AnimIdle)
		if dist <= t.sight {
			e.AI.State = entity.AIChase
		}

	case entity.AIChase:
		e.Face(dir)
		if dist <= t.reach {
			if s.canAttack(e, target) && s.attack(e) {
				e.AI.State = entity.AIAttack
			} else {
				e.AI.State = entity.AIPosition
			}
			break
		}

		speed := t.chase
		if dist <= t.reach+s.config.SlowdownMargin {
			speed = t.position
		}
		s.walk(e, dir*speed)

		if target.Attack.Active && dist <= t.reach*1.5 && s.roll(s.config.EvadeChance) {
			e.AI.State = entity.AIEvade
			e.AI.Timer = s.config.ChaseEvadeTime
		}

	case entity.AIPosition:
		e.Face(dir)
		band := s.config.PositionBand
		if dist <= t.reach+band && s.canAttack(e, target) && s.attack(e) {
			e.AI.State = entity.AIAttack
			break
		}

		switch {
		case dist > t.reach+s.config.SlowdownMargin:
			e.AI.State = entity.AIChase
		case dist < t.reach-band:
			s.walk(e, -dir*t.position)
		case dist > t.reach+band:
			s.walk(e, dir*t.position)
		default:
			e.SetState(entity.StateIdle)
			e.SetAnimation(entity.AnimIdle)
		}

		if target.Attack.Active && dist <= t.reach*1.2 && e.AI.Timer <= 0 && s.roll(s.config.EvadeChance) {
			e.AI.State = entity.AIEvade
			e.AI.Timer = s.config.PositionEvadeTime
		}

	case entity.AIAttack:
		e.Vel.X = 0
		if !e.Attack.Active {
			e.AI.State = entity.AIChase
		}

	case entity.AIRetreat:
		e.Face(-dir)
		s.walk(e, -dir*t.retreat)
		if e.AI.Timer <= 0 {
			e.AI.WasHurt = false
			e.AI.State = entity.AIChase
		}

	case entity.AIEvade:
		e.Face(-dir)
		s.walk(e, -dir*t.retreat)
		if e.AI.Timer <= 0 {
			e.AI.State = entity.AIChase
		}
	}
}

func (s *AISystem) canAttack(e, target *entity.Combatant) bool {
	return e.Attack.Cooldown <= 0 && !target.Attack.Active
}

// attack starts a punch or, less often, a kick
func (s *AISystem) attack(e *entity.Combatant) bool {
	profile := entity.OpponentPunch
	if s.roll(s.config.KickChance) {
		profile = entity.OpponentKick
	}
	return s.combat.StartAttack(e, profile)
}

func (s *AISystem) walk(e *entity.Combatant, vx float64) {
	e.Vel.X = vx
	e.SetState(entity.StateMove)
	e.SetAnimation(entity.AnimWalk)
}

func (s *AISystem) roll(chance float64) bool {
	return s.rng.Float64() < chance
}
