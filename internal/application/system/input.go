package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// KeyReader reports keyboard state for the current frame
type KeyReader interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsKeyJustReleased(key ebiten.Key) bool
}

// EbitenKeys reads the real keyboard through ebiten
type EbitenKeys struct{}

func (EbitenKeys) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }
func (EbitenKeys) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }
func (EbitenKeys) IsKeyJustReleased(key ebiten.Key) bool { return inpututil.IsKeyJustReleased(key) }

// KeyBindings maps one fighter's controls
type KeyBindings struct {
	Left, Right, Jump ebiten.Key
	Jab, Punch, Kick  ebiten.Key
	Grab              ebiten.Key
}

// DefaultBindings holds the two fighters' controls
var DefaultBindings = [2]KeyBindings{
	{
		Left: ebiten.KeyA, Right: ebiten.KeyD, Jump: ebiten.KeyW,
		Jab: ebiten.KeyJ, Punch: ebiten.KeyL, Kick: ebiten.KeyK,
		Grab: ebiten.KeyG,
	},
	{
		Left: ebiten.KeyArrowLeft, Right: ebiten.KeyArrowRight, Jump: ebiten.KeyArrowUp,
		Jab: ebiten.KeyZ, Punch: ebiten.KeyX, Kick: ebiten.KeyC,
		Grab: ebiten.KeyPeriod,
	},
}

// InputSystem turns key state into intents and applies intents to fighters
type InputSystem struct {
	config   *config.FighterConfig
	combat   *CombatSystem
	keys     KeyReader
	bindings [2]KeyBindings
}

// NewInputSystem creates a new input system. A nil reader means the real
// keyboard.
func NewInputSystem(cfg *config.FighterConfig, combat *CombatSystem, keys KeyReader) *InputSystem {
	if keys == nil {
		keys = EbitenKeys{}
	}
	return &InputSystem{
		config:   cfg,
		combat:   combat,
		keys:     keys,
		bindings: DefaultBindings,
	}
}

// Intent reads the intent of fighter slot player (0 or 1) for this frame
func (s *InputSystem) Intent(player int) Intent {
	if player < 0 || player >= len(s.bindings) {
		return Intent{}
	}
	b := s.bindings[player]

	var in Intent
	if s.keys.IsKeyPressed(b.Left) {
		in.Move--
	}
	if s.keys.IsKeyPressed(b.Right) {
		in.Move++
	}
	in.Jump = s.keys.IsKeyJustPressed(b.Jump)

	// one attack per frame, jab first
	switch {
	case s.keys.IsKeyJustPressed(b.Jab):
		in.Attack = entity.AttackJab
	case s.keys.IsKeyJustPressed(b.Punch):
		in.Attack = entity.AttackPunch
	case s.keys.IsKeyJustPressed(b.Kick):
		in.Attack = entity.AttackKick
	}

	in.GrabPressed = s.keys.IsKeyJustPressed(b.Grab)
	in.GrabReleased = s.keys.IsKeyJustReleased(b.Grab)
	return in
}

// Apply mutates a fighter from its intent. Stunned, hurt, attacking and
// dying fighters ignore their input.
func (s *InputSystem) Apply(f *entity.Combatant, in Intent, fighters, opponents *entity.Pool, dt float64) {
	if f == nil || !f.IsAlive() {
		return
	}

	moving := false
	if s.combat.InControl(f) {
		grabbing := f.Grab.Held()

		if in.Jump && f.Grounded && !grabbing {
			f.Vel.Y = s.config.JumpVelocity
			f.Grounded = false
			f.SetState(entity.StateJump)
			f.ForceAnimation(entity.AnimJump)
		}

		if dir := in.Direction(); dir != 0 {
			f.Vel.X = dir * s.config.Speed
			f.Face(dir)
			moving = true
			if f.State != entity.StateJump && !grabbing {
				f.SetState(entity.StateMove)
				f.SetAnimation(entity.AnimWalk)
			}
		} else if f.State == entity.StateMove && f.Grounded {
			f.Vel.X = 0
			f.SetState(entity.StateIdle)
		}

		if p, ok := entity.FighterProfile(in.Attack); ok && !grabbing {
			if f.Grounded {
				s.combat.StartAttack(f, p)
			} else {
				s.combat.StartAirAttack(f, p)
			}
		}

		switch {
		case in.GrabPressed && !grabbing:
			s.combat.TryGrab(f, opponents, fighters)
		case in.GrabReleased && grabbing:
			s.combat.ReleaseGrab(f, opponents)
		}
	}

	s.settle(f, moving, dt)
}

// settle drops a grounded fighter back to the idle animation after a short
// delay without movement
func (s *InputSystem) settle(f *entity.Combatant, moving bool, dt float64) {
	if moving {
		f.IdleTimer = 0
		return
	}
	if f.Attack.Active || !f.Grounded || f.StunTimer > 0 {
		return
	}
	switch f.State {
	case entity.StateJump, entity.StateAttack, entity.StateDead, entity.StateGrabbing:
		return
	}

	f.IdleTimer += dt
	if f.IdleTimer > s.config.IdleDelay {
		f.SetState(entity.StateIdle)
		f.SetAnimation(entity.AnimIdle)
		f.IdleTimer = 0
	}
}
