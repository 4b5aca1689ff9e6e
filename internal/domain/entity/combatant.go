package entity

// Role tags which system drives a combatant's intent
type Role int

const (
	// RoleFighter is driven by the input mediator
	RoleFighter Role = iota
	// RoleOpponent is driven by the AI state machine
	RoleOpponent
)

func (r Role) String() string {
	switch r {
	case RoleFighter:
		return "Fighter"
	case RoleOpponent:
		return "Opponent"
	default:
		return "Unknown"
	}
}

// State is the coarse combat state of a combatant
type State int

const (
	StateIdle State = iota
	StateMove
	StateJump
	StateAttack
	StateHurt
	StateDead
	StateGrabbing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateMove:
		return "Move"
	case StateJump:
		return "Jump"
	case StateAttack:
		return "Attack"
	case StateHurt:
		return "Hurt"
	case StateDead:
		return "Dead"
	case StateGrabbing:
		return "Grabbing"
	default:
		return "Unknown"
	}
}

// AIState is the decision state of an opponent
type AIState int

const (
	AIIdle AIState = iota
	AIChase
	AIAttack
	AIRetreat
	AIEvade
	AIPosition
)

func (s AIState) String() string {
	switch s {
	case AIIdle:
		return "Idle"
	case AIChase:
		return "Chase"
	case AIAttack:
		return "Attack"
	case AIRetreat:
		return "Retreat"
	case AIEvade:
		return "Evade"
	case AIPosition:
		return "Position"
	default:
		return "Unknown"
	}
}

// Attack describes the combatant's current swing
type Attack struct {
	Active      bool
	Damage      int
	Cooldown    float64 // seconds remaining before another attack may start
	Elapsed     float64
	HasHit      bool
	WindowStart int
	WindowEnd   int
}

// Animation is the per-combatant frame state advanced by the animation driver
type Animation struct {
	ID          AnimationID
	Prev        AnimationID
	Frame       int
	Timer       float64
	TotalFrames int
}

// Finished reports whether the animation sits on its last frame
func (a Animation) Finished() bool {
	return a.TotalFrames <= 1 || a.Frame >= a.TotalFrames-1
}

// Brain holds the fields only meaningful for opponents
type Brain struct {
	State   AIState
	Timer   float64
	WasHurt bool
}

// GrabRef is a weak reference from a holder to a grabbed opponent.
// Index is only trusted while the opponent at Index still carries ID.
type GrabRef struct {
	Index int
	ID    ID
}

// NoGrab is the empty grab reference
var NoGrab = GrabRef{Index: -1}

// Held reports whether the reference points at anything
func (g GrabRef) Held() bool { return g.Index >= 0 }

// Combatant is the shared record for fighters and opponents
type Combatant struct {
	ID   ID
	Role Role

	Pos         Vec2
	Vel         Vec2
	Grounded    bool
	FacingRight bool
	Scale       float64
	Box         Rect

	Health    int
	MaxHealth int

	State      State
	StateTimer float64
	StunTimer  float64
	DeathTimer float64
	IdleTimer  float64
	Attack     Attack
	Anim       Animation

	AI   Brain
	Grab GrabRef
}

// NewCombatant creates a grounded combatant at full health
func NewCombatant(id ID, role Role, x, y float64, maxHealth int) Combatant {
	return Combatant{
		ID:          id,
		Role:        role,
		Pos:         Vec2{X: x, Y: y},
		Grounded:    true,
		FacingRight: role == RoleFighter,
		Scale:       1,
		Health:      maxHealth,
		MaxHealth:   maxHealth,
		State:       StateIdle,
		Anim:        Animation{ID: AnimIdle, Prev: AnimNone},
		Grab:        NoGrab,
	}
}

// IsAlive reports whether the combatant still has health
func (c *Combatant) IsAlive() bool {
	return c != nil && c.Health > 0
}

// IsDying reports whether the death countdown is running
func (c *Combatant) IsDying() bool {
	return c.Health <= 0 && c.DeathTimer > 0
}

// IsBoss reports whether the combatant's maximum health exceeds the opponent baseline
func (c *Combatant) IsBoss(baseline int) bool {
	return c.Role == RoleOpponent && c.MaxHealth > baseline
}

// IsAttacking reports whether a swing is in progress
func (c *Combatant) IsAttacking() bool {
	return c.Attack.Active
}

// SetAnimation selects an animation; the driver resets frame state on change
func (c *Combatant) SetAnimation(id AnimationID) {
	c.Anim.ID = id
}

// ForceAnimation selects an animation and forces a frame reset even if it is
// already active
func (c *Combatant) ForceAnimation(id AnimationID) {
	c.Anim.ID = id
	c.Anim.Prev = AnimNone
	c.Anim.Frame = 0
	c.Anim.Timer = 0
}

// SetState switches state and restarts the state timer
func (c *Combatant) SetState(s State) {
	if c.State != s {
		c.StateTimer = 0
	}
	c.State = s
}

// ClearAttack cancels any swing in progress
func (c *Combatant) ClearAttack() {
	c.Attack.Active = false
	c.Attack.HasHit = false
	c.Attack.Elapsed = 0
}

// BeginDeath starts the death sequence. It returns false if the sequence
// already began or the combatant still has health.
func (c *Combatant) BeginDeath(duration float64) bool {
	if c.Health > 0 || c.DeathTimer != 0 || c.State == StateDead {
		return false
	}
	c.DeathTimer = duration
	c.SetState(StateDead)
	c.StunTimer = 0
	c.Vel.Y = 0
	c.Grounded = true
	c.ClearAttack()
	c.ForceAnimation(AnimHurt)
	return true
}

// Face turns the combatant toward a signed direction; zero keeps the current facing
func (c *Combatant) Face(dir float64) {
	if dir > 0 {
		c.FacingRight = true
	} else if dir < 0 {
		c.FacingRight = false
	}
}

// Facing returns +1 when facing right, -1 otherwise
func (c *Combatant) Facing() float64 {
	if c.FacingRight {
		return 1
	}
	return -1
}

// Center returns the center point of the body box
func (c *Combatant) Center() Vec2 {
	return Vec2{X: c.Box.X + c.Box.W/2, Y: c.Box.Y + c.Box.H/2}
}
