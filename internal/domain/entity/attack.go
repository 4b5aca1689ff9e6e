package entity

// AnimationID identifies a sprite sheet animation
type AnimationID int

const (
	AnimNone AnimationID = iota - 1
	AnimIdle
	AnimWalk
	AnimJump
	AnimJab
	AnimPunch
	AnimKick
	AnimJumpKick
	AnimDiveKick
	AnimHurt
)

func (a AnimationID) String() string {
	switch a {
	case AnimNone:
		return "None"
	case AnimIdle:
		return "Idle"
	case AnimWalk:
		return "Walk"
	case AnimJump:
		return "Jump"
	case AnimJab:
		return "Jab"
	case AnimPunch:
		return "Punch"
	case AnimKick:
		return "Kick"
	case AnimJumpKick:
		return "JumpKick"
	case AnimDiveKick:
		return "DiveKick"
	case AnimHurt:
		return "Hurt"
	default:
		return "Unknown"
	}
}

// IsAttack reports whether the animation belongs to a swing
func (a AnimationID) IsAttack() bool {
	return a >= AnimJab && a <= AnimDiveKick
}

// AttackKind is the attack button a fighter pressed
type AttackKind int

const (
	AttackNone AttackKind = iota
	AttackJab
	AttackPunch
	AttackKick
)

// AttackProfile is a static attack record
type AttackProfile struct {
	Anim        AnimationID
	Damage      int
	Cooldown    float64
	WindowStart int
	WindowEnd   int
}

// IsKick reports whether the profile plays a kick animation
func (p AttackProfile) IsKick() bool {
	return p.Anim == AnimKick || p.Anim == AnimJumpKick || p.Anim == AnimDiveKick
}

var (
	FighterJab   = AttackProfile{Anim: AnimJab, Damage: 15, Cooldown: 0.25, WindowStart: 1, WindowEnd: 1}
	FighterPunch = AttackProfile{Anim: AnimPunch, Damage: 18, Cooldown: 0.45, WindowStart: 1, WindowEnd: 2}
	FighterKick  = AttackProfile{Anim: AnimKick, Damage: 20, Cooldown: 0.6, WindowStart: 2, WindowEnd: 3}

	OpponentPunch = AttackProfile{Anim: AnimPunch, Damage: 10, Cooldown: 0.8, WindowStart: 1, WindowEnd: 1}
	OpponentKick  = AttackProfile{Anim: AnimKick, Damage: 20, Cooldown: 1.0, WindowStart: 2, WindowEnd: 3}
)

// FighterProfile returns the profile for a pressed attack kind
func FighterProfile(kind AttackKind) (AttackProfile, bool) {
	switch kind {
	case AttackJab:
		return FighterJab, true
	case AttackPunch:
		return FighterPunch, true
	case AttackKick:
		return FighterKick, true
	default:
		return AttackProfile{}, false
	}
}
