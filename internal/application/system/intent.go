package system

import "github.com/younwookim/brawler/internal/domain/entity"

// Intent is what one fighter wants to do this tick. The input mediator builds
// it from edges, so every pressed flag is true for a single tick only.
type Intent struct {
	Move         int // -1, 0 or +1
	Jump         bool
	Attack       entity.AttackKind
	GrabPressed  bool
	GrabReleased bool
}

// Active reports whether the intent carries any input at all
func (i Intent) Active() bool {
	return i.Move != 0 || i.Jump || i.Attack != entity.AttackNone || i.GrabPressed || i.GrabReleased
}

// Merge folds a later frame's intent into one still waiting for a tick.
// Move follows the later frame; edge flags stay set until consumed.
func (i Intent) Merge(next Intent) Intent {
	i.Move = next.Move
	i.Jump = i.Jump || next.Jump
	if next.Attack != entity.AttackNone {
		i.Attack = next.Attack
	}
	i.GrabPressed = i.GrabPressed || next.GrabPressed
	i.GrabReleased = i.GrabReleased || next.GrabReleased
	return i
}

// Direction returns Move clamped to -1, 0 or +1
func (i Intent) Direction() float64 {
	switch {
	case i.Move > 0:
		return 1
	case i.Move < 0:
		return -1
	default:
		return 0
	}
}
