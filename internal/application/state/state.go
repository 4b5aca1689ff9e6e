package state

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// GameState represents the current state of the game
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateWin
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateWin:
		return "Win"
	default:
		return "Unknown"
	}
}

// Event names a progression transition
type Event string

const (
	EventStart   Event = "start"
	EventPause   Event = "pause"
	EventResume  Event = "resume"
	EventLose    Event = "lose"
	EventWin     Event = "win"
	EventRestart Event = "restart"
	EventHalt    Event = "halt"
)

var states = map[string]GameState{
	StateMenu.String():     StateMenu,
	StatePlaying.String():  StatePlaying,
	StatePaused.String():   StatePaused,
	StateGameOver.String(): StateGameOver,
	StateWin.String():      StateWin,
}

// Machine tracks game progression. It is not safe for concurrent use.
type Machine struct {
	fsm    *fsm.FSM
	logger *zap.Logger
}

// NewMachine creates a machine in the Menu state
func NewMachine(logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Machine{logger: logger}

	playing := StatePlaying.String()
	m.fsm = fsm.NewFSM(
		StateMenu.String(),
		fsm.Events{
			{Name: string(EventStart), Src: []string{StateMenu.String()}, Dst: playing},
			{Name: string(EventPause), Src: []string{playing}, Dst: StatePaused.String()},
			{Name: string(EventResume), Src: []string{StatePaused.String()}, Dst: playing},
			{Name: string(EventLose), Src: []string{playing}, Dst: StateGameOver.String()},
			{Name: string(EventWin), Src: []string{playing}, Dst: StateWin.String()},
			{Name: string(EventRestart), Src: []string{StateGameOver.String(), StateWin.String()}, Dst: playing},
			// a failed stage load parks the game instead of crashing it
			{Name: string(EventHalt), Src: []string{playing}, Dst: StatePaused.String()},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.logger.Info("state changed",
					zap.String("event", e.Event),
					zap.String("from", e.Src),
					zap.String("to", e.Dst),
				)
			},
		},
	)
	return m
}

// Current returns the active state
func (m *Machine) Current() GameState {
	if s, ok := states[m.fsm.Current()]; ok {
		return s
	}
	return StateMenu
}

// Can reports whether event is allowed from the current state
func (m *Machine) Can(event Event) bool {
	return m.fsm.Can(string(event))
}

// Fire runs a transition. Events not allowed from the current state return
// an error and leave the state unchanged.
func (m *Machine) Fire(ctx context.Context, event Event) error {
	if err := m.fsm.Event(ctx, string(event)); err != nil {
		return fmt.Errorf("state %s: event %s: %w", m.Current(), event, err)
	}
	return nil
}

// Is reports whether the machine is in s
func (m *Machine) Is(s GameState) bool {
	return m.Current() == s
}
