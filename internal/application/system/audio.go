package system

// Cue is a fire-and-forget audio event emitted by the simulation
type Cue int

const (
	CuePunch Cue = iota
	CueKick
	CueDeath
)

func (c Cue) String() string {
	switch c {
	case CuePunch:
		return "punch"
	case CueKick:
		return "kick"
	case CueDeath:
		return "death"
	default:
		return "unknown"
	}
}

// AudioSink receives cues. Implementations must not block the simulation.
type AudioSink interface {
	Play(cue Cue)
}

// NopAudio discards every cue
type NopAudio struct{}

// Play implements AudioSink
func (NopAudio) Play(Cue) {}
