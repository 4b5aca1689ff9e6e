// Package sound synthesizes the simulation's audio cues with beep.
package sound

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/younwookim/brawler/internal/application/system"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

const sampleRate = beep.SampleRate(44100)

// ErrUnknownCue is returned for cues without a sound
var ErrUnknownCue = errors.New("unknown cue")

// Player plays cues through the speaker. It implements system.AudioSink.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	enabled     bool
	volume      float64
	initialized bool
	logger      *zap.Logger
}

// NewPlayer creates a player. Nothing is audible until Init succeeds.
func NewPlayer(cfg config.AudioConfig, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		mixer:   &beep.Mixer{},
		enabled: cfg.Enabled,
		volume:  cfg.Volume,
		logger:  logger,
	}
}

// Init opens the speaker. A disabled player never touches the device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a cue. It never blocks on the device.
func (p *Player) Play(cue system.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Cue(cue, p.volume)
	if err != nil {
		p.logger.Debug("cue skipped", zap.Stringer("cue", cue), zap.Error(err))
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Enabled reports whether the player is producing sound
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close silences everything still playing
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveSaw
)

type note struct {
	freq float64
	dur  time.Duration
	wave wave
}

// cues maps each cue to its notes, played in sequence
var cues = map[system.Cue][]note{
	system.CuePunch: {{freq: 180, dur: 70 * time.Millisecond, wave: waveSquare}},
	system.CueKick:  {{freq: 110, dur: 120 * time.Millisecond, wave: waveSaw}},
	system.CueDeath: {
		{freq: 330, dur: 140 * time.Millisecond, wave: waveSine},
		{freq: 247, dur: 140 * time.Millisecond, wave: waveSine},
		{freq: 165, dur: 260 * time.Millisecond, wave: waveSine},
	},
}

// Cue builds a finite streamer for cue at volume in [0, 1]
func Cue(cue system.Cue, volume float64) (beep.Streamer, error) {
	notes, ok := cues[cue]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCue, cue)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := n.streamer()
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", cue, err)
		}
		parts = append(parts, s)
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

func (n note) streamer() (beep.Streamer, error) {
	var (
		tone beep.Streamer
		err  error
	)
	switch n.wave {
	case waveSquare:
		tone, err = generators.SquareTone(sampleRate, n.freq)
	case waveSaw:
		tone, err = generators.SawtoothTone(sampleRate, n.freq)
	default:
		tone, err = generators.SineTone(sampleRate, n.freq)
	}
	if err != nil {
		return nil, err
	}
	samples := sampleRate.N(n.dur)
	return &decay{streamer: beep.Take(samples, tone), total: samples}, nil
}

// decay fades a note out linearly so cues end without a click
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(d.pos)/float64(d.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// withVolume scales a streamer linearly; zero mutes it
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
