package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLoader_LoadAll(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Display.ScreenWidth)
	assert.Equal(t, 600, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 980.0, cfg.Physics.Gravity)
	assert.Equal(t, 448.0, cfg.Physics.GroundY)
	assert.Equal(t, []float64{100, 150}, cfg.Fighter.SpawnX)
	assert.Equal(t, 1.2, cfg.Opponent.Boss.Sight)
	assert.Equal(t, 10, cfg.Spawn.MaxOpponents)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	fsys := fstest.MapFS{
		"game.yaml": &fstest.MapFile{Data: []byte("physics:\n  gravity: 500\nopponent:\n  sightRadius: 320\n")},
	}
	loader := NewFSLoader(fsys, "mem")

	cfg, err := loader.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.Physics.Gravity)
	assert.Equal(t, 320.0, cfg.Opponent.SightRadius)
	assert.Equal(t, Default().Physics.GroundY, cfg.Physics.GroundY)
	assert.Equal(t, Default().Opponent.AttackRange, cfg.Opponent.AttackRange)
	assert.Equal(t, "mem", loader.BasePath())
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
		want string
	}{
		{"missing file", fstest.MapFS{}, "failed to read game.yaml"},
		{"bad yaml", fstest.MapFS{"game.yaml": &fstest.MapFile{Data: []byte("physics: [oops")}}, "failed to parse game.yaml"},
		{"invalid value", fstest.MapFS{"game.yaml": &fstest.MapFile{Data: []byte("loop:\n  maxSubsteps: 0\n")}}, "failed to validate game.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFSLoader(tt.fsys, "mem").LoadAll()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero step", func(c *GameConfig) { c.Loop.FixedStep = 0 }},
		{"frame delta below step", func(c *GameConfig) { c.Loop.MaxFrameDelta = c.Loop.FixedStep / 2 }},
		{"zero body", func(c *GameConfig) { c.Physics.BodyWidth = 0 }},
		{"friction above one", func(c *GameConfig) { c.Physics.Friction = 1.5 }},
		{"one spawn slot", func(c *GameConfig) { c.Fighter.SpawnX = []float64{100} }},
		{"inverted jitter", func(c *GameConfig) { c.Spawn.JitterMin, c.Spawn.JitterMax = 10, -10 }},
		{"no opponents", func(c *GameConfig) { c.Spawn.MaxOpponents = 0 }},
		{"zero tile", func(c *GameConfig) { c.Stage.TileSize = 0 }},
		{"loud", func(c *GameConfig) { c.Audio.Volume = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestPropertyChanceBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		chance := rapid.Float64Range(-2, 3).Draw(t, "chance")
		cfg := Default()
		cfg.Opponent.EvadeChance = chance
		err := cfg.Validate()
		if chance >= 0 && chance <= 1 {
			if err != nil {
				t.Fatalf("valid chance %v rejected: %v", chance, err)
			}
		} else if err == nil {
			t.Fatalf("invalid chance %v accepted", chance)
		}
	})
}
