package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for out-of-range values
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the tuning the game ships with. Loaded files are decoded on
// top of it, so a file only needs the values it overrides.
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			Scale:        1,
			Framerate:    60,
			Title:        "Brawler",
		},
		Loop: LoopConfig{
			FixedStep:     1.0 / 60.0,
			MaxFrameDelta: 1.0 / 30.0,
			MaxSubsteps:   3,
		},
		Physics: PhysicsConfig{
			Gravity:        980,
			GroundY:        448,
			Friction:       0.9,
			MinVelocity:    5,
			MaxEntitySpeed: 280,
			BodyWidth:      47,
			BodyHeight:     47,
			BossScale:      1.5,
		},
		Fighter: FighterConfig{
			MaxHealth:         100,
			Speed:             200,
			JumpVelocity:      -400,
			IdleDelay:         0.2,
			StunTime:          0.35,
			SpawnX:            []float64{100, 150},
			InactivityTimeout: 5,
			AirAttackBonus:    5,
			AirAttackCooldown: 0.5,
			AirMomentum:       0.8,
			GrabRadius:        60,
			GrabOffset:        40,
			GrabStun:          1.0,
			GrabSlowdown:      0.5,
			ThrowVX:           400,
			ThrowVY:           -200,
			ThrowStun:         0.5,
			ThrowDamage:       5,
		},
		Opponent: OpponentConfig{
			MaxHealth:         50,
			StunTime:          0.45,
			SightRadius:       200,
			AttackRange:       60,
			ChaseSpeed:        120,
			PositionSpeed:     80,
			RetreatSpeed:      140,
			EvadeChance:       0.3,
			KickChance:        0.3,
			RetreatTime:       1.5,
			ChaseEvadeTime:    0.5,
			PositionEvadeTime: 0.4,
			PositionBand:      10,
			SlowdownMargin:    50,
			MinAttackTime:     0.5,
			Boss: BossConfig{
				Sight:    1.2,
				Range:    1.5,
				Chase:    0.7,
				Position: 0.7,
				Retreat:  0.8,
			},
		},
		Combat: CombatConfig{
			AttackReach:       20,
			HitboxHeightScale: 1.15,
			HitboxOverlap:     0.35,
			KnockbackForce:    200,
			MaxKnockback:      220,
			RecoveryCooldown:  0.5,
			DeathTime:         2.0,
			AttackTimeout:     1.5,
		},
		Animation: AnimationConfig{
			ShortFrames:           3,
			ShortRate:             12,
			LongRate:              8,
			OpponentAttackDamping: 0.5,
		},
		Spawn: SpawnConfig{
			MinInterval:     1.6,
			WaveStartX:      360,
			WaveSpacing:     110,
			WaveMinX:        120,
			AheadOffset:     120,
			JitterMin:       -40,
			JitterMax:       140,
			MinAhead:        80,
			EdgeMargin:      80,
			EndMargin:       120,
			BossTriggerBack: 400,
			BossSpawnBack:   140,
			MaxOpponents:    10,
		},
		Stage: StageConfig{
			TileSize:     16,
			Rows:         38,
			AtlasColumns: 32,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
	}
}

// Validate rejects values the simulation cannot run with
func (c *GameConfig) Validate() error {
	switch {
	case c.Loop.FixedStep <= 0:
		return fmt.Errorf("%w: loop.fixedStep must be positive", ErrInvalidConfig)
	case c.Loop.MaxFrameDelta < c.Loop.FixedStep:
		return fmt.Errorf("%w: loop.maxFrameDelta must be at least fixedStep", ErrInvalidConfig)
	case c.Loop.MaxSubsteps < 1:
		return fmt.Errorf("%w: loop.maxSubsteps must be at least 1", ErrInvalidConfig)
	case c.Physics.BodyWidth <= 0 || c.Physics.BodyHeight <= 0:
		return fmt.Errorf("%w: physics body size must be positive", ErrInvalidConfig)
	case c.Physics.Friction < 0 || c.Physics.Friction > 1:
		return fmt.Errorf("%w: physics.friction %v outside [0, 1]", ErrInvalidConfig, c.Physics.Friction)
	case c.Fighter.MaxHealth <= 0 || c.Opponent.MaxHealth <= 0:
		return fmt.Errorf("%w: max health must be positive", ErrInvalidConfig)
	case len(c.Fighter.SpawnX) < 2:
		return fmt.Errorf("%w: fighter.spawnX needs a position per fighter", ErrInvalidConfig)
	case c.Opponent.EvadeChance < 0 || c.Opponent.EvadeChance > 1:
		return fmt.Errorf("%w: opponent.evadeChance %v outside [0, 1]", ErrInvalidConfig, c.Opponent.EvadeChance)
	case c.Opponent.KickChance < 0 || c.Opponent.KickChance > 1:
		return fmt.Errorf("%w: opponent.kickChance %v outside [0, 1]", ErrInvalidConfig, c.Opponent.KickChance)
	case c.Combat.MaxKnockback < 0:
		return fmt.Errorf("%w: combat.maxKnockback must not be negative", ErrInvalidConfig)
	case c.Animation.ShortRate <= 0 || c.Animation.LongRate <= 0:
		return fmt.Errorf("%w: animation rates must be positive", ErrInvalidConfig)
	case c.Spawn.MinInterval <= 0:
		return fmt.Errorf("%w: spawn.minInterval must be positive", ErrInvalidConfig)
	case c.Spawn.JitterMax < c.Spawn.JitterMin:
		return fmt.Errorf("%w: spawn jitter range is inverted", ErrInvalidConfig)
	case c.Spawn.MaxOpponents < 1:
		return fmt.Errorf("%w: spawn.maxOpponents must be at least 1", ErrInvalidConfig)
	case c.Stage.TileSize <= 0 || c.Stage.Rows <= 0:
		return fmt.Errorf("%w: stage tile geometry must be positive", ErrInvalidConfig)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v outside [0, 1]", ErrInvalidConfig, c.Audio.Volume)
	}
	return nil
}
