package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// SpawnDirector enforces a stage's spawn quota and concurrency cap, paces
// wave spawns ahead of the leading fighter and introduces the boss
type SpawnDirector struct {
	config *config.GameConfig
	rng    *rand.Rand
	nextID func() entity.ID
	logger *zap.Logger

	stage   int
	def     entity.StageDefinition
	width   float64
	quota   int
	spawned int
	timer   float64

	bossID       entity.ID
	bossSpawned  bool
	bossDefeated bool
	cleared      bool
}

// NewSpawnDirector creates a spawn director. nextID hands out combatant IDs
// shared with the rest of the session.
func NewSpawnDirector(cfg *config.GameConfig, rng *rand.Rand, nextID func() entity.ID, logger *zap.Logger) *SpawnDirector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpawnDirector{
		config: cfg,
		rng:    rng,
		nextID: nextID,
		logger: logger,
	}
}

// Begin resets the director for a freshly loaded stage and spawns the
// initial wave into opponents. It returns the number spawned.
func (d *SpawnDirector) Begin(stage int, def entity.StageDefinition, width float64, opponents *entity.Pool) int {
	*d = SpawnDirector{
		config: d.config,
		rng:    d.rng,
		nextID: d.nextID,
		logger: d.logger,
		stage:  stage,
		def:    def,
		width:  width,
		quota:  def.Quota,
	}

	sc := d.config.Spawn
	n := 0
	for i := 0; i < def.InitialWave && d.room(opponents); i++ {
		x := clamp(sc.WaveStartX+sc.WaveSpacing*float64(i), sc.WaveMinX, d.maxX())
		if d.spawn(opponents, x, 1, d.config.Opponent.MaxHealth) < 0 {
			break
		}
		n++
	}
	d.consume(n)

	d.logger.Debug("spawn: initial wave",
		zap.Int("stage", stage),
		zap.Int("spawned", n),
		zap.Int("quota", d.quota),
	)
	return n
}

// Update runs spawn bookkeeping for one tick
func (d *SpawnDirector) Update(dt, leadX float64, opponents *entity.Pool) {
	sc := d.config.Spawn

	if d.quota > 0 && d.room(opponents) {
		d.timer += dt
		interval := d.def.SpawnInterval
		if interval < sc.MinInterval {
			interval = sc.MinInterval
		}
		if d.timer >= interval {
			d.timer = 0
			x := leadX + sc.AheadOffset + sc.JitterMin + d.rng.Float64()*(sc.JitterMax-sc.JitterMin)
			if x < leadX+sc.MinAhead {
				x = leadX + sc.MinAhead
			}
			x = clamp(x, sc.EdgeMargin, d.maxX())
			if d.spawn(opponents, x, 1, d.config.Opponent.MaxHealth) >= 0 {
				d.consume(1)
			}
		}
	} else {
		d.timer = 0
	}

	if d.def.HasBoss() && !d.bossSpawned && d.quota <= 0 && opponents.Len() == 0 && leadX >= d.bossTriggerX() {
		d.spawnBoss(opponents)
	}

	if d.bossSpawned && !d.bossDefeated && !d.bossAlive(opponents) {
		d.bossDefeated = true
		d.logger.Info("spawn: boss defeated", zap.Int("stage", d.stage))
	}

	if !d.cleared && d.Cleared(opponents) {
		d.cleared = true
		d.logger.Info("spawn: stage cleared", zap.Int("stage", d.stage), zap.Int("spawned", d.spawned))
	}
}

func (d *SpawnDirector) spawnBoss(opponents *entity.Pool) {
	x := d.def.Boss.SpawnX
	if x <= 0 {
		x = d.width - d.config.Spawn.BossSpawnBack
	}
	x = clamp(x, d.config.Spawn.WaveMinX, d.maxX())

	i := d.spawn(opponents, x, d.config.Physics.BossScale, d.def.Boss.Health)
	if i < 0 {
		return
	}
	d.bossID = opponents.At(i).ID
	d.bossSpawned = true
	d.logger.Info("spawn: boss entered",
		zap.Int("stage", d.stage),
		zap.Int("health", d.def.Boss.Health),
		zap.Float64("x", x),
	)
}

// spawn adds an opponent standing on the ground plane facing left. It returns
// the pool index or -1 when the pool is full.
func (d *SpawnDirector) spawn(opponents *entity.Pool, x, scale float64, health int) int {
	pc := &d.config.Physics
	_, offY, _, h := boxGeometry(pc, scale)

	c := entity.NewCombatant(d.nextID(), entity.RoleOpponent, x, pc.GroundY-h+offY, health)
	c.Scale = scale
	c.Box = BodyBox(pc, &c)

	i := opponents.Add(c)
	if i >= 0 {
		d.spawned++
	}
	return i
}

func (d *SpawnDirector) consume(n int) {
	d.quota -= n
	if d.quota < 0 {
		d.quota = 0
	}
}

// room reports whether another opponent fits under the concurrency cap.
// Dying opponents still occupy a slot.
func (d *SpawnDirector) room(opponents *entity.Pool) bool {
	limit := d.def.Cap
	if m := d.config.Spawn.MaxOpponents; m > 0 && m < limit {
		limit = m
	}
	return opponents.Len() < limit && !opponents.Full()
}

func (d *SpawnDirector) maxX() float64 {
	return d.width - d.config.Physics.BodyWidth
}

func (d *SpawnDirector) bossTriggerX() float64 {
	if x := d.def.Boss.TriggerX; x > 0 {
		return x
	}
	return d.width - d.config.Spawn.BossTriggerBack
}

func (d *SpawnDirector) bossAlive(opponents *entity.Pool) bool {
	for i := 0; i < opponents.Len(); i++ {
		o := opponents.At(i)
		if o.ID == d.bossID && o.IsAlive() {
			return true
		}
	}
	return false
}

// Cleared reports whether the quota is spent, no opponent is alive and any
// boss has been beaten
func (d *SpawnDirector) Cleared(opponents *entity.Pool) bool {
	if d.quota > 0 || opponents.CountAlive() > 0 {
		return false
	}
	if d.def.HasBoss() {
		return d.bossSpawned && !d.bossAlive(opponents)
	}
	return true
}

// Remaining counts opponents still to beat: unspent quota, living opponents
// and a boss that has not entered yet
func (d *SpawnDirector) Remaining(opponents *entity.Pool) int {
	n := d.quota + opponents.CountAlive()
	if d.BossPending() {
		n++
	}
	return n
}

// EndX is the x position the leading fighter must pass to leave the stage
func (d *SpawnDirector) EndX() float64 {
	return d.width - d.config.Spawn.EndMargin
}

// Quota returns the unspent spawn quota
func (d *SpawnDirector) Quota() int { return d.quota }

// Spawned returns how many opponents entered this stage, boss included
func (d *SpawnDirector) Spawned() int { return d.spawned }

// Stage returns the index of the stage being directed
func (d *SpawnDirector) Stage() int { return d.stage }

// Definition returns the active stage definition
func (d *SpawnDirector) Definition() entity.StageDefinition { return d.def }

// BossPending reports whether a boss stage is still waiting for its boss
func (d *SpawnDirector) BossPending() bool {
	return d.def.HasBoss() && !d.bossSpawned && !d.bossDefeated
}

// BossDefeated reports whether the stage boss has been beaten
func (d *SpawnDirector) BossDefeated() bool { return d.bossDefeated }
