package config

// GameConfig is the root of game.yaml
type GameConfig struct {
	Display   DisplayConfig   `yaml:"display"`
	Loop      LoopConfig      `yaml:"loop"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Fighter   FighterConfig   `yaml:"fighter"`
	Opponent  OpponentConfig  `yaml:"opponent"`
	Combat    CombatConfig    `yaml:"combat"`
	Animation AnimationConfig `yaml:"animation"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Stage     StageConfig     `yaml:"stage"`
	Logging   LoggingConfig   `yaml:"logging"`
	Audio     AudioConfig     `yaml:"audio"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screenWidth"`
	ScreenHeight int    `yaml:"screenHeight"`
	Scale        int    `yaml:"scale"`
	Framerate    int    `yaml:"framerate"`
	Title        string `yaml:"title"`
}

// LoopConfig controls the fixed-timestep accumulator
type LoopConfig struct {
	FixedStep     float64 `yaml:"fixedStep"`
	MaxFrameDelta float64 `yaml:"maxFrameDelta"`
	MaxSubsteps   int     `yaml:"maxSubsteps"`
}

type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	GroundY        float64 `yaml:"groundY"`
	Friction       float64 `yaml:"friction"`
	MinVelocity    float64 `yaml:"minVelocity"`
	MaxEntitySpeed float64 `yaml:"maxEntitySpeed"`
	BodyWidth      float64 `yaml:"bodyWidth"`
	BodyHeight     float64 `yaml:"bodyHeight"`
	BossScale      float64 `yaml:"bossScale"`
}

// FighterConfig tunes controllable fighters and the grab/throw mechanic
type FighterConfig struct {
	MaxHealth         int       `yaml:"maxHealth"`
	Speed             float64   `yaml:"speed"`
	JumpVelocity      float64   `yaml:"jumpVelocity"`
	IdleDelay         float64   `yaml:"idleDelay"`
	StunTime          float64   `yaml:"stunTime"`
	SpawnX            []float64 `yaml:"spawnX"`
	InactivityTimeout float64   `yaml:"inactivityTimeout"`

	AirAttackBonus    int     `yaml:"airAttackBonus"`
	AirAttackCooldown float64 `yaml:"airAttackCooldown"`
	AirMomentum       float64 `yaml:"airMomentum"`

	GrabRadius   float64 `yaml:"grabRadius"`
	GrabOffset   float64 `yaml:"grabOffset"`
	GrabStun     float64 `yaml:"grabStun"`
	GrabSlowdown float64 `yaml:"grabSlowdown"`
	ThrowVX      float64 `yaml:"throwVX"`
	ThrowVY      float64 `yaml:"throwVY"`
	ThrowStun    float64 `yaml:"throwStun"`
	ThrowDamage  int     `yaml:"throwDamage"`
}

// OpponentConfig tunes the AI state machine
type OpponentConfig struct {
	MaxHealth         int     `yaml:"maxHealth"`
	StunTime          float64 `yaml:"stunTime"`
	SightRadius       float64 `yaml:"sightRadius"`
	AttackRange       float64 `yaml:"attackRange"`
	ChaseSpeed        float64 `yaml:"chaseSpeed"`
	PositionSpeed     float64 `yaml:"positionSpeed"`
	RetreatSpeed      float64 `yaml:"retreatSpeed"`
	EvadeChance       float64 `yaml:"evadeChance"`
	KickChance        float64 `yaml:"kickChance"`
	RetreatTime       float64 `yaml:"retreatTime"`
	ChaseEvadeTime    float64 `yaml:"chaseEvadeTime"`
	PositionEvadeTime float64 `yaml:"positionEvadeTime"`
	PositionBand      float64 `yaml:"positionBand"`
	SlowdownMargin    float64 `yaml:"slowdownMargin"`
	MinAttackTime     float64 `yaml:"minAttackTime"`

	Boss BossConfig `yaml:"boss"`
}

// BossConfig holds the multipliers applied to boss-class opponents
type BossConfig struct {
	Sight    float64 `yaml:"sight"`
	Range    float64 `yaml:"range"`
	Chase    float64 `yaml:"chase"`
	Position float64 `yaml:"position"`
	Retreat  float64 `yaml:"retreat"`
}

type CombatConfig struct {
	AttackReach       float64 `yaml:"attackReach"`
	HitboxHeightScale float64 `yaml:"hitboxHeightScale"`
	HitboxOverlap     float64 `yaml:"hitboxOverlap"`
	KnockbackForce    float64 `yaml:"knockbackForce"`
	MaxKnockback      float64 `yaml:"maxKnockback"`
	RecoveryCooldown  float64 `yaml:"recoveryCooldown"`
	DeathTime         float64 `yaml:"deathTime"`
	AttackTimeout     float64 `yaml:"attackTimeout"`
}

type AnimationConfig struct {
	ShortFrames           int     `yaml:"shortFrames"`
	ShortRate             float64 `yaml:"shortRate"`
	LongRate              float64 `yaml:"longRate"`
	OpponentAttackDamping float64 `yaml:"opponentAttackDamping"`
}

// SpawnConfig places opponents relative to the stage and the lead fighter
type SpawnConfig struct {
	MinInterval     float64 `yaml:"minInterval"`
	WaveStartX      float64 `yaml:"waveStartX"`
	WaveSpacing     float64 `yaml:"waveSpacing"`
	WaveMinX        float64 `yaml:"waveMinX"`
	AheadOffset     float64 `yaml:"aheadOffset"`
	JitterMin       float64 `yaml:"jitterMin"`
	JitterMax       float64 `yaml:"jitterMax"`
	MinAhead        float64 `yaml:"minAhead"`
	EdgeMargin      float64 `yaml:"edgeMargin"`
	EndMargin       float64 `yaml:"endMargin"`
	BossTriggerBack float64 `yaml:"bossTriggerBack"`
	BossSpawnBack   float64 `yaml:"bossSpawnBack"`
	MaxOpponents    int     `yaml:"maxOpponents"`
}

type StageConfig struct {
	TileSize     int `yaml:"tileSize"`
	Rows         int `yaml:"rows"`
	AtlasColumns int `yaml:"atlasColumns"`
}

// LoggingConfig selects the zap encoder and level
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}
