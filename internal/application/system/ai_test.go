package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

func newTestAI(mutate ...func(*config.GameConfig)) *AISystem {
	cfg := createTestConfig()
	for _, m := range mutate {
		m(cfg)
	}
	return NewAISystem(&cfg.Opponent, NewCombatSystem(cfg, nil), testRNG())
}

// aiScene places one opponent at x=300 and one fighter at fighterX
func aiScene(fighterX float64) (*entity.Combatant, *entity.Pool) {
	fighters := entity.NewPool(2)
	fighters.Add(*createTestFighter(1, fighterX))
	opp := createTestOpponent(10, 300)
	return &opp, fighters
}

func TestAISystem_IdleToChaseScenario(t *testing.T) {
	sys := newTestAI()
	opp, fighters := aiScene(300 - 199)

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, entity.AIChase, opp.AI.State)
	assert.Equal(t, 0.0, opp.Vel.X)

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, -120.0, opp.Vel.X, "chasing toward the fighter on the next tick")
	assert.False(t, opp.FacingRight)
	assert.Equal(t, entity.AnimWalk, opp.Anim.ID)
}

func TestAISystem_NoTargetForcesIdle(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *entity.Combatant)
	}{
		{"out of sight", func(f *entity.Combatant) { f.Pos.X = 300 + 201 }},
		{"dead fighter", func(f *entity.Combatant) { f.Health = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestAI()
			opp, fighters := aiScene(250)
			tt.setup(fighters.At(0))
			opp.AI.State = entity.AIChase
			opp.Vel.X = 120

			sys.Update(opp, fighters, testDT)
			assert.Equal(t, entity.AIIdle, opp.AI.State)
			assert.Equal(t, 0.0, opp.Vel.X)
		})
	}
}

func TestAISystem_WasHurtForcesRetreat(t *testing.T) {
	states := []entity.AIState{
		entity.AIIdle, entity.AIChase, entity.AIAttack, entity.AIPosition, entity.AIEvade,
	}

	for _, st := range states {
		t.Run(st.String(), func(t *testing.T) {
			sys := newTestAI()
			opp, fighters := aiScene(260)
			opp.AI.State = st
			opp.AI.WasHurt = true

			sys.Update(opp, fighters, testDT)

			assert.Equal(t, entity.AIRetreat, opp.AI.State)
			assert.Equal(t, 140.0, opp.Vel.X, "backs away from the fighter")
			assert.False(t, opp.Attack.Active)
		})
	}
}

func TestPropertyWasHurtAlwaysRetreats(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sys := newTestAI()
		fx := rapid.Float64Range(100, 500).Draw(t, "fighterX")
		opp, fighters := aiScene(fx)
		opp.AI.State = rapid.SampledFrom([]entity.AIState{
			entity.AIIdle, entity.AIChase, entity.AIAttack, entity.AIPosition, entity.AIEvade,
		}).Draw(t, "state")
		opp.AI.Timer = rapid.Float64Range(-1, 2).Draw(t, "timer")
		opp.Attack.Cooldown = rapid.Float64Range(0, 1).Draw(t, "cooldown")
		opp.AI.WasHurt = true

		sys.Update(opp, fighters, testDT)
		if opp.AI.State != entity.AIRetreat {
			t.Fatalf("hurt opponent in %v instead of Retreat", opp.AI.State)
		}
	})
}

func TestAISystem_ChaseAttacksInRange(t *testing.T) {
	sys := newTestAI()
	opp, fighters := aiScene(250)
	opp.AI.State = entity.AIChase

	sys.Update(opp, fighters, testDT)

	assert.Equal(t, entity.AIAttack, opp.AI.State)
	assert.True(t, opp.Attack.Active)
	assert.Equal(t, entity.StateAttack, opp.State)
	assert.Contains(t, []int{entity.OpponentPunch.Damage, entity.OpponentKick.Damage}, opp.Attack.Damage)
}

func TestAISystem_ChasePositionsWhenBlocked(t *testing.T) {
	tests := []struct {
		name  string
		setup func(opp, f *entity.Combatant)
	}{
		{"cooldown pending", func(opp, f *entity.Combatant) { opp.Attack.Cooldown = 0.3 }},
		{"target mid-attack", func(opp, f *entity.Combatant) { f.Attack.Active = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestAI(func(c *config.GameConfig) { c.Opponent.EvadeChance = 0 })
			opp, fighters := aiScene(250)
			opp.AI.State = entity.AIChase
			tt.setup(opp, fighters.At(0))

			sys.Update(opp, fighters, testDT)
			assert.Equal(t, entity.AIPosition, opp.AI.State)
			assert.False(t, opp.Attack.Active)
		})
	}
}

func TestAISystem_ChaseSlowsNearRange(t *testing.T) {
	sys := newTestAI()
	opp, fighters := aiScene(200)
	opp.AI.State = entity.AIChase

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, -80.0, opp.Vel.X, "positioning speed inside range+50")
}

func TestAISystem_ChaseEvade(t *testing.T) {
	sys := newTestAI(func(c *config.GameConfig) { c.Opponent.EvadeChance = 1 })
	opp, fighters := aiScene(220)
	fighters.At(0).Attack.Active = true
	opp.AI.State = entity.AIChase

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, entity.AIEvade, opp.AI.State)
	assert.Equal(t, 0.5, opp.AI.Timer)

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, 140.0, opp.Vel.X, "evading away from the fighter")
}

func TestAISystem_PositionBand(t *testing.T) {
	tests := []struct {
		name     string
		fighterX float64
		wantVX   float64
	}{
		{"too close backs off", 270, 80},
		{"inside band holds", 235, 0},
		{"too far closes in", 225, -80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestAI(func(c *config.GameConfig) { c.Opponent.EvadeChance = 0 })
			opp, fighters := aiScene(tt.fighterX)
			opp.AI.State = entity.AIPosition
			opp.Attack.Cooldown = 1

			sys.Update(opp, fighters, testDT)
			assert.Equal(t, entity.AIPosition, opp.AI.State)
			assert.Equal(t, tt.wantVX, opp.Vel.X)
		})
	}
}

func TestAISystem_PositionReattacks(t *testing.T) {
	sys := newTestAI()
	opp, fighters := aiScene(235)
	opp.AI.State = entity.AIPosition

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, entity.AIAttack, opp.AI.State)
	assert.True(t, opp.Attack.Active)
}

func TestAISystem_PositionFallsBackToChase(t *testing.T) {
	sys := newTestAI()
	opp, fighters := aiScene(150)
	opp.AI.State = entity.AIPosition
	opp.Attack.Cooldown = 1

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, entity.AIChase, opp.AI.State)
}

func TestAISystem_AttackHoldsStill(t *testing.T) {
	sys := newTestAI()
	opp, fighters := aiScene(250)
	opp.AI.State = entity.AIAttack
	opp.Attack.Active = true
	opp.Vel.X = 50

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, entity.AIAttack, opp.AI.State)
	assert.Equal(t, 0.0, opp.Vel.X)

	opp.Attack.Active = false
	sys.Update(opp, fighters, testDT)
	assert.Equal(t, entity.AIChase, opp.AI.State, "an interrupted swing returns to Chase")
}

func TestAISystem_RetreatExpires(t *testing.T) {
	sys := newTestAI()
	opp, fighters := aiScene(250)
	opp.AI.State = entity.AIRetreat
	opp.AI.WasHurt = true
	opp.AI.Timer = 0.01

	sys.Update(opp, fighters, testDT)
	assert.Equal(t, entity.AIChase, opp.AI.State)
	assert.False(t, opp.AI.WasHurt)
}

func TestAISystem_BackingOffFacesAway(t *testing.T) {
	for _, st := range []entity.AIState{entity.AIRetreat, entity.AIEvade} {
		t.Run(st.String(), func(t *testing.T) {
			sys := newTestAI()
			opp, fighters := aiScene(250)
			opp.AI.State = st
			opp.AI.Timer = 1
			opp.FacingRight = false

			sys.Update(opp, fighters, testDT)
			require.Equal(t, st, opp.AI.State)
			assert.Greater(t, opp.Vel.X, 0.0, "walks away from the fighter")
			assert.True(t, opp.FacingRight, "faces the way it walks")
		})
	}
}

func TestAISystem_BossWidensSight(t *testing.T) {
	sys := newTestAI()

	opp, fighters := aiScene(300 - 230)
	target, _ := sys.Target(opp, fighters)
	assert.Nil(t, target, "regular sight is 200")

	opp.MaxHealth = 160
	opp.Health = 160
	target, dist := sys.Target(opp, fighters)
	require.NotNil(t, target)
	assert.Equal(t, 230.0, dist)

	opp.AI.State = entity.AIChase
	sys.Update(opp, fighters, testDT)
	assert.InDelta(t, -84.0, opp.Vel.X, 1e-9, "boss chase speed is scaled down")
}

func TestAISystem_SpeedLimit(t *testing.T) {
	sys := newTestAI()
	opp := createTestOpponent(1, 0)

	opp.AI.State = entity.AIChase
	assert.Equal(t, 120.0, sys.SpeedLimit(&opp))
	opp.AI.State = entity.AIEvade
	assert.Equal(t, 140.0, sys.SpeedLimit(&opp))
	opp.AI.State = entity.AIIdle
	assert.Equal(t, 0.0, sys.SpeedLimit(&opp))
}
