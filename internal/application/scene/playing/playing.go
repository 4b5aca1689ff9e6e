// Package playing provides the main gameplay scene.
package playing

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/younwookim/brawler/internal/application/scene"
	"github.com/younwookim/brawler/internal/application/session"
	"github.com/younwookim/brawler/internal/application/state"
	"github.com/younwookim/brawler/internal/application/system"
	"github.com/younwookim/brawler/internal/domain/entity"
	"github.com/younwookim/brawler/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorFacade     = color.RGBA{48, 44, 64, 255}
	colorDetail     = color.RGBA{70, 62, 90, 255}
	colorWalkway    = color.RGBA{90, 84, 80, 255}
	colorFloor      = color.RGBA{60, 56, 52, 255}
	colorObstacle   = color.RGBA{120, 96, 60, 255}
	colorFighter    = color.RGBA{100, 200, 100, 255}
	colorFighter2   = color.RGBA{100, 160, 230, 255}
	colorOpponent   = color.RGBA{200, 100, 100, 255}
	colorBoss       = color.RGBA{230, 60, 160, 255}
	colorHurt       = color.RGBA{255, 255, 255, 255}
	colorDying      = color.RGBA{90, 90, 90, 255}
	colorHitbox     = color.RGBA{255, 220, 0, 110}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorEnemyBarFG = color.RGBA{220, 80, 80, 255}
)

// Keys that drive the progression screens
var (
	keysStart   = []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace}
	keysPause   = []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}
	keysRestart = []ebiten.Key{ebiten.KeyR, ebiten.KeyEnter}
)

// Playing is the main gameplay scene. It owns the progression machine and
// feeds the session fixed substeps.
type Playing struct {
	config  *config.GameConfig
	session *session.Session
	machine *state.Machine
	clock   *session.Clock
	keys    system.KeyReader
	logger  *zap.Logger

	// input read on frames that ran no substep, consumed by the next one
	pending [session.MaxFighters]system.Intent

	screenW int
	screenH int
	camX    float64
	debug   bool
}

// New creates a new Playing scene over an existing session. keys should be
// the same reader the session uses; nil means the real keyboard.
func New(cfg *config.GameConfig, sess *session.Session, keys system.KeyReader, logger *zap.Logger) *Playing {
	if keys == nil {
		keys = system.EbitenKeys{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Playing{
		config:  cfg,
		session: sess,
		machine: state.NewMachine(logger.Named("state")),
		clock:   session.NewClock(cfg.Loop),
		keys:    keys,
		logger:  logger,
		screenW: cfg.Display.ScreenWidth,
		screenH: cfg.Display.ScreenHeight,
	}
}

// State returns the current progression state
func (p *Playing) State() state.GameState { return p.machine.Current() }

// Update proceeds the game state (implements scene.Scene). dt is the wall
// clock frame time.
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	if p.keys.IsKeyJustPressed(ebiten.KeyF3) {
		p.debug = !p.debug
	}

	switch p.machine.Current() {
	case state.StateMenu:
		if p.anyJustPressed(keysStart) {
			p.resetClock()
			p.fire(state.EventStart)
		}
	case state.StatePlaying:
		if p.anyJustPressed(keysPause) {
			p.fire(state.EventPause)
			return nil, nil
		}
		p.updatePlaying(dt)
	case state.StatePaused:
		if p.anyJustPressed(keysPause) {
			p.resetClock()
			p.fire(state.EventResume)
		}
	case state.StateGameOver, state.StateWin:
		if p.anyJustPressed(keysRestart) {
			if err := p.session.Restart(); err != nil {
				return nil, fmt.Errorf("restart: %w", err)
			}
			p.resetClock()
			p.fire(state.EventRestart)
		}
	}

	p.updateCamera()
	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(dt float64) {
	// key edges last one frame, so read them even when no substep runs
	in := p.session.Intents()
	for i := range in {
		p.pending[i] = p.pending[i].Merge(in[i])
	}

	steps := p.clock.Advance(dt)
	if steps == 0 {
		return
	}

	// edge-triggered input goes to the first substep only
	in = p.pending
	p.pending = [session.MaxFighters]system.Intent{}
	var held [session.MaxFighters]system.Intent
	for i := range in {
		held[i] = system.Intent{Move: in[i].Move}
	}
	for i := 0; i < steps; i++ {
		if i == 0 {
			p.session.Step(p.clock.Step(), in)
		} else {
			p.session.Step(p.clock.Step(), held)
		}
	}

	switch {
	case p.session.AllFightersDown():
		p.fire(state.EventLose)
	case p.session.ReadyToAdvance():
		won, err := p.session.AdvanceStage()
		switch {
		case err != nil:
			p.logger.Error("stage advance failed", zap.Error(err))
			p.fire(state.EventHalt)
		case won:
			p.fire(state.EventWin)
		}
	}
}

// resetClock drops the substep backlog and any input gathered for it
func (p *Playing) resetClock() {
	p.clock.Reset()
	p.pending = [session.MaxFighters]system.Intent{}
}

func (p *Playing) fire(e state.Event) {
	if err := p.machine.Fire(context.Background(), e); err != nil {
		p.logger.Warn("transition rejected", zap.Error(err))
	}
}

func (p *Playing) anyJustPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if p.keys.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// updateCamera keeps the lead fighter a little left of center, clamped to
// the stage
func (p *Playing) updateCamera() {
	stage := p.session.Stage()
	x := p.session.LeadX() + 80 - float64(p.screenW)/2
	if maxX := stage.Width - float64(p.screenW); x > maxX {
		x = maxX
	}
	if x < 0 {
		x = 0
	}
	p.camX = x
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawStage(screen)
	p.drawOpponents(screen)
	p.drawFighters(screen)
	p.drawUI(screen)

	switch p.machine.Current() {
	case state.StateMenu:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 160},
			"STREET BRAWL\n\nP1: A/D move  W jump  J/L/K attack  G grab\nP2: arrows  Z/X/C attack  . grab\n\nPress ENTER to start")
	case state.StatePaused:
		p.drawOverlay(screen, color.RGBA{0, 0, 0, 128}, "PAUSED\n\nPress P to resume")
	case state.StateGameOver:
		p.drawOverlay(screen, color.RGBA{100, 0, 0, 180},
			fmt.Sprintf("GAME OVER\n\nReached stage %d\n\nPress R to restart", p.session.Stage().Index+1))
	case state.StateWin:
		p.drawOverlay(screen, color.RGBA{0, 60, 0, 180}, "ALL STAGES CLEARED\n\nPress R to play again")
	}
}

func (p *Playing) drawStage(screen *ebiten.Image) {
	stage := p.session.Stage()
	if !stage.HasTiles() {
		return
	}
	size := float64(stage.TileSize)
	first := int(p.camX) / stage.TileSize
	last := first + p.screenW/stage.TileSize + 1

	for row := 0; row < stage.Rows; row++ {
		y := float64(row) * size
		if y > float64(p.screenH) {
			break
		}
		for col := first; col <= last && col < stage.Columns; col++ {
			x := float64(col)*size - p.camX
			if c, ok := tileColor(stage, col, row); ok {
				ebitenutil.DrawRect(screen, x, y, size, size, c)
			}
		}
	}

	for _, o := range stage.Obstacles {
		ebitenutil.DrawRect(screen, o.X-p.camX, o.Y, o.W, o.H, colorObstacle)
	}
}

// tileColor picks the top-most painted layer of a cell
func tileColor(stage *entity.Stage, col, row int) (color.Color, bool) {
	switch {
	case stage.IsSolid(col, row):
		return colorFloor, true
	case stage.TileAt(entity.LayerGround, col, row) != entity.TileEmpty:
		return colorWalkway, true
	case stage.TileAt(entity.LayerDetail, col, row) != entity.TileEmpty:
		return colorDetail, true
	case stage.TileAt(entity.LayerBackground, col, row) != entity.TileEmpty:
		return colorFacade, true
	}
	return nil, false
}

func (p *Playing) drawFighters(screen *ebiten.Image) {
	for i := 0; i < p.session.Fighters.Len(); i++ {
		f := p.session.Fighters.At(i)
		c := colorFighter
		if i == 1 {
			c = colorFighter2
		}
		p.drawCombatant(screen, f, c)
	}
}

func (p *Playing) drawOpponents(screen *ebiten.Image) {
	baseline := p.config.Opponent.MaxHealth
	for i := 0; i < p.session.Opponents.Len(); i++ {
		o := p.session.Opponents.At(i)
		c := colorOpponent
		if o.IsBoss(baseline) {
			c = colorBoss
		}
		p.drawCombatant(screen, o, c)

		if o.IsAlive() && o.Health < o.MaxHealth {
			ratio := float64(o.Health) / float64(o.MaxHealth)
			ebitenutil.DrawRect(screen, o.Box.X-p.camX, o.Box.Y-6, o.Box.W, 3, colorHealthBG)
			ebitenutil.DrawRect(screen, o.Box.X-p.camX, o.Box.Y-6, o.Box.W*ratio, 3, colorEnemyBarFG)
		}
	}
}

func (p *Playing) drawCombatant(screen *ebiten.Image, c *entity.Combatant, base color.Color) {
	fill := base
	switch {
	case c.IsDying() || c.State == entity.StateDead:
		fill = colorDying
	case c.State == entity.StateHurt && c.StunTimer > 0:
		fill = colorHurt
	}
	ebitenutil.DrawRect(screen, c.Box.X-p.camX, c.Box.Y, c.Box.W, c.Box.H, fill)

	// facing marker
	eyeX := c.Box.X + c.Box.W - 6
	if !c.FacingRight {
		eyeX = c.Box.X + 2
	}
	ebitenutil.DrawRect(screen, eyeX-p.camX, c.Box.Y+6, 4, 4, colorBG)

	if p.debug && c.Attack.Active {
		hb := p.session.AttackBox(c)
		ebitenutil.DrawRect(screen, hb.X-p.camX, hb.Y, hb.W, hb.H, colorHitbox)
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	for i := 0; i < p.session.Fighters.Len(); i++ {
		f := p.session.Fighters.At(i)
		barX := 10.0 + float64(i)*140
		barY := 10.0
		barW := 100.0

		ebitenutil.DrawRect(screen, barX, barY, barW, 10, colorHealthBG)
		ratio := float64(f.Health) / float64(f.MaxHealth)
		if ratio < 0 {
			ratio = 0
		}
		ebitenutil.DrawRect(screen, barX, barY, barW*ratio, 10, colorHealthFG)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("P%d %3d", i+1, f.Health), int(barX), 22)
	}
	if p.session.Fighters.Len() < session.MaxFighters {
		ebitenutil.DebugPrintAt(screen, "P2: press any arrow to join", 150, 10)
	}

	spawner := p.session.Spawner()
	info := fmt.Sprintf("Stage %d: %s  Enemies left: %d",
		spawner.Stage()+1, spawner.Definition().Name, spawner.Remaining(p.session.Opponents))
	if spawner.BossPending() {
		info += "  BOSS AHEAD"
	}
	ebitenutil.DebugPrintAt(screen, info, 10, p.screenH-20)

	if spawner.Cleared(p.session.Opponents) && p.session.LeadX() < spawner.EndX() {
		ebitenutil.DebugPrintAt(screen, "GO >>", p.screenW-60, p.screenH/2)
	}
	if p.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  ticks %d", ebiten.ActualTPS(), p.session.Ticks()), p.screenW-160, 10)
	}
}

func (p *Playing) drawOverlay(screen *ebiten.Image, shade color.Color, text string) {
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), shade)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-120, p.screenH/2-40)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Debug("playing scene entered")
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {}
