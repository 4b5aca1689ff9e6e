package main

import (
	"embed"
	"flag"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/brawler/internal/application/game"
	"github.com/younwookim/brawler/internal/application/scene/playing"
	"github.com/younwookim/brawler/internal/application/session"
	"github.com/younwookim/brawler/internal/application/system"
	"github.com/younwookim/brawler/internal/infrastructure/config"
	"github.com/younwookim/brawler/internal/infrastructure/logging"
	"github.com/younwookim/brawler/internal/infrastructure/sound"
)

//go:embed configs
var configFS embed.FS

func main() {
	configPath := flag.String("config", "", "Tuning file to load instead of the embedded game.yaml")
	seed := flag.Int64("seed", 0, "Spawn RNG seed (0 = time based)")
	mute := flag.Bool("mute", false, "Disable audio")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *mute {
		cfg.Audio.Enabled = false
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, *seed, logger); err != nil {
		logger.Fatal("game exited", zap.Error(err))
	}
}

func loadConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.NewLoader(filepath.Dir(path)).Load(filepath.Base(path))
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadAll()
}

func run(cfg *config.GameConfig, seed int64, logger *zap.Logger) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", zap.Int64("seed", seed), zap.Bool("audio", cfg.Audio.Enabled))

	player := sound.NewPlayer(cfg.Audio, logger.Named("sound"))
	if err := player.Init(); err != nil {
		// the game is playable without sound
		logger.Warn("audio unavailable", zap.Error(err))
	}
	defer player.Close()

	keys := system.EbitenKeys{}
	sess, err := session.New(session.Options{
		Config: cfg,
		Logger: logger.Named("session"),
		Rand:   rand.New(rand.NewSource(seed)),
		Audio:  player,
		Keys:   keys,
	})
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}

	scene := playing.New(cfg, sess, keys, logger)
	g := game.New(scene, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)

	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale, cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle(cfg.Display.Title)
	ebiten.SetTPS(cfg.Display.Framerate)

	return ebiten.RunGame(g)
}
