// Alchemy: the Mystical Alchemy Workshop in your terminal.
//
// Usage:
//
//	alchemy [-config alchemy.toml] [-skin grimoire|pixel] [-no-music] [-verbose] [-quiet]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/alchemy/internal/audio"
	"github.com/hammamikhairi/alchemy/internal/chat"
	"github.com/hammamikhairi/alchemy/internal/config"
	"github.com/hammamikhairi/alchemy/internal/display"
	"github.com/hammamikhairi/alchemy/internal/domain"
	"github.com/hammamikhairi/alchemy/internal/idgen"
	"github.com/hammamikhairi/alchemy/internal/logger"
	"github.com/hammamikhairi/alchemy/internal/nav"
	"github.com/hammamikhairi/alchemy/internal/recipe"
	"github.com/hammamikhairi/alchemy/internal/workshop"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "TOML config file (default $"+config.EnvConfig+" or "+config.DefaultPath+")")
	skin := flag.String("skin", "", "UI skin: grimoire or pixel")
	music := flag.String("music", "", "background music WAV file")
	noMusic := flag.Bool("no-music", false, "disable background music")
	volume := flag.Int("volume", audio.DefaultVolume, "initial music volume (0-100)")
	replyDelay := flag.Duration("reply-delay", 0, "how long Arcanum thinks before replying")
	replyPolicy := flag.String("reply-policy", "", "reply scheduling: concurrent or single")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", "", "file to write logs to (use \"stderr\" to log to console)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags beat the file and the environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "skin":
			cfg.Skin = *skin
		case "music":
			cfg.Music = *music
		case "no-music":
			cfg.NoMusic = *noMusic
		case "volume":
			cfg.Volume = *volume
		case "reply-delay":
			cfg.ReplyDelay = config.Duration{Duration: *replyDelay}
		case "reply-policy":
			cfg.ReplyPolicy = *replyPolicy
		case "log-file":
			cfg.LogFile = *logFile
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		if dir := filepath.Dir(cfg.LogFile); dir != "" && dir != "." {
			_ = os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package to the same output so library
	// chatter stays off the alt screen.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logger.ParseLevel(*verbose, *quiet), logOut)
	log.Info("starting: skin=%s policy=%s delay=%s volume=%d", cfg.Skin, cfg.ReplyPolicy, cfg.ReplyDelay.Duration, cfg.Volume)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Wire dependencies.
	// One source feeds both the responder and the catalog.
	rnd := domain.NewLockedRand(rand.New(rand.NewSource(time.Now().UnixNano())))
	ids := idgen.New(nil)

	conv := chat.NewConversation(chat.NewCannedResponder(rnd), ids, log.With("chat"),
		chat.WithDelay(cfg.ReplyDelay.Duration),
		chat.WithPolicy(cfg.Policy()),
	)
	catalog := recipe.NewCatalog(ids, rnd, log.With("recipe"))

	ctrl := audio.NewController(musicElement(cfg, log.With("audio")), cfg.Volume, log.With("audio"))
	ctrl.SetLoop(cfg.Loop)

	ws := workshop.New(conv, catalog, ctrl, nav.New(log.With("nav")), log.With("workshop"))
	defer func() {
		if err := ws.Close(); err != nil {
			log.Warn("closing audio: %v", err)
		}
	}()

	ui := display.NewUI(ws, display.SkinFor(cfg.Skin), ctrl.Events(), log.With("display"))
	if err := ui.Run(ctx); err != nil {
		log.Error("display: %v", err)
	}
	log.Info("goodbye")
}

// musicElement opens the configured track, falling back to a silent
// element when music is off or the track or the audio device is missing.
func musicElement(cfg *config.Config, log *logger.Logger) domain.MediaElement {
	if cfg.NoMusic {
		log.Info("music disabled")
		return audio.NewNoOpElement(log)
	}

	track, err := audio.LoadWAV(cfg.Music)
	if err != nil {
		log.Warn("music unavailable, continuing without it: %v", err)
		return audio.NewNoOpElement(log)
	}

	el, err := audio.NewOtoElement(track, log)
	if err != nil {
		log.Warn("audio device init failed, continuing without music: %v", err)
		return audio.NewNoOpElement(log)
	}
	log.Info("music: %s (%d Hz, %d ch)", cfg.Music, track.SampleRate, track.Channels)
	return el
}
