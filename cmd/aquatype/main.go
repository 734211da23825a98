package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/term"

	"github.com/lixenwraith/aquatype/audio"
	"github.com/lixenwraith/aquatype/catalog"
	"github.com/lixenwraith/aquatype/command"
	"github.com/lixenwraith/aquatype/config"
	"github.com/lixenwraith/aquatype/controller"
	"github.com/lixenwraith/aquatype/core"
	"github.com/lixenwraith/aquatype/raster"
	"github.com/lixenwraith/aquatype/render"
	"github.com/lixenwraith/aquatype/server"
	"github.com/lixenwraith/aquatype/stage"
)

var (
	configFlag    = flag.String("config", "aquatype.toml", "Config file")
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/aquatype.log")
	pictDirFlag   = flag.String("picts", "", "Picture directory (overrides config)")
	framerateFlag = flag.Int("fps", 0, "Frames per second (overrides config)")
	langFlag      = flag.String("lang", "", "UI and speech language (overrides config)")
	randomFlag    = flag.Bool("random", false, "Random picture order")
	noAudioFlag   = flag.Bool("no-audio", false, "Disable speech and sound")
	demoFlag      = flag.Bool("demo", false, "Type automatically and print frames as ANSI text")
)

func main() {
	defer core.Recover()
	flag.Parse()

	logger, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "aquatype: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return cfg, err
	}
	if *pictDirFlag != "" {
		cfg.Assets.PictDir = *pictDirFlag
	}
	if *framerateFlag > 0 {
		cfg.Stage.Framerate = *framerateFlag
	}
	if *langFlag != "" {
		cfg.Game.Lang = *langFlag
	}
	if *randomFlag {
		cfg.Game.Random = true
	}
	if *noAudioFlag {
		cfg.Audio.Enabled = false
	}
	cfg.Resolve(int(os.Stdout.Fd()))
	return cfg, cfg.Validate()
}

func run(logger *log.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("config", "stage", fmt.Sprintf("%dx%d", cfg.Stage.Width, cfg.Stage.Height), "fps", cfg.Stage.Framerate)

	lang := cfg.Game.Lang
	if lang == "" {
		lang = "en"
	}
	gotext.Configure(cfg.Game.LocaleDir, lang, "default")

	cat, err := catalog.Load(cfg.Assets.PictDir)
	if err != nil {
		return err
	}
	ras, err := raster.New(raster.Options{FontPath: cfg.Assets.FontPath})
	if err != nil {
		return err
	}

	stageOpts := []stage.Option{stage.WithLogger(logger)}
	if dir, ok, _ := cfg.Stage.Fade(); ok {
		stageOpts = append(stageOpts, stage.WithFadeDirection(dir))
	}
	st := stage.New(stage.Config{
		Width:       cfg.Stage.Width,
		Height:      cfg.Stage.Height,
		SpriteWidth: cfg.Stage.SpriteWidth,
		Framerate:   cfg.Stage.Framerate,
	}, ras, stageOpts...)

	speaker, closeAudio := audio.New(audio.Config{
		Enabled:      cfg.Audio.Enabled,
		VoiceCommand: cfg.Audio.VoiceCommand,
		MasterVolume: cfg.Audio.MasterVolume,
	}, logger)
	defer closeAudio()

	demo := *demoFlag || !term.IsTerminal(int(os.Stdout.Fd()))

	var renderer render.Renderer
	var screen tcell.Screen
	if demo {
		renderer = render.NewANSIRenderer(os.Stdout)
	} else {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		core.SetCrashCleanup(screen.Fini)
		defer screen.Fini()
		screen.HideCursor()
		renderer = render.NewScreenRenderer(screen)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue := command.NewQueue()
	srv := server.New(server.Config{
		Framerate: cfg.Stage.Framerate,
		Colors: server.Colors{
			Normal: render.Pair{Fg: cfg.Colors.Normal, Bg: cfg.Colors.NormalBg},
			Info:   render.Pair{Fg: cfg.Colors.Info, Bg: cfg.Colors.InfoBg},
		},
		Announce: cfg.Audio.Announce,
		Lang:     cfg.Game.Lang,
	}, st, queue, renderer, server.WithSpeaker(speaker), server.WithLogger(logger))

	srvDone := make(chan error, 1)
	core.Go(func() { srvDone <- srv.Run(ctx) })

	speechLang := ""
	if cfg.Audio.Enabled && !cfg.Audio.Announce {
		speechLang = "en"
	}
	ctl := controller.New(cat, command.NewClient(queue), controller.Config{
		Targets: cfg.Game.Targets,
		Random:  cfg.Game.Random,
		Lang:    speechLang,
	}, controller.WithLogger(logger))

	if demo {
		playDemo(ctx, ctl)
	} else {
		playInteractive(ctx, screen, ctl)
	}

	queue.Close()
	if err := <-srvDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	results := ctl.Results()
	logger.Info("session finished", "words", len(results))
	return nil
}

// playInteractive feeds tcell key events to the controller until ESC
func playInteractive(ctx context.Context, screen tcell.Screen, ctl *controller.Controller) {
	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	ticker := time.NewTicker(controller.DefaultInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return
				case tcell.KeyRune:
					ctl.HandleKey(ev.Rune())
				}
			case *tcell.EventResize:
				// Stage regions are fixed at startup; repaint what fits
				screen.Sync()
			}
		case <-ticker.C:
			ctl.Tick()
		}
	}
}

// playDemo types the expected keys itself and stops after one full session
func playDemo(ctx context.Context, ctl *controller.Controller) {
	ticker := time.NewTicker(controller.DefaultInterval)
	defer ticker.Stop()

	started := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ctl.Tick()
			if ctl.Mode() == controller.ModeTitle && started {
				return
			}
			if r, ok := ctl.Next(); ok {
				started = true
				ctl.HandleKey(r)
			}
		}
	}
}
