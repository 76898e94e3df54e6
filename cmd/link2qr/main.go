package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/link2qr/cmd/link2qr/ui"
	"github.com/Varun5711/link2qr/internal/config"
	"github.com/Varun5711/link2qr/internal/debounce"
	"github.com/Varun5711/link2qr/internal/logger"
	"github.com/Varun5711/link2qr/internal/qrcode"
	"github.com/Varun5711/link2qr/internal/render"
	"github.com/Varun5711/link2qr/internal/theme"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{
		Service: "link2qr",
		Level:   logger.ParseLevel(cfg.Log.Level),
		Colors:  cfg.Log.Colors,
	})
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "link2qr")
		if err != nil {
			fmt.Printf("Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
		log.SetStdLog()
	}

	gen, err := newGenerator(cfg.QR)
	if err != nil {
		fmt.Printf("Failed to set up QR generator: %v\n", err)
		os.Exit(1)
	}
	svc := qrcode.NewCachingService(gen, cfg.Cache.Capacity, log.With("qrcode"))

	styles := ui.NewStyles(cfg.Theme)
	view := ui.NewQRModel(styles, cfg.Save.Dir)
	disp := ui.NewDispatcher()

	ctrl := render.NewController(svc, view, debounce.NewTimerScheduler(disp), disp, render.Options{
		Interval:     cfg.Render.DebounceInterval,
		AutoMode:     cfg.Render.AutoMode,
		Async:        cfg.Render.Async,
		VerifyOnSave: cfg.Save.Verify,
	}, log.With("render"))
	view.SetController(ctrl)

	p := tea.NewProgram(
		ui.NewModel(view, ui.NewSaveModel(styles)),
		tea.WithAltScreen(),
	)
	disp.Attach(p)

	log.Info("starting: debounce %s, size %dpx, level %s, auto %t",
		cfg.Render.DebounceInterval, cfg.QR.Size, cfg.QR.Level, cfg.Render.AutoMode)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	hits, misses := svc.Stats()
	log.Info("exiting: render cache %d hits, %d misses", hits, misses)
}

func newGenerator(cfg config.QRConfig) (*qrcode.Generator, error) {
	level, err := qrcode.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	fg, err := theme.RGBA(cfg.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}
	bg, err := theme.RGBA(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	return qrcode.NewGenerator(qrcode.Options{
		Level:      level,
		Border:     cfg.Border,
		Size:       cfg.Size,
		Foreground: fg,
		Background: bg,
	})
}
