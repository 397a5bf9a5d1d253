package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/tipwalk/internal/adapter/input"
	"github.com/jmylchreest/tipwalk/internal/config"
	"github.com/jmylchreest/tipwalk/internal/model"
	"github.com/jmylchreest/tipwalk/internal/theme"
)

// RunOptions configures the TUI.
type RunOptions struct {
	Config *config.Config
	Theme  *theme.Theme
	Tips   []model.Descriptor
	Logger *slog.Logger

	// Source is reloaded when it changes on disk (nil = no watching).
	Source *input.FileAdapter
	// Transform is applied to every reload before the tour restarts.
	Transform func([]model.Descriptor) []model.Descriptor

	OnShown    func(d model.Descriptor, first bool)
	OnFinished func()
}

// Run starts the TUI with the given options.
func Run(opts RunOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := New(Options{
		Config: cfg,
		Theme:  opts.Theme,
		Tips:   opts.Tips,
		Logger: logger,

		OnShown:    opts.OnShown,
		OnFinished: opts.OnFinished,
	})

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.TUI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, programOpts...)

	if opts.Source != nil {
		watcher, err := input.NewWatcher(opts.Source, func(tips []model.Descriptor) {
			if opts.Transform != nil {
				tips = opts.Transform(tips)
			}
			p.Send(reloadMsg{tips: tips})
		}, logger)
		if err != nil {
			logger.Warn("failed to create tour watcher", "error", err)
		} else {
			if err := watcher.Start(); err != nil {
				logger.Warn("failed to start tour watcher", "error", err)
			}
			defer watcher.Stop()
		}
	}

	_, err := p.Run()
	return err
}
