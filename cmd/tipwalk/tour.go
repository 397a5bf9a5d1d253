package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tipwalk/internal/adapter/input"
	"github.com/jmylchreest/tipwalk/internal/core"
	"github.com/jmylchreest/tipwalk/internal/model"
	"github.com/jmylchreest/tipwalk/internal/store"
	"github.com/jmylchreest/tipwalk/internal/theme"
	"github.com/jmylchreest/tipwalk/internal/tui"
)

// logFileEnv names a file that receives logs while the tour owns the screen.
const logFileEnv = "TIPWALK_LOG"

var tourOpts struct {
	watch   bool
	noMouse bool
	from    string
	theme   string
	resume  bool
}

var tourCmd = &cobra.Command{
	Use:   "tour FILE",
	Short: "Run a tour in the terminal",
	Long: `Run a tour in the terminal.

Anchors are terminal cells counted from the top left corner. Each tooltip is
drawn next to its anchor with the arrow touching it, and stays inside the
screen when the terminal is resized.

Key bindings:
  space/enter  Tap the tooltip (advances by default)
  n, →         Next tooltip
  r            Restart the tour
  y            Copy the tooltip text to the clipboard
  ?            Toggle help
  q            Quit

Set ` + logFileEnv + ` together with --verbose to write logs to a file while the
tour runs.`,
	Args: cobra.ExactArgs(1),
	RunE: runTour,
}

func init() {
	rootCmd.AddCommand(tourCmd)
	addTourFlags(tourCmd)
}

func addTourFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&tourOpts.watch, "watch", "w", false,
		"Restart the tour when the file changes")
	cmd.Flags().BoolVar(&tourOpts.noMouse, "no-mouse", false,
		"Disable mouse taps")
	cmd.Flags().StringVar(&tourOpts.from, "from", "",
		"Start at this tip (ID or 1-based index)")
	cmd.Flags().StringVar(&tourOpts.theme, "theme", "",
		"Color theme (default: from config)")
	cmd.Flags().BoolVar(&tourOpts.resume, "resume", false,
		"Continue an unfinished tour at the last tip shown")
}

func runTour(cmd *cobra.Command, args []string) error {
	c := getConfig()
	if tourOpts.noMouse {
		c.TUI.Mouse = false
	}

	// Load tips
	source := args[0]
	tips, err := loadTips(source, terminalOptions(c))
	if err != nil {
		return err
	}
	if tourOpts.from != "" {
		if tips, err = core.From(tips, tourOpts.from); err != nil {
			return err
		}
	}

	// Resume where the last run stopped
	var progress *tourProgress
	if source != input.StdinSource {
		progress = newTourProgress(source)
		if progress != nil && tourOpts.resume && tourOpts.from == "" {
			tips = progress.resume(tips)
		}
	}

	runLogger, closeLog, err := tourLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := tui.RunOptions{
		Config: c,
		Theme:  loadTheme(c.Theme.Name),
		Tips:   tips,
		Logger: runLogger,
	}

	// Record progress for file tours
	if progress != nil {
		opts.OnShown = progress.shown
		opts.OnFinished = progress.finished
	}

	// Watch for changes
	if tourOpts.watch {
		if source == input.StdinSource {
			logger.Warn("cannot watch standard input, ignoring --watch")
		} else {
			opts.Source = input.NewFileAdapter(source, terminalOptions(c))
			opts.Transform = reloadTransform(tourOpts.from, runLogger)
		}
	}

	return tui.Run(opts)
}

// reloadTransform reapplies --from to reloaded tours. A tip that no longer
// exists restarts from the beginning.
func reloadTransform(from string, log *slog.Logger) func([]model.Descriptor) []model.Descriptor {
	if from == "" {
		return nil
	}
	return func(tips []model.Descriptor) []model.Descriptor {
		rest, err := core.From(tips, from)
		if err != nil {
			log.Warn("reloaded tour has no start tip, starting from the top", "from", from, "error", err)
			return tips
		}
		return rest
	}
}

// loadTheme resolves the theme from the flag, then the config.
func loadTheme(name string) *theme.Theme {
	if tourOpts.theme != "" {
		name = tourOpts.theme
	}
	t, err := theme.Load(name)
	if err != nil {
		logger.Warn("failed to load theme, using default", "theme", name, "error", err)
		return theme.NewDefaultTheme()
	}
	return t
}

// tourLogger returns the logger used while the alt screen is active.
func tourLogger() (*slog.Logger, func(), error) {
	path := os.Getenv(logFileEnv)
	if path == "" || !globalOpts.verbose {
		return logger, func() {}, nil
	}

	f, err := tea.LogToFile(path, "tipwalk")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	l := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return l, func() { _ = f.Close() }, nil
}

// tourProgress records how far a tour file got. Failures are logged and
// never stop the tour.
type tourProgress struct {
	file *store.ProgressFile
	key  string
	now  func() time.Time
}

func newTourProgress(source string) *tourProgress {
	file, err := store.NewProgressFile("")
	if err != nil {
		logger.Warn("tour progress disabled", "error", err)
		return nil
	}
	return &tourProgress{file: file, key: store.TourKey(source), now: time.Now}
}

// resume drops the tips before the last one shown in an unfinished run.
func (p *tourProgress) resume(tips []model.Descriptor) []model.Descriptor {
	if p == nil {
		return tips
	}
	all, err := p.file.Load()
	if err != nil {
		logger.Warn("failed to load tour progress", "error", err)
		return tips
	}
	r, _ := all.Get(p.key)
	id := r.ResumeFrom()
	if id == "" {
		return tips
	}
	rest, err := core.From(tips, id)
	if err != nil {
		logger.Debug("last tip is gone, starting from the top", "id", id)
		return tips
	}
	logger.Debug("resuming tour", "id", id, "remaining", len(rest))
	return rest
}

func (p *tourProgress) shown(d model.Descriptor, first bool) {
	if err := p.file.Update(p.key, func(r *store.Record) { r.Shown(d.ID, first, p.now()) }); err != nil {
		logger.Warn("failed to save tour progress", "error", err)
	}
}

func (p *tourProgress) finished() {
	if err := p.file.Update(p.key, func(r *store.Record) { r.Finish(p.now()) }); err != nil {
		logger.Warn("failed to save tour progress", "error", err)
	}
}
