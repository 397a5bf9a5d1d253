// Package tui provides the BubbleTea-based terminal host for a tour.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/jmylchreest/tipwalk/internal/canvas"
	"github.com/jmylchreest/tipwalk/internal/config"
	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/measure"
	"github.com/jmylchreest/tipwalk/internal/model"
	"github.com/jmylchreest/tipwalk/internal/sequencer"
	"github.com/jmylchreest/tipwalk/internal/theme"
)

// screen is the sequencer renderer. It keeps the attached placement for
// View to draw; closing is immediate.
type screen struct {
	current *sequencer.Placement
	shows   int
	onShown func(d model.Descriptor, first bool)
}

func (s *screen) Show(p sequencer.Placement) error {
	if s.current == nil || s.current.Index != p.Index {
		s.shows++
		if s.onShown != nil {
			s.onShown(p.Descriptor, p.Index == 0)
		}
	}
	s.current = &p
	return nil
}

func (s *screen) Close(_ sequencer.Placement, done func()) {
	s.current = nil
	done()
}

// tour is the state shared by every copy of the Model. Sequencer callbacks
// write to it from inside Update.
type tour struct {
	seq    *sequencer.Sequencer
	screen *screen

	tips     []model.Descriptor // Anchors in cells, as loaded
	taps     int
	finished bool
	started  time.Time
	elapsed  time.Duration
	notice   string // Error raised by a callback, shown on the next update
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	Theme  *theme.Theme
	Tips   []model.Descriptor
	Logger *slog.Logger

	// OnShown is called once for every tip shown, with first set for the
	// first tip of a traversal.
	OnShown func(d model.Descriptor, first bool)
	// OnFinished is called when a traversal ends.
	OnFinished func()
}

// Model is the main TUI model.
type Model struct {
	cfg    *config.Config
	theme  *theme.Theme
	logger *slog.Logger

	tour *tour

	help   help.Model
	keys   KeyMap
	styles statusStyles

	width  int
	height int
	ready  bool

	// Status message
	statusMsg string
	statusErr bool

	now func() time.Time
}

// New creates a new TUI model for tips. Tip anchors are terminal cells.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	t := opts.Theme
	if t == nil {
		t = theme.NewDefaultTheme()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine := geometry.NewEngine(measure.NewCellMeasurer(), cfg.Geometry.Constants())
	scr := &screen{onShown: opts.OnShown}
	tr := &tour{
		seq:    sequencer.New(engine, scr, logger),
		screen: scr,
	}
	tr.seq.OnTapped(func(sequencer.Placement) {
		tr.taps++
	})
	tr.seq.OnError(func(err error) {
		tr.notice = err.Error()
	})

	m := Model{
		cfg:    cfg,
		theme:  t,
		logger: logger,
		tour:   tr,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		styles: newStatusStyles(t),
		now:    time.Now,
	}
	tr.seq.OnFinished(func() {
		tr.finished = true
		tr.elapsed = m.now().Sub(tr.started)
		logger.Info("tour finished", "tips", len(tr.tips), "taps", tr.taps)
		if opts.OnFinished != nil {
			opts.OnFinished()
		}
	})
	m.load(opts.Tips)

	return m
}

// load queues tips for a fresh traversal.
func (m Model) load(tips []model.Descriptor) {
	m.tour.tips = tips
	m.tour.taps = 0
	m.tour.finished = false
	m.tour.elapsed = 0
	m.tour.started = m.now()
	m.tour.seq.Replace(canvas.CellAnchors(tips))
}

// Init initializes the TUI. The tour starts with the first window size.
func (m Model) Init() tea.Cmd {
	return nil
}

type reloadMsg struct {
	tips []model.Descriptor
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct{}

type copyResultMsg struct {
	err error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.withNotice(m.handleKey(msg))

	case tea.MouseMsg:
		return m.withNotice(m.handleMouse(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		first := !m.ready
		m.ready = true

		if err := m.relayout(); err != nil {
			return m, showStatus("Layout failed: "+err.Error(), true)
		}
		if first {
			return m, m.start()
		}
		return m, nil

	case reloadMsg:
		m.logger.Info("tour reloaded", "tips", len(msg.tips))
		m.load(msg.tips)
		if !m.ready {
			return m, nil
		}
		if cmd := m.start(); cmd != nil {
			return m, cmd
		}
		return m, showStatus(fmt.Sprintf("Tour reloaded (%s)", english.Plural(len(msg.tips), "tip", "")), false)

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return clearStatusMsg{}
		})

	case clearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			return m, showStatus("Copy failed: "+msg.err.Error(), true)
		}
		return m, showStatus("Copied to clipboard", false)
	}

	return m, nil
}

func showStatus(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// withNotice surfaces an error left by a sequencer callback.
func (m Model) withNotice(next tea.Model, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.tour.notice == "" {
		return next, cmd
	}
	notice := m.tour.notice
	m.tour.notice = ""
	return next, tea.Batch(cmd, showStatus(notice, true))
}

// handleKey handles key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if err := m.relayout(); err != nil {
			return m, showStatus("Layout failed: "+err.Error(), true)
		}
		return m, nil

	case key.Matches(msg, m.keys.Tap):
		return m, m.tap()

	case key.Matches(msg, m.keys.Next):
		return m, m.advance()

	case key.Matches(msg, m.keys.Restart):
		m.load(m.tour.tips)
		return m, m.start()

	case key.Matches(msg, m.keys.Copy):
		if p := m.tour.screen.current; p != nil {
			return m, m.copyToClipboard(p.Descriptor.Text)
		}
		return m, nil
	}

	return m, nil
}

// handleMouse turns a left click on the tooltip into a tap.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	p := m.tour.screen.current
	if p == nil || !canvas.Hit(p.Layout, msg.X, msg.Y) {
		return m, nil
	}
	return m, m.tap()
}

func (m Model) tap() tea.Cmd {
	m.tour.seq.Tap()
	if m.cfg.TUI.AdvanceOnTap {
		return m.advance()
	}
	return nil
}

func (m Model) advance() tea.Cmd {
	if err := m.tour.seq.Advance(); err != nil {
		return showStatus("Show failed: "+err.Error(), true)
	}
	return nil
}

func (m Model) start() tea.Cmd {
	if err := m.tour.seq.Start(); err != nil {
		return showStatus("Show failed: "+err.Error(), true)
	}
	return nil
}

// relayout hands the space above the footer to the sequencer.
func (m Model) relayout() error {
	if !m.ready {
		return nil
	}
	return m.tour.seq.SetBounds(model.Bounds{
		Width:  float64(m.width),
		Height: float64(m.canvasHeight()),
	})
}

func (m Model) canvasHeight() int {
	return max(m.height-m.footerHeight(), 0)
}

func (m Model) footerHeight() int {
	h := 1
	if m.cfg.TUI.ShowHelp || m.help.ShowAll {
		h += lipgloss.Height(m.help.View(m.keys))
	}
	return h
}

// copyToClipboard copies text to the system clipboard.
func (m Model) copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := copyText(text, m.cfg)
		return copyResultMsg{err: err}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.tour.finished {
		return m.viewSummary()
	}
	return m.viewTour()
}

func (m Model) viewTour() string {
	c := canvas.New(m.width, m.canvasHeight())
	for _, d := range m.tour.tips {
		c.DrawMarker(int(d.Anchor.X), int(d.Anchor.Y), m.cfg.TUI.Marker, canvas.StyleMuted)
	}

	styles := canvasStyles(m.theme, m.cfg.Drawing.Style())
	if p := m.tour.screen.current; p != nil {
		styles = canvasStyles(m.theme, p.Descriptor.Drawing)
		x, y := canvas.AnchorCell(p.Descriptor.Anchor, p.Descriptor.Side)
		c.DrawMarker(x, y, m.cfg.TUI.Marker, canvas.StyleMarker)
		c.DrawTooltip(p.Layout, p.Descriptor.Side)
	}

	var s strings.Builder
	s.WriteString(c.Render(styles))
	s.WriteString("\n" + m.viewStatus())
	if m.cfg.TUI.ShowHelp || m.help.ShowAll {
		s.WriteString("\n" + m.help.View(m.keys))
	}
	return s.String()
}

func (m Model) viewStatus() string {
	if m.statusMsg != "" {
		if m.statusErr {
			return m.styles.err.Render(m.statusMsg)
		}
		return m.styles.info.Render(m.statusMsg)
	}

	p := m.tour.screen.current
	if p == nil {
		return ""
	}
	status := fmt.Sprintf("%s of %d · %s", humanize.Ordinal(p.Index+1), len(m.tour.tips), p.Descriptor.ID)
	if p.Layout.Clamped {
		status += " · clamped"
	}
	return m.styles.info.Render(status)
}

func (m Model) viewSummary() string {
	var s strings.Builder

	if len(m.tour.tips) == 0 {
		s.WriteString(m.styles.title.Render("Nothing to show") + "\n")
		s.WriteString("The tour has no tips.\n")
	} else {
		s.WriteString(m.styles.title.Render("Tour finished") + "\n")
		fmt.Fprintf(&s, "%s and %s in %s.\n",
			english.Plural(len(m.tour.tips), "tip", ""),
			english.Plural(m.tour.taps, "tap", ""),
			m.tour.elapsed.Round(time.Second))
	}

	if m.statusMsg != "" {
		s.WriteString("\n" + m.viewStatus() + "\n")
	}
	s.WriteString("\n" + m.styles.muted.Render("Press r to restart or q to quit"))
	return s.String()
}
