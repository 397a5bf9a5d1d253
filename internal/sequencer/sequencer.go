// Package sequencer walks a queue of tooltips, showing one at a time.
//
// The host supplies a Renderer that attaches and detaches tooltips and
// decides what a tap means. The Sequencer owns the queue and guarantees that
// at most one tooltip is attached: the next one is only shown after the
// renderer reports that the previous one is gone.
//
// A Sequencer is not safe for concurrent use. All methods, and the done
// function handed to Renderer.Close, must be called from the same goroutine.
package sequencer

import (
	"container/list"
	"log/slog"

	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/model"
)

// State is the sequencer state.
type State int

const (
	// Idle means no tooltip is attached.
	Idle State = iota
	// Showing means the head of the queue is attached.
	Showing
	// Closing means the head is being dismissed and the renderer has not
	// reported done yet.
	Closing
)

var stateNames = [...]string{
	Idle:    "idle",
	Showing: "showing",
	Closing: "closing",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Placement is everything a renderer needs to draw one tooltip.
type Placement struct {
	Descriptor model.Descriptor
	Layout     geometry.Layout
	Bounds     model.Bounds
	Index      int // Position within the current traversal, from 0
}

// Renderer attaches and detaches tooltips.
type Renderer interface {
	// Show attaches the tooltip. Showing a placement with the same Index as
	// the attached one replaces it in place.
	Show(p Placement) error
	// Close detaches the tooltip. It may run a transition, but must call
	// done exactly once when the tooltip is gone.
	Close(p Placement, done func())
}

// TapCallback is called for every tap on the attached tooltip.
type TapCallback func(p Placement)

// FinishCallback is called once when a traversal drains the queue.
type FinishCallback func()

// ErrorCallback receives Show errors that happen after an asynchronous
// close, when there is no caller to return them to.
type ErrorCallback func(err error)

// Sequencer is a FIFO of tooltip descriptors with at most one shown.
type Sequencer struct {
	engine   *geometry.Engine
	renderer Renderer
	logger   *slog.Logger

	queue  *list.List // List of model.Descriptor, head is shown first
	bounds model.Bounds

	state    State
	current  Placement
	index    int
	finished bool
	epoch    uint64 // Bumped by Reset so stale done calls pop nothing

	detaching    bool // A close started before Reset is still pending
	startPending bool // Start was called while detaching

	onTapped   TapCallback
	onFinished FinishCallback
	onError    ErrorCallback
}

// New creates a sequencer. The engine lays out each tooltip against the
// bounds set with SetBounds.
func New(engine *geometry.Engine, renderer Renderer, logger *slog.Logger) *Sequencer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{
		engine:   engine,
		renderer: renderer,
		logger:   logger,
		queue:    list.New(),
	}
}

// OnTapped sets the callback for taps.
func (s *Sequencer) OnTapped(cb TapCallback) {
	s.onTapped = cb
}

// OnFinished sets the callback for traversal completion.
func (s *Sequencer) OnFinished(cb FinishCallback) {
	s.onFinished = cb
}

// OnError sets the callback for Show errors after asynchronous closes.
func (s *Sequencer) OnError(cb ErrorCallback) {
	s.onError = cb
}

// Add appends a descriptor to the tail of the queue. It never shows
// anything. Adding after a finished traversal starts a new one.
func (s *Sequencer) Add(d model.Descriptor) {
	if s.finished {
		s.finished = false
		s.index = 0
	}
	s.queue.PushBack(d)
	s.logger.Debug("tooltip queued", "id", d.ID, "queued", s.queue.Len())
}

// Start shows the head of the queue. With an empty queue it signals
// completion, once per traversal. It does nothing while a tooltip is
// attached or closing. After a Reset the start is deferred until the old
// tooltip has been closed.
func (s *Sequencer) Start() error {
	if s.state != Idle {
		if s.detaching {
			s.startPending = true
		}
		return nil
	}

	front := s.queue.Front()
	if front == nil {
		s.finish()
		return nil
	}

	p := s.place(front.Value.(model.Descriptor))
	if err := s.renderer.Show(p); err != nil {
		return err
	}

	s.state = Showing
	s.current = p
	s.logger.Debug("tooltip shown",
		"id", p.Descriptor.ID,
		"index", p.Index,
		"frame_x", p.Layout.Frame.Origin.X,
		"frame_y", p.Layout.Frame.Origin.Y,
		"frame_w", p.Layout.Frame.Size.Width,
		"frame_h", p.Layout.Frame.Size.Height,
		"clamped", p.Layout.Clamped,
	)
	return nil
}

// Advance dismisses the attached tooltip and shows the next one, or signals
// completion when none are left. When idle it behaves like Start. Calls made
// while a close is pending are ignored.
//
// If the renderer completes the close synchronously, any Show error for the
// next tooltip is returned. Otherwise it goes to the OnError callback.
func (s *Sequencer) Advance() error {
	switch s.state {
	case Closing:
		s.logger.Debug("advance ignored, close pending")
		return nil
	case Idle:
		return s.Start()
	}

	s.state = Closing
	p := s.current
	epoch := s.epoch
	inCall := true
	called := false
	var err error

	s.logger.Debug("closing tooltip", "id", p.Descriptor.ID, "index", p.Index)
	s.renderer.Close(p, func() {
		if called {
			return
		}
		called = true
		if epoch != s.epoch {
			s.detached()
			return
		}
		showErr := s.closed()
		if inCall {
			err = showErr
			return
		}
		if showErr != nil {
			s.reportError(showErr)
		}
	})
	inCall = false

	return err
}

// Tap forwards a tap on the attached tooltip to the OnTapped callback. It
// never advances by itself.
func (s *Sequencer) Tap() {
	p, ok := s.Current()
	if !ok {
		return
	}
	s.logger.Debug("tooltip tapped", "id", p.Descriptor.ID, "index", p.Index)
	if s.onTapped != nil {
		s.onTapped(p)
	}
}

// SetBounds changes the screen bounds. An attached tooltip is laid out again
// and shown in place.
func (s *Sequencer) SetBounds(b model.Bounds) error {
	s.bounds = b
	if s.state != Showing {
		return nil
	}

	p := s.place(s.current.Descriptor)
	if err := s.renderer.Show(p); err != nil {
		return err
	}
	s.current = p
	s.logger.Debug("tooltip relaid out",
		"id", p.Descriptor.ID,
		"width", b.Width,
		"height", b.Height,
		"clamped", p.Layout.Clamped,
	)
	return nil
}

// Bounds returns the current screen bounds.
func (s *Sequencer) Bounds() model.Bounds {
	return s.bounds
}

// Current returns the attached tooltip, if any. A tooltip that is closing is
// still attached.
func (s *Sequencer) Current() (Placement, bool) {
	if s.state == Idle {
		return Placement{}, false
	}
	return s.current, true
}

// Len returns the number of queued descriptors, including an attached head.
func (s *Sequencer) Len() int {
	return s.queue.Len()
}

// State returns the sequencer state.
func (s *Sequencer) State() State {
	return s.state
}

// Pending returns the queued descriptors in order, head first.
func (s *Sequencer) Pending() []model.Descriptor {
	out := make([]model.Descriptor, 0, s.queue.Len())
	for e := s.queue.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(model.Descriptor))
	}
	return out
}

// Reset detaches the attached tooltip and empties the queue without
// signalling completion. The sequencer stays Closing until the renderer
// calls done, so the next tooltip never overlaps the old one.
func (s *Sequencer) Reset() {
	s.epoch++
	s.queue.Init()
	s.index = 0
	s.finished = false
	s.startPending = false

	switch s.state {
	case Showing:
		s.state = Closing
		s.detaching = true
		s.renderer.Close(s.current, s.detached)
	case Closing:
		s.detaching = true
	}
	s.logger.Debug("sequencer reset", "state", s.state.String())
}

// Replace resets the sequencer and queues ds. Call Start to show the first.
func (s *Sequencer) Replace(ds []model.Descriptor) {
	s.Reset()
	for _, d := range ds {
		s.Add(d)
	}
}

func (s *Sequencer) place(d model.Descriptor) Placement {
	return Placement{
		Descriptor: d,
		Layout:     s.engine.Layout(d, s.bounds),
		Bounds:     s.bounds,
		Index:      s.index,
	}
}

// closed pops the dismissed head and moves on.
func (s *Sequencer) closed() error {
	if front := s.queue.Front(); front != nil {
		s.queue.Remove(front)
	}
	s.state = Idle
	s.current = Placement{}
	s.index++
	s.logger.Debug("tooltip closed", "remaining", s.queue.Len())
	return s.Start()
}

// detached completes a close that was interrupted by Reset. Nothing is
// popped; a deferred Start runs now.
func (s *Sequencer) detached() {
	if !s.detaching {
		return
	}
	s.detaching = false
	s.state = Idle
	s.current = Placement{}
	s.logger.Debug("tooltip detached")

	if !s.startPending {
		return
	}
	s.startPending = false
	if err := s.Start(); err != nil {
		s.reportError(err)
	}
}

func (s *Sequencer) finish() {
	if s.finished {
		return
	}
	s.finished = true
	s.logger.Debug("tour finished", "shown", s.index)
	if s.onFinished != nil {
		s.onFinished()
	}
}

func (s *Sequencer) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
		return
	}
	s.logger.Warn("failed to show tooltip", "error", err)
}
