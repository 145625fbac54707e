package pygmenu

import (
	"image"
	"image/color"
	"log/slog"
)

// State is the state of a Loop.
type State int

const (
	StateRunning State = iota
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Event is an input event delivered by a Window.
type Event interface {
	isEvent()
}

type (
	// QuitEvent is sent when the window system asks the popup to close.
	QuitEvent struct{}
	// KeyDownEvent is a key press.
	KeyDownEvent struct {
		Escape bool
	}
	// FocusLostEvent is sent when the popup loses input focus.
	FocusLostEvent struct{}
	// PointerMotionEvent carries the window-relative pointer position.
	PointerMotionEvent struct {
		X, Y int
	}
	// ButtonDownEvent is a pointer button press. Primary reports whether
	// the primary button is among the buttons held at that moment.
	ButtonDownEvent struct {
		Primary bool
	}
)

func (QuitEvent) isEvent() {}
func (KeyDownEvent) isEvent() {}
func (FocusLostEvent) isEvent() {}
func (PointerMotionEvent) isEvent() {}
func (ButtonDownEvent) isEvent() {}

// Window is a popup window created by a Display.
type Window interface {
	/* window-relative pointer position */
	Pointer() image.Point
	Fill(r image.Rectangle, c color.NRGBA) error
	/* draw the pre-rendered label of item i at the given point */
	DrawLabel(i int, at image.Point) error
	Present() error
	/* blocks until the next event; nil for events the popup has no use for */
	WaitEvent() Event
	Close() error
}

// Dispatcher starts the command of a selected item.
type Dispatcher interface {
	Dispatch(command string) error
}

// Loop is the event loop of a shown popup. It owns the hover state and
// repaints the window only on the first paint and whenever the hovered item
// changes.
type Loop struct {
	win        Window
	items      []MenuItem
	layout     Layout
	settings   Settings
	dispatcher Dispatcher
	logger     *slog.Logger

	state     State
	hover     int
	prevHover int
	painted   bool
	repaints  int
}

// NewLoop creates a loop drawing items into win. The layout must have been
// computed from the same items.
func NewLoop(win Window, items []MenuItem, layout Layout, settings Settings, dispatcher Dispatcher, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		win:        win,
		items:      items,
		layout:     layout,
		settings:   settings,
		dispatcher: dispatcher,
		logger:     logger,
		hover:      -1,
		prevHover:  -1,
	}
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Hover returns the index of the hovered item, -1 if none.
func (l *Loop) Hover() int { return l.hover }

// Repaints returns how many frames were presented so far.
func (l *Loop) Repaints() int { return l.repaints }

// Start computes the initial hover item and paints the first frame.
func (l *Loop) Start() error {
	if l.painted {
		return nil
	}
	l.hover = l.layout.HoverAt(l.win.Pointer().Y)
	if err := l.repaint(); err != nil {
		return err
	}
	l.prevHover = l.hover
	l.painted = true
	return nil
}

// Run paints the first frame and processes events until the loop terminates.
// The window is closed on return.
func (l *Loop) Run() error {
	if err := l.Start(); err != nil {
		l.terminate()
		return err
	}
	for l.state == StateRunning {
		ev := l.win.WaitEvent()
		if ev == nil {
			continue
		}
		if err := l.Handle(ev); err != nil {
			l.terminate()
			return err
		}
	}
	return nil
}

// Handle applies a single event.
func (l *Loop) Handle(ev Event) error {
	if l.state == StateTerminated {
		return nil
	}
	switch ev := ev.(type) {
	case QuitEvent:
		l.logger.Debug("quit requested")
		l.terminate()
	case KeyDownEvent:
		if ev.Escape {
			l.logger.Debug("escape pressed")
			l.terminate()
		}
	case FocusLostEvent:
		l.logger.Debug("focus lost")
		l.terminate()
	case PointerMotionEvent:
		l.hover = l.layout.HoverAt(ev.Y)
		if l.hover != l.prevHover {
			if err := l.repaint(); err != nil {
				return err
			}
			l.prevHover = l.hover
		}
	case ButtonDownEvent:
		if !ev.Primary || l.hover == -1 {
			break
		}
		item := l.items[l.hover]
		if !item.Interactive() {
			break
		}
		command := NormalizeCommand(item.Command)
		l.logger.Debug("dispatching command", "item", l.hover, "command", command)
		if err := l.dispatcher.Dispatch(command); err != nil {
			l.logger.Error("unable to start command", "command", command, "error", err)
		}
		l.terminate()
	}
	return nil
}

func (l *Loop) terminate() {
	if l.state == StateTerminated {
		return
	}
	l.state = StateTerminated
	if err := l.win.Close(); err != nil {
		l.logger.Warn("unable to close window", "error", err)
	}
}

func (l *Loop) repaint() error {
	bounds := image.Rectangle{Max: l.layout.Size}
	if err := l.win.Fill(bounds, color.NRGBA(l.settings.BgColor)); err != nil {
		return err
	}
	if l.hover != -1 {
		if err := l.win.Fill(l.layout.Items[l.hover], color.NRGBA(l.settings.HighlightColor)); err != nil {
			return err
		}
	}
	for i := range l.layout.Items {
		if err := l.win.DrawLabel(i, l.layout.TextOrigin(i)); err != nil {
			return err
		}
	}
	if err := l.win.Present(); err != nil {
		return err
	}
	l.repaints++
	return nil
}
