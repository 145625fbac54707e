package pygmenu

import (
	"fmt"
	"image"
	"log/slog"
)

// Popup is a menu whose geometry has been fixed: labels are rendered,
// items are laid out and the window position is chosen.
type Popup struct {
	Settings  Settings
	Items     []MenuItem
	Labels    []*image.NRGBA
	Layout    Layout
	Cursor    image.Point
	Monitor   image.Rectangle
	Placement Placement
}

// Prepare lays out items and places the popup next to the cursor on the
// monitor the cursor is on.
func Prepare(display Display, settings Settings, items []MenuItem, labels []*image.NRGBA, logger *slog.Logger) (*Popup, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if len(labels) != len(items) {
		return nil, fmt.Errorf("got %d labels for %d items", len(labels), len(items))
	}

	p := &Popup{
		Settings: settings,
		Items:    items,
		Labels:   labels,
		Layout:   ComputeLayout(LabelSizes(labels), settings.OuterPadding, settings.LinePadding),
	}

	monitors, err := display.Monitors()
	if err != nil {
		return nil, fmt.Errorf("unable to enumerate monitors: %w", err)
	}
	p.Cursor = display.Cursor()
	var found bool
	p.Monitor, found, err = LocateMonitor(p.Cursor, monitors)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Warn("cursor is not on any monitor, using the first one",
			"cursor", p.Cursor, "monitor", p.Monitor)
	}

	p.Placement = Place(p.Layout.Size, p.Cursor, p.Monitor, settings.OuterPadding)
	logger.Debug("popup placed",
		"size", p.Layout.Size,
		"position", p.Placement.Position,
		"flip_left", p.Placement.FlipLeft,
		"flip_up", p.Placement.FlipUp,
	)
	return p, nil
}

// Bounds is the window rectangle in virtual-screen coordinates.
func (p *Popup) Bounds() image.Rectangle {
	return p.Placement.Bounds(p.Layout.Size)
}

// Show opens the popup window and runs its event loop until the user
// cancels or picks an item.
func (p *Popup) Show(display Display, dispatcher Dispatcher, logger *slog.Logger) error {
	win, err := display.OpenWindow("pyg-menu", p.Bounds(), p.Labels)
	if err != nil {
		return err
	}
	return NewLoop(win, p.Items, p.Layout, p.Settings, dispatcher, logger).Run()
}
