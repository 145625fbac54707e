package pygmenu

import (
	"errors"
	"image"
)

// ErrNoMonitors is returned when the display reports no monitors at all.
var ErrNoMonitors = errors.New("no monitors available")

/* strict on all four edges, a point on the border is outside */
func insideMonitor(mon image.Rectangle, p image.Point) bool {
	return p.X > mon.Min.X && p.Y > mon.Min.Y &&
		p.X < mon.Max.X && p.Y < mon.Max.Y
}

// LocateMonitor returns the first monitor containing cursor. If no monitor
// contains it, the first monitor is returned and found is false.
func LocateMonitor(cursor image.Point, monitors []image.Rectangle) (mon image.Rectangle, found bool, err error) {
	if len(monitors) == 0 {
		return image.Rectangle{}, false, ErrNoMonitors
	}
	for _, m := range monitors {
		if insideMonitor(m, cursor) {
			return m, true, nil
		}
	}
	return monitors[0], false, nil
}

// Placement is the top-left corner of the popup in virtual-screen
// coordinates and the directions it grows in.
type Placement struct {
	Position image.Point
	FlipLeft bool /* grows leftward from the cursor */
	FlipUp   bool /* grows upward from the cursor */
}

// Bounds returns the rectangle covered by a popup of the given size.
func (pl Placement) Bounds(size image.Point) image.Rectangle {
	return image.Rectangle{Min: pl.Position, Max: pl.Position.Add(size)}
}

// Place positions a popup of the given size next to cursor on mon. The popup
// grows right and down unless that would leave the monitor, in which case it
// flips. gap is kept between cursor and popup. Popups larger than the
// monitor are not clamped.
func Place(size, cursor image.Point, mon image.Rectangle, gap int) Placement {
	rel := cursor.Sub(mon.Min)

	var pl Placement
	pl.FlipLeft = rel.X > mon.Dx()-size.X
	pl.FlipUp = rel.Y > mon.Dy()-size.Y

	pl.Position = cursor
	if pl.FlipLeft {
		pl.Position.X += gap - size.X
	} else {
		pl.Position.X -= gap
	}
	if pl.FlipUp {
		pl.Position.Y += gap - size.Y
	} else {
		pl.Position.Y -= gap
	}
	return pl
}
