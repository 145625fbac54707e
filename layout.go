package pygmenu

import "image"

// Layout is the geometry of a popup: its size and one rectangle per item,
// indexed like the items it was computed from. Rectangles are relative to
// the popup window.
type Layout struct {
	Size  image.Point
	Items []image.Rectangle

	OuterPadding int
	LinePadding  int
}

// ComputeLayout stacks items with the given label sizes from top to bottom.
// Every item spans the full popup width, which is the widest label plus
// outer padding on both sides.
func ComputeLayout(labels []image.Point, outerPadding, linePadding int) Layout {
	l := Layout{
		Items:        make([]image.Rectangle, len(labels)),
		OuterPadding: outerPadding,
		LinePadding:  linePadding,
	}

	width := 0
	height := 0
	for _, sz := range labels {
		width = max(width, sz.X)
		height += sz.Y + linePadding*2
	}
	l.Size = image.Pt(width+outerPadding*2, height+outerPadding*2)

	y := outerPadding
	for i, sz := range labels {
		h := sz.Y + linePadding*2
		l.Items[i] = image.Rect(0, y, l.Size.X, y+h)
		y += h
	}
	return l
}

// HoverAt returns the index of the item whose vertical span strictly
// contains y, or -1. A y exactly on a seam between two items matches
// neither of them.
func (l Layout) HoverAt(y int) int {
	for i, r := range l.Items {
		if y > r.Min.Y && y < r.Max.Y {
			return i
		}
	}
	return -1
}

// TextOrigin is where the label of item i is drawn.
func (l Layout) TextOrigin(i int) image.Point {
	return image.Pt(l.OuterPadding, l.Items[i].Min.Y+l.LinePadding)
}
