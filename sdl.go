package pygmenu

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/daaku/swizzle"
	"github.com/veandco/go-sdl2/sdl"
)

// Display is the window system the popup is shown on.
type Display interface {
	Monitors() ([]image.Rectangle, error)
	/* absolute pointer position in virtual-screen coordinates */
	Cursor() image.Point
	/* open a borderless window; labels are drawn by index with DrawLabel */
	OpenWindow(title string, bounds image.Rectangle, labels []*image.NRGBA) (Window, error)
}

// SDLDisplay is a Display backed by the SDL video subsystem. All calls must
// be made from the main thread.
type SDLDisplay struct {
	logger *slog.Logger
}

// OpenSDL initializes the SDL video subsystem.
func OpenSDL(logger *slog.Logger) (*SDLDisplay, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("unable to initialize video: %w", err)
	}
	return &SDLDisplay{logger: logger}, nil
}

// Close shuts SDL down.
func (d *SDLDisplay) Close() {
	sdl.Quit()
}

// Monitors returns the bounds of every display, in SDL's display order.
func (d *SDLDisplay) Monitors() ([]image.Rectangle, error) {
	nmon, err := sdl.GetNumVideoDisplays()
	if err != nil {
		return nil, err
	}
	monitors := make([]image.Rectangle, 0, nmon)
	for i := range nmon {
		mr, err := sdl.GetDisplayBounds(i)
		if err != nil {
			d.logger.Warn("unable to query display", "display", i, "error", err)
			continue
		}
		monitors = append(monitors, image.Rect(int(mr.X), int(mr.Y), int(mr.X+mr.W), int(mr.Y+mr.H)))
	}
	return monitors, nil
}

func (d *SDLDisplay) Cursor() image.Point {
	sdl.PumpEvents()
	x, y, _ := sdl.GetGlobalMouseState()
	return image.Pt(int(x), int(y))
}

func (d *SDLDisplay) OpenWindow(title string, bounds image.Rectangle, labels []*image.NRGBA) (Window, error) {
	win, err := sdl.CreateWindow(title,
		int32(bounds.Min.X), int32(bounds.Min.Y), int32(bounds.Dx()), int32(bounds.Dy()),
		sdl.WINDOW_SHOWN|sdl.WINDOW_BORDERLESS|sdl.WINDOW_ALWAYS_ON_TOP|sdl.WINDOW_SKIP_TASKBAR)
	if err != nil {
		return nil, fmt.Errorf("unable to create window: %w", err)
	}
	w := &SDLWindow{win: win, logger: d.logger}

	w.render, err = sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		d.logger.Debug("no accelerated renderer, falling back to software", "error", err)
		w.render, err = sdl.CreateRenderer(win, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("unable to create renderer: %w", err)
	}

	w.labels = make([]*sdl.Texture, len(labels))
	for i, label := range labels {
		if w.labels[i], err = w.upload(label); err != nil {
			w.Close()
			return nil, fmt.Errorf("unable to upload label %d: %w", i, err)
		}
	}

	win.Raise()
	return w, nil
}

// SDLWindow is a popup window with one texture per label.
type SDLWindow struct {
	win    *sdl.Window
	render *sdl.Renderer
	labels []*sdl.Texture /* nil for empty labels */
	logger *slog.Logger
	closed bool
}

/* ARGB8888 is B, G, R, A in memory on little-endian machines */
func (w *SDLWindow) upload(img *image.NRGBA) (*sdl.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, nil
	}
	surf, err := sdl.CreateRGBSurface(0, int32(b.Dx()), int32(b.Dy()), 32,
		0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000)
	if err != nil {
		return nil, err
	}
	defer surf.Free()

	pix := surf.Pixels()
	pitch := int(surf.Pitch)
	rowLen := b.Dx() * 4
	for y := range b.Dy() {
		row := pix[y*pitch : y*pitch+rowLen]
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(row, img.Pix[start:start+rowLen])
		swizzle.BGRA(row)
	}

	tex, err := w.render.CreateTextureFromSurface(surf)
	if err != nil {
		return nil, err
	}
	if err := tex.SetBlendMode(sdl.BLENDMODE_BLEND); err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

func (w *SDLWindow) Pointer() image.Point {
	sdl.PumpEvents()
	x, y, _ := sdl.GetGlobalMouseState()
	wx, wy := w.win.GetPosition()
	return image.Pt(int(x-wx), int(y-wy))
}

func (w *SDLWindow) Fill(r image.Rectangle, c color.NRGBA) error {
	if err := w.render.SetDrawColor(c.R, c.G, c.B, c.A); err != nil {
		return err
	}
	return w.render.FillRect(&sdl.Rect{
		X: int32(r.Min.X),
		Y: int32(r.Min.Y),
		W: int32(r.Dx()),
		H: int32(r.Dy()),
	})
}

func (w *SDLWindow) DrawLabel(i int, at image.Point) error {
	tex := w.labels[i]
	if tex == nil {
		return nil
	}
	_, _, tw, th, err := tex.Query()
	if err != nil {
		return err
	}
	return w.render.Copy(tex, nil, &sdl.Rect{X: int32(at.X), Y: int32(at.Y), W: tw, H: th})
}

func (w *SDLWindow) Present() error {
	w.render.Present()
	return nil
}

func (w *SDLWindow) WaitEvent() Event {
	ev := sdl.WaitEvent()
	var buttons uint32
	if _, ok := ev.(*sdl.MouseButtonEvent); ok {
		_, _, buttons = sdl.GetMouseState()
	}
	return translateEvent(ev, buttons)
}

/* buttons is the mouse button state at the time of ev */
func translateEvent(ev sdl.Event, buttons uint32) Event {
	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		return QuitEvent{}
	case *sdl.KeyboardEvent:
		if ev.State == sdl.PRESSED {
			return KeyDownEvent{Escape: ev.Keysym.Sym == sdl.K_ESCAPE}
		}
	case *sdl.WindowEvent:
		if ev.Event == sdl.WINDOWEVENT_FOCUS_LOST {
			return FocusLostEvent{}
		}
	case *sdl.MouseMotionEvent:
		return PointerMotionEvent{X: int(ev.X), Y: int(ev.Y)}
	case *sdl.MouseButtonEvent:
		if ev.State == sdl.PRESSED {
			return ButtonDownEvent{Primary: buttons&sdl.ButtonLMask() != 0}
		}
	}
	return nil
}

func (w *SDLWindow) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	for _, tex := range w.labels {
		if tex != nil {
			tex.Destroy()
		}
	}
	if w.render != nil {
		w.render.Destroy()
	}
	return w.win.Destroy()
}
