package pygmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"
)

func TestTranslateEvent(t *testing.T) {
	left := sdl.ButtonLMask()
	right := sdl.ButtonRMask()

	tests := []struct {
		name    string
		ev      sdl.Event
		buttons uint32
		want    Event
	}{
		{"quit", &sdl.QuitEvent{}, 0, QuitEvent{}},
		{"escape pressed", &sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}, 0, KeyDownEvent{Escape: true}},
		{"other key pressed", &sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Sym: sdl.K_a}}, 0, KeyDownEvent{}},
		{"escape released", &sdl.KeyboardEvent{State: sdl.RELEASED, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}, 0, nil},
		{"focus lost", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST}, 0, FocusLostEvent{}},
		{"focus gained", &sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_GAINED}, 0, nil},
		{"motion", &sdl.MouseMotionEvent{X: 12, Y: 34}, 0, PointerMotionEvent{X: 12, Y: 34}},
		{"left press", &sdl.MouseButtonEvent{State: sdl.PRESSED, Button: sdl.BUTTON_LEFT}, left, ButtonDownEvent{Primary: true}},
		{"right press", &sdl.MouseButtonEvent{State: sdl.PRESSED, Button: sdl.BUTTON_RIGHT}, right, ButtonDownEvent{Primary: false}},
		{"right press while left held", &sdl.MouseButtonEvent{State: sdl.PRESSED, Button: sdl.BUTTON_RIGHT}, left | right, ButtonDownEvent{Primary: true}},
		{"release", &sdl.MouseButtonEvent{State: sdl.RELEASED, Button: sdl.BUTTON_LEFT}, 0, nil},
		{"unhandled", &sdl.MouseWheelEvent{Y: 1}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateEvent(tt.ev, tt.buttons))
		})
	}
}
