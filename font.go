package pygmenu

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// ErrNoFont is returned when neither the configured font nor the builtin
// fallback can be used.
var ErrNoFont = errors.New("no usable font")

/* name reported for the font compiled into the binary */
const builtinFont = "builtin:goregular"

func newFace(data []byte, size int) (font.Face, error) {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		DPI:     72,
		Size:    float64(size),
		Hinting: font.HintingFull,
	})
}

/* the file as given, inside each search directory, then inside $FONTPATH */
func fontCandidates(file string, loc Locator) []string {
	if file == "" {
		return nil
	}
	var out []string
	if p, ok := loc.Resolve(file); ok {
		out = append(out, p)
	}
	if filepath.IsAbs(file) {
		return out
	}
	for dir := range strings.SplitSeq(os.Getenv("FONTPATH"), ":") {
		if dir == "" {
			continue
		}
		if p := filepath.Join(dir, file); fileExists(p) {
			out = append(out, p)
		}
	}
	return out
}

// LoadFace opens the configured font at size points. Fonts that cannot be
// found or parsed are skipped; the builtin Go font is the last resort. The
// returned name is the path the face was loaded from.
func LoadFace(file string, size int, loc Locator, logger *slog.Logger) (font.Face, string, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if size <= 0 {
		return nil, "", fmt.Errorf("%w: invalid font size %d", ErrNoFont, size)
	}

	for _, p := range fontCandidates(file, loc) {
		data, err := os.ReadFile(p)
		if err != nil {
			logger.Warn("unable to read font", "path", p, "error", err)
			continue
		}
		face, err := newFace(data, size)
		if err != nil {
			logger.Warn("unable to parse font", "path", p, "error", err)
			continue
		}
		return face, p, nil
	}

	logger.Info("font not found, using builtin font", "font", file)
	face, err := newFace(goregular.TTF, size)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	return face, builtinFont, nil
}

// Typesetter draws single lines of text in one face and color.
type Typesetter struct {
	face  font.Face
	color color.Color
}

// NewTypesetter returns a typesetter drawing with face in c.
func NewTypesetter(face font.Face, c color.Color) *Typesetter {
	return &Typesetter{face: face, color: c}
}

// LineHeight is the height of every rendered line.
func (ts *Typesetter) LineHeight() int {
	return ts.face.Metrics().Height.Ceil()
}

// Measure returns the advance width of text in pixels.
func (ts *Typesetter) Measure(text string) int {
	prev := rune(-1)
	width := fixed.Int26_6(0)
	for _, chr := range norm.NFC.String(text) {
		if prev != -1 {
			width += ts.face.Kern(prev, chr)
		}
		prev = chr
		advance, _ := ts.face.GlyphAdvance(chr)
		width += advance
	}
	return width.Ceil()
}

// Draw renders text onto dest with its baseline one ascent below the top
// of dest and returns the width drawn.
func (ts *Typesetter) Draw(dest draw.Image, text string) int {
	origin := dest.Bounds().Min
	dot := fixed.P(origin.X, origin.Y)
	dot.Y += ts.face.Metrics().Ascent

	prev := rune(-1)
	src := image.NewUniform(ts.color)
	for _, chr := range norm.NFC.String(text) {
		if prev != -1 {
			dot.X += ts.face.Kern(prev, chr)
		}
		prev = chr
		dr, mask, maskp, advance, ok := ts.face.Glyph(dot, chr)
		if ok {
			draw.DrawMask(dest, dr, src, image.Point{}, mask, maskp, draw.Over)
		}
		dot.X += advance
	}
	return (dot.X - fixed.I(origin.X)).Ceil()
}
