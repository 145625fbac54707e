package pygmenu

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/KononK/resize"
	"golang.org/x/image/webp"
)

func getDecoder(imagepath string) (func(io.Reader) (image.Image, error), error) {
	ext := strings.ToLower(filepath.Ext(imagepath))
	switch ext {
	case ".png":
		return png.Decode, nil
	case ".jpg", ".jpeg":
		return jpeg.Decode, nil
	case ".gif":
		return gif.Decode, nil
	case ".webp":
		return webp.Decode, nil
	default:
		return nil, fmt.Errorf("unknown image format: %s", ext)
	}
}

/* loads an icon scaled to a size x size square */
func loadIcon(path string, size int) (image.Image, error) {
	dec, err := getDecoder(path)
	if err != nil {
		return nil, err
	}
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, err := dec(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resize.Resize(uint(size), uint(size), img, resize.Bilinear), nil
}

// RenderLabel rasterizes the label of item: its icon, if any, followed by
// its text. The label is one line high and as wide as its content; the
// background is transparent.
func RenderLabel(item MenuItem, ts *Typesetter, loc Locator) (*image.NRGBA, error) {
	if item.Icon == "" {
		return composeLabel(nil, item.Text, ts), nil
	}
	path, ok := loc.Resolve(item.Icon)
	if !ok {
		return nil, fmt.Errorf("icon not found: %s", item.Icon)
	}
	icon, err := loadIcon(path, ts.LineHeight())
	if err != nil {
		return nil, err
	}
	return composeLabel(icon, item.Text, ts), nil
}

/* icon may be nil */
func composeLabel(icon image.Image, text string, ts *Typesetter) *image.NRGBA {
	lineH := ts.LineHeight()
	textW := ts.Measure(text)

	textX := 0
	if icon != nil {
		textX = lineH + iconGap(lineH)
	}
	label := image.NewNRGBA(image.Rect(0, 0, textX+textW, lineH))
	if icon != nil {
		draw.Draw(label, image.Rect(0, 0, lineH, lineH), icon, icon.Bounds().Min, draw.Over)
	}
	ts.Draw(label.SubImage(image.Rect(textX, 0, textX+textW, lineH)).(*image.NRGBA), text)
	return label
}

func iconGap(lineH int) int {
	return max(lineH/4, 1)
}

// RenderLabels rasterizes the labels of all items in order. An item whose
// icon cannot be loaded is rendered without it.
func RenderLabels(items []MenuItem, ts *Typesetter, loc Locator, logger *slog.Logger) []*image.NRGBA {
	if logger == nil {
		logger = slog.Default()
	}
	labels := make([]*image.NRGBA, len(items))
	for i, item := range items {
		label, err := RenderLabel(item, ts, loc)
		if err != nil {
			logger.Warn("unable to render icon, using text only", "item", i, "error", err)
			label = composeLabel(nil, item.Text, ts)
		}
		labels[i] = label
	}
	return labels
}

// LabelSizes returns the intrinsic size of each label.
func LabelSizes(labels []*image.NRGBA) []image.Point {
	sizes := make([]image.Point, len(labels))
	for i, l := range labels {
		sizes[i] = l.Bounds().Size()
	}
	return sizes
}
