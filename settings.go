package pygmenu

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

/* no window or label can be larger than this */
const maxLength = math.MaxInt16

// Settings holds the appearance of the popup. It is not modified after
// loading.
type Settings struct {
	FontFile       string `json:"font-file" toml:"font-file" yaml:"font-file"`
	FontSize       int    `json:"font-size" toml:"font-size" yaml:"font-size"`             /* points */
	OuterPadding   int    `json:"outer-padding" toml:"outer-padding" yaml:"outer-padding"` /* pixels around all items, also the gap to the cursor */
	LinePadding    int    `json:"line-padding" toml:"line-padding" yaml:"line-padding"`    /* pixels above and below each label */
	BgColor        Color  `json:"bg-color" toml:"bg-color" yaml:"bg-color"`
	HighlightColor Color  `json:"highlight-color" toml:"highlight-color" yaml:"highlight-color"`
	TextColor      Color  `json:"text-color" toml:"text-color" yaml:"text-color"`
}

// DefaultSettings returns the settings used for every key a settings file
// leaves out.
func DefaultSettings() Settings {
	return Settings{
		FontFile:       "Nunito-Regular.ttf",
		FontSize:       18,
		OuterPadding:   10,
		LinePadding:    5,
		BgColor:        Color{R: 48, G: 48, B: 48, A: 0xff},
		HighlightColor: Color{R: 85, G: 85, B: 85, A: 0xff},
		TextColor:      Color{R: 255, G: 255, B: 255, A: 0xff},
	}
}

// Validate checks the ranges of the numeric settings.
func (s Settings) Validate() error {
	if s.FontSize <= 0 || s.FontSize > maxLength {
		return fmt.Errorf("font-size: must be between 1 and %d, got %d", maxLength, s.FontSize)
	}
	for key, v := range map[string]int{
		"outer-padding": s.OuterPadding,
		"line-padding":  s.LinePadding,
	} {
		if v < 0 || v > maxLength {
			return fmt.Errorf("%s: must be between 0 and %d, got %d", key, maxLength, v)
		}
	}
	return nil
}

// Color is a colour in a settings file, written either as [r, g, b] or as a
// hex string (#rgb, #rgba, #rrggbb, #rrggbbaa).
type Color color.NRGBA

func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA(c).RGBA()
}

func (c *Color) setChannels(ch []int) error {
	if len(ch) != 3 {
		return fmt.Errorf("expected 3 channels, got %d", len(ch))
	}
	for _, n := range ch {
		if n < 0 || n > 255 {
			return fmt.Errorf("channel out of range: %d", n)
		}
	}
	*c = Color{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2]), A: 0xff}
	return nil
}

func (c *Color) setHex(s string) error {
	v, err := parseColor(s)
	if err != nil {
		return err
	}
	*c = Color(v)
	return nil
}

func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return c.setHex(s)
	}
	var ch []int
	if err := json.Unmarshal(data, &ch); err != nil {
		return fmt.Errorf("expected [r, g, b] or a hex string: %w", err)
	}
	return c.setChannels(ch)
}

func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return c.setHex(node.Value)
	}
	var ch []int
	if err := node.Decode(&ch); err != nil {
		return fmt.Errorf("expected [r, g, b] or a hex string: %w", err)
	}
	return c.setChannels(ch)
}

func (c *Color) UnmarshalTOML(node *unstable.Node) error {
	switch node.Kind {
	case unstable.String:
		return c.setHex(string(node.Data))
	case unstable.Array:
		var ch []int
		it := node.Children()
		for it.Next() {
			elem := it.Node()
			if elem.Kind != unstable.Integer {
				return fmt.Errorf("expected an integer channel, got %v", elem.Kind)
			}
			n, err := strconv.ParseInt(string(elem.Data), 0, 32)
			if err != nil {
				return fmt.Errorf("invalid channel: %w", err)
			}
			ch = append(ch, int(n))
		}
		return c.setChannels(ch)
	default:
		return fmt.Errorf("expected [r, g, b] or a hex string, got %v", node.Kind)
	}
}

/* parses #rgb, #rgba, #rrggbb and #rrggbbaa */
func parseColor(s string) (color.NRGBA, error) {
	if len(s) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}
	hex := s
	if hex[0] == '#' {
		hex = hex[1:]
	}
	switch len(hex) {
	case 3, 4:
		long := make([]byte, 0, 8)
		for i := range len(hex) {
			long = append(long, hex[i], hex[i])
		}
		hex = string(long)
	}
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color: %s", s)
	}

	var ch [4]uint8
	for i := range ch {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color: %s", s)
		}
		ch[i] = uint8(n)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
