package pygmenu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSettings_Formats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"settings.json": `{"font-size": 12, "outer-padding": 4, "bg-color": [1, 2, 3]}`,
		"settings.toml": "font-size = 12\nouter-padding = 4\nbg-color = [1, 2, 3]\n",
		"settings.yaml": "font-size: 12\nouter-padding: 4\nbg-color: [1, 2, 3]\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, name, content)
			s, err := LoadSettings(path, Locator{}, discardLogger())
			require.NoError(t, err)

			assert.Equal(t, 12, s.FontSize)
			assert.Equal(t, 4, s.OuterPadding)
			assert.Equal(t, 5, s.LinePadding, "missing keys take defaults")
			assert.Equal(t, Color{R: 1, G: 2, B: 3, A: 255}, s.BgColor)
		})
	}
}

func TestLoadSettings_HexColor(t *testing.T) {
	path := writeFile(t, t.TempDir(), "s.json", `{"highlight-color": "#3584e4"}`)
	s, err := LoadSettings(path, Locator{}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x35, G: 0x84, B: 0xe4, A: 0xff}, s.HighlightColor)
}

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("", Locator{Dirs: []string{t.TempDir()}}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettings_MissingFileFallsBackToSearch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "settings.toml", "font-size = 30\n")

	s, err := LoadSettings(filepath.Join(dir, "nope.json"), Locator{Dirs: []string{dir}}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 30, s.FontSize)
}

func TestLoadSettings_RelativeToSearchDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dark.json", `{"font-size": 9}`)

	s, err := LoadSettings("dark.json", Locator{Dirs: []string{dir}}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 9, s.FontSize)
}

func TestLoadSettings_Malformed(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadSettings(writeFile(t, dir, "a.json", `{"font-size": `), Locator{}, discardLogger())
	assert.Error(t, err)

	_, err = LoadSettings(writeFile(t, dir, "b.json", `[1, 2]`), Locator{}, discardLogger())
	assert.Error(t, err)

	_, err = LoadSettings(writeFile(t, dir, "c.yaml", "font-size: -4\n"), Locator{}, discardLogger())
	assert.Error(t, err)
}

func TestLoadMenu_Formats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"menu.json": `[
			{"text": "Browser", "command": "firefox"},
			{"command": "xterm"},
			{"text": "Header"}
		]`,
		"menu.toml": `
[[items]]
text = "Browser"
command = "firefox"

[[items]]
command = "xterm"

[[items]]
text = "Header"
`,
		"menu.yml": `
- text: Browser
  command: firefox
- command: xterm
- text: Header
`,
	}
	want := []MenuItem{
		{Text: "Browser", Command: "firefox"},
		{Text: "xterm", Command: "xterm"},
		{Text: "Header"},
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			items, err := LoadMenu(writeFile(t, dir, name, content), Locator{}, discardLogger())
			require.NoError(t, err)
			assert.Equal(t, want, items)
			assert.True(t, items[0].Interactive())
			assert.False(t, items[2].Interactive())
		})
	}
}

func TestLoadMenu_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "menu-base.json", `{"items": [{"text": "Only"}]}`)

	items, err := LoadMenu("", Locator{Dirs: []string{dir}}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []MenuItem{{Text: "Only"}}, items)
}

func TestLoadMenu_NotFound(t *testing.T) {
	_, err := LoadMenu("", Locator{Dirs: []string{t.TempDir()}}, discardLogger())
	assert.ErrorIs(t, err, ErrNoMenu)

	_, err = LoadMenu("/does/not/exist.json", Locator{}, discardLogger())
	assert.ErrorIs(t, err, ErrNoMenu)
}

func TestLoadMenu_Empty(t *testing.T) {
	_, err := LoadMenu(writeFile(t, t.TempDir(), "m.json", `[]`), Locator{}, discardLogger())
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestParseMenu_Invalid(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		doc  string
	}{
		{"scalar", ".json", `"firefox"`},
		{"scalar yaml", ".yaml", "firefox\n"},
		{"item not a table", ".json", `["firefox"]`},
		{"item not a table yaml", ".yaml", "- firefox\n"},
		{"command not a string", ".json", `[{"command": 3}]`},
		{"command not a string toml", ".toml", "[[items]]\ncommand = 3\n"},
		{"items not a list", ".json", `{"items": {"text": "a"}}`},
		{"malformed", ".toml", "[[items]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMenu([]byte(tt.doc), tt.ext)
			assert.Error(t, err)
		})
	}
}

func TestParseMenu_NoItems(t *testing.T) {
	for _, tt := range []struct{ ext, doc string }{
		{".json", `[]`},
		{".json", `{"entries": [{"text": "a"}]}`},
		{".toml", ""},
		{".yaml", "items: []\n"},
	} {
		_, err := ParseMenu([]byte(tt.doc), tt.ext)
		assert.ErrorIs(t, err, ErrNoItems, tt.doc)
	}
}

func TestParseMenu_EmptyItem(t *testing.T) {
	items, err := ParseMenu([]byte(`[{}]`), ".json")
	require.NoError(t, err)
	assert.Equal(t, []MenuItem{{}}, items)
	assert.False(t, items[0].Interactive())
}

func TestParseMenu_ExplicitEmptyText(t *testing.T) {
	items, err := ParseMenu([]byte(`[{"text": "", "command": "xterm"}]`), ".json")
	require.NoError(t, err)
	assert.Equal(t, []MenuItem{{Command: "xterm"}}, items)
}

func TestParseMenu_Icon(t *testing.T) {
	items, err := ParseMenu([]byte("- text: Files\n  command: nautilus\n  icon: files.png\n"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []MenuItem{{Text: "Files", Command: "nautilus", Icon: "files.png"}}, items)
}

func TestMenuItem_Interactive(t *testing.T) {
	assert.False(t, MenuItem{Text: "Header"}.Interactive())
	assert.True(t, MenuItem{Command: "xterm"}.Interactive())
	assert.True(t, MenuItem{Command: "  "}.Interactive(), "any present command is run")
}

func TestLocator(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, second, "settings.yaml", "{}")
	writeFile(t, second, "font.ttf", "")
	writeFile(t, first, "font.ttf", "")

	loc := Locator{Dirs: []string{first, second}}

	p, ok := loc.Find("settings")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(second, "settings.yaml"), p)

	p, ok = loc.Resolve("font.ttf")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(first, "font.ttf"), p)

	_, ok = loc.Resolve("")
	assert.False(t, ok)
	_, ok = loc.Resolve(first)
	assert.False(t, ok, "directories are not files")
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/pyg-menu", ConfigDir())
}
