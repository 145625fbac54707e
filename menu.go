package pygmenu

import (
	"bytes"
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrNoItems is returned for a menu without any items.
var ErrNoItems = errors.New("no menu items")

// MenuItem is one row of the popup.
type MenuItem struct {
	Text    string /* label drawn on the menu */
	Command string /* shell command run on click, empty for display-only rows */
	Icon    string /* optional image drawn left of the text */
}

// Interactive reports whether clicking the item runs a command.
func (item MenuItem) Interactive() bool {
	return item.Command != ""
}

/* an item as written in a menu file; a missing text falls back to the command */
type menuEntry struct {
	Text    *string `json:"text" toml:"text" yaml:"text"`
	Command string  `json:"command" toml:"command" yaml:"command"`
	Icon    string  `json:"icon" toml:"icon" yaml:"icon"`
}

func (e menuEntry) item() MenuItem {
	item := MenuItem{Text: e.Command, Command: e.Command, Icon: e.Icon}
	if e.Text != nil {
		item.Text = *e.Text
	}
	return item
}

/* either a list of items or a table with an items list; toml only has the latter */
type menuDocument struct {
	Items []menuEntry `json:"items" toml:"items" yaml:"items"`
}

func (doc *menuDocument) UnmarshalJSON(data []byte) error {
	if data = bytes.TrimSpace(data); len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &doc.Items)
	}
	type table menuDocument
	return json.Unmarshal(data, (*table)(doc))
}

func (doc *menuDocument) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&doc.Items)
	}
	type table menuDocument
	return node.Decode((*table)(doc))
}

// ParseMenu decodes a menu document, chosen by the file extension ext.
func ParseMenu(data []byte, ext string) ([]MenuItem, error) {
	var doc menuDocument
	if err := Decode(data, ext, &doc); err != nil {
		return nil, err
	}
	if len(doc.Items) == 0 {
		return nil, ErrNoItems
	}
	items := make([]MenuItem, len(doc.Items))
	for i, e := range doc.Items {
		items[i] = e.item()
	}
	return items, nil
}
