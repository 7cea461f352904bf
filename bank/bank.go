// Package bank loads sound definitions from YAML files and builds the
// playback library from them.
//
// A bank file lists sounds by authored name. A sound is either one file or
// a set of interchangeable variants:
//
//	sounds:
//	  - name: Menu Select
//	    file: sfx/menu_select.ogg
//	    gain: 0.9
//	  - name: Explosion
//	    multiple: true
//	    variants:
//	      - { file: sfx/boom1.ogg }
//	      - { file: sfx/boom2.ogg, gain: 0.7 }
//
// Authored names are sanitized to symbolic ones at build time, so "Menu
// Select" is played as "MenuSelect" (boombox.SanitizeName has the rules).
package bank

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// File is the root of a bank definition.
type File struct {
	Sounds []Sound `yaml:"sounds"`
}

// Sound is one named entry. With Multiple unset, File and Gain describe
// the single recording and Variants is ignored; with Multiple set, the
// entry plays one of Variants per request.
type Sound struct {
	Name     string    `yaml:"name"`
	File     string    `yaml:"file,omitempty"`
	Gain     *float64  `yaml:"gain,omitempty"`
	Multiple bool      `yaml:"multiple,omitempty"`
	Variants []Variant `yaml:"variants,omitempty"`
}

// Variant is one recording of a Multiple sound. An omitted gain means
// full volume; an explicit gain is clamped to [0, 1], and 0 really is
// silence.
type Variant struct {
	File string   `yaml:"file"`
	Gain *float64 `yaml:"gain,omitempty"`
}

// Parse decodes a bank definition.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("bank: parse: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the bank definition at path.
func Load(fsys fs.FS, path string) (*File, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("bank: read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("bank: parse %s: %w", path, err)
	}
	return &f, nil
}
