// Package keymap reads the remapping part of a configuration file and
// reloads it when the file changes.
package keymap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/keygrab/internal/remap"
	"github.com/Alia5/keygrab/keys"
)

// ErrUnknownFormat is returned for files whose extension is not json, yaml,
// yml or toml.
var ErrUnknownFormat = errors.New("unknown config file format")

// Keymap is the subset of the run configuration that can change while the
// daemon runs. Other keys in the file are ignored.
type Keymap struct {
	Mapped []string `json:"mapped" yaml:"mapped" toml:"mapped"`
	Remap  []string `json:"remap" yaml:"remap" toml:"remap"`
}

// layout accepts both config file shapes: flags at the top level, or nested
// under the run command.
type layout struct {
	Mapped []string `json:"mapped" yaml:"mapped" toml:"mapped"`
	Remap  []string `json:"remap" yaml:"remap" toml:"remap"`
	Run    *Keymap  `json:"run" yaml:"run" toml:"run"`
}

// Load reads path, choosing the decoder by extension. A "run" section
// takes precedence over top-level keys.
func Load(path string) (Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keymap{}, fmt.Errorf("read keymap: %w", err)
	}
	var km layout
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &km)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &km)
	case ".toml":
		err = toml.Unmarshal(data, &km)
	default:
		return Keymap{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return Keymap{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if km.Run != nil {
		return *km.Run, nil
	}
	return Keymap{Mapped: km.Mapped, Remap: km.Remap}, nil
}

// Resolve parses the names. The mapped set is the explicit Mapped list plus
// every remap source, in ascending order.
func (k Keymap) Resolve() ([]keys.OsCode, remap.Table, error) {
	table, err := remap.ParseRemaps(k.Remap)
	if err != nil {
		return nil, nil, err
	}
	seen := make(map[keys.OsCode]bool, len(k.Mapped)+len(table))
	var codes []keys.OsCode
	add := func(c keys.OsCode) {
		if !seen[c] {
			seen[c] = true
			codes = append(codes, c)
		}
	}
	for _, name := range k.Mapped {
		c, err := keys.ParseOsCode(name)
		if err != nil {
			return nil, nil, fmt.Errorf("mapped: %w", err)
		}
		add(c)
	}
	for _, c := range table.Codes() {
		add(c)
	}
	slices.Sort(codes)
	return codes, table, nil
}
