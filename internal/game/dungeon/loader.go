package dungeon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlDungeonFile is the top-level YAML structure for dungeon files.
type yamlDungeonFile struct {
	Dungeon Dungeon `yaml:"dungeon"`
}

// LoadDungeonFromFile reads and validates a single dungeon YAML file.
//
// Precondition: path must point to a YAML dungeon file.
// Postcondition: Returns a normalized, validated Dungeon or a non-nil error.
func LoadDungeonFromFile(path string) (Dungeon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dungeon{}, fmt.Errorf("reading dungeon file %s: %w", path, err)
	}
	return LoadDungeonFromBytes(data)
}

// LoadDungeonFromBytes parses a dungeon from YAML, applies the fallbacks of
// Normalized and validates the result.
func LoadDungeonFromBytes(data []byte) (Dungeon, error) {
	var file yamlDungeonFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Dungeon{}, fmt.Errorf("parsing dungeon YAML: %w", err)
	}
	d := file.Dungeon.Normalized()
	if err := d.Validate(); err != nil {
		return Dungeon{}, fmt.Errorf("validating dungeon: %w", err)
	}
	return d, nil
}

// LoadDir loads every .yaml/.yml file in dir as a dungeon, in directory order.
// A relative ScriptDir is resolved against dir.
//
// Postcondition: Returns all dungeons or the first error encountered; a
// directory without dungeon files is an error.
func LoadDir(dir string) ([]Dungeon, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading dungeon directory %s: %w", dir, err)
	}

	var out []Dungeon
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		d, err := LoadDungeonFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("loading dungeon from %s: %w", name, err)
		}
		if d.ScriptDir != "" && !filepath.IsAbs(d.ScriptDir) {
			d.ScriptDir = filepath.Join(dir, d.ScriptDir)
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no dungeon files found in %s", dir)
	}
	return out, nil
}
