package tilemap

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"
)

// Marker letters place the default start and goal on a map. The tile under a
// marker is the legend's default tile.
const (
	StartMarker    = 'S'
	GoalMarker     = 'G'
	AltStartMarker = '+'
)

// TileDef describes one kind of tile.
type TileDef struct {
	Key        string         `yaml:"-"`
	Name       string         `yaml:"name"`
	Letter     string         `yaml:"letter"`
	Walkable   bool           `yaml:"walkable"`
	Color      [3]int         `yaml:"color"`
	Properties map[string]any `yaml:"properties"`
}

// Rune returns the map letter of the tile.
func (td *TileDef) Rune() rune {
	r, _ := utf8.DecodeRuneInString(td.Letter)
	return r
}

// RuleEnv is what a walkable_rule expression sees for each tile.
type RuleEnv struct {
	Name     string         `expr:"name"`
	Key      string         `expr:"key"`
	Letter   string         `expr:"letter"`
	Walkable bool           `expr:"walkable"`
	Col      int            `expr:"col"`
	Row      int            `expr:"row"`
	Props    map[string]any `expr:"props"`
}

// Legend maps letters to tile definitions and optionally carries a rule that
// decides walkability from a tile's definition and position.
type Legend struct {
	Default      string              `yaml:"default"`
	WalkableRule string              `yaml:"walkable_rule"`
	Tiles        map[string]*TileDef `yaml:"tiles"`

	byLetter map[rune]*TileDef
	rule     *vm.Program
}

// LoadLegend loads a tile legend from a YAML file.
func LoadLegend(filename string) (*Legend, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read tile legend %s: %w", filename, err)
	}
	legend, err := ParseLegend(data)
	if err != nil {
		return nil, fmt.Errorf("tile legend %s: %w", filename, err)
	}
	return legend, nil
}

// ParseLegend decodes and checks a tile legend.
func ParseLegend(data []byte) (*Legend, error) {
	var legend Legend
	if err := yaml.Unmarshal(data, &legend); err != nil {
		return nil, fmt.Errorf("failed to parse tile legend: %w", err)
	}
	if len(legend.Tiles) == 0 {
		return nil, fmt.Errorf("tile legend defines no tiles")
	}

	legend.byLetter = make(map[rune]*TileDef, len(legend.Tiles))
	for key, td := range legend.Tiles {
		if td == nil {
			return nil, fmt.Errorf("tile %q has no definition", key)
		}
		td.Key = key
		if td.Name == "" {
			td.Name = key
		}
		if utf8.RuneCountInString(td.Letter) != 1 {
			return nil, fmt.Errorf("tile %q: letter must be a single character, got %q", key, td.Letter)
		}
		r := td.Rune()
		switch r {
		case StartMarker, GoalMarker, AltStartMarker:
			return nil, fmt.Errorf("tile %q: letter %q is reserved for markers", key, td.Letter)
		}
		if other, dup := legend.byLetter[r]; dup {
			return nil, fmt.Errorf("tiles %q and %q share letter %q", other.Key, key, td.Letter)
		}
		legend.byLetter[r] = td
	}

	if legend.Default == "" {
		return nil, fmt.Errorf("tile legend has no default tile")
	}
	if _, ok := legend.Tiles[legend.Default]; !ok {
		return nil, fmt.Errorf("default tile %q is not defined", legend.Default)
	}

	if legend.WalkableRule != "" {
		program, err := expr.Compile(legend.WalkableRule,
			expr.Env(RuleEnv{}),
			expr.AsBool(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to compile walkable_rule: %w", err)
		}
		legend.rule = program
	}
	return &legend, nil
}

// Tile returns the definition registered under key.
func (l *Legend) Tile(key string) (*TileDef, bool) {
	td, ok := l.Tiles[key]
	return td, ok
}

// ByLetter returns the definition drawn with letter r.
func (l *Legend) ByLetter(r rune) (*TileDef, bool) {
	td, ok := l.byLetter[r]
	return td, ok
}

// DefaultTile is the tile placed under markers and in blank maps.
func (l *Legend) DefaultTile() *TileDef {
	return l.Tiles[l.Default]
}

// Keys lists tile keys sorted by letter.
func (l *Legend) Keys() []string {
	keys := make([]string, 0, len(l.Tiles))
	for key := range l.Tiles {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return l.Tiles[keys[i]].Letter < l.Tiles[keys[j]].Letter
	})
	return keys
}

// Lines describes the legend for display, one tile per line.
func (l *Legend) Lines() []string {
	lines := []string{"Tiles (letter -> key/name)"}
	for _, key := range l.Keys() {
		td := l.Tiles[key]
		state := "blocked"
		if td.Walkable {
			state = "walkable"
		}
		lines = append(lines, fmt.Sprintf("%s -> %s (%s) %s", td.Letter, key, td.Name, state))
	}
	if l.WalkableRule != "" {
		lines = append(lines, "", "Rule: "+l.WalkableRule)
	}
	return lines
}

// walkable applies the legend to one tile.
func (l *Legend) walkable(td *TileDef, col, row int) (bool, error) {
	if l.rule == nil {
		return td.Walkable, nil
	}
	env := RuleEnv{
		Name:     td.Name,
		Key:      td.Key,
		Letter:   td.Letter,
		Walkable: td.Walkable,
		Col:      col,
		Row:      row,
		Props:    td.Properties,
	}
	out, err := expr.Run(l.rule, env)
	if err != nil {
		return false, fmt.Errorf("walkable_rule on tile %q: %w", td.Key, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("walkable_rule on tile %q returned %T", td.Key, out)
	}
	return ok, nil
}
