package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-ecosim/internal/core"
	"github.com/vovakirdan/tui-ecosim/internal/sim"
)

// YAMLScenario is the on-disk structure of a scenario file.
type YAMLScenario struct {
	Name      string          `yaml:"name"`
	Size      YAMLSize        `yaml:"size"`
	Steps     int             `yaml:"steps"`
	Prey      []YAMLPlacement `yaml:"prey"`
	Predators []YAMLPlacement `yaml:"predators"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPlacement is one entity. Dir accepts a name ("up") or an ordinal ("0").
type YAMLPlacement struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Dir  string `yaml:"dir"`
	Turn *int   `yaml:"turn,omitempty"` // nil means 1
}

// ParseYAML parses a scenario file's contents.
func ParseYAML(data []byte) (Scenario, error) {
	var ys YAMLScenario
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Scenario{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	sc := Scenario{
		Name:   ys.Name,
		Width:  ys.Size.W,
		Height: ys.Size.H,
		Steps:  ys.Steps,
	}

	groups := []struct {
		species sim.Species
		items   []YAMLPlacement
	}{
		{sim.SpeciesPrey, ys.Prey},
		{sim.SpeciesPredator, ys.Predators},
	}
	for _, g := range groups {
		for i, yp := range g.items {
			dir, err := core.ParseDir(yp.Dir)
			if err != nil {
				return Scenario{}, fmt.Errorf("%s %d: %w", g.species, i+1, err)
			}
			turn := 1
			if yp.Turn != nil {
				turn = *yp.Turn
			}
			sc.Placements = append(sc.Placements, Placement{
				Species: g.species,
				Pos:     core.C(yp.X, yp.Y),
				Dir:     dir,
				Turn:    turn,
			})
		}
	}

	return sc, nil
}

// MarshalYAML converts a scenario to its file representation.
func MarshalYAML(s Scenario) ([]byte, error) {
	ys := YAMLScenario{
		Name:  s.Name,
		Size:  YAMLSize{W: s.Width, H: s.Height},
		Steps: s.Steps,
	}
	for _, p := range s.Placements {
		yp := YAMLPlacement{
			X:    p.Pos.X,
			Y:    p.Pos.Y,
			Dir:  strings.ToLower(p.Dir.String()),
			Turn: &p.Turn,
		}
		if p.Species == sim.SpeciesPredator {
			ys.Predators = append(ys.Predators, yp)
		} else {
			ys.Prey = append(ys.Prey, yp)
		}
	}
	return yaml.Marshal(ys)
}

// LoadFile reads a scenario from a YAML file, or from the numeric text format
// when the extension is .txt. A missing name defaults to the file's base name.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	var sc Scenario
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		sc, err = ParseYAML(data)
	case ".txt":
		sc, err = ParseString(string(data))
	default:
		return Scenario{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Loader lists scenario files under a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every scenario file under Root, sorted by name.
// Files that fail to parse are skipped. A missing root yields no scenarios.
func (l *Loader) LoadAll() ([]Scenario, error) {
	if _, err := os.Stat(l.Root); os.IsNotExist(err) {
		return nil, nil
	}

	var out []Scenario
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".txt":
		default:
			return nil
		}

		sc, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}
		out = append(out, sc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}
