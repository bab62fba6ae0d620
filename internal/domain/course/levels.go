package course

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed levels.yaml
var levelsYAML []byte

var (
	catalogOnce sync.Once
	catalog     []Level
	catalogErr  error
)

// Levels returns the fixed paragraph level catalog in ascending difficulty.
func Levels() []Level {
	catalogOnce.Do(func() {
		catalog, catalogErr = parseLevels(levelsYAML)
	})
	if catalogErr != nil {
		panic(catalogErr)
	}
	out := make([]Level, len(catalog))
	copy(out, catalog)
	return out
}

func parseLevels(raw []byte) ([]Level, error) {
	var doc struct {
		Levels []Level `yaml:"levels"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse level catalog: %w", err)
	}
	if len(doc.Levels) == 0 {
		return nil, fmt.Errorf("parse level catalog: empty")
	}
	for i, l := range doc.Levels {
		if strings.TrimSpace(l.ID) == "" || strings.TrimSpace(l.Name) == "" {
			return nil, fmt.Errorf("parse level catalog: entry %d incomplete", i)
		}
	}
	return doc.Levels, nil
}

// LevelNames lists catalog names, used as the enum in structured output schemas.
func LevelNames() []string {
	levels := Levels()
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, l.Name)
	}
	return out
}

// LevelByName finds a catalog entry by case-insensitive name.
func LevelByName(name string) (Level, bool) {
	key := normTag(name)
	for _, l := range Levels() {
		if normTag(l.Name) == key {
			return l, true
		}
	}
	return Level{}, false
}

// SnapLevel maps a backend-reported level to the catalog. Ids win over names; unknown
// values fall back to the middle of the catalog.
func SnapLevel(l Level) Level {
	for _, c := range Levels() {
		if l.ID != "" && strings.EqualFold(c.ID, l.ID) {
			return c
		}
	}
	if c, ok := LevelByName(l.Name); ok {
		return c
	}
	levels := Levels()
	return levels[(len(levels)-1)/2]
}
