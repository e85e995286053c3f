// internal/defs/loader.go
package defs

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"tg-tower-defense/pkg/waymap"
)

var (
	ErrUnknownEnemyType  = errors.New("unknown enemy type")
	ErrUnknownTowerType  = errors.New("unknown tower type")
	ErrUnknownMap        = errors.New("unknown map")
	ErrInvalidDefinition = errors.New("invalid definition")
)

//go:embed data
var defaultData embed.FS

// Library — все статические таблицы одной сессии. После загрузки
// симуляция только читает их.
type Library struct {
	Enemies      map[string]EnemyDefinition
	Towers       map[string]TowerDefinition
	Waves        map[string][]WaveDefinition
	Maps         map[string]MapDefinition
	Achievements []AchievementDefinition
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		Enemies: make(map[string]EnemyDefinition),
		Towers:  make(map[string]TowerDefinition),
		Waves:   make(map[string][]WaveDefinition),
		Maps:    make(map[string]MapDefinition),
	}
}

// LoadDefault loads the tables embedded into the binary.
func LoadDefault() (*Library, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded definitions: %w", err)
	}
	lib := NewLibrary()
	if err := lib.Overlay(sub); err != nil {
		return nil, err
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// LoadDir loads the embedded defaults and overlays every table found in dir.
// Entries in dir replace default entries with the same key.
func LoadDir(dir string) (*Library, error) {
	lib, err := LoadDefault()
	if err != nil {
		return nil, err
	}
	if err := lib.Overlay(os.DirFS(dir)); err != nil {
		return nil, fmt.Errorf("failed to load definitions from %s: %w", dir, err)
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Overlay reads enemies, towers, waves and achievements tables and the maps/
// directory from fsys. Missing tables are skipped.
func (l *Library) Overlay(fsys fs.FS) error {
	var enemies map[string]EnemyDefinition
	if ok, err := decodeTable(fsys, "enemies", &enemies); err != nil {
		return err
	} else if ok {
		for id, def := range enemies {
			def.ID = id
			l.Enemies[id] = def
		}
	}

	var towers map[string]TowerDefinition
	if ok, err := decodeTable(fsys, "towers", &towers); err != nil {
		return err
	} else if ok {
		for id, def := range towers {
			def.ID = id
			l.Towers[id] = def
		}
	}

	var waves map[string][]WaveDefinition
	if ok, err := decodeTable(fsys, "waves", &waves); err != nil {
		return err
	} else if ok {
		for key, list := range waves {
			sort.SliceStable(list, func(i, j int) bool { return list[i].WaveNumber < list[j].WaveNumber })
			l.Waves[key] = list
		}
	}

	var achievements []AchievementDefinition
	if ok, err := decodeTable(fsys, "achievements", &achievements); err != nil {
		return err
	} else if ok {
		l.Achievements = achievements
	}

	entries, err := fs.ReadDir(fsys, "maps")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read maps directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !isTableFile(e.Name()) {
			continue
		}
		var def MapDefinition
		if err := decodeFile(fsys, path.Join("maps", e.Name()), &def); err != nil {
			return err
		}
		if def.ID == "" {
			def.ID = strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		}
		l.Maps[def.ID] = def
	}
	return nil
}

// Validate checks cross-table references and numeric ranges.
func (l *Library) Validate() error {
	var errs []error
	for id, e := range l.Enemies {
		if e.Health <= 0 {
			errs = append(errs, fmt.Errorf("enemy %q: health must be positive: %w", id, ErrInvalidDefinition))
		}
		if e.Speed < 0 {
			errs = append(errs, fmt.Errorf("enemy %q: negative speed: %w", id, ErrInvalidDefinition))
		}
	}
	for id, t := range l.Towers {
		if t.AttackSpeed <= 0 {
			errs = append(errs, fmt.Errorf("tower %q: attackSpeed must be positive: %w", id, ErrInvalidDefinition))
		}
		if t.Range <= 0 {
			errs = append(errs, fmt.Errorf("tower %q: range must be positive: %w", id, ErrInvalidDefinition))
		}
		if t.Strategy != "" && !t.Strategy.Valid() {
			errs = append(errs, fmt.Errorf("tower %q: unknown strategy %q: %w", id, t.Strategy, ErrInvalidDefinition))
		}
		for _, u := range t.Upgrades {
			if u.AttackSpeed != nil && *u.AttackSpeed <= 0 {
				errs = append(errs, fmt.Errorf("tower %q upgrade %d: attackSpeed must be positive: %w", id, u.Level, ErrInvalidDefinition))
			}
		}
	}
	for key, list := range l.Waves {
		for _, w := range list {
			if w.PreWaveDelay < 0 {
				errs = append(errs, fmt.Errorf("waves %q wave %d: negative preWaveDelay: %w", key, w.WaveNumber, ErrInvalidDefinition))
			}
			for _, g := range w.Enemies {
				if _, ok := l.Enemies[g.Type]; !ok {
					errs = append(errs, fmt.Errorf("waves %q wave %d: %q: %w", key, w.WaveNumber, g.Type, ErrUnknownEnemyType))
				}
				if g.Count < 0 {
					errs = append(errs, fmt.Errorf("waves %q wave %d: %q: negative count %d: %w", key, w.WaveNumber, g.Type, g.Count, ErrInvalidDefinition))
				}
				if g.SpawnDelay < 0 {
					errs = append(errs, fmt.Errorf("waves %q wave %d: %q: negative spawnDelay: %w", key, w.WaveNumber, g.Type, ErrInvalidDefinition))
				}
			}
		}
	}

	// сломанная карта не валит загрузку: её убирают, и MapOrDefault
	// откатывается на карту по умолчанию
	dropped := 0
	for id, m := range l.Maps {
		if _, err := m.Build(); err != nil {
			log.Printf("Library: dropping map %q: %v", id, err)
			delete(l.Maps, id)
			dropped++
		}
	}
	if dropped > 0 && len(l.Maps) == 0 {
		errs = append(errs, fmt.Errorf("no playable maps left: %w", waymap.ErrPathTooShort))
	}
	return errors.Join(errs...)
}

// Enemy looks up an enemy definition.
func (l *Library) Enemy(id string) (EnemyDefinition, error) {
	def, ok := l.Enemies[id]
	if !ok {
		return EnemyDefinition{}, fmt.Errorf("%q: %w", id, ErrUnknownEnemyType)
	}
	return def, nil
}

// Tower looks up a tower definition.
func (l *Library) Tower(id string) (*TowerDefinition, error) {
	def, ok := l.Towers[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownTowerType)
	}
	return &def, nil
}

// TowerIDs returns tower type keys sorted by cost, then id.
func (l *Library) TowerIDs() []string {
	ids := make([]string, 0, len(l.Towers))
	for id := range l.Towers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := l.Towers[ids[i]], l.Towers[ids[j]]
		if a.Cost != b.Cost {
			return a.Cost < b.Cost
		}
		return ids[i] < ids[j]
	})
	return ids
}

// WavesFor returns the wave list for a map.
func (l *Library) WavesFor(mapID string) []WaveDefinition {
	return l.Waves[WaveTableKey(mapID)]
}

// Map builds the map with the given id.
func (l *Library) Map(id string) (*waymap.Map, error) {
	def, ok := l.Maps[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownMap)
	}
	return def.Build()
}

// MapOrDefault builds the requested map and falls back to the default one
// when it is missing or broken.
func (l *Library) MapOrDefault(id, fallback string) (*waymap.Map, error) {
	m, err := l.Map(id)
	if err == nil {
		return m, nil
	}
	log.Printf("Library: map %q unavailable (%v), falling back to %q", id, err, fallback)
	return l.Map(fallback)
}

func decodeTable(fsys fs.FS, name string, v any) (bool, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		file := name + ext
		if _, err := fs.Stat(fsys, file); err != nil {
			continue
		}
		if err := decodeFile(fsys, file, v); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func decodeFile(fsys fs.FS, file string, v any) error {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	return Decode(file, data, v)
}

// Decode unmarshals data as JSON or YAML depending on the file extension.
func Decode(file string, data []byte, v any) error {
	switch strings.ToLower(path.Ext(file)) {
	case ".json":
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", file, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", file, err)
		}
	default:
		return fmt.Errorf("%s: unsupported format: %w", file, ErrInvalidDefinition)
	}
	return nil
}

func isTableFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}
