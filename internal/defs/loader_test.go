package defs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"

	"tg-tower-defense/pkg/waymap"
)

func TestLoadDefault(t *testing.T) {
	lib, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	cannon, err := lib.Tower("cannon")
	if err != nil {
		t.Fatalf("cannon: %v", err)
	}
	if cannon.ID != "cannon" || cannon.Cost != 100 {
		t.Errorf("unexpected cannon definition %+v", cannon)
	}
	slow, err := lib.Enemy(EnemySlow)
	if err != nil || slow.Health != 50 {
		t.Errorf("expected slow enemy with health 50, got %+v (%v)", slow, err)
	}

	waves := lib.WavesFor("1")
	if len(waves) == 0 {
		t.Fatal("expected waves for map 1")
	}
	for i := 1; i < len(waves); i++ {
		if waves[i-1].WaveNumber >= waves[i].WaveNumber {
			t.Errorf("waves not sorted: %d before %d", waves[i-1].WaveNumber, waves[i].WaveNumber)
		}
	}

	m, err := lib.Map("2")
	if err != nil {
		t.Fatalf("map 2: %v", err)
	}
	if !m.Restricted() {
		t.Error("map 2 should carry a buildable tile list")
	}
	if len(lib.Achievements) == 0 {
		t.Error("expected achievements table")
	}
}

func TestLookupErrors(t *testing.T) {
	lib := NewLibrary()
	if _, err := lib.Enemy("dragon"); !errors.Is(err, ErrUnknownEnemyType) {
		t.Errorf("expected ErrUnknownEnemyType, got %v", err)
	}
	if _, err := lib.Tower("tesla"); !errors.Is(err, ErrUnknownTowerType) {
		t.Errorf("expected ErrUnknownTowerType, got %v", err)
	}
	if _, err := lib.Map("404"); !errors.Is(err, ErrUnknownMap) {
		t.Errorf("expected ErrUnknownMap, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(l *Library)
		want error
	}{
		{
			name: "unknown enemy in wave",
			edit: func(l *Library) {
				l.Waves["map_x"] = []WaveDefinition{{WaveNumber: 1, Enemies: []WaveGroup{{Type: "dragon", Count: 1}}}}
			},
			want: ErrUnknownEnemyType,
		},
		{
			name: "zero attack speed",
			edit: func(l *Library) {
				l.Towers["broken"] = TowerDefinition{ID: "broken", Range: 10}
			},
			want: ErrInvalidDefinition,
		},
		{
			name: "negative count",
			edit: func(l *Library) {
				l.Waves["map_x"] = []WaveDefinition{{WaveNumber: 1, Enemies: []WaveGroup{{Type: "fast", Count: 3}, {Type: "fast", Count: -1}}}}
			},
			want: ErrInvalidDefinition,
		},
		{
			name: "negative spawn delay",
			edit: func(l *Library) {
				l.Waves["map_x"] = []WaveDefinition{{WaveNumber: 1, Enemies: []WaveGroup{{Type: "fast", Count: 2, SpawnDelay: -1}}}}
			},
			want: ErrInvalidDefinition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := LoadDefault()
			if err != nil {
				t.Fatalf("LoadDefault: %v", err)
			}
			tt.edit(lib)
			if err := lib.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidateDropsBrokenMap(t *testing.T) {
	lib, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	lib.Maps["dot"] = MapDefinition{ID: "dot", Waypoints: [][]float64{{0, 0}}}
	if err := lib.Validate(); err != nil {
		t.Fatalf("broken map should not fail validation: %v", err)
	}
	if _, err := lib.Map("dot"); !errors.Is(err, ErrUnknownMap) {
		t.Errorf("expected the broken map to be dropped, got %v", err)
	}
	m, err := lib.MapOrDefault("dot", "1")
	if err != nil || m.ID != "1" {
		t.Errorf("expected fallback to map 1, got %v, %v", m, err)
	}

	only := NewLibrary()
	only.Maps["dot"] = MapDefinition{ID: "dot", Waypoints: [][]float64{{0, 0}}}
	if err := only.Validate(); !errors.Is(err, waymap.ErrPathTooShort) {
		t.Errorf("library without playable maps should fail, got %v", err)
	}
}

func TestTotalEnemiesIgnoresNegativeGroups(t *testing.T) {
	w := WaveDefinition{Enemies: []WaveGroup{{Type: "fast", Count: 3}, {Type: "fast", Count: -1}}}
	if got := w.TotalEnemies(); got != 3 {
		t.Errorf("TotalEnemies() = %d, want 3", got)
	}
}

func TestLoadDirOverlay(t *testing.T) {
	dir := t.TempDir()
	towers := []byte("cannon:\n  name: Heavy Cannon\n  damage: 99\n  range: 150\n  attackSpeed: 2\n  cost: 130\n  projectile:\n    type: bullet\n")
	if err := os.WriteFile(filepath.Join(dir, "towers.yaml"), towers, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "maps"), 0o755); err != nil {
		t.Fatal(err)
	}
	mapJSON := []byte(`{"id":"tiny","name":"Tiny","waypoints":[[0,0],[10,0]]}`)
	if err := os.WriteFile(filepath.Join(dir, "maps", "tiny.json"), mapJSON, 0o644); err != nil {
		t.Fatal(err)
	}

	lib, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	cannon, _ := lib.Tower("cannon")
	if cannon.Damage != 99 || cannon.Cost != 130 {
		t.Errorf("overlay did not replace cannon: %+v", cannon)
	}
	if _, err := lib.Tower("ice"); err != nil {
		t.Errorf("defaults should survive overlay: %v", err)
	}
	if _, err := lib.Map("tiny"); err != nil {
		t.Errorf("overlay map missing: %v", err)
	}
}

func TestMapOrDefault(t *testing.T) {
	lib, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	m, err := lib.MapOrDefault("missing", "1")
	if err != nil {
		t.Fatalf("MapOrDefault: %v", err)
	}
	if m.ID != "1" {
		t.Errorf("expected fallback to map 1, got %q", m.ID)
	}
	if m.Path.Start() != (cp.Vector{X: 0, Y: 150}) {
		t.Errorf("unexpected path start %v", m.Path.Start())
	}
}

func TestTowerEconomyHelpers(t *testing.T) {
	dmg := 40.0
	def := TowerDefinition{
		Cost: 100,
		Upgrades: []TowerUpgrade{
			{Level: 2, Damage: &dmg, Cost: 50},
			{Level: 3, Cost: 80},
		},
		Effects: []EffectKind{EffectSplash},
	}
	if got := def.InvestedCost(1); got != 100 {
		t.Errorf("InvestedCost(1) = %d, want 100", got)
	}
	if got := def.InvestedCost(2); got != 150 {
		t.Errorf("InvestedCost(2) = %d, want 150", got)
	}
	if _, ok := def.UpgradeFor(4); ok {
		t.Error("level 4 should not exist")
	}
	if !def.HasEffect(EffectSplash) || def.HasEffect(EffectSlow) {
		t.Error("HasEffect mismatch")
	}
	if def.DefaultStrategy() != TargetClosest {
		t.Errorf("default strategy should be closest, got %q", def.DefaultStrategy())
	}
}

func TestDecodeFormats(t *testing.T) {
	var fromJSON, fromYAML WaveDefinition
	if err := Decode("w.json", []byte(`{"waveNumber":3,"enemies":[{"type":"fast","count":3,"spawnDelay":1}],"reward":5}`), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if err := Decode("w.yml", []byte("waveNumber: 3\nenemies:\n  - {type: fast, count: 3, spawnDelay: 1}\nreward: 5\n"), &fromYAML); err != nil {
		t.Fatal(err)
	}
	if fromJSON.TotalEnemies() != 3 || fromYAML.TotalEnemies() != 3 {
		t.Errorf("expected 3 enemies in both, got %d and %d", fromJSON.TotalEnemies(), fromYAML.TotalEnemies())
	}
	if fromYAML.Enemies[0].SpawnInterval().Seconds() != 1 {
		t.Errorf("unexpected spawn interval %v", fromYAML.Enemies[0].SpawnInterval())
	}
	if err := Decode("w.toml", nil, &fromJSON); !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("expected ErrInvalidDefinition for unknown format, got %v", err)
	}
}
