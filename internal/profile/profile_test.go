package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"

	"tg-tower-defense/internal/defs"
)

func TestCloneIsDeep(t *testing.T) {
	p := New("tester")
	p.RecordKill("tank")
	c := p.Clone()
	p.RecordKill("tank")
	if c.Stats.KillsByType["tank"] != 1 {
		t.Errorf("clone shares maps with the original: %d", c.Stats.KillsByType["tank"])
	}
}

func TestTrackerUnlocksOnce(t *testing.T) {
	achievements := []defs.AchievementDefinition{
		{ID: "first", Reward: 5, Condition: defs.AchievementCondition{Type: defs.CondKillEnemies, Value: 1}},
		{ID: "tanks", Reward: 7, Condition: defs.AchievementCondition{Type: defs.CondKillEnemyType, Value: 2, Target: "tank"}},
	}
	p := New("tester")
	tr := NewTracker(achievements, p)

	if got := tr.Check(); len(got) != 0 {
		t.Fatalf("nothing should unlock yet, got %v", got)
	}
	p.RecordKill("tank")
	got := tr.Check()
	if len(got) != 1 || got[0].ID != "first" {
		t.Fatalf("expected first to unlock, got %v", got)
	}
	p.RecordKill("tank")
	got = tr.Check()
	if len(got) != 1 || got[0].ID != "tanks" {
		t.Fatalf("expected tanks to unlock, got %v", got)
	}
	if again := tr.Check(); len(again) != 0 {
		t.Errorf("achievements unlocked twice: %v", again)
	}
	if p.Gems != 12 {
		t.Errorf("expected 12 gems, got %d", p.Gems)
	}
}

func TestMemoryStoreAndLoadOrNew(t *testing.T) {
	s := &MemoryStore{}
	if _, err := s.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	p := LoadOrNew(s, "fresh")
	if p.Name != "fresh" {
		t.Errorf("expected fresh profile, got %q", p.Name)
	}
	p.Stats.TowersBuilt = 3
	if err := s.Save(p); err != nil {
		t.Fatal(err)
	}
	loaded := LoadOrNew(s, "other")
	if loaded.Stats.TowersBuilt != 3 || loaded.Name != "fresh" {
		t.Errorf("unexpected loaded profile %+v", loaded)
	}
}

func TestAsyncSaverKeepsLatest(t *testing.T) {
	s := &MemoryStore{}
	saver := NewAsyncSaver(s)
	p := New("async")
	for i := 1; i <= 50; i++ {
		p.Stats.WavesCompleted = i
		saver.Save(p)
	}
	saver.Close()

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load after Close: %v", err)
	}
	if loaded.Stats.WavesCompleted != 50 {
		t.Errorf("expected the latest snapshot, got %d", loaded.Stats.WavesCompleted)
	}
	if s.Saves() > 50 || s.Saves() < 1 {
		t.Errorf("unexpected save count %d", s.Saves())
	}
	// после Close сохранение игнорируется и не паникует
	saver.Save(p)
	saver.Close()
}

func TestGDataStoreRoundTrip(t *testing.T) {
	appName := fmt.Sprintf("tg_td_profile_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})

	store := NewGDataStore(m)
	if _, err := store.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}
	p := New("gdata")
	p.RecordKill("fast")
	p.RecordWave("1", 4)
	if err := store.Save(p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Stats.KillsByType["fast"] != 1 || loaded.BestWave["1"] != 4 {
		t.Errorf("profile did not survive the round trip: %+v", loaded)
	}
}
