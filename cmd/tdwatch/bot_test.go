package main

import (
	"fmt"
	"testing"
	"time"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/system"
)

func newBotGame(t *testing.T, coins int) *app.Game {
	t.Helper()
	lib, err := defs.LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}
	g, err := app.NewGame(lib, "1", app.Options{Coins: coins, AutoAdvance: -1})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestBotStartsWaveAndBuilds(t *testing.T) {
	g := newBotGame(t, 1000)
	bot := NewBot(42)

	for i := 0; i < 10 && len(g.TowerSystem.Towers()) == 0; i++ {
		bot.Step(g)
	}
	if g.WaveSystem.State() == system.WaveIdle {
		t.Errorf("expected the bot to start a wave, state is %s", g.WaveSystem.State())
	}
	if len(g.TowerSystem.Towers()) == 0 {
		t.Fatal("expected the bot to build at least one tower")
	}
	if g.Coins() >= 1000 {
		t.Errorf("expected coins to be spent, have %d", g.Coins())
	}
}

func TestBotWithoutCoinsBuildsNothing(t *testing.T) {
	g := newBotGame(t, 1)
	bot := NewBot(7)
	bot.Step(g)
	if n := len(g.TowerSystem.Towers()); n != 0 {
		t.Errorf("expected no towers, got %d", n)
	}
}

func TestBotIsDeterministic(t *testing.T) {
	positions := func() []string {
		g := newBotGame(t, 1000)
		bot := NewBot(99)
		for i := 0; i < 5; i++ {
			bot.Step(g)
			g.Update(50 * time.Millisecond)
		}
		var out []string
		for _, tw := range g.TowerSystem.Towers() {
			out = append(out, fmt.Sprintf("%s@%.1f,%.1f", tw.Type, tw.Position.X, tw.Position.Y))
		}
		return out
	}
	a, b := positions(), positions()
	if len(a) != len(b) {
		t.Fatalf("runs differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("tower %d: %s vs %s", i, a[i], b[i])
		}
	}
}
