package bridge

import (
	"errors"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/event"
	"tg-tower-defense/internal/system"
)

func newGame(t *testing.T) *app.Game {
	t.Helper()
	lib, err := defs.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	g, err := app.NewGame(lib, "1", app.Options{Coins: 500})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(g.Close)
	return g
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestEncodeEvent(t *testing.T) {
	data, err := EncodeEvent(event.TowerSold{Tower: 3, TowerType: "cannon", Refund: 75}, 1500*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	env, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if env.Type != string(event.TowerSoldType) || env.AtMs != 1500 {
		t.Errorf("unexpected envelope %+v", env)
	}
	fields, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("data decoded as %T", env.Data)
	}
	if fields["TowerType"] != "cannon" {
		t.Errorf("TowerType = %v", fields["TowerType"])
	}
}

func TestDecodeCommand(t *testing.T) {
	bin, err := msgpack.Marshal(&Command{Op: OpSell, ID: 4})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		data    []byte
		binary  bool
		want    Command
		wantErr bool
	}{
		{"json build", []byte(`{"op":"build","tower":"cannon","x":10,"y":20}`), false, Command{Op: OpBuild, Tower: "cannon", X: 10, Y: 20}, false},
		{"msgpack sell", bin, true, Command{Op: OpSell, ID: 4}, false},
		{"garbage", []byte("{"), false, Command{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCommand(tt.data, tt.binary)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCommandApply(t *testing.T) {
	g := newGame(t)

	if err := (Command{Op: OpBuild, Tower: "cannon", X: 100, Y: 50}).Apply(g); err != nil {
		t.Fatalf("build: %v", err)
	}
	tower := g.TowerSystem.Towers()[0]
	if err := (Command{Op: OpUpgrade, ID: uint64(tower.ID)}).Apply(g); err != nil {
		t.Errorf("upgrade: %v", err)
	}
	if err := (Command{Op: OpStrategy, ID: uint64(tower.ID), Strategy: "weakest"}).Apply(g); err != nil || tower.Strategy != defs.TargetWeakest {
		t.Errorf("strategy: %v", err)
	}
	if err := (Command{Op: OpSell, ID: 99}).Apply(g); !errors.Is(err, system.ErrUnknownTower) {
		t.Errorf("sell unknown: %v", err)
	}
	if err := (Command{Op: OpResume}).Apply(g); !errors.Is(err, ErrRejected) {
		t.Errorf("resume while playing: %v", err)
	}
	if err := (Command{Op: "fly"}).Apply(g); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unknown op: %v", err)
	}
	if err := (Command{Op: OpStartWave}).Apply(g); err != nil {
		t.Errorf("start wave: %v", err)
	}
}

func TestNonFiniteBuildRejected(t *testing.T) {
	g := newGame(t)
	data, err := msgpack.Marshal(&Command{Op: OpBuild, Tower: "cannon", X: math.NaN(), Y: math.NaN()})
	if err != nil {
		t.Fatal(err)
	}
	cmd, err := DecodeCommand(data, true)
	if err != nil {
		t.Fatalf("DecodeCommand: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := cmd.Apply(g); !errors.Is(err, system.ErrInvalidPosition) {
			t.Errorf("attempt %d: expected ErrInvalidPosition, got %v", i, err)
		}
	}
	if n := len(g.TowerSystem.Towers()); n != 0 {
		t.Errorf("expected no towers, got %d", n)
	}
	if g.Coins() != 500 {
		t.Errorf("coins changed to %d", g.Coins())
	}
}

func TestHubRoundTrip(t *testing.T) {
	g := newGame(t)
	hub := NewHub()
	hub.Attach(g)
	srv := httptest.NewServer(hub)
	defer srv.Close()
	defer hub.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	waitFor(t, func() bool { return hub.Clients() == 1 })

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"op":"build","tower":"cannon","x":300,"y":300}`)); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool {
		hub.Drain(g)
		return len(g.TowerSystem.Towers()) == 1
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	seen := map[string]bool{}
	for !seen[string(event.TowerBuiltType)] {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		env, err := Decode(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		seen[env.Type] = true
	}
	if !seen[string(event.CoinsChangedType)] {
		t.Error("coins change was not broadcast before the build finished")
	}

	hub.BroadcastSnapshot(g.Snapshot())
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if env, _ := Decode(data); env.Type != SnapshotType {
		t.Errorf("expected snapshot frame, got %s", env.Type)
	}
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	hub := NewHub()
	c := &client{send: make(chan []byte, 1)}
	hub.clients[c] = struct{}{}

	for i := 0; i < 5; i++ {
		hub.OnEvent(event.CoinsChanged{Coins: i})
	}
	if hub.Dropped() != 4 {
		t.Errorf("dropped = %d, want 4", hub.Dropped())
	}
}
