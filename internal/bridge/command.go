// internal/bridge/command.go
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/vmihailenco/msgpack/v5"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/system"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrRejected       = errors.New("command rejected")
)

// Операции, которые клиент может отправить
const (
	OpBuild     = "build"
	OpUpgrade   = "upgrade"
	OpSell      = "sell"
	OpStrategy  = "strategy"
	OpStartWave = "start_wave"
	OpSkipDelay = "skip_delay"
	OpPause     = "pause"
	OpResume    = "resume"
	OpRestart   = "restart"
)

// Command is a player action received from a remote client.
type Command struct {
	Op       string  `json:"op" msgpack:"op"`
	Tower    string  `json:"tower,omitempty" msgpack:"tower,omitempty"`
	ID       uint64  `json:"id,omitempty" msgpack:"id,omitempty"`
	X        float64 `json:"x,omitempty" msgpack:"x,omitempty"`
	Y        float64 `json:"y,omitempty" msgpack:"y,omitempty"`
	Strategy string  `json:"strategy,omitempty" msgpack:"strategy,omitempty"`
}

// DecodeCommand parses a command from a binary (msgpack) or text (json) frame.
func DecodeCommand(data []byte, binary bool) (Command, error) {
	var c Command
	var err error
	if binary {
		err = msgpack.Unmarshal(data, &c)
	} else {
		err = json.Unmarshal(data, &c)
	}
	if err != nil {
		return c, fmt.Errorf("failed to decode command: %w", err)
	}
	return c, nil
}

// Apply runs the command against the game. Must be called from the goroutine
// that owns the game.
func (c Command) Apply(g *app.Game) error {
	switch c.Op {
	case OpBuild:
		_, err := g.BuildTower(c.Tower, cp.Vector{X: c.X, Y: c.Y})
		return err
	case OpUpgrade:
		t, err := c.tower(g)
		if err != nil {
			return err
		}
		return g.UpgradeTower(t)
	case OpSell:
		t, err := c.tower(g)
		if err != nil {
			return err
		}
		_, err = g.SellTower(t)
		return err
	case OpStrategy:
		t, err := c.tower(g)
		if err != nil {
			return err
		}
		return ok(g.SetTowerStrategy(t, defs.TargetStrategy(c.Strategy)), c.Op)
	case OpStartWave:
		return ok(g.StartNextWave(), c.Op)
	case OpSkipDelay:
		return ok(g.SkipWaveDelay(), c.Op)
	case OpPause:
		return ok(g.Pause(), c.Op)
	case OpResume:
		return ok(g.Resume(), c.Op)
	case OpRestart:
		g.Restart()
		return nil
	}
	return fmt.Errorf("%q: %w", c.Op, ErrUnknownCommand)
}

func (c Command) tower(g *app.Game) (*component.Tower, error) {
	t := g.TowerSystem.Get(component.TowerID(c.ID))
	if t == nil {
		return nil, fmt.Errorf("tower %d: %w", c.ID, system.ErrUnknownTower)
	}
	return t, nil
}

func ok(done bool, op string) error {
	if !done {
		return fmt.Errorf("%s: %w", op, ErrRejected)
	}
	return nil
}
