// cmd/tdwatch/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
)

const (
	frameRate   = time.Second / 30
	botInterval = 500 * time.Millisecond
)

// Watch — терминальный зритель: гоняет симуляцию и рисует её символами.
type Watch struct {
	screen tcell.Screen
	game   *app.Game
	bot    *Bot
	speed  int
	width  int
	height int
}

var (
	pathStyle       = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	towerStyle      = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	projectileStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSteelBlue)
)

func enemyStyle(v app.EnemyView) tcell.Style {
	switch {
	case v.Poisoned:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	case v.Slowed:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case v.Ratio < 0.3:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorOrange)
}

func (w *Watch) cell(x, y float64) (int, int) {
	cx := int(x / config.ScreenWidth * float64(w.width))
	cy := int(y/config.ScreenHeight*float64(w.height-1)) + 1
	return cx, cy
}

func (w *Watch) put(x, y float64, r rune, style tcell.Style) {
	cx, cy := w.cell(x, y)
	if cx < 0 || cx >= w.width || cy < 1 || cy >= w.height {
		return
	}
	w.screen.SetContent(cx, cy, r, nil, style)
}

func (w *Watch) text(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		w.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (w *Watch) draw() {
	w.screen.Clear()
	s := w.game.Snapshot()

	path := w.game.Map.Path
	for d := 0.0; d <= path.TotalLength(); d += 8 {
		p := path.PointAt(d)
		w.put(p.X, p.Y, '·', pathStyle)
	}
	for _, t := range s.Towers {
		w.put(t.Position.X, t.Position.Y, []rune(strings.ToUpper(t.Type))[0], towerStyle)
	}
	for _, e := range s.Enemies {
		w.put(e.Position.X, e.Position.Y, []rune(e.Type)[0], enemyStyle(e))
	}
	for _, p := range s.Projectiles {
		w.put(p.Position.X, p.Position.Y, '*', projectileStyle)
	}

	status := fmt.Sprintf(" %-8s coins %-5d lives %-3d wave %d/%d alive %-3d x%d  t=%.1fs  [space] wave [+/-] speed [q] quit ",
		s.Phase, s.Coins, s.Lives, s.Wave.CurrentWave, s.Wave.TotalWaves, s.Wave.Alive, w.speed, s.Now.Seconds())
	if len(status) < w.width {
		status += strings.Repeat(" ", w.width-len(status))
	}
	w.text(0, 0, status, statusStyle)
	w.screen.Show()
}

// handle returns false when the user asked to quit.
func (w *Watch) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() != tcell.KeyRune:
		case ev.Rune() == 'q':
			return false
		case ev.Rune() == ' ':
			if !w.game.SkipWaveDelay() {
				w.game.StartNextWave()
			}
		case ev.Rune() == '+' && w.speed < 8:
			w.speed *= 2
		case ev.Rune() == '-' && w.speed > 1:
			w.speed /= 2
		case ev.Rune() == 'r':
			w.game.Restart()
		}
	case *tcell.EventResize:
		w.width, w.height = w.screen.Size()
		w.screen.Sync()
	}
	return true
}

func main() {
	mapID := flag.String("map", config.DefaultMapID, "map id")
	dataDir := flag.String("data", "", "directory with definition overrides")
	seed := flag.Int64("seed", 0, "autoplay seed, 0 for random")
	autoplay := flag.Bool("bot", true, "let the bot build towers and start waves")
	logFile := flag.String("log", "tdwatch.log", "log file (the terminal is taken by the view)")
	flag.Parse()

	if f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	var (
		lib *defs.Library
		err error
	)
	if *dataDir != "" {
		lib, err = defs.LoadDir(*dataDir)
	} else {
		lib, err = defs.LoadDefault()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load definitions: %v\n", err)
		os.Exit(1)
	}
	g, err := app.NewGame(lib, *mapID, app.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start game: %v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	w := &Watch{screen: screen, game: g, speed: 1}
	if *autoplay {
		w.bot = NewBot(*seed)
	}
	w.width, w.height = screen.Size()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()
	var sinceBot time.Duration
	for {
		select {
		case ev := <-events:
			if !w.handle(ev) {
				return
			}
		case <-ticker.C:
			for i := 0; i < w.speed; i++ {
				g.Update(frameRate)
			}
			if w.bot != nil {
				sinceBot += frameRate * time.Duration(w.speed)
				if sinceBot >= botInterval {
					sinceBot = 0
					w.bot.Step(g)
				}
			}
			w.draw()
		}
	}
}
