// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/profile"
	"tg-tower-defense/internal/state"
	"tg-tower-defense/internal/watch"
)

const appName = "tg-tower-defense"

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
	dataDir        string
	watcher        *watch.Watcher
}

func (a *AppGame) Update() error {
	a.pollReload()

	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime)
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

// pollReload перечитывает определения, если файлы в каталоге данных изменились.
func (a *AppGame) pollReload() {
	if a.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case name, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("Watch: %s changed", name)
			changed = true
			continue
		case err, ok := <-a.watcher.Errors:
			if ok {
				log.Printf("Watch: %v", err)
			}
			continue
		default:
		}
		break
	}
	if !changed {
		return
	}
	lib, err := defs.LoadDir(a.dataDir)
	if err != nil {
		log.Printf("Watch: reload rejected: %v", err)
		return
	}
	a.stateMachine.Reload(lib)
}

// watchDirs returns the data dir and its maps/ subdirectory when present.
func watchDirs(dir string) []string {
	dirs := []string{dir}
	if fi, err := os.Stat(filepath.Join(dir, "maps")); err == nil && fi.IsDir() {
		dirs = append(dirs, filepath.Join(dir, "maps"))
	}
	return dirs
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	mapID := flag.String("map", config.DefaultMapID, "map id to start on")
	dataDir := flag.String("data", "", "directory with definition overrides (json/yaml), watched for changes")
	menu := flag.Bool("menu", false, "start from the map selection menu")
	pprofAddr := flag.String("pprof", "localhost:6060", "pprof listen address, empty to disable")
	flag.Parse()

	if *pprofAddr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
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
		log.Fatalf("failed to load definitions: %v", err)
	}

	var store profile.Store
	if gs, err := profile.OpenGDataStore(appName); err != nil {
		log.Printf("Profile: %v, progress will not be kept", err)
		store = &profile.MemoryStore{}
	} else {
		store = gs
	}
	saver := profile.NewAsyncSaver(store)
	defer saver.Close()

	session := state.NewSession(lib, app.Options{
		Profile: profile.LoadOrNew(store, "player"),
		Saver:   saver,
	})

	sm := state.NewStateMachine() // Создаём машину состояний
	if *menu {
		sm.SetState(state.NewMenuState(sm, session))
	} else {
		gs, err := state.NewGameState(sm, session, *mapID)
		if err != nil {
			log.Fatalf("failed to start game: %v", err)
		}
		sm.SetState(gs)
	}

	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
		dataDir:        *dataDir,
	}
	if *dataDir != "" {
		w, err := watch.NewWatcher(watchDirs(*dataDir)...)
		if err != nil {
			log.Printf("Watch: %v, hot reload disabled", err)
		} else {
			game.watcher = w
			defer w.Close()
		}
	}

	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Tower Defense")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
