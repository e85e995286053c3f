// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/bridge"
	"tg-tower-defense/internal/config"
	"tg-tower-defense/internal/defs"
	"tg-tower-defense/internal/profile"
	"tg-tower-defense/internal/watch"
)

const (
	tickRate         = time.Second / 60
	snapshotInterval = 100 * time.Millisecond
)

func main() {
	addr := flag.String("addr", ":8080", "websocket listen address")
	mapID := flag.String("map", config.DefaultMapID, "map id")
	dataDir := flag.String("data", "", "directory with definition overrides, watched for changes")
	flag.Parse()

	load := defs.LoadDefault
	if *dataDir != "" {
		load = func() (*defs.Library, error) { return defs.LoadDir(*dataDir) }
	}
	lib, err := load()
	if err != nil {
		log.Fatalf("failed to load definitions: %v", err)
	}

	store := &profile.MemoryStore{}
	saver := profile.NewAsyncSaver(store)
	defer saver.Close()
	opts := app.Options{Profile: profile.LoadOrNew(store, "server"), Saver: saver}

	g, err := app.NewGame(lib, *mapID, opts)
	if err != nil {
		log.Fatalf("failed to start game: %v", err)
	}

	hub := bridge.NewHub()
	hub.Attach(g)
	defer hub.Close()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		log.Printf("Server: listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server: %v", err)
		}
	}()

	var reload <-chan string
	if *dataDir != "" {
		w, err := watch.NewWatcher(*dataDir)
		if err != nil {
			log.Printf("Watch: %v, hot reload disabled", err)
		} else {
			defer w.Close()
			reload = w.Events
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	last := time.Now()
	var sinceSnapshot time.Duration

	for {
		select {
		case <-ctx.Done():
			log.Println("Server: shutting down")
			shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			_ = srv.Shutdown(shutdown)
			cancel()
			g.Close()
			return

		case name, ok := <-reload:
			if !ok {
				reload = nil
				continue
			}
			next, err := load()
			if err != nil {
				log.Printf("Watch: %s: reload rejected: %v", name, err)
				continue
			}
			ng, err := app.NewGame(next, *mapID, opts)
			if err != nil {
				log.Printf("Watch: %s: %v", name, err)
				continue
			}
			g.Close()
			g = ng
			hub.Attach(g)
			log.Printf("Watch: %s changed, session restarted", name)

		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			hub.Drain(g)
			g.Update(dt)

			sinceSnapshot += dt
			if sinceSnapshot >= snapshotInterval {
				sinceSnapshot = 0
				hub.BroadcastSnapshot(g.Snapshot())
			}
		}
	}
}
