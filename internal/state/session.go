// internal/state/session.go
package state

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"tg-tower-defense/internal/app"
	"tg-tower-defense/internal/defs"
)

// Session — общие для всех экранов зависимости.
type Session struct {
	Library *defs.Library
	Options app.Options
	Face    font.Face
}

func NewSession(lib *defs.Library, opts app.Options) *Session {
	return &Session{
		Library: lib,
		Options: opts,
		Face:    basicfont.Face7x13,
	}
}
