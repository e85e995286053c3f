// internal/ui/speed_button.go
package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// SpeedButton переключает множитель скорости симуляции.
type SpeedButton struct {
	X, Y           float32
	Size           float32
	LastClickTime  time.Time
	LastToggleTime time.Time
	StateColors    []color.RGBA
	Speeds         []int
	CurrentState   int
}

func NewSpeedButton(x, y, size float32, speeds []int, stateColors []color.RGBA) *SpeedButton {
	return &SpeedButton{
		X:           x,
		Y:           y,
		Size:        size,
		StateColors: stateColors,
		Speeds:      speeds,
	}
}

func (b *SpeedButton) Draw(screen *ebiten.Image) {
	size := b.Size * pulse(time.Since(b.LastClickTime).Seconds())
	clr := b.StateColors[b.CurrentState%len(b.StateColors)]

	height := size * 1.2
	width := size
	offset := width * 0.8

	left := triangle(b.X-width, b.Y-height/2, b.X, b.Y, b.X-width, b.Y+height/2)
	right := triangle(b.X-width+offset, b.Y-height/2, b.X+offset, b.Y, b.X-width+offset, b.Y+height/2)
	for _, p := range []*vector.Path{left, right} {
		fillPath(screen, p, clr)
		strokePath(screen, p, 1, color.White)
	}
}

// Contains — форма сложная, попадание считаем по кругу.
func (b *SpeedButton) Contains(x, y int) bool {
	return inCircle(x, y, b.X, b.Y, b.Size*1.5)
}

func (b *SpeedButton) Toggle() {
	b.CurrentState = (b.CurrentState + 1) % len(b.Speeds)
	b.LastClickTime = time.Now()
	b.LastToggleTime = b.LastClickTime
}

// Multiplier returns the current simulation speed.
func (b *SpeedButton) Multiplier() int {
	if len(b.Speeds) == 0 {
		return 1
	}
	return b.Speeds[b.CurrentState%len(b.Speeds)]
}
