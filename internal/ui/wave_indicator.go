package ui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"tg-tower-defense/internal/component"
	"tg-tower-defense/internal/config"
)

// WaveIndicator отображает номер текущей волны римскими цифрами
// и отсчёт до следующей.
type WaveIndicator struct {
	X, Y         int
	Face         font.Face
	Color        color.Color
	OutlineColor color.Color
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y int, face font.Face) *WaveIndicator {
	return &WaveIndicator{
		X:            x,
		Y:            y,
		Face:         face,
		Color:        config.HUDColor,
		OutlineColor: color.White,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

// Label returns the text shown for the given progress.
func Label(p component.WaveProgress) string {
	if p.CurrentWave <= 0 {
		return fmt.Sprintf("0/%d", p.TotalWaves)
	}
	label := fmt.Sprintf("%s/%s", toRoman(p.CurrentWave), toRoman(p.TotalWaves))
	switch {
	case p.TimeUntilNext > 0:
		label += fmt.Sprintf("  next in %.0fs", math.Ceil(p.TimeUntilNext.Seconds()))
	case p.InProgress:
		label += fmt.Sprintf("  %d/%d", p.Spawned, p.Total)
	}
	return label
}

// Draw отрисовывает индикатор на экране.
func (i *WaveIndicator) Draw(screen *ebiten.Image, p component.WaveProgress) {
	label := Label(p)
	bounds := text.BoundString(i.Face, label)
	x := i.X - bounds.Dx()/2

	// Обводка
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			text.Draw(screen, label, i.Face, x+dx, i.Y+dy, i.OutlineColor)
		}
	}
	fg := i.Color
	if p.TimeUntilNext > 0 {
		fg = config.CountdownColor
	}
	text.Draw(screen, label, i.Face, x, i.Y, fg)
}
