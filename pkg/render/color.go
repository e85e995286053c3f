// pkg/render/color.go
package render

import (
	"image/color"

	"tg-tower-defense/internal/config"
)

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// BlendColor mixes a and b, t=0 gives a, t=1 gives b.
func BlendColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// EnemyColor returns the body color of an enemy, tinted by its effects.
func EnemyColor(enemyType string, slowed, poisoned bool) color.RGBA {
	c, ok := config.EnemyColors[enemyType]
	if !ok {
		c = config.TextLightColor
	}
	if slowed {
		c = BlendColor(c, config.SlowTintColor, 0.5)
	}
	if poisoned {
		c = BlendColor(c, config.PoisonTintColor, 0.5)
	}
	return c
}

// TowerColor returns the fill color of a tower type.
func TowerColor(towerType string) color.RGBA {
	if c, ok := config.TowerColors[towerType]; ok {
		return c
	}
	return config.TowerStrokeColor
}
