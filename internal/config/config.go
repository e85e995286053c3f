// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	MaxDeltaTime = 60 * time.Millisecond

	StartingLives = 10
	StartingCoins = 100

	EffectTickInterval = 100 * time.Millisecond
	PoisonTickInterval = time.Second

	ProjectileHitRadius    = 20.0
	DefaultProjectileSpeed = 300.0 // пикселей в секунду
	ProjectilePoolSize     = 200

	TowerMinSeparation = 30.0
	TowerClickRadius   = 25.0
	SellRefundRatio    = 0.5

	// Сплэш у края радиуса наносит половину урона
	SplashFalloff = 0.5

	WaveAutoAdvanceDelay = 5 * time.Second
	WaveProgressInterval = time.Second

	DefaultMapID = "1"
)

// Viewer
const (
	EnemyRadius      = 10.0
	TowerRadius      = 14.0
	ProjectileRadius = 4.0
	PathWidth        = 28.0
	TextCharWidth    = 7
	TextOffsetY      = 4
	HUDHeight        = 40

	ButtonSize     = 14.0
	IndicatorSize  = 12.0
	PanelHeight    = 120
	ClickCooldown  = 150 * time.Millisecond
	RotationSmooth = 0.3 // доля поворота башни за кадр
)

// GameSpeeds — множители скорости для кнопки ускорения.
var GameSpeeds = []int{1, 2, 4}

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	PathColor        = color.RGBA{70, 100, 120, 220}
	BuildableColor   = color.RGBA{40, 70, 50, 160}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	HealthBarColor   = color.RGBA{50, 205, 50, 255}
	HealthBackColor  = color.RGBA{150, 70, 70, 220}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	RangeColor       = color.RGBA{255, 255, 0, 64}
	SlowTintColor    = color.RGBA{90, 160, 255, 255}
	PoisonTintColor  = color.RGBA{120, 220, 60, 255}
	ProjectileColor  = color.RGBA{255, 215, 0, 255}
	HUDColor         = color.RGBA{70, 130, 180, 220}
	DefeatColor      = color.RGBA{220, 60, 60, 220}
	VictoryColor     = color.RGBA{60, 200, 90, 220}
	PausedColor      = color.RGBA{200, 200, 80, 255}
	PlayingColor     = color.RGBA{80, 200, 120, 255}
	CountdownColor   = color.RGBA{255, 165, 0, 255}
	ButtonColor      = color.RGBA{60, 60, 80, 230}
	ButtonHover      = color.RGBA{90, 90, 120, 230}
	PanelColor       = color.RGBA{30, 30, 45, 235}
	SelectedColor    = color.RGBA{255, 255, 0, 255}

	SpeedColors = []color.RGBA{
		{70, 130, 180, 255},
		{255, 165, 0, 255},
		{220, 60, 60, 255},
	}

	EnemyColors = map[string]color.RGBA{
		"slow":  {200, 120, 60, 255},
		"fast":  {230, 230, 90, 255},
		"tank":  {150, 60, 60, 255},
		"swarm": {200, 90, 200, 255},
	}

	TowerColors = map[string]color.RGBA{
		"cannon": {170, 170, 170, 255},
		"ice":    {120, 190, 255, 255},
		"rocket": {230, 110, 60, 255},
		"venom":  {120, 220, 60, 255},
		"sniper": {240, 240, 240, 255},
	}
)
