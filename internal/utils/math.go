// internal/utils/math.go
package utils

import "math"

// AngleDiff — знаковая разница to-from по кратчайшей дуге, в [-π, π].
func AngleDiff(from, to float64) float64 {
	return math.Remainder(to-from, 2*math.Pi)
}

// LerpAngle поворачивает from к to на долю t кратчайшим путём.
func LerpAngle(from, to, t float64) float64 {
	return NormalizeAngle(from + AngleDiff(from, to)*t)
}

// NormalizeAngle приводит угол к [-π, π].
func NormalizeAngle(angle float64) float64 {
	return math.Remainder(angle, 2*math.Pi)
}
