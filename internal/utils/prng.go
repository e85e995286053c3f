// internal/utils/prng.go
package utils

import (
	"math/rand"
	"time"
)

// Weighted — вариант для взвешенного выбора.
type Weighted struct {
	ID     string
	Weight int
}

// PRNGService — обертка над генератором случайных чисел, чтобы весь
// автоигрок можно было воспроизвести по сиду.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает сервис с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &PRNGService{rng: rand.New(rand.NewSource(seed))}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// Range returns a random number in [lo, hi).
func (s *PRNGService) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// ChooseWeighted выполняет взвешенный случайный выбор.
// Пустой список даёт пустую строку.
func (s *PRNGService) ChooseWeighted(entries []Weighted) string {
	if len(entries) == 0 {
		return ""
	}

	total := 0
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return entries[0].ID
	}

	r := s.Intn(total)
	upto := 0
	for _, e := range entries {
		if upto+e.Weight > r {
			return e.ID
		}
		upto += e.Weight
	}
	return entries[len(entries)-1].ID
}
