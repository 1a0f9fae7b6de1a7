// Package jitter добавляет случайность в интервалы отступления (backoff),
// чтобы переподключения не происходили синхронно.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает длительность из диапазона [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	randMutex.Lock()
	j := globalRand.Float64() * factor * float64(d)
	randMutex.Unlock()

	return d + time.Duration(j)
}

// Backoff вычисляет экспоненциальное отступление с джиттером.
// attempt нумеруется с нуля; результат не превышает max*(1+factor).
func Backoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if d > max {
			d = max
			break
		}
	}

	return Duration(d, factor)
}
