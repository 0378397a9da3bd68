// Package jitter добавляет случайный разброс к интервалам ожидания фоновых задач,
// чтобы несколько экземпляров сервиса не просыпались одновременно.
package jitter

import (
	"context"
	"math/rand/v2"
	"time"
)

// DefaultFactor — стандартный коэффициент разброса (50%)
const DefaultFactor = 0.5

// Duration возвращает d с разбросом в диапазоне [d, d*(1+factor)].
func Duration(d time.Duration, factor float64) time.Duration {
	if d <= 0 || factor <= 0 {
		return d
	}

	return d + time.Duration(rand.Float64()*factor*float64(d))
}

// ExponentialBackoff считает задержку для попытки attempt (с нуля), ограниченную max, и добавляет разброс.
func ExponentialBackoff(base, max time.Duration, attempt int, factor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff >= max {
			backoff = max
			break
		}
	}

	return Duration(backoff, factor)
}

// Sleep ждёт d либо отмены контекста. Возвращает ctx.Err(), если ожидание прервано.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
