package usecase

import "time"

// Clock - источник текущего времени для createdAt/updatedAt
type Clock func() time.Time

// SystemClock возвращает текущее время в UTC
func SystemClock() time.Time {
	return time.Now().UTC()
}
