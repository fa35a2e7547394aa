package service

import (
	"time"
)

func GetExpiresAt(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}

// CombineDateTime merges the calendar part of date with the wall-clock part
// of clock: year/month/day from the former, hour/minute from the latter,
// seconds zeroed.
func CombineDateTime(date, clock time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0,
		date.Location(),
	)
}
