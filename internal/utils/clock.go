package utils

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// CivilOffset is the fixed UTC+7 offset every ordering window is expressed in,
// regardless of the host time zone.
const CivilOffset = 7 * 60 * 60

var CivilZone = time.FixedZone("UTC+7", CivilOffset)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// CivilTime converts an instant to the fixed-offset civil time.
func CivilTime(t time.Time) time.Time {
	return t.In(CivilZone)
}

// StartOfDay returns 00:00:00 of the civil day containing t.
func StartOfDay(t time.Time) time.Time {
	c := CivilTime(t)
	return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, CivilZone)
}

// EndOfDay returns the last nanosecond of the civil day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseCivilDate parses YYYY-MM-DD as a civil day.
func ParseCivilDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, CivilZone)
}

// ParseClock parses a 24-hour HH:mm string.
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil || len(s) != 5 {
		return 0, 0, fmt.Errorf("invalid HH:mm value %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

// AtClock places an HH:mm value on the civil day of base.
func AtClock(base time.Time, hhmm string) (time.Time, error) {
	h, m, err := ParseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	c := CivilTime(base)
	return time.Date(c.Year(), c.Month(), c.Day(), h, m, 0, 0, CivilZone), nil
}

// IsWithinTimeRange reports whether now lies in [beginAt, endAt] on now's civil day.
// Both ends are inclusive; a window with begin after end never matches.
func IsWithinTimeRange(now time.Time, beginAt, endAt string) bool {
	civilNow := CivilTime(now)
	begin, err := AtClock(civilNow, beginAt)
	if err != nil {
		log.Warnf("[TimeCheck] bad begin %q: %v", beginAt, err)
		return false
	}
	end, err := AtClock(civilNow, endAt)
	if err != nil {
		log.Warnf("[TimeCheck] bad end %q: %v", endAt, err)
		return false
	}

	within := !civilNow.Before(begin) && !civilNow.After(end)
	log.Debugf("[TimeCheck] now=%s begin=%s end=%s within=%t",
		civilNow.Format(time.RFC3339), begin.Format(time.RFC3339), end.Format(time.RFC3339), within)
	return within
}
