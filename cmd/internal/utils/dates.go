package utils

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	_ "time/tzdata"
)

const (
	DateLayout   = "2006-01-02"
	BRDateLayout = "02/01/2006"
)

// ParseDate parses a YYYY-MM-DD business date at midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseFlexibleDate accepts both YYYY-MM-DD and DD/MM/YYYY, the two formats
// found in the spreadsheets.
func ParseFlexibleDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, ok := ParseDate(s); ok {
		return t, true
	}
	t, err := time.Parse(BRDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

const DefaultTimezone = "America/Sao_Paulo"

var location atomic.Pointer[time.Location]

func init() {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	location.Store(loc)
}

// SetLocation changes the zone used to decide which calendar day it is.
// An empty name keeps the current one.
func SetLocation(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	location.Store(loc)
	return nil
}

func Location() *time.Location {
	return location.Load()
}

// Today is the current calendar day in the school's timezone, as a midnight
// UTC date like every other business date.
func Today() time.Time {
	return TruncateDay(NowFunc().In(Location()))
}

func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from 'from' to 'to'. It is negative
// when 'to' comes first.
func DaysBetween(from, to time.Time) int {
	return int(TruncateDay(to).Sub(TruncateDay(from)).Hours() / 24)
}
