package location

import (
	"sync/atomic"
	"time"
)

var current atomic.Pointer[time.Location]

// Set replaces the application time zone. Called once at startup from config.
func Set(loc *time.Location) {
	if loc != nil {
		current.Store(loc)
	}
}

// Load resolves an IANA zone name and makes it the application time zone.
func Load(name string) (*time.Location, error) {
	if name == "" {
		Set(time.UTC)
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, err
	}
	Set(loc)
	return loc, nil
}

// Location returns the application time zone, UTC until Set is called.
func Location() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}
	return time.UTC
}
