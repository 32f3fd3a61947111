// Package auctionclock computes auction timing: time left, expiry and the
// soft-close extension applied when a bid lands close to the end.
//
// Every function is pure. Callers persist the results; a computed extension
// must be written with "set if greater" semantics so racing bids can only
// push the end time forward.
package auctionclock

import (
	"fmt"
	"time"
)

const (
	DefaultWindow    = 5 * time.Minute
	DefaultExtension = 5 * time.Minute
)

// Remaining returns the time left until endTime, never negative
func Remaining(now, endTime time.Time) time.Duration {
	d := endTime.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// IsExpired reports whether the auction has reached its end time
func IsExpired(now, endTime time.Time) bool {
	return !now.Before(endTime)
}

// ExtensionFor returns the new end time for a bid placed at bidTime, if the
// bid falls within window of endTime. The candidate is bidTime+extension and
// is only returned when it is strictly later than endTime.
func ExtensionFor(bidTime, endTime time.Time, window, extension time.Duration) (time.Time, bool) {
	if endTime.Sub(bidTime) > window {
		return time.Time{}, false
	}
	candidate := bidTime.Add(extension)
	if !candidate.After(endTime) {
		return time.Time{}, false
	}
	return candidate, true
}

// TimeLeft is a display breakdown of the remaining time
type TimeLeft struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// Breakdown splits the remaining time into days, hours, minutes and seconds
func Breakdown(now, endTime time.Time) TimeLeft {
	d := Remaining(now, endTime)
	if d == 0 {
		return TimeLeft{Expired: true}
	}
	total := int(d / time.Second)
	return TimeLeft{
		Days:    total / 86400,
		Hours:   total % 86400 / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

// String renders the two most significant units, e.g. "2d 4h 10m" or "3m 12s"
func (t TimeLeft) String() string {
	switch {
	case t.Expired:
		return "ended"
	case t.Days > 0:
		return fmt.Sprintf("%dd %dh %dm", t.Days, t.Hours, t.Minutes)
	case t.Hours > 0:
		return fmt.Sprintf("%dh %dm %ds", t.Hours, t.Minutes, t.Seconds)
	case t.Minutes > 0:
		return fmt.Sprintf("%dm %ds", t.Minutes, t.Seconds)
	default:
		return fmt.Sprintf("%ds", t.Seconds)
	}
}

// IsEndingSoon reports whether a running auction ends within threshold
func IsEndingSoon(now, endTime time.Time, threshold time.Duration) bool {
	return !IsExpired(now, endTime) && Remaining(now, endTime) < threshold
}
