package utils

import (
	"fmt"
	"time"
)

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// UTCNowPtr returns a pointer to the current UTC time
func UTCNowPtr() *time.Time {
	now := UTCNow()
	return &now
}

// UTCNowAdd returns the current UTC time plus the given duration
func UTCNowAdd(d time.Duration) time.Time {
	return UTCNow().Add(d)
}

// IsExpired reports whether the given expiry time has passed
func IsExpired(expiresAt time.Time) bool {
	return UTCNow().After(expiresAt)
}

// IsExpiredPtr reports whether a nullable expiry time has passed.
// A nil expiry never expires.
func IsExpiredPtr(expiresAt *time.Time) bool {
	if expiresAt == nil {
		return false
	}
	return IsExpired(*expiresAt)
}

// TimeSince renders how long ago t happened, in the largest whole unit
func TimeSince(t time.Time) string {
	seconds := int64(UTCNow().Sub(t).Seconds())

	intervals := []struct {
		seconds int64
		label   string
	}{
		{31536000, "year"},
		{2592000, "month"},
		{604800, "week"},
		{86400, "day"},
		{3600, "hour"},
		{60, "minute"},
	}

	for _, interval := range intervals {
		count := seconds / interval.seconds
		if count >= 1 {
			if count == 1 {
				return fmt.Sprintf("1 %s ago", interval.label)
			}
			return fmt.Sprintf("%d %ss ago", count, interval.label)
		}
	}

	return "just now"
}

// FormatDate renders a timestamp for display, e.g. "Jan 2, 2006 03:04 PM"
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006 03:04 PM")
}

// FormatDatePtr renders a nullable timestamp, "Never" when nil
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return "Never"
	}
	return FormatDate(*t)
}
