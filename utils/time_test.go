package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpiredPtr(t *testing.T) {
	assert.False(t, IsExpiredPtr(nil))
	assert.False(t, IsExpiredPtr(ToPtr(UTCNowAdd(time.Hour))))
	assert.True(t, IsExpiredPtr(ToPtr(UTCNowAdd(-time.Hour))))
}

func TestTimeSince(t *testing.T) {
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{45 * time.Second, "just now"},
		{90 * time.Second, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{26 * time.Hour, "1 day ago"},
		{8 * 24 * time.Hour, "1 week ago"},
		{40 * 24 * time.Hour, "1 month ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TimeSince(UTCNowAdd(-tc.ago)), tc.ago.String())
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "Mar 7, 2025 03:04 PM", FormatDate(ts))
}

func TestFormatDatePtr(t *testing.T) {
	assert.Equal(t, "Never", FormatDatePtr(nil))

	ts := time.Date(2025, time.January, 2, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "Jan 2, 2025 09:30 AM", FormatDatePtr(&ts))
}
