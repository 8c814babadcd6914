package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 12, 15, 30, 0, 0, time.UTC) // a Thursday

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"same day", time.Date(2025, 6, 12, 9, 5, 0, 0, time.UTC), "09:05"},
		{"yesterday", time.Date(2025, 6, 11, 23, 59, 0, 0, time.UTC), "yesterday"},
		{"two days ago", time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC), "Tuesday"},
		{"six days ago", time.Date(2025, 6, 6, 8, 0, 0, 0, time.UTC), "Friday"},
		{"a week ago", time.Date(2025, 6, 5, 8, 0, 0, 0, time.UTC), "05/06/25"},
		{"last year", time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC), "31/12/24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelativeTime(tt.t, now))
		})
	}
}
