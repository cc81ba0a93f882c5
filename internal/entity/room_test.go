package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRoomSummary_Age(t *testing.T) {
	now := time.Unix(10_000, 0)

	cases := []struct {
		name      string
		createdAt float64
		expected  string
	}{
		{name: "JustNow", createdAt: 9_990, expected: "just now"},
		{name: "Minutes", createdAt: 10_000 - 150, expected: "2m ago"},
		{name: "Hours", createdAt: 10_000 - 7_300, expected: "2h ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			room := &RoomSummary{CreatedAt: tc.createdAt}

			assert.Equal(t, tc.expected, room.Age(now))
		})
	}
}
