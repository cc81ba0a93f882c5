package entity

import (
	"fmt"
	"time"
)

// RoomSummary is one row of the browse list. The list is always replaced
// wholesale on each rooms_list response; staleness is acceptable,
// partial merges are not.
type RoomSummary struct {
	RoomID    string  `json:"room_id"`
	HostName  string  `json:"host_name"`
	GridSize  int     `json:"grid_size"`
	CreatedAt float64 `json:"created_at"`
}

// Age renders how long ago the room was created, relative to now.
func (that *RoomSummary) Age(now time.Time) string {
	diff := float64(now.Unix()) - that.CreatedAt

	switch {
	case diff < 60:
		return "just now"
	case diff < 3600:
		return fmt.Sprintf("%dm ago", int(diff/60))
	default:
		return fmt.Sprintf("%dh ago", int(diff/3600))
	}
}
