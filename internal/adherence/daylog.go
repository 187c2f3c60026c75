package adherence

import (
	"github.com/liftlog-app/liftlog/internal/daykey"
)

// DayLog records whether the supplement was taken on a day. One row
// per day, toggles upsert in place.
type DayLog struct {
	Day   daykey.DayKey `json:"day"`
	Taken bool          `json:"taken"`
}

// MonthStats counts taken days against the calendar length of the
// month, not the days elapsed so far.
type MonthStats struct {
	Month            string `json:"month"`
	TakenCount       int    `json:"takenCount"`
	TotalDaysInMonth int    `json:"totalDaysInMonth"`
}
