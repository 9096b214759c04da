package timer

import "time"

// GeneralTaskID marks an entry tracked against no particular task.
const GeneralTaskID = "general"

// TimeEntry is one tracked block of work. Durations are stored as
// milliseconds and timestamps round-trip through RFC3339, matching the
// serialized log the browser client kept.
type TimeEntry struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"taskId"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Duration    int64      `json:"duration"`
	Description string     `json:"description,omitempty"`
	IsActive    bool       `json:"isActive"`
}

func (e *TimeEntry) startedOn(day time.Time) bool {
	y1, m1, d1 := e.StartTime.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
