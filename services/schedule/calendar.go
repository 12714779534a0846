package schedule

import (
	"fmt"
	"strings"
	"time"
)

// SchoolCalendar decides the school_in_session flag for a date.
type SchoolCalendar interface {
	InSession(date time.Time) bool
}

// WeekdayCalendar treats the configured weekdays as school days.
type WeekdayCalendar struct {
	days map[time.Weekday]bool
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// NewWeekdayCalendar parses three-letter weekday names such as "mon" or "Friday".
func NewWeekdayCalendar(days []string) (WeekdayCalendar, error) {
	cal := WeekdayCalendar{days: make(map[time.Weekday]bool, len(days))}
	for _, d := range days {
		key := strings.ToLower(strings.TrimSpace(d))
		if len(key) > 3 {
			key = key[:3]
		}
		wd, ok := weekdayNames[key]
		if !ok {
			return WeekdayCalendar{}, fmt.Errorf("unknown weekday %q", d)
		}
		cal.days[wd] = true
	}
	return cal, nil
}

func (c WeekdayCalendar) InSession(date time.Time) bool {
	return c.days[date.Weekday()]
}
