package engine

import (
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/holiday"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/timeentry"
)

// snapshot bundles every record needed to resolve one employee across a date
// range. It is assembled by batched reads before fan-out, so per-date
// resolution never touches the data source and stays a pure function.
type snapshot struct {
	loc      *time.Location
	holidays []holiday.Holiday
	cal      *calendar.WorkCalendar
	weekly   map[int]schedule.WeeklySchedule          // by weekday 0..6
	shifts   map[string]schedule.WorkShift            // by shift ID
	specials map[string]schedule.SpecialDayAssignment // by date key
	entries  map[string][]timeentry.TimeEntry         // by date key
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func weeklyByDay(rows []schedule.WeeklySchedule) map[int]schedule.WeeklySchedule {
	byDay := make(map[int]schedule.WeeklySchedule, len(rows))
	for _, row := range rows {
		// Upsert semantics: the most recently updated row wins a weekday.
		if existing, ok := byDay[row.DayOfWeek]; ok && existing.UpdatedAt.After(row.UpdatedAt) {
			continue
		}
		byDay[row.DayOfWeek] = row
	}
	return byDay
}

func shiftIDsOf(rows []schedule.WeeklySchedule) []string {
	seen := make(map[string]bool, len(rows))
	var ids []string
	for _, row := range rows {
		if row.WorkShiftID == nil || seen[*row.WorkShiftID] {
			continue
		}
		seen[*row.WorkShiftID] = true
		ids = append(ids, *row.WorkShiftID)
	}
	return ids
}
