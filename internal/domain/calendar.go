package domain

import "time"

// WorkingHours is a span of working time within a day, as minutes from midnight.
type WorkingHours struct {
	From int
	To   int
}

// Calendar is a base working calendar. Only the default calendar is
// produced; exception and holiday data are not decoded.
type Calendar struct {
	Name  string
	Hours map[time.Weekday][]WorkingHours
}

// DefaultCalendarName names the calendar created by NewDefaultCalendar.
const DefaultCalendarName = "Standard"

// NewDefaultCalendar returns a Monday to Friday calendar working
// 08:00-12:00 and 13:00-17:00.
func NewDefaultCalendar() Calendar {
	day := []WorkingHours{{From: 8 * 60, To: 12 * 60}, {From: 13 * 60, To: 17 * 60}}
	hours := make(map[time.Weekday][]WorkingHours, 5)
	for d := time.Monday; d <= time.Friday; d++ {
		hours[d] = day
	}
	return Calendar{Name: DefaultCalendarName, Hours: hours}
}

// IsWorkingDay reports whether the calendar has any working time on d.
func (c Calendar) IsWorkingDay(d time.Weekday) bool {
	return len(c.Hours[d]) > 0
}

// MinutesPerDay returns the working minutes on d.
func (c Calendar) MinutesPerDay(d time.Weekday) int {
	total := 0
	for _, h := range c.Hours[d] {
		total += h.To - h.From
	}
	return total
}
