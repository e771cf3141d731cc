package itinerary

import (
	"sort"
	"time"

	"fieldops/models"
)

// View modes of the itinerary browser.
const (
	ModeCalendar    = "CALENDAR"
	ModeDailyDetail = "DAILY_DETAIL"
)

const dateLayout = "2006-01-02"

// Navigator drives the read-only itinerary views: a month calendar whose
// cells know whether a day has a schedule, and a single-day detail with the
// task list and map. It holds no terminal state; callers drop it when the
// containing view goes away.
type Navigator struct {
	byDate map[string]models.DailySchedule
	dates  []string // sorted ascending

	mode          string
	selectedDate  string
	focusedTaskID string
}

// NewNavigator starts in calendar mode with the first scheduled date
// selected, which is not necessarily today.
func NewNavigator(schedules []models.DailySchedule) *Navigator {
	n := &Navigator{
		byDate: make(map[string]models.DailySchedule, len(schedules)),
		mode:   ModeCalendar,
	}

	for _, day := range schedules {
		if day.Date == "" {
			continue
		}
		n.byDate[day.Date] = day
		n.dates = append(n.dates, day.Date)
	}
	sort.Strings(n.dates)

	if len(n.dates) > 0 {
		n.selectedDate = n.dates[0]
	}
	return n
}

func (n *Navigator) Mode() string         { return n.mode }
func (n *Navigator) SelectedDate() string { return n.selectedDate }

// Dates returns every scheduled date in ascending order.
func (n *Navigator) Dates() []string {
	out := make([]string, len(n.dates))
	copy(out, n.dates)
	return out
}

// HasSchedule reports whether date has an itinerary, for annotating
// calendar cells.
func (n *Navigator) HasSchedule(date string) bool {
	_, ok := n.byDate[date]
	return ok
}

// SelectDay opens the daily detail for date. Clicking a day without a
// schedule is a no-op and reports false.
func (n *Navigator) SelectDay(date string) bool {
	if !n.HasSchedule(date) {
		return false
	}
	n.selectedDate = date
	n.mode = ModeDailyDetail
	n.focusedTaskID = ""
	return true
}

// Back returns from the daily detail to the calendar.
func (n *Navigator) Back() {
	n.mode = ModeCalendar
	n.focusedTaskID = ""
}

// CanPrev reports whether the calendar-adjacent previous day has a
// schedule. The control stays disabled otherwise; navigation never lands on
// an empty day.
func (n *Navigator) CanPrev() bool {
	return n.HasSchedule(shiftDate(n.selectedDate, -1))
}

// CanNext is CanPrev for the following day.
func (n *Navigator) CanNext() bool {
	return n.HasSchedule(shiftDate(n.selectedDate, 1))
}

// Prev moves the daily detail to the previous day if it is scheduled.
func (n *Navigator) Prev() bool {
	return n.step(-1)
}

// Next moves the daily detail to the next day if it is scheduled.
func (n *Navigator) Next() bool {
	return n.step(1)
}

func (n *Navigator) step(days int) bool {
	if n.mode != ModeDailyDetail {
		return false
	}
	target := shiftDate(n.selectedDate, days)
	if !n.HasSchedule(target) {
		return false
	}
	n.selectedDate = target
	n.focusedTaskID = ""
	return true
}

// FocusTask marks one task of the selected day as focused so the map
// recenters on it. It never changes the view mode.
func (n *Navigator) FocusTask(taskID string) bool {
	if n.mode != ModeDailyDetail {
		return false
	}
	day, ok := n.byDate[n.selectedDate]
	if !ok {
		return false
	}
	for _, task := range day.Tasks {
		if task.ID == taskID {
			n.focusedTaskID = taskID
			return true
		}
	}
	return false
}

// FocusedTask returns the focused task's coordinates for map centering, or
// false when nothing is focused.
func (n *Navigator) FocusedTask() (models.WorkTask, bool) {
	if n.focusedTaskID == "" {
		return models.WorkTask{}, false
	}
	day, ok := n.byDate[n.selectedDate]
	if !ok {
		return models.WorkTask{}, false
	}
	for _, task := range day.Tasks {
		if task.ID == n.focusedTaskID {
			return task, true
		}
	}
	return models.WorkTask{}, false
}

// Selected returns the selected day's schedule, if any.
func (n *Navigator) Selected() (models.DailySchedule, bool) {
	day, ok := n.byDate[n.selectedDate]
	return day, ok
}

func shiftDate(date string, days int) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, days).Format(dateLayout)
}
