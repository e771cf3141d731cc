package itinerary

import (
	"testing"

	"fieldops/models"
)

func schedules() []models.DailySchedule {
	return []models.DailySchedule{
		{ID: "d2", Date: "2026-09-08", Tasks: []models.WorkTask{
			{ID: "t3", TaskType: models.TaskTypeWork, Coordinates: &models.Coordinates{Lat: 40.42, Lng: -3.69}},
		}},
		{ID: "d1", Date: "2026-09-07", Tasks: []models.WorkTask{
			{ID: "t1", TaskType: models.TaskTypeWork, Coordinates: &models.Coordinates{Lat: 40.41, Lng: -3.70}},
			{ID: "t2", TaskType: models.TaskTypeTravel},
		}},
		// note the gap: nothing on the 9th
		{ID: "d3", Date: "2026-09-10"},
	}
}

func TestInitialState(t *testing.T) {
	n := NewNavigator(schedules())

	if n.Mode() != ModeCalendar {
		t.Errorf("mode = %q, want calendar", n.Mode())
	}
	if n.SelectedDate() != "2026-09-07" {
		t.Errorf("selectedDate = %q, want the first scheduled date", n.SelectedDate())
	}
}

func TestSelectDayWithSchedule(t *testing.T) {
	n := NewNavigator(schedules())

	if !n.SelectDay("2026-09-08") {
		t.Fatal("selecting a scheduled day must succeed")
	}
	if n.Mode() != ModeDailyDetail {
		t.Errorf("mode = %q, want daily detail", n.Mode())
	}
	if n.SelectedDate() != "2026-09-08" {
		t.Errorf("selectedDate = %q", n.SelectedDate())
	}
}

func TestSelectEmptyDayIsNoOp(t *testing.T) {
	n := NewNavigator(schedules())

	if n.SelectDay("2026-09-09") {
		t.Fatal("selecting an empty day must be a no-op")
	}
	if n.Mode() != ModeCalendar || n.SelectedDate() != "2026-09-07" {
		t.Errorf("state changed on a no-op: mode=%q date=%q", n.Mode(), n.SelectedDate())
	}
}

func TestBackReturnsToCalendar(t *testing.T) {
	n := NewNavigator(schedules())
	n.SelectDay("2026-09-07")
	n.FocusTask("t1")

	n.Back()
	if n.Mode() != ModeCalendar {
		t.Errorf("mode = %q, want calendar after back", n.Mode())
	}
	if _, ok := n.FocusedTask(); ok {
		t.Error("back must clear the focused task")
	}
}

func TestPrevNextGatedOnAdjacentDay(t *testing.T) {
	n := NewNavigator(schedules())
	n.SelectDay("2026-09-08")

	if !n.CanPrev() {
		t.Error("the 7th is scheduled, prev must be enabled")
	}
	if n.CanNext() {
		t.Error("the 9th is empty, next must be disabled")
	}

	if n.Next() {
		t.Fatal("next must refuse to land on the empty 9th")
	}
	if n.SelectedDate() != "2026-09-08" {
		t.Errorf("failed next moved anyway, date=%q", n.SelectedDate())
	}

	if !n.Prev() {
		t.Fatal("prev to the 7th must work")
	}
	if n.SelectedDate() != "2026-09-07" || n.Mode() != ModeDailyDetail {
		t.Errorf("after prev: date=%q mode=%q", n.SelectedDate(), n.Mode())
	}
}

func TestStepIgnoredInCalendarMode(t *testing.T) {
	n := NewNavigator(schedules())
	if n.Next() || n.Prev() {
		t.Error("prev/next only apply in daily detail")
	}
}

func TestFocusTask(t *testing.T) {
	n := NewNavigator(schedules())
	n.SelectDay("2026-09-07")

	if !n.FocusTask("t1") {
		t.Fatal("focusing a task of the selected day must succeed")
	}
	if n.Mode() != ModeDailyDetail {
		t.Error("focusing must not change the view mode")
	}

	task, ok := n.FocusedTask()
	if !ok {
		t.Fatal("expected a focused task")
	}
	if task.Coordinates == nil || task.Coordinates.Lat != 40.41 {
		t.Errorf("focused task coordinates = %+v", task.Coordinates)
	}

	if n.FocusTask("t3") {
		t.Error("focusing a task from another day must fail")
	}
}

func TestFocusClearedOnDayChange(t *testing.T) {
	n := NewNavigator(schedules())
	n.SelectDay("2026-09-08")
	n.FocusTask("t3")

	n.Prev()
	if _, ok := n.FocusedTask(); ok {
		t.Error("moving to another day must clear the focus")
	}
}

func TestEmptyNavigator(t *testing.T) {
	n := NewNavigator(nil)

	if n.Mode() != ModeCalendar || n.SelectedDate() != "" {
		t.Errorf("empty navigator: mode=%q date=%q", n.Mode(), n.SelectedDate())
	}
	if n.CanPrev() || n.CanNext() {
		t.Error("nothing to navigate to")
	}
	if n.SelectDay("2026-09-07") {
		t.Error("no day should be selectable")
	}
}
