package schedule

import (
	"testing"

	"fieldops/models"
)

func day(tasks ...models.WorkTask) models.DailySchedule {
	return models.DailySchedule{Tasks: tasks}
}

func work(status string) models.WorkTask {
	return models.WorkTask{TaskType: models.TaskTypeWork, Status: status, TotalEstimatedMinutes: 30}
}

func travel() models.WorkTask {
	return models.WorkTask{
		TaskType:              models.TaskTypeTravel,
		Status:                models.TaskStatusCompleted,
		TotalEstimatedMinutes: 10,
		TravelInfo:            &models.TravelInfo{DistanceKm: 2.5},
	}
}

func TestCalcWorkerProgressEmpty(t *testing.T) {
	got := CalcWorkerProgress(nil)
	if got.CompletedTasks != 0 || got.TotalTasks != 0 || got.ProgressPercentage != 0 {
		t.Errorf("empty schedule must yield all zeros, got %+v", got)
	}

	got = CalcWorkerProgress([]models.DailySchedule{})
	if got.ProgressPercentage != 0 {
		t.Errorf("no days must yield 0%%, got %+v", got)
	}
}

func TestCalcWorkerProgressExcludesTravel(t *testing.T) {
	schedules := []models.DailySchedule{
		day(work(models.TaskStatusCompleted), travel(), work(models.TaskStatusPending)),
		day(travel(), work(models.TaskStatusCompleted)),
	}

	got := CalcWorkerProgress(schedules)
	if got.TotalTasks != 3 {
		t.Errorf("totalTasks = %d, want 3 (travel excluded)", got.TotalTasks)
	}
	if got.CompletedTasks != 2 {
		t.Errorf("completedTasks = %d, want 2", got.CompletedTasks)
	}
	if got.ProgressPercentage != 67 {
		t.Errorf("progressPercentage = %d, want 67 (2/3 rounded)", got.ProgressPercentage)
	}
}

func TestCalcWorkerProgressAllDone(t *testing.T) {
	got := CalcWorkerProgress([]models.DailySchedule{day(work(models.TaskStatusCompleted))})
	if got.ProgressPercentage != 100 {
		t.Errorf("progressPercentage = %d, want 100", got.ProgressPercentage)
	}
}

func TestRecalcDayTotals(t *testing.T) {
	w1 := work(models.TaskStatusPending)
	w1.StoreID = "s1"
	w2 := work(models.TaskStatusPending)
	w2.StoreID = "s1" // second visit to the same store
	w3 := work(models.TaskStatusPending)
	w3.StoreID = "s2"

	got := RecalcDayTotals(day(w1, travel(), w2, travel(), w3))

	if got.TotalTasks != 5 || got.WorkTasks != 3 || got.TravelTasks != 2 {
		t.Errorf("counts = %d/%d/%d, want 5/3/2", got.TotalTasks, got.WorkTasks, got.TravelTasks)
	}
	if got.TotalWorkMinutes != 90 {
		t.Errorf("totalWorkMinutes = %d, want 90", got.TotalWorkMinutes)
	}
	if got.TotalTravelMinutes != 20 {
		t.Errorf("totalTravelMinutes = %d, want 20", got.TotalTravelMinutes)
	}
	if got.StoresVisited != 2 {
		t.Errorf("storesVisited = %d, want 2 distinct stores", got.StoresVisited)
	}
	if got.TotalDistanceKm != 5.0 {
		t.Errorf("totalDistanceKm = %f, want 5.0", got.TotalDistanceKm)
	}
}
