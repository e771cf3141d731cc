package schedule

import (
	"math"

	"fieldops/models"
)

// WorkerProgress is the completion picture across every day of a worker's
// schedule. Travel legs never count toward progress.
type WorkerProgress struct {
	CompletedTasks     int `json:"completedTasks"`
	TotalTasks         int `json:"totalTasks"`
	ProgressPercentage int `json:"progressPercentage"`
}

// CalcWorkerProgress counts completed WORK tasks over all WORK tasks. An
// empty schedule yields zero percent, not a division error.
func CalcWorkerProgress(schedules []models.DailySchedule) WorkerProgress {
	var progress WorkerProgress

	for _, day := range schedules {
		for _, task := range day.Tasks {
			if task.TaskType != models.TaskTypeWork {
				continue
			}
			progress.TotalTasks++
			if task.Status == models.TaskStatusCompleted {
				progress.CompletedTasks++
			}
		}
	}

	if progress.TotalTasks > 0 {
		pct := float64(progress.CompletedTasks) / float64(progress.TotalTasks) * 100
		progress.ProgressPercentage = int(math.Round(pct))
	}

	return progress
}

// RecalcDayTotals recomputes the counts and minute totals of a day from its
// tasks, used after a task mutation to keep the stored rollups honest.
func RecalcDayTotals(day models.DailySchedule) models.DailySchedule {
	out := day
	out.TotalTasks = len(day.Tasks)
	out.WorkTasks = 0
	out.TravelTasks = 0
	out.TotalWorkMinutes = 0
	out.TotalTravelMinutes = 0
	out.TotalDistanceKm = 0

	stores := map[string]bool{}
	for _, task := range day.Tasks {
		switch task.TaskType {
		case models.TaskTypeWork:
			out.WorkTasks++
			out.TotalWorkMinutes += task.TotalEstimatedMinutes
			if task.StoreID != "" {
				stores[task.StoreID] = true
			}
		case models.TaskTypeTravel:
			out.TravelTasks++
			out.TotalTravelMinutes += task.TotalEstimatedMinutes
			if task.TravelInfo != nil {
				out.TotalDistanceKm += task.TravelInfo.DistanceKm
			}
		}
	}
	out.StoresVisited = len(stores)
	return out
}
