package schedule

import (
	"encoding/json"
	"log"

	"fieldops/models"
)

// AdaptWorkTask fills the derived fields of one raw engine task: the
// arrival/departure aliases, the per-type minute split, the 1-based task
// number and the stringified travel geometry. The input is copied, never
// mutated, and running the adapter over its own output changes nothing.
func AdaptWorkTask(raw models.WorkTask) models.WorkTask {
	task := raw

	task.ArrivalTime = task.StartTime
	task.DepartureTime = task.EndTime
	task.TaskNumber = task.SequenceOrder

	if task.TaskType == models.TaskTypeWork {
		task.TaskMinutes = task.TimePerRepetition
	} else {
		task.TaskMinutes = 0
	}
	if task.TaskType == models.TaskTypeTravel {
		task.TravelMinutes = task.TotalEstimatedMinutes
	} else {
		task.TravelMinutes = 0
	}

	if task.TravelInfo != nil && task.TravelInfo.SegmentGeometry != nil {
		data, err := json.Marshal(task.TravelInfo.SegmentGeometry)
		if err != nil {
			// A geometry the engine produced but we cannot re-serialize is
			// dropped, not fatal: the task itself stays usable.
			log.Printf("[schedule] failed to marshal segment geometry for task %s: %v", task.ID, err)
		} else {
			task.SegmentGeometry = string(data)
		}
	}

	return task
}

// AdaptDailySchedule runs AdaptWorkTask over every task of a day.
func AdaptDailySchedule(raw models.DailySchedule) models.DailySchedule {
	day := raw
	if raw.Tasks == nil {
		day.Tasks = []models.WorkTask{}
		return day
	}

	day.Tasks = make([]models.WorkTask, len(raw.Tasks))
	for i, task := range raw.Tasks {
		day.Tasks[i] = AdaptWorkTask(task)
	}
	return day
}

// AdaptUserScheduleDetail adapts every day of a stored schedule document.
// Handlers call this before any task reaches a client; the raw engine shape
// never leaves this package upward.
func AdaptUserScheduleDetail(raw models.UserScheduleDetail) models.UserScheduleDetail {
	detail := raw
	if raw.Schedules == nil {
		detail.Schedules = []models.DailySchedule{}
		return detail
	}

	detail.Schedules = make([]models.DailySchedule, len(raw.Schedules))
	for i, day := range raw.Schedules {
		detail.Schedules[i] = AdaptDailySchedule(day)
	}
	return detail
}

// ParseRouteGeometry decodes a stored GeoJSON LineString. Malformed input
// yields an empty line rather than an error: a broken stored geometry must
// not take the whole schedule view down with it.
func ParseRouteGeometry(serialized string) models.LineString {
	if serialized == "" {
		return models.LineString{Type: "LineString", Coordinates: [][]float64{}}
	}

	var line models.LineString
	if err := json.Unmarshal([]byte(serialized), &line); err != nil {
		log.Printf("[schedule] malformed route geometry, ignoring: %v", err)
		return models.LineString{Type: "LineString", Coordinates: [][]float64{}}
	}
	if line.Coordinates == nil {
		line.Coordinates = [][]float64{}
	}
	return line
}
