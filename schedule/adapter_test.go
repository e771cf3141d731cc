package schedule

import (
	"encoding/json"
	"reflect"
	"testing"

	"fieldops/models"
)

func sampleWorkTask() models.WorkTask {
	return models.WorkTask{
		ID:                    "t1",
		DailyScheduleID:       "d1",
		TaskType:              models.TaskTypeWork,
		TaskName:              "Shelf audit",
		SequenceOrder:         3,
		Status:                models.TaskStatusPending,
		StoreID:               "s1",
		StoreName:             "Centro 12",
		Coordinates:           &models.Coordinates{Lat: 40.41, Lng: -3.70},
		TotalRepetitions:      4,
		CompletedRepetitions:  1,
		PendingRepetitions:    3,
		ProgressPercent:       25,
		TimePerRepetition:     15,
		TotalEstimatedMinutes: 60,
		StartTime:             "09:30",
		EndTime:               "10:30",
	}
}

func sampleTravelTask() models.WorkTask {
	return models.WorkTask{
		ID:                    "t2",
		DailyScheduleID:       "d1",
		TaskType:              models.TaskTypeTravel,
		TaskName:              "Centro 12 → Norte 3",
		SequenceOrder:         4,
		Status:                models.TaskStatusPending,
		TotalEstimatedMinutes: 12,
		StartTime:             "10:30",
		EndTime:               "10:42",
		TravelInfo: &models.TravelInfo{
			FromStoreID:    "s1",
			FromStoreName:  "Centro 12",
			ToStoreID:      "s2",
			ToStoreName:    "Norte 3",
			DistanceMeters: 3400,
			DistanceKm:     3.4,
			SegmentGeometry: &models.LineString{
				Type:        "LineString",
				Coordinates: [][]float64{{-3.70, 40.41}, {-3.68, 40.43}},
			},
		},
	}
}

func TestAdaptWorkTaskWorkSplit(t *testing.T) {
	got := AdaptWorkTask(sampleWorkTask())

	if got.TaskMinutes != 15 {
		t.Errorf("taskMinutes = %d, want timePerRepetition 15", got.TaskMinutes)
	}
	if got.TravelMinutes != 0 {
		t.Errorf("travelMinutes = %d, want 0 for WORK task", got.TravelMinutes)
	}
	if got.ArrivalTime != "09:30" || got.DepartureTime != "10:30" {
		t.Errorf("arrival/departure = %q/%q, want 09:30/10:30", got.ArrivalTime, got.DepartureTime)
	}
	if got.TaskNumber != 3 {
		t.Errorf("taskNumber = %d, want sequenceOrder 3", got.TaskNumber)
	}
	if got.SegmentGeometry != "" {
		t.Errorf("WORK task must not get segment geometry, got %q", got.SegmentGeometry)
	}
}

func TestAdaptWorkTaskTravelSplit(t *testing.T) {
	got := AdaptWorkTask(sampleTravelTask())

	if got.TaskMinutes != 0 {
		t.Errorf("taskMinutes = %d, want 0 for TRAVEL task", got.TaskMinutes)
	}
	if got.TravelMinutes != 12 {
		t.Errorf("travelMinutes = %d, want totalEstimatedMinutes 12", got.TravelMinutes)
	}

	var line models.LineString
	if err := json.Unmarshal([]byte(got.SegmentGeometry), &line); err != nil {
		t.Fatalf("segmentGeometry is not valid JSON: %v", err)
	}
	if line.Type != "LineString" || len(line.Coordinates) != 2 {
		t.Errorf("unexpected decoded geometry: %+v", line)
	}
}

func TestAdaptWorkTaskNoGeometryStaysUnset(t *testing.T) {
	raw := sampleTravelTask()
	raw.TravelInfo.SegmentGeometry = nil

	if got := AdaptWorkTask(raw); got.SegmentGeometry != "" {
		t.Errorf("segmentGeometry = %q, want empty when the engine sent none", got.SegmentGeometry)
	}
}

func TestAdaptWorkTaskIdempotent(t *testing.T) {
	once := AdaptWorkTask(sampleTravelTask())
	twice := AdaptWorkTask(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("adapter is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestAdaptWorkTaskDoesNotMutateInput(t *testing.T) {
	raw := sampleWorkTask()
	AdaptWorkTask(raw)

	if raw.TaskMinutes != 0 || raw.ArrivalTime != "" || raw.TaskNumber != 0 {
		t.Errorf("input was mutated: %+v", raw)
	}
}

func TestAdaptDailySchedule(t *testing.T) {
	day := models.DailySchedule{
		ID:    "d1",
		Date:  "2026-09-07",
		Tasks: []models.WorkTask{sampleWorkTask(), sampleTravelTask()},
	}

	got := AdaptDailySchedule(day)
	if len(got.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got.Tasks))
	}
	if got.Tasks[0].TaskMinutes != 15 || got.Tasks[1].TravelMinutes != 12 {
		t.Errorf("tasks were not adapted: %+v", got.Tasks)
	}
	// originals untouched
	if day.Tasks[0].TaskMinutes != 0 {
		t.Error("input day was mutated")
	}
}

func TestAdaptDailyScheduleNilTasks(t *testing.T) {
	got := AdaptDailySchedule(models.DailySchedule{ID: "d1"})
	if got.Tasks == nil {
		t.Fatal("tasks must come back as an empty slice, not nil")
	}
}

func TestParseRouteGeometryMalformed(t *testing.T) {
	line := ParseRouteGeometry(`{"type": "LineString", "coordinates": [[}`)
	if line.Coordinates == nil || len(line.Coordinates) != 0 {
		t.Errorf("malformed geometry must yield an empty coordinate list, got %+v", line)
	}
}

func TestParseRouteGeometryRoundTrip(t *testing.T) {
	in := models.LineString{Type: "LineString", Coordinates: [][]float64{{-3.7, 40.4}, {-3.6, 40.5}}}
	data, _ := json.Marshal(in)

	out := ParseRouteGeometry(string(data))
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: %+v vs %+v", in, out)
	}
}
