package workplans

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"fieldops/models"
)

func validForm() models.WorkPlanFormData {
	store := models.Store{
		StoreID:  "s1",
		Name:     "Centro 12",
		Location: models.Coordinates{Lat: 40.41, Lng: -3.70},
	}
	activity := models.Activity{
		ActivityID:           "a1",
		Name:                 "Shelf audit",
		EstimatedTimePerTask: 20,
		IsRepetitive:         true,
		DefaultRepetitions:   2,
	}
	return models.WorkPlanFormData{
		Name:           "September push",
		Description:    "Month-end audits",
		Deadline:       time.Now().Add(30 * 24 * time.Hour),
		SelectedStores: []models.Store{store},
		SelectedUsers:  []models.UserRef{{UserID: "u1", Username: "ana"}},
		WorkDays:       []int{1, 2, 3, 4, 5},
		WorkTimeSlots:  []models.WorkTimeSlot{{ID: "slot-abc", Start: "08:00", End: "17:00"}},
		StoreActivities: []models.StoreActivity{{
			ID:             "sa1",
			Store:          store,
			Activity:       activity,
			Repetitions:    2,
			AssignmentMode: models.AssignmentAutomatic,
		}},
	}
}

func TestBuildRequestDTOReferencesOnly(t *testing.T) {
	dto := BuildRequestDTO(validForm())

	if len(dto.StoreIDs) != 1 || dto.StoreIDs[0] != "s1" {
		t.Errorf("storeIds = %v, want [s1]", dto.StoreIDs)
	}
	if len(dto.UserIDs) != 1 || dto.UserIDs[0] != "u1" {
		t.Errorf("userIds = %v, want [u1]", dto.UserIDs)
	}
	if len(dto.WorkTimeSlots) != 1 || dto.WorkTimeSlots[0] != (models.TimeSlot{Start: "08:00", End: "17:00"}) {
		t.Errorf("workTimeSlots = %v", dto.WorkTimeSlots)
	}

	// The client-only slot id must not survive serialization anywhere.
	data, _ := json.Marshal(dto)
	if strings.Contains(string(data), "slot-abc") {
		t.Error("client-side slot id leaked into the wire payload")
	}
}

func TestBuildRequestDTOActivityIDIsAssignmentID(t *testing.T) {
	dto := BuildRequestDTO(validForm())

	sa := dto.StoreActivities[0]
	if sa.ActivityID != "sa1" {
		t.Errorf("activityId = %q, want the StoreActivity id %q (engine contract)", sa.ActivityID, "sa1")
	}
	if sa.TaskName != "Shelf audit" {
		t.Errorf("taskName = %q, want the activity name", sa.TaskName)
	}
	if sa.EstimatedTimePerTask != 20 || !sa.IsRepetitive || sa.Repetitions != 2 {
		t.Errorf("flattened activity fields wrong: %+v", sa)
	}
}

func TestBuildRequestDTOCustomSlotsOmittedWithoutOverride(t *testing.T) {
	dto := BuildRequestDTO(validForm())

	if dto.StoreActivities[0].CustomTimeSlots != nil {
		t.Fatalf("customTimeSlots = %v, want nil without an override", dto.StoreActivities[0].CustomTimeSlots)
	}

	data, _ := json.Marshal(dto.StoreActivities[0])
	if strings.Contains(string(data), "customTimeSlots") {
		t.Error("customTimeSlots must be absent from the JSON, not null or empty")
	}
}

func TestBuildRequestDTOCustomSlotsPresentWithOverride(t *testing.T) {
	form := validForm()
	form.StoreActivities[0].HasCustomSchedule = true
	form.StoreActivities[0].CustomTimeSlots = []models.TimeSlot{{Start: "10:00", End: "14:00"}}

	dto := BuildRequestDTO(form)
	if len(dto.StoreActivities[0].CustomTimeSlots) != 1 {
		t.Fatalf("customTimeSlots = %v, want the override", dto.StoreActivities[0].CustomTimeSlots)
	}

	data, _ := json.Marshal(dto.StoreActivities[0])
	if !strings.Contains(string(data), "customTimeSlots") {
		t.Error("override must be serialized")
	}
}

func TestBuildRequestDTOManualAssignment(t *testing.T) {
	form := validForm()
	form.StoreActivities[0].AssignmentMode = models.AssignmentManual
	form.StoreActivities[0].AssignedUsers = []models.UserRef{{UserID: "u1"}, {UserID: "u2"}}
	form.StoreActivities[0].Supervisor = &models.UserRef{UserID: "boss"}

	sa := BuildRequestDTO(form).StoreActivities[0]
	if len(sa.AssignedUserIDs) != 2 {
		t.Errorf("assignedUserIds = %v, want both workers", sa.AssignedUserIDs)
	}
	if sa.SupervisorID != "boss" {
		t.Errorf("supervisorId = %q", sa.SupervisorID)
	}
}

func TestBuildRequestDTOAutomaticDropsAssignedUsers(t *testing.T) {
	form := validForm()
	// Stale selections left over from a mode flip are ignored, not sent.
	form.StoreActivities[0].AssignedUsers = []models.UserRef{{UserID: "u9"}}

	sa := BuildRequestDTO(form).StoreActivities[0]
	if len(sa.AssignedUserIDs) != 0 {
		t.Errorf("assignedUserIds = %v, want empty for AUTOMATIC", sa.AssignedUserIDs)
	}
}

func TestBuildRequestDTODoesNotMutateForm(t *testing.T) {
	form := validForm()
	dto := BuildRequestDTO(form)
	dto.StoreIDs[0] = "mutated"
	dto.WorkDays[0] = 99

	if form.SelectedStores[0].StoreID != "s1" || form.WorkDays[0] != 1 {
		t.Error("converter output shares memory with the form")
	}
}

func TestBuildRequestDTORepeatable(t *testing.T) {
	form := validForm()
	first, _ := json.Marshal(BuildRequestDTO(form))
	second, _ := json.Marshal(BuildRequestDTO(form))
	if string(first) != string(second) {
		t.Error("converter must be deterministic across calls")
	}
}

func TestValidateFormData(t *testing.T) {
	if err := ValidateFormData(validForm()); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.WorkPlanFormData)
	}{
		{"missing name", func(f *models.WorkPlanFormData) { f.Name = "" }},
		{"past deadline", func(f *models.WorkPlanFormData) { f.Deadline = time.Now().Add(-time.Hour) }},
		{"no stores", func(f *models.WorkPlanFormData) { f.SelectedStores = nil }},
		{"no workers", func(f *models.WorkPlanFormData) { f.SelectedUsers = nil }},
		{"no work days", func(f *models.WorkPlanFormData) { f.WorkDays = nil }},
		{"bad work day", func(f *models.WorkPlanFormData) { f.WorkDays = []int{7} }},
		{"no time slots", func(f *models.WorkPlanFormData) { f.WorkTimeSlots = nil }},
		{"uncovered store", func(f *models.WorkPlanFormData) { f.StoreActivities = nil }},
		{"zero repetitions", func(f *models.WorkPlanFormData) { f.StoreActivities[0].Repetitions = 0 }},
		{"manual without workers", func(f *models.WorkPlanFormData) {
			f.StoreActivities[0].AssignmentMode = models.AssignmentManual
		}},
		{"override without slots", func(f *models.WorkPlanFormData) {
			f.StoreActivities[0].HasCustomSchedule = true
		}},
	}

	for _, c := range cases {
		form := validForm()
		c.mutate(&form)
		if err := ValidateFormData(form); err == nil {
			t.Errorf("%s: expected a validation error", c.name)
		}
	}
}
