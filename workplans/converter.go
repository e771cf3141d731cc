package workplans

import (
	"fmt"
	"time"

	"fieldops/models"
)

// BuildRequestDTO flattens the wizard form into the wire payload the route
// engine consumes. Pure: the form is never touched, and calling it twice
// for preview and generate yields identical output.
//
// Stores, users and time slots collapse to references; the engine does not
// want the full objects, and the wizard-only slot ids stay client-side.
func BuildRequestDTO(form models.WorkPlanFormData) models.WorkPlanRequestDTO {
	dto := models.WorkPlanRequestDTO{
		Name:            form.Name,
		Description:     form.Description,
		Deadline:        form.Deadline.UTC().Format(time.RFC3339),
		StoreIDs:        make([]string, 0, len(form.SelectedStores)),
		UserIDs:         make([]string, 0, len(form.SelectedUsers)),
		WorkDays:        append([]int{}, form.WorkDays...),
		WorkTimeSlots:   make([]models.TimeSlot, 0, len(form.WorkTimeSlots)),
		StoreActivities: make([]models.StoreActivityDTO, 0, len(form.StoreActivities)),
	}

	for _, store := range form.SelectedStores {
		dto.StoreIDs = append(dto.StoreIDs, store.StoreID)
	}
	for _, user := range form.SelectedUsers {
		dto.UserIDs = append(dto.UserIDs, user.UserID)
	}
	for _, slot := range form.WorkTimeSlots {
		dto.WorkTimeSlots = append(dto.WorkTimeSlots, models.TimeSlot{Start: slot.Start, End: slot.End})
	}

	for _, sa := range form.StoreActivities {
		record := models.StoreActivityDTO{
			ActivityID:           sa.ID, // assignment id by engine contract, see models.StoreActivityDTO
			StoreID:              sa.Store.StoreID,
			TaskName:             sa.Activity.Name,
			IsRepetitive:         sa.Activity.IsRepetitive,
			Repetitions:          sa.Repetitions,
			EstimatedTimePerTask: sa.Activity.EstimatedTimePerTask,
			AssignmentMode:       sa.AssignmentMode,
			AssignedUserIDs:      []string{},
			HasCustomSchedule:    sa.HasCustomSchedule,
		}
		if sa.Supervisor != nil {
			record.SupervisorID = sa.Supervisor.UserID
		}
		if sa.AssignmentMode == models.AssignmentManual {
			for _, user := range sa.AssignedUsers {
				record.AssignedUserIDs = append(record.AssignedUserIDs, user.UserID)
			}
		}
		// Emitted only with an override in place; the engine reads absence as
		// "use the plan-wide slots".
		if sa.HasCustomSchedule {
			record.CustomTimeSlots = append([]models.TimeSlot{}, sa.CustomTimeSlots...)
		}
		dto.StoreActivities = append(dto.StoreActivities, record)
	}

	return dto
}

// ValidateFormData runs the pre-network validation set. The first violation
// wins; nothing reaches the engine when this fails.
func ValidateFormData(form models.WorkPlanFormData) error {
	if form.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if !form.Deadline.After(time.Now()) {
		return fmt.Errorf("deadline must be in the future")
	}
	if len(form.SelectedStores) == 0 {
		return fmt.Errorf("select at least one store")
	}
	if len(form.SelectedUsers) == 0 {
		return fmt.Errorf("select at least one worker")
	}
	if len(form.WorkDays) == 0 {
		return fmt.Errorf("select at least one work day")
	}
	for _, day := range form.WorkDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("invalid work day %d", day)
		}
	}
	if len(form.WorkTimeSlots) == 0 {
		return fmt.Errorf("define at least one work time slot")
	}

	covered := map[string]bool{}
	for _, sa := range form.StoreActivities {
		covered[sa.Store.StoreID] = true

		if sa.Repetitions < 1 {
			return fmt.Errorf("activity %q: repetitions must be at least 1", sa.Activity.Name)
		}
		if sa.Activity.EstimatedTimePerTask <= 0 {
			return fmt.Errorf("activity %q: estimated time per task must be positive", sa.Activity.Name)
		}
		if sa.AssignmentMode == models.AssignmentManual && len(sa.AssignedUsers) == 0 {
			return fmt.Errorf("activity %q: manual assignment needs at least one worker", sa.Activity.Name)
		}
		if sa.HasCustomSchedule && len(sa.CustomTimeSlots) == 0 {
			return fmt.Errorf("activity %q: custom schedule needs at least one time slot", sa.Activity.Name)
		}
	}
	for _, store := range form.SelectedStores {
		if !covered[store.StoreID] {
			return fmt.Errorf("store %q has no activities configured", store.Name)
		}
	}

	return nil
}
