package schedule

import (
	"fieldops/geo"
	"fieldops/models"
)

// StatusConfig is the presentation of one task status: severity drives the
// badge color, pulse asks the UI to draw attention.
type StatusConfig struct {
	Severity string `json:"severity"`
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Pulse    bool   `json:"pulse"`
}

var statusConfigs = map[string]StatusConfig{
	models.TaskStatusPending: {
		Severity: "warning",
		Label:    "Pending",
		Icon:     "pi pi-clock",
		Pulse:    false,
	},
	models.TaskStatusInProgress: {
		Severity: "info",
		Label:    "In transit",
		Icon:     "pi pi-directions",
		Pulse:    true,
	},
	models.TaskStatusCompleted: {
		Severity: "success",
		Label:    "Completed",
		Icon:     "pi pi-check-circle",
		Pulse:    false,
	},
	models.TaskStatusSkipped: {
		Severity: "danger",
		Label:    "Skipped",
		Icon:     "pi pi-times-circle",
		Pulse:    false,
	},
}

// onSiteConfig is shown when an IN_PROGRESS worker is inside the task's
// geofence: same status, different story on screen.
var onSiteConfig = StatusConfig{
	Severity: "success",
	Label:    "Working on site",
	Icon:     "pi pi-map-marker",
	Pulse:    true,
}

// TaskStatusConfig resolves the displayed state for a task. The geofence
// only ever matters for IN_PROGRESS tasks with known coordinates: a
// completed or skipped task keeps its presentation no matter where the
// worker stands. Unknown statuses render as PENDING rather than failing.
func TaskStatusConfig(status string, taskCoords, currentLocation *models.Coordinates) StatusConfig {
	if status == models.TaskStatusInProgress && taskCoords != nil && currentLocation != nil {
		if geo.IsWithinGeofence(*currentLocation, *taskCoords, geo.DefaultGeofenceRadius) {
			return onSiteConfig
		}
	}

	if cfg, ok := statusConfigs[status]; ok {
		return cfg
	}
	return statusConfigs[models.TaskStatusPending]
}

// IsValidTaskStatus reports whether s is one of the four task states.
func IsValidTaskStatus(s string) bool {
	_, ok := statusConfigs[s]
	return ok
}
