package schedule

import (
	"testing"

	"fieldops/models"
)

var (
	taskAt   = models.Coordinates{Lat: 40.4168, Lng: -3.7038}
	onSite   = models.Coordinates{Lat: 40.4170, Lng: -3.7036} // ~30m away
	farAway  = models.Coordinates{Lat: 40.4300, Lng: -3.6800} // ~2.5km away
)

func TestInProgressInsideGeofenceIsOnSite(t *testing.T) {
	cfg := TaskStatusConfig(models.TaskStatusInProgress, &taskAt, &onSite)

	if cfg.Label != "Working on site" {
		t.Errorf("label = %q, want on-site presentation", cfg.Label)
	}
	if cfg.Severity != "success" {
		t.Errorf("severity = %q, want success", cfg.Severity)
	}
	if !cfg.Pulse {
		t.Error("on-site config must pulse")
	}
}

func TestInProgressOutsideGeofenceIsInTransit(t *testing.T) {
	cfg := TaskStatusConfig(models.TaskStatusInProgress, &taskAt, &farAway)

	if cfg.Severity != "info" {
		t.Errorf("severity = %q, want info", cfg.Severity)
	}
	if !cfg.Pulse {
		t.Error("in-transit config must pulse")
	}
	if cfg.Label == "Working on site" {
		t.Error("worker 2.5km away must not be shown on site")
	}
}

func TestInProgressWithoutCoordinates(t *testing.T) {
	cfg := TaskStatusConfig(models.TaskStatusInProgress, nil, &onSite)
	if cfg.Severity != "info" {
		t.Errorf("missing task coordinates must fall back to in-transit, got %+v", cfg)
	}

	cfg = TaskStatusConfig(models.TaskStatusInProgress, &taskAt, nil)
	if cfg.Severity != "info" {
		t.Errorf("missing current location must fall back to in-transit, got %+v", cfg)
	}
}

func TestGeofenceNeverReclassifiesOtherStatuses(t *testing.T) {
	cases := []struct {
		status   string
		severity string
		pulse    bool
	}{
		{models.TaskStatusPending, "warning", false},
		{models.TaskStatusCompleted, "success", false},
		{models.TaskStatusSkipped, "danger", false},
	}

	for _, c := range cases {
		// Even standing right on the task, only IN_PROGRESS cares.
		cfg := TaskStatusConfig(c.status, &taskAt, &onSite)
		if cfg.Severity != c.severity || cfg.Pulse != c.pulse {
			t.Errorf("%s: got %+v, want severity=%s pulse=%v", c.status, cfg, c.severity, c.pulse)
		}
	}
}

func TestCompletedIgnoresCoordinates(t *testing.T) {
	with := TaskStatusConfig(models.TaskStatusCompleted, &taskAt, &onSite)
	without := TaskStatusConfig(models.TaskStatusCompleted, nil, nil)

	if with != without {
		t.Errorf("COMPLETED presentation must not depend on coordinates: %+v vs %+v", with, without)
	}
	if with.Severity != "success" || with.Pulse {
		t.Errorf("COMPLETED = %+v, want success/no-pulse", with)
	}
}

func TestUnknownStatusFallsBackToPending(t *testing.T) {
	cfg := TaskStatusConfig("BANANA", nil, nil)
	want := TaskStatusConfig(models.TaskStatusPending, nil, nil)
	if cfg != want {
		t.Errorf("unknown status = %+v, want the PENDING presentation %+v", cfg, want)
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "IN_PROGRESS", "COMPLETED", "SKIPPED"} {
		if !IsValidTaskStatus(s) {
			t.Errorf("%s should be valid", s)
		}
	}
	if IsValidTaskStatus("DONE") {
		t.Error("DONE is not a task status")
	}
}
