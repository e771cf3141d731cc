package models

// StoreActivityDTO is the flattened store/activity record the route engine
// consumes. Field names are part of the engine contract; do not rename.
type StoreActivityDTO struct {
	// ActivityID carries the StoreActivity's own id, not the template id.
	// The engine keys assignments by this value, so the mapping stays as is.
	ActivityID           string     `json:"activityId" bson:"activityid"`
	StoreID              string     `json:"storeId" bson:"storeid"`
	TaskName             string     `json:"taskName" bson:"taskname"`
	SupervisorID         string     `json:"supervisorId,omitempty" bson:"supervisorid,omitempty"`
	IsRepetitive         bool       `json:"isRepetitive" bson:"isrepetitive"`
	Repetitions          int        `json:"repetitions" bson:"repetitions"`
	EstimatedTimePerTask int        `json:"estimatedTimePerTask" bson:"estimatedtimepertask"`
	AssignmentMode       string     `json:"assignmentMode" bson:"assignmentmode"`
	AssignedUserIDs      []string   `json:"assignedUserIds" bson:"assigneduserids"`
	HasCustomSchedule    bool       `json:"hasCustomSchedule" bson:"hascustomschedule"`
	// Present only when HasCustomSchedule is true; the engine reads a missing
	// field as "no override", which is not the same as an empty list. The
	// omitempty means an override with zero slots cannot reach the wire;
	// validation rejects that combination before conversion, keep it that way.
	CustomTimeSlots []TimeSlot `json:"customTimeSlots,omitempty" bson:"customtimeslots,omitempty"`
}

// WorkPlanRequestDTO is the wire payload shared by preview and generate.
type WorkPlanRequestDTO struct {
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Deadline        string             `json:"deadline"` // RFC3339
	StoreIDs        []string           `json:"storeIds"`
	UserIDs         []string           `json:"userIds"`
	WorkDays        []int              `json:"workDays"`
	WorkTimeSlots   []TimeSlot         `json:"workTimeSlots"`
	StoreActivities []StoreActivityDTO `json:"storeActivities"`
}

// PreviewRequest adds the what-if worker count on top of the shared DTO.
type PreviewRequest struct {
	WorkPlanRequestDTO
	SimulatedWorkers int `json:"simulatedWorkers,omitempty"`
}

// GenerateRequest adds the save-as-template knobs on top of the shared DTO.
type GenerateRequest struct {
	WorkPlanRequestDTO
	SaveAsTemplate      bool   `json:"saveAsTemplate"`
	TemplateName        string `json:"templateName,omitempty"`
	TemplateDescription string `json:"templateDescription,omitempty"`
}

// WorkerPreview is the engine's per-worker preview line.
type WorkerPreview struct {
	UserID       string `json:"userId"`
	Username     string `json:"username,omitempty"`
	StoreCount   int    `json:"storeCount"`
	TaskCount    int    `json:"taskCount"`
	TotalMinutes int    `json:"totalMinutes"`
}

// ClusterPreview is one geographic cluster of stores in the preview.
type ClusterPreview struct {
	ClusterID int          `json:"clusterId"`
	StoreIDs  []string     `json:"storeIds"`
	Centroid  *Coordinates `json:"centroid,omitempty"`
}

// PreviewResponse is the engine's scheduling preview. Consumed opaquely and
// relayed to the caller; this service never recomputes any of it.
type PreviewResponse struct {
	TotalStores   int              `json:"totalStores"`
	TotalTasks    int              `json:"totalTasks"`
	EstimatedDays int              `json:"estimatedDays"`
	Workers       []WorkerPreview  `json:"workers"`
	Clusters      []ClusterPreview `json:"clusters,omitempty"`
	Warnings      []string         `json:"warnings,omitempty"`
}

// UserScheduleResult is one worker's generated schedule as the engine
// returns it (raw tasks, no derived fields).
type UserScheduleResult struct {
	UserID    string          `json:"userId"`
	Username  string          `json:"username,omitempty"`
	Summary   ScheduleSummary `json:"summary"`
	Schedules []DailySchedule `json:"schedules"`
}

// GenerateResponse is the engine's full scheduling output.
type GenerateResponse struct {
	Schedules []UserScheduleResult `json:"schedules"`
	Warnings  []string             `json:"warnings,omitempty"`
}

// TaskStatusUpdate is the body of the task status PATCH.
type TaskStatusUpdate struct {
	Status string `json:"status"`
}

// TaskCompletion is the body of the task complete PATCH. Photos ride along
// as multipart files, not in the JSON.
type TaskCompletion struct {
	ActualDuration int    `json:"actualDuration"` // minutes
	Notes          string `json:"notes,omitempty"`
}

// PlanStatusUpdate is the body of the plan status PATCH.
type PlanStatusUpdate struct {
	Status string `json:"status"`
}
