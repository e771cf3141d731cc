package models

import "time"

// Coordinates is a WGS84 point as the scheduling engine and mobile
// clients exchange it.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// TimeSlot is a daily working window, "HH:mm" 24h strings.
type TimeSlot struct {
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// WorkTimeSlot is a TimeSlot as the wizard holds it, with a client-side id
// that never goes over the wire.
type WorkTimeSlot struct {
	ID    string `json:"id" bson:"id"`
	Start string `json:"start" bson:"start"`
	End   string `json:"end" bson:"end"`
}

// Assignment modes for a StoreActivity.
const (
	AssignmentAutomatic = "AUTOMATIC"
	AssignmentManual    = "MANUAL"
)

// Activity is a reusable task template managed by admins and copied into
// plans by the wizard.
type Activity struct {
	ActivityID           string     `json:"activityId" bson:"activityid"`
	Name                 string     `json:"name" bson:"name"`
	Description          string     `json:"description,omitempty" bson:"description,omitempty"`
	EstimatedTimePerTask int        `json:"estimatedTimePerTask" bson:"estimatedtimepertask"` // minutes
	IsRepetitive         bool       `json:"isRepetitive" bson:"isrepetitive"`
	DefaultRepetitions   int        `json:"defaultRepetitions,omitempty" bson:"defaultrepetitions,omitempty"`
	HasCustomSchedule    bool       `json:"hasCustomSchedule,omitempty" bson:"hascustomschedule,omitempty"`
	CustomTimeSlots      []TimeSlot `json:"customTimeSlots,omitempty" bson:"customtimeslots,omitempty"`
	AuthorizedUserIDs    []string   `json:"authorizedUserIds,omitempty" bson:"authorizeduserids,omitempty"` // empty = unrestricted
	CreatedBy            string     `json:"createdBy,omitempty" bson:"createdby,omitempty"`
	CreatedAt            time.Time  `json:"createdAt,omitempty" bson:"createdat,omitempty"`
	UpdatedAt            time.Time  `json:"updatedAt,omitempty" bson:"updatedat,omitempty"`
	Deleted              bool       `json:"-" bson:"deleted,omitempty"`
}

// Store is a retail location that can be visited.
type Store struct {
	StoreID   string      `json:"storeId" bson:"storeid"`
	Name      string      `json:"name" bson:"name"`
	Address   string      `json:"address,omitempty" bson:"address,omitempty"`
	City      string      `json:"city,omitempty" bson:"city,omitempty"`
	Zone      string      `json:"zone,omitempty" bson:"zone,omitempty"`
	Location  Coordinates `json:"location" bson:"location"`
	Phone     string      `json:"phone,omitempty" bson:"phone,omitempty"`
	CreatedBy string      `json:"createdBy,omitempty" bson:"createdby,omitempty"`
	CreatedAt time.Time   `json:"createdAt,omitempty" bson:"createdat,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt,omitempty" bson:"updatedat,omitempty"`
	Deleted   bool        `json:"-" bson:"deleted,omitempty"`
}

// UserRef is the slim user shape the wizard carries around.
type UserRef struct {
	UserID   string `json:"userId" bson:"userid"`
	Username string `json:"username" bson:"username"`
}

// StoreActivity pairs one store with one activity inside a plan under
// construction. The activity is an embedded copy: later edits to the global
// template do not reach assignments that already exist.
type StoreActivity struct {
	ID                string     `json:"id" bson:"id"`
	Store             Store      `json:"store" bson:"store"`
	Activity          Activity   `json:"activity" bson:"activity"`
	Supervisor        *UserRef   `json:"supervisor,omitempty" bson:"supervisor,omitempty"`
	Repetitions       int        `json:"repetitions" bson:"repetitions"`
	AssignmentMode    string     `json:"assignmentMode" bson:"assignmentmode"` // AUTOMATIC | MANUAL
	AssignedUsers     []UserRef  `json:"assignedUsers,omitempty" bson:"assignedusers,omitempty"`
	HasCustomSchedule bool       `json:"hasCustomSchedule" bson:"hascustomschedule"`
	CustomTimeSlots   []TimeSlot `json:"customTimeSlots,omitempty" bson:"customtimeslots,omitempty"`
}

// WorkPlanFormData is the full draft state of one plan in the wizard. It is
// mirrored to the draft store after every mutation and cleared on submit.
type WorkPlanFormData struct {
	Name            string          `json:"name" bson:"name"`
	Description     string          `json:"description,omitempty" bson:"description,omitempty"`
	Deadline        time.Time       `json:"deadline" bson:"deadline"`
	SelectedStores  []Store         `json:"selectedStores" bson:"selectedstores"`
	SelectedUsers   []UserRef       `json:"selectedUsers" bson:"selectedusers"`
	WorkDays        []int           `json:"workDays" bson:"workdays"` // 0=Sunday .. 6=Saturday
	WorkTimeSlots   []WorkTimeSlot  `json:"workTimeSlots" bson:"worktimeslots"`
	StoreActivities []StoreActivity `json:"storeActivities" bson:"storeactivities"`
	TemplateID      string          `json:"templateId,omitempty" bson:"templateid,omitempty"`
}

// Work plan lifecycle states.
const (
	PlanStatusDraft     = "DRAFT"
	PlanStatusApproved  = "APPROVED"
	PlanStatusActive    = "ACTIVE"
	PlanStatusCompleted = "COMPLETED"
	PlanStatusCancelled = "CANCELLED"
)

// WorkPlan is the persisted plan, written once when the wizard submits.
type WorkPlan struct {
	PlanID          string             `json:"planId" bson:"planid"`
	Name            string             `json:"name" bson:"name"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
	Deadline        time.Time          `json:"deadline" bson:"deadline"`
	Status          string             `json:"status" bson:"status"`
	StoreIDs        []string           `json:"storeIds" bson:"storeids"`
	UserIDs         []string           `json:"userIds" bson:"userids"`
	WorkDays        []int              `json:"workDays" bson:"workdays"`
	WorkTimeSlots   []TimeSlot         `json:"workTimeSlots" bson:"worktimeslots"`
	StoreActivities []StoreActivityDTO `json:"storeActivities" bson:"storeactivities"`
	CreatedBy       string             `json:"createdBy" bson:"createdby"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdat"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedat"`
}

// WorkPlanListItem is the list-view projection of a plan.
type WorkPlanListItem struct {
	PlanID      string    `json:"planId" bson:"planid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Deadline    time.Time `json:"deadline" bson:"deadline"`
	Status      string    `json:"status" bson:"status"`
	StoreCount  int       `json:"storeCount" bson:"storecount"`
	WorkerCount int       `json:"workerCount" bson:"workercount"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdat"`
}

// WorkPlanTemplate is a saved wizard snapshot. Loading one is a one-time
// copy into a fresh WorkPlanFormData, not a live binding.
type WorkPlanTemplate struct {
	TemplateID  string           `json:"templateId" bson:"templateid"`
	Name        string           `json:"name" bson:"name"`
	Description string           `json:"description,omitempty" bson:"description,omitempty"`
	Form        WorkPlanFormData `json:"form" bson:"form"`
	CreatedBy   string           `json:"createdBy" bson:"createdby"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdat"`
}
