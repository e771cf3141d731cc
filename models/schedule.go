package models

// Task kinds within a daily itinerary.
const (
	TaskTypeWork   = "WORK"
	TaskTypeTravel = "TRAVEL"
)

// Task execution states. Transitions happen only through the status
// endpoints, never locally.
const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusSkipped    = "SKIPPED"
)

// LineString is the GeoJSON geometry of one travel segment as the engine
// emits it: [lng, lat] coordinate pairs.
type LineString struct {
	Type        string      `json:"type" bson:"type"`
	Coordinates [][]float64 `json:"coordinates" bson:"coordinates"`
}

// TravelInfo describes the leg between two stores on a TRAVEL task.
type TravelInfo struct {
	FromStoreID     string      `json:"fromStoreId" bson:"fromstoreid"`
	FromStoreName   string      `json:"fromStoreName" bson:"fromstorename"`
	ToStoreID       string      `json:"toStoreId" bson:"tostoreid"`
	ToStoreName     string      `json:"toStoreName" bson:"tostorename"`
	DistanceMeters  float64     `json:"distanceMeters" bson:"distancemeters"`
	DistanceKm      float64     `json:"distanceKm" bson:"distancekm"`
	SegmentGeometry *LineString `json:"segmentGeometry,omitempty" bson:"segmentgeometry,omitempty"`
}

// WorkTask is one atomic unit of a daily itinerary, either a store visit
// (WORK) or the leg between two visits (TRAVEL). The engine output is
// immutable once generated; only Status moves.
//
// The alias/split fields at the bottom are computed by schedule.AdaptWorkTask
// and never persisted: older mobile clients still read arrivalTime,
// departureTime, taskNumber and the per-type minute splits.
type WorkTask struct {
	ID                    string       `json:"id" bson:"id"`
	DailyScheduleID       string       `json:"dailyScheduleId" bson:"dailyscheduleid"`
	TaskType              string       `json:"taskType" bson:"tasktype"` // WORK | TRAVEL
	TaskName              string       `json:"taskName" bson:"taskname"`
	SequenceOrder         int          `json:"sequenceOrder" bson:"sequenceorder"` // 1-based within a day
	Status                string       `json:"status" bson:"status"`
	StoreID               string       `json:"storeId,omitempty" bson:"storeid,omitempty"`
	StoreName             string       `json:"storeName,omitempty" bson:"storename,omitempty"`
	Coordinates           *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
	TotalRepetitions      int          `json:"totalRepetitions,omitempty" bson:"totalrepetitions,omitempty"`
	CompletedRepetitions  int          `json:"completedRepetitions,omitempty" bson:"completedrepetitions,omitempty"`
	PendingRepetitions    int          `json:"pendingRepetitions,omitempty" bson:"pendingrepetitions,omitempty"`
	ProgressPercent       int          `json:"progressPercent" bson:"progresspercent"`
	TimePerRepetition     int          `json:"timePerRepetition,omitempty" bson:"timeperrepetition,omitempty"`
	TotalEstimatedMinutes int          `json:"totalEstimatedMinutes" bson:"totalestimatedminutes"`
	StartTime             string       `json:"startTime" bson:"starttime"` // "HH:mm"
	EndTime               string       `json:"endTime" bson:"endtime"`
	HasCustomSchedule     bool         `json:"hasCustomSchedule,omitempty" bson:"hascustomschedule,omitempty"`
	CustomTimeSlots       []TimeSlot   `json:"customTimeSlots,omitempty" bson:"customtimeslots,omitempty"`
	TravelInfo            *TravelInfo  `json:"travelInfo,omitempty" bson:"travelinfo,omitempty"`
	ActualDuration        int          `json:"actualDuration,omitempty" bson:"actualduration,omitempty"` // minutes, set on completion
	Notes                 string       `json:"notes,omitempty" bson:"notes,omitempty"`
	Photos                []string     `json:"photos,omitempty" bson:"photos,omitempty"`

	// Derived, adapter-only.
	ArrivalTime     string `json:"arrivalTime,omitempty" bson:"-"`
	DepartureTime   string `json:"departureTime,omitempty" bson:"-"`
	TaskMinutes     int    `json:"taskMinutes" bson:"-"`
	TravelMinutes   int    `json:"travelMinutes" bson:"-"`
	TaskNumber      int    `json:"taskNumber" bson:"-"`
	SegmentGeometry string `json:"segmentGeometry,omitempty" bson:"-"` // JSON-stringified travelInfo geometry
}

// DailySchedule is one worker's itinerary for one calendar date.
// Tasks are ordered; sequenceOrder is contiguous and strictly increasing.
type DailySchedule struct {
	ID                 string     `json:"id" bson:"id"`
	Date               string     `json:"date" bson:"date"` // "2006-01-02"
	DayOfWeek          int        `json:"dayOfWeek" bson:"dayofweek"`
	StartTime          string     `json:"startTime" bson:"starttime"`
	EndTime            string     `json:"endTime" bson:"endtime"`
	Status             string     `json:"status" bson:"status"`
	TotalWorkMinutes   int        `json:"totalWorkMinutes" bson:"totalworkminutes"`
	TotalTravelMinutes int        `json:"totalTravelMinutes" bson:"totaltravelminutes"`
	TotalTasks         int        `json:"totalTasks" bson:"totaltasks"`
	WorkTasks          int        `json:"workTasks" bson:"worktasks"`
	TravelTasks        int        `json:"travelTasks" bson:"traveltasks"`
	StoresVisited      int        `json:"storesVisited" bson:"storesvisited"`
	TotalDistanceKm    float64    `json:"totalDistanceKm" bson:"totaldistancekm"`
	RouteGeometry      string     `json:"routeGeometry,omitempty" bson:"routegeometry,omitempty"` // serialized GeoJSON LineString
	Tasks              []WorkTask `json:"tasks" bson:"tasks"`
}

// ScheduleSummary aggregates one worker's totals across all days of a plan.
type ScheduleSummary struct {
	TotalDays          int     `json:"totalDays" bson:"totaldays"`
	TotalTasks         int     `json:"totalTasks" bson:"totaltasks"`
	WorkTasks          int     `json:"workTasks" bson:"worktasks"`
	TravelTasks        int     `json:"travelTasks" bson:"traveltasks"`
	TotalWorkMinutes   int     `json:"totalWorkMinutes" bson:"totalworkminutes"`
	TotalTravelMinutes int     `json:"totalTravelMinutes" bson:"totaltravelminutes"`
	StoresVisited      int     `json:"storesVisited" bson:"storesvisited"`
	TotalDistanceKm    float64 `json:"totalDistanceKm" bson:"totaldistancekm"`
}

// UserScheduleDetail is one worker's full schedule for one plan. Read-only
// for clients; every task goes through the adapter before leaving a handler.
type UserScheduleDetail struct {
	PlanID    string          `json:"planId" bson:"planid"`
	PlanName  string          `json:"planName" bson:"planname"`
	UserID    string          `json:"userId" bson:"userid"`
	Username  string          `json:"username" bson:"username"`
	Summary   ScheduleSummary `json:"summary" bson:"summary"`
	Schedules []DailySchedule `json:"schedules" bson:"schedules"`
}

// UserScheduleListItem is the per-plan worker list projection.
type UserScheduleListItem struct {
	UserID   string          `json:"userId" bson:"userid"`
	Username string          `json:"username" bson:"username"`
	Summary  ScheduleSummary `json:"summary" bson:"summary"`
}
