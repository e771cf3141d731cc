package workplans

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fieldops/db"
	"fieldops/engine"
	"fieldops/middleware"
	"fieldops/models"
	"fieldops/mq"
	"fieldops/photos"
	"fieldops/schedule"
	"fieldops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// API holds the work-plan handlers' collaborators, wired once in main.
type API struct {
	engine  *engine.Client
	emitter *mq.Emitter
	drafts  *DraftStore
}

func NewAPI(eng *engine.Client, emitter *mq.Emitter) *API {
	return &API{
		engine:  eng,
		emitter: emitter,
		drafts:  NewDraftStore(RedisKV{}),
	}
}

var errInvalidBody = errors.New("invalid request body")

var validPlanStatuses = map[string]bool{
	models.PlanStatusDraft:     true,
	models.PlanStatusApproved:  true,
	models.PlanStatusActive:    true,
	models.PlanStatusCompleted: true,
	models.PlanStatusCancelled: true,
}

type previewPayload struct {
	models.WorkPlanFormData
	SimulatedWorkers int `json:"simulatedWorkers,omitempty"`
}

type generatePayload struct {
	models.WorkPlanFormData
	SaveAsTemplate      bool   `json:"saveAsTemplate"`
	TemplateName        string `json:"templateName,omitempty"`
	TemplateDescription string `json:"templateDescription,omitempty"`
}

// POST /api/work-plans/preview
func (api *API) PreviewPlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload previewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ValidateFormData(payload.WorkPlanFormData); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := models.PreviewRequest{
		WorkPlanRequestDTO: BuildRequestDTO(payload.WorkPlanFormData),
		SimulatedWorkers:   payload.SimulatedWorkers,
	}

	preview, err := api.engine.Preview(r.Context(), req)
	if err != nil {
		log.Printf("Preview request failed: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Scheduling preview failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, preview)
}

// POST /api/work-plans
func (api *API) CreatePlan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload generatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := ValidateFormData(payload.WorkPlanFormData); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	dto := BuildRequestDTO(payload.WorkPlanFormData)
	generated, err := api.engine.Generate(r.Context(), models.GenerateRequest{
		WorkPlanRequestDTO:  dto,
		SaveAsTemplate:      payload.SaveAsTemplate,
		TemplateName:        payload.TemplateName,
		TemplateDescription: payload.TemplateDescription,
	})
	if err != nil {
		log.Printf("Generate request failed: %v", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Schedule generation failed")
		return
	}

	now := time.Now()
	plan := models.WorkPlan{
		PlanID:          "wp" + utils.GenerateRandomString(13),
		Name:            payload.Name,
		Description:     payload.Description,
		Deadline:        payload.Deadline,
		Status:          models.PlanStatusDraft,
		StoreIDs:        dto.StoreIDs,
		UserIDs:         dto.UserIDs,
		WorkDays:        dto.WorkDays,
		WorkTimeSlots:   dto.WorkTimeSlots,
		StoreActivities: dto.StoreActivities,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := db.WorkPlansCollection.InsertOne(ctx, plan); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving work plan")
		return
	}

	var scheduleDocs []interface{}
	for _, result := range generated.Schedules {
		scheduleDocs = append(scheduleDocs, buildScheduleDoc(plan, result))
	}
	if len(scheduleDocs) > 0 {
		if _, err := db.SchedulesCollection.InsertMany(ctx, scheduleDocs); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving schedules")
			return
		}
	}

	if payload.SaveAsTemplate {
		api.saveTemplate(ctx, userID, payload)
	}

	// The submitted draft is done with; failure to drop it is not worth
	// failing the whole submit.
	if err := api.drafts.Clear(ctx, userID); err != nil {
		log.Printf("Failed to clear draft for %s: %v", userID, err)
	}

	api.emitter.Emit(ctx, mq.Event{Name: mq.EventPlanCreated, PlanID: plan.PlanID, UserID: userID})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"planId":   plan.PlanID,
		"name":     plan.Name,
		"status":   plan.Status,
		"warnings": generated.Warnings,
	})
}

// buildScheduleDoc freezes one worker's engine output into the stored
// document, backfilling ids the engine may leave empty.
func buildScheduleDoc(plan models.WorkPlan, result models.UserScheduleResult) models.UserScheduleDetail {
	doc := models.UserScheduleDetail{
		PlanID:    plan.PlanID,
		PlanName:  plan.Name,
		UserID:    result.UserID,
		Username:  result.Username,
		Summary:   result.Summary,
		Schedules: result.Schedules,
	}
	for i := range doc.Schedules {
		day := &doc.Schedules[i]
		if day.ID == "" {
			day.ID = utils.GetUUID()
		}
		for j := range day.Tasks {
			task := &day.Tasks[j]
			if task.ID == "" {
				task.ID = utils.GetUUID()
			}
			if task.DailyScheduleID == "" {
				task.DailyScheduleID = day.ID
			}
			if task.Status == "" {
				task.Status = models.TaskStatusPending
			}
		}
	}
	return doc
}

func (api *API) saveTemplate(ctx context.Context, userID string, payload generatePayload) {
	name := payload.TemplateName
	if name == "" {
		name = payload.Name
	}

	form := payload.WorkPlanFormData
	form.TemplateID = ""

	template := models.WorkPlanTemplate{
		TemplateID:  "tpl" + utils.GenerateRandomString(13),
		Name:        name,
		Description: payload.TemplateDescription,
		Form:        form,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if _, err := db.TemplatesCollection.InsertOne(ctx, template); err != nil {
		log.Printf("Failed to save template %q: %v", name, err)
	}
}

// GET /api/work-plans
func (api *API) ListPlans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdat": -1})
	plans, err := utils.FindAndDecode[models.WorkPlan](ctx, db.WorkPlansCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching work plans")
		return
	}

	items := make([]models.WorkPlanListItem, 0, len(plans))
	for _, plan := range plans {
		items = append(items, models.WorkPlanListItem{
			PlanID:      plan.PlanID,
			Name:        plan.Name,
			Description: plan.Description,
			Deadline:    plan.Deadline,
			Status:      plan.Status,
			StoreCount:  len(plan.StoreIDs),
			WorkerCount: len(plan.UserIDs),
			CreatedAt:   plan.CreatedAt,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GET /api/work-plans/:planid/user-schedules
func (api *API) GetUserSchedules(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	docs, err := utils.FindAndDecode[models.UserScheduleDetail](ctx, db.SchedulesCollection, bson.M{"planid": planID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching schedules")
		return
	}

	items := make([]models.UserScheduleListItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, models.UserScheduleListItem{
			UserID:   doc.UserID,
			Username: doc.Username,
			Summary:  doc.Summary,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GET /api/work-plans/:planid/user-schedules/:userid
func (api *API) GetUserScheduleDetail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")
	userID := ps.ByName("userid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var doc models.UserScheduleDetail
	err := db.SchedulesCollection.FindOne(ctx, bson.M{"planid": planID, "userid": userID}).Decode(&doc)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Schedule not found")
		return
	}

	// Raw engine tasks never leave a handler unadapted.
	utils.RespondWithJSON(w, http.StatusOK, schedule.AdaptUserScheduleDetail(doc))
}

// PATCH /api/work-plans/:planid/tasks/:taskid/status
func (api *API) UpdateTaskStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")
	taskID := ps.ByName("taskid")

	var update models.TaskStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !schedule.IsValidTaskStatus(update.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid task status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	task, err := api.mutateTask(ctx, planID, taskID, func(task *models.WorkTask) {
		task.Status = update.Status
		if update.Status == models.TaskStatusCompleted {
			task.CompletedRepetitions = task.TotalRepetitions
			task.PendingRepetitions = 0
			task.ProgressPercent = 100
		}
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	api.emitter.Emit(ctx, mq.Event{
		Name:   mq.EventTaskStatusChanged,
		PlanID: planID,
		TaskID: taskID,
		Status: update.Status,
	})

	utils.RespondWithJSON(w, http.StatusOK, schedule.AdaptWorkTask(task))
}

// PATCH /api/work-plans/:planid/tasks/:taskid/complete
func (api *API) CompleteTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")
	taskID := ps.ByName("taskid")

	completion, photoNames, err := parseCompletion(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	task, err := api.mutateTask(ctx, planID, taskID, func(task *models.WorkTask) {
		task.Status = models.TaskStatusCompleted
		task.CompletedRepetitions = task.TotalRepetitions
		task.PendingRepetitions = 0
		task.ProgressPercent = 100
		task.ActualDuration = completion.ActualDuration
		task.Notes = completion.Notes
		task.Photos = append(task.Photos, photoNames...)
	})
	if err != nil {
		// The photos landed on disk before the lookup; don't orphan them.
		photos.RemoveCompletionPhotos(photoNames)
		utils.RespondWithError(w, http.StatusNotFound, "Task not found")
		return
	}

	api.emitter.Emit(ctx, mq.Event{
		Name:   mq.EventTaskCompleted,
		PlanID: planID,
		TaskID: taskID,
		Status: models.TaskStatusCompleted,
	})

	utils.RespondWithJSON(w, http.StatusOK, schedule.AdaptWorkTask(task))
}

// parseCompletion accepts either a JSON body or a multipart form with
// photos attached.
func parseCompletion(r *http.Request) (models.TaskCompletion, []string, error) {
	var completion models.TaskCompletion

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := json.NewDecoder(r.Body).Decode(&completion); err != nil {
			return completion, nil, errInvalidBody
		}
		return completion, nil, nil
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return completion, nil, errInvalidBody
	}

	completion.ActualDuration, _ = strconv.Atoi(r.FormValue("actualDuration"))
	completion.Notes = r.FormValue("notes")

	var names []string
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["photos"] {
			file, err := header.Open()
			if err != nil {
				return completion, nil, errInvalidBody
			}
			name, err := photos.SaveCompletionPhoto(file, header)
			if err != nil {
				return completion, nil, err
			}
			names = append(names, name)
		}
	}
	return completion, names, nil
}

// mutateTask loads the schedule containing taskID, applies fn to the task,
// refreshes the affected day's rollups and writes the document back.
func (api *API) mutateTask(ctx context.Context, planID, taskID string, fn func(*models.WorkTask)) (models.WorkTask, error) {
	filter := bson.M{"planid": planID, "schedules.tasks.id": taskID}

	var doc models.UserScheduleDetail
	if err := db.SchedulesCollection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return models.WorkTask{}, err
	}

	var updated models.WorkTask
	for i := range doc.Schedules {
		for j := range doc.Schedules[i].Tasks {
			if doc.Schedules[i].Tasks[j].ID != taskID {
				continue
			}
			fn(&doc.Schedules[i].Tasks[j])
			doc.Schedules[i] = schedule.RecalcDayTotals(doc.Schedules[i])
			updated = doc.Schedules[i].Tasks[j]
		}
	}

	_, err := db.SchedulesCollection.ReplaceOne(ctx, bson.M{"planid": doc.PlanID, "userid": doc.UserID}, doc)
	if err != nil {
		return models.WorkTask{}, err
	}
	return updated, nil
}

// PATCH /api/work-plans/:planid/status
func (api *API) UpdatePlanStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")

	var update models.PlanStatusUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validPlanStatuses[update.Status] {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid plan status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := db.WorkPlansCollection.UpdateOne(ctx,
		bson.M{"planid": planID},
		bson.M{"$set": bson.M{"status": update.Status, "updatedat": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating work plan")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Work plan not found")
		return
	}

	api.emitter.Emit(ctx, mq.Event{
		Name:   mq.EventPlanStatusChanged,
		PlanID: planID,
		Status: update.Status,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"planId": planID, "status": update.Status})
}

// GET /api/work-plan-draft
func (api *API) GetDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	form, ok, err := api.drafts.Load(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error loading draft")
		return
	}
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "No draft saved")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, form)
}

// PUT /api/work-plan-draft
func (api *API) SaveDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var form models.WorkPlanFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid draft payload")
		return
	}

	if err := api.drafts.Save(r.Context(), userID, form); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error saving draft")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Draft saved"})
}

// DELETE /api/work-plan-draft
func (api *API) ClearDraft(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := api.drafts.Clear(r.Context(), userID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error clearing draft")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Draft cleared"})
}
