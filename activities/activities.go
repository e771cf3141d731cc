package activities

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"fieldops/db"
	"fieldops/globals"
	"fieldops/models"
	"fieldops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// validateActivity mirrors what the planning wizard enforces so a
// template can never enter a plan in an unusable state.
func validateActivity(a *models.Activity) string {
	if strings.TrimSpace(a.Name) == "" {
		return "Activity name is required"
	}
	if a.EstimatedTimePerTask <= 0 {
		return "Estimated time per task must be positive"
	}
	if a.IsRepetitive && a.DefaultRepetitions < 1 {
		return "Repetitive activities need at least one repetition"
	}
	if a.HasCustomSchedule && len(a.CustomTimeSlots) == 0 {
		return "Custom schedule requires at least one time slot"
	}
	if !a.HasCustomSchedule && len(a.CustomTimeSlots) > 0 {
		return "Time slots given without a custom schedule"
	}
	return ""
}

func GetActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, bson.M{"deleted": bson.M{"$ne": true}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		list = filterByQuery(list, q)
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// filterByQuery narrows the template list for the wizard's search box.
func filterByQuery(list []models.Activity, q string) []models.Activity {
	out := []models.Activity{}
	for _, a := range list {
		if utils.ContainsIgnoreCase(a.Name, q) || utils.ContainsIgnoreCase(a.Description, q) {
			out = append(out, a)
		}
	}
	return out
}

func GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var activity models.Activity
	err := db.ActivitiesCollection.FindOne(ctx,
		bson.M{"activityid": ps.ByName("activityid"), "deleted": bson.M{"$ne": true}}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, activity)
}

func CreateActivity(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateActivity(&activity); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	activity.ActivityID = "act" + utils.GenerateRandomString(13)
	activity.CreatedBy = requestingUserID
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = activity.CreatedAt
	activity.Deleted = false

	if _, err := db.ActivitiesCollection.InsertOne(ctx, activity); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create activity")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, activity)
}

func EditActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	activityID := ps.ByName("activityid")

	var existing models.Activity
	err := db.ActivitiesCollection.FindOne(ctx,
		bson.M{"activityid": activityID, "deleted": bson.M{"$ne": true}}).Decode(&existing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var patch models.Activity
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Apply the patch over the stored copy and validate the merged result,
	// so a partial edit cannot sidestep the create-time rules.
	merged := existing
	if strings.TrimSpace(patch.Name) != "" {
		merged.Name = strings.TrimSpace(patch.Name)
	}
	if patch.Description != "" {
		merged.Description = patch.Description
	}
	if patch.EstimatedTimePerTask != 0 {
		merged.EstimatedTimePerTask = patch.EstimatedTimePerTask
	}
	merged.IsRepetitive = patch.IsRepetitive
	merged.DefaultRepetitions = patch.DefaultRepetitions
	merged.HasCustomSchedule = patch.HasCustomSchedule
	merged.CustomTimeSlots = patch.CustomTimeSlots
	if patch.AuthorizedUserIDs != nil {
		merged.AuthorizedUserIDs = patch.AuthorizedUserIDs
	}
	if msg := validateActivity(&merged); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}
	merged.UpdatedAt = time.Now()

	if _, err := db.ActivitiesCollection.ReplaceOne(ctx, bson.M{"activityid": activityID}, merged); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating activity")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, merged)
}

func DeleteActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	activityID := ps.ByName("activityid")

	res, err := db.ActivitiesCollection.UpdateOne(ctx,
		bson.M{"activityid": activityID, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"deleted": true, "updatedat": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting activity")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Activity not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "activityId": activityID})
}
