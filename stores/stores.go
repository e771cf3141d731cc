package stores

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"fieldops/db"
	"fieldops/globals"
	"fieldops/models"
	"fieldops/rdx"
	"fieldops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const listCacheKey = "stores"

func invalidateCache(storeID string) {
	if err := rdx.RdxDel(listCacheKey); err != nil {
		log.Printf("cache invalidation failed for store list: %v", err)
	}
	if err := rdx.RdxDel("store:" + storeID); err != nil {
		log.Printf("cache invalidation failed for store %s: %v", storeID, err)
	}
}

func validateStore(s *models.Store) string {
	if strings.TrimSpace(s.Name) == "" {
		return "Store name is required"
	}
	if s.Location.Lat < -90 || s.Location.Lat > 90 {
		return "Latitude out of range"
	}
	if s.Location.Lng < -180 || s.Location.Lng > 180 {
		return "Longitude out of range"
	}
	return ""
}

func GetStores(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if cached, _ := rdx.RdxGet(listCacheKey); cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	stores, err := utils.FindAndDecode[models.Store](ctx, db.StoresCollection, bson.M{"deleted": bson.M{"$ne": true}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch stores")
		return
	}

	data, _ := json.Marshal(stores)
	rdx.SetWithExpiry(listCacheKey, string(data), 5*time.Minute)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func GetStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	storeID := ps.ByName("storeid")

	var store models.Store
	err := db.StoresCollection.FindOne(ctx, bson.M{"storeid": storeID, "deleted": bson.M{"$ne": true}}).Decode(&store)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, store)
}

func CreateStore(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user")
		return
	}

	var store models.Store
	if err := json.NewDecoder(r.Body).Decode(&store); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateStore(&store); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	store.StoreID = "st" + utils.GenerateRandomString(13)
	store.CreatedBy = requestingUserID
	store.CreatedAt = time.Now()
	store.UpdatedAt = store.CreatedAt
	store.Deleted = false

	if _, err := db.StoresCollection.InsertOne(ctx, store); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create store")
		return
	}

	invalidateCache(store.StoreID)
	utils.RespondWithJSON(w, http.StatusCreated, store)
}

func EditStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	storeID := ps.ByName("storeid")

	var existing models.Store
	err := db.StoresCollection.FindOne(ctx, bson.M{"storeid": storeID, "deleted": bson.M{"$ne": true}}).Decode(&existing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var patch models.Store
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updateFields := bson.M{}
	if name := strings.TrimSpace(patch.Name); name != "" {
		updateFields["name"] = name
	}
	if address := strings.TrimSpace(patch.Address); address != "" {
		updateFields["address"] = address
	}
	if city := strings.TrimSpace(patch.City); city != "" {
		updateFields["city"] = city
	}
	if zone := strings.TrimSpace(patch.Zone); zone != "" {
		updateFields["zone"] = zone
	}
	if phone := strings.TrimSpace(patch.Phone); phone != "" {
		updateFields["phone"] = phone
	}
	if patch.Location.Lat != 0 || patch.Location.Lng != 0 {
		if patch.Location.Lat < -90 || patch.Location.Lat > 90 ||
			patch.Location.Lng < -180 || patch.Location.Lng > 180 {
			utils.RespondWithError(w, http.StatusBadRequest, "Coordinates out of range")
			return
		}
		updateFields["location"] = patch.Location
	}
	updateFields["updatedat"] = time.Now()

	if _, err := db.StoresCollection.UpdateOne(ctx, bson.M{"storeid": storeID}, bson.M{"$set": updateFields}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error updating store")
		return
	}

	invalidateCache(storeID)
	utils.RespondWithJSON(w, http.StatusOK, updateFields)
}

// DeleteStore soft-deletes so stores referenced by historical plans keep resolving.
func DeleteStore(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	storeID := ps.ByName("storeid")

	res, err := db.StoresCollection.UpdateOne(ctx,
		bson.M{"storeid": storeID, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"deleted": true, "updatedat": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting store")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		return
	}

	invalidateCache(storeID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "storeId": storeID})
}
