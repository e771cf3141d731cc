package workplans

import (
	"context"
	"net/http"
	"time"

	"fieldops/db"
	"fieldops/models"
	"fieldops/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// templateListItem is the list projection; the full form snapshot only
// comes back from the by-id fetch.
type templateListItem struct {
	TemplateID  string    `json:"templateId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StoreCount  int       `json:"storeCount"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GET /api/work-plan-templates
func (api *API) ListTemplates(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdat": -1})
	templates, err := utils.FindAndDecode[models.WorkPlanTemplate](ctx, db.TemplatesCollection, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching templates")
		return
	}

	items := make([]templateListItem, 0, len(templates))
	for _, tpl := range templates {
		items = append(items, templateListItem{
			TemplateID:  tpl.TemplateID,
			Name:        tpl.Name,
			Description: tpl.Description,
			StoreCount:  len(tpl.Form.SelectedStores),
			CreatedBy:   tpl.CreatedBy,
			CreatedAt:   tpl.CreatedAt,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// GET /api/work-plan-templates/:templateid
func (api *API) GetTemplate(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	templateID := ps.ByName("templateid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var tpl models.WorkPlanTemplate
	err := db.TemplatesCollection.FindOne(ctx, bson.M{"templateid": templateID}).Decode(&tpl)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Template not found")
		return
	}

	// Loading a template is a copy, not a binding: hand the form back with
	// the template id stamped so a later submit can say where it came from.
	tpl.Form.TemplateID = tpl.TemplateID

	utils.RespondWithJSON(w, http.StatusOK, tpl)
}
