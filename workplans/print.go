package workplans

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"fieldops/db"
	"fieldops/globals"
	"fieldops/schedule"
	"fieldops/utils"

	"fieldops/models"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// checkInPayload builds the signed QR content a supervisor scans to verify
// a printed itinerary: planID|userID|timestamp|signature.
func checkInPayload(planID, userID string) string {
	data := fmt.Sprintf("%s|%s|%d", planID, userID, time.Now().Unix())

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// GET /api/work-plans/:planid/user-schedules/:userid/print
func (api *API) PrintItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	planID := ps.ByName("planid")
	userID := ps.ByName("userid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var doc models.UserScheduleDetail
	err := db.SchedulesCollection.FindOne(ctx, bson.M{"planid": planID, "userid": userID}).Decode(&doc)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Schedule not found")
		return
	}
	detail := schedule.AdaptUserScheduleDetail(doc)

	qrPNG, err := qrcode.Encode(checkInPayload(planID, userID), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Work Plan Itinerary")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Plan: %s", detail.PlanName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Worker: %s", detail.Username))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Days: %d   Stores: %d   Work: %s   Travel: %s",
		detail.Summary.TotalDays,
		detail.Summary.StoresVisited,
		utils.FormatMinutes(detail.Summary.TotalWorkMinutes),
		utils.FormatMinutes(detail.Summary.TotalTravelMinutes)))
	pdf.Ln(10)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 160, 10, 35, 35, false, imageOpts, 0, "")

	for _, day := range detail.Schedules {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 9, fmt.Sprintf("%s   %s - %s", day.Date, day.StartTime, day.EndTime))
		pdf.Ln(8)

		pdf.SetFont("Arial", "", 10)
		for _, task := range day.Tasks {
			line := fmt.Sprintf("%d. [%s] %s   %s - %s", task.TaskNumber, task.TaskType, task.TaskName, task.StartTime, task.EndTime)
			if task.TaskType == models.TaskTypeWork && task.TotalRepetitions > 1 {
				line += fmt.Sprintf("   (x%d)", task.TotalRepetitions)
			}
			pdf.Cell(0, 6, line)
			pdf.Ln(5)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+userID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
