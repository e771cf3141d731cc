package routes

import (
	"net/http"

	"fieldops/activities"
	"fieldops/auth"
	"fieldops/live"
	"fieldops/middleware"
	"fieldops/ratelim"
	"fieldops/stores"
	"fieldops/workplans"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/taskphotos/*filepath", http.Dir("static/taskphotos"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddStoreRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/stores", rl.Limit(middleware.Authenticate(stores.GetStores)))
	router.GET("/api/stores/:storeid", middleware.Authenticate(stores.GetStore))
	router.POST("/api/stores", rl.Limit(middleware.Authenticate(stores.CreateStore)))
	router.PUT("/api/stores/:storeid", middleware.Authenticate(stores.EditStore))
	router.DELETE("/api/stores/:storeid", middleware.Authenticate(stores.DeleteStore))
}

func AddActivityRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/activities", rl.Limit(middleware.Authenticate(activities.GetActivities)))
	router.GET("/api/activities/:activityid", middleware.Authenticate(activities.GetActivity))
	router.POST("/api/activities", rl.Limit(middleware.Authenticate(activities.CreateActivity)))
	router.PUT("/api/activities/:activityid", middleware.Authenticate(activities.EditActivity))
	router.DELETE("/api/activities/:activityid", middleware.Authenticate(activities.DeleteActivity))
}

// Drafts live under their own prefix; httprouter cannot mix a static
// "draft" segment with the ":planid" wildcard in the same method tree.
func AddWorkPlanRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, api *workplans.API) {
	router.GET("/api/work-plan-draft", middleware.Authenticate(api.GetDraft))
	router.PUT("/api/work-plan-draft", middleware.Authenticate(api.SaveDraft))
	router.DELETE("/api/work-plan-draft", middleware.Authenticate(api.ClearDraft))

	router.POST("/api/work-plans/preview", rl.Limit(middleware.Authenticate(api.PreviewPlan)))
	router.POST("/api/work-plans", rl.Limit(middleware.Authenticate(api.CreatePlan)))
	router.GET("/api/work-plans", middleware.Authenticate(api.ListPlans))
	router.PATCH("/api/work-plans/:planid/status", middleware.Authenticate(api.UpdatePlanStatus))

	router.GET("/api/work-plans/:planid/user-schedules", middleware.Authenticate(api.GetUserSchedules))
	router.GET("/api/work-plans/:planid/user-schedules/:userid", middleware.Authenticate(api.GetUserScheduleDetail))
	router.GET("/api/work-plans/:planid/user-schedules/:userid/print", middleware.Authenticate(api.PrintItinerary))

	router.PATCH("/api/work-plans/:planid/tasks/:taskid/status", middleware.Authenticate(api.UpdateTaskStatus))
	router.PATCH("/api/work-plans/:planid/tasks/:taskid/complete", middleware.Authenticate(api.CompleteTask))

	router.GET("/api/work-plan-templates", middleware.Authenticate(api.ListTemplates))
	router.GET("/api/work-plan-templates/:templateid", middleware.Authenticate(api.GetTemplate))
}

func AddLiveRoutes(router *httprouter.Router, hub *live.Hub) {
	router.GET("/api/work-plans/:planid/live", live.ServeWS(hub))
}
