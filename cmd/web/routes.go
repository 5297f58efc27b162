package main

import (
	"net/http"
)

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	api := func(next http.Handler) http.Handler {
		return app.recoverPanic(app.logAndTraceRequest(noCache(next)))
	}

	mux.Handle("POST /api/workouts", api(http.HandlerFunc(app.workoutGeneratePOST)))
	mux.Handle("POST /api/workouts/preview", api(http.HandlerFunc(app.workoutPreviewPOST)))
	mux.Handle("GET /api/workouts/{id}", api(http.HandlerFunc(app.workoutGET)))
	mux.Handle("POST /api/workouts/{id}/regenerate", api(http.HandlerFunc(app.workoutRegeneratePOST)))
	mux.Handle("POST /api/seeds/{token}/regenerate", api(http.HandlerFunc(app.seedRegeneratePOST)))
	mux.Handle("GET /api/users/{userID}/workouts", api(http.HandlerFunc(app.workoutHistoryGET)))
	mux.Handle("GET /api/healthy", api(http.HandlerFunc(app.healthy)))

	return mux
}
