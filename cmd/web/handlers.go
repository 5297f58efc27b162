package main

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/noble-hunt/AXLE-sub000/internal/generation"
)

type generateRequest struct {
	UserID string `json:"user_id"`
	generation.Request
}

type generateResponse struct {
	Workout generation.Workout `json:"workout"`
	Seed    generation.Seed    `json:"seed"`
}

// workoutGeneratePOST composes a workout, persists it with its seed, and
// returns both so the client can replay the session later.
func (app *application) workoutGeneratePOST(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "user_id is required"})
		return
	}

	workout, seed, err := app.service.Generate(r.Context(), req.UserID, req.Request)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, generateResponse{Workout: workout, Seed: seed})
}

type previewRequest struct {
	Token string `json:"token,omitempty"`
	generation.Request
}

// workoutPreviewPOST composes a workout without persisting anything. The
// client may pin a token to make repeated previews identical; otherwise a
// fresh one is minted per call.
func (app *application) workoutPreviewPOST(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !app.decodeJSON(w, r, &req) {
		return
	}
	if req.Token == "" {
		req.Token = uuid.NewString()
	}

	workout, err := app.service.Preview(r.Context(), req.Request, req.Token)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workout)
}

func (app *application) workoutGET(w http.ResponseWriter, r *http.Request) {
	workout, err := app.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workout)
}

// workoutRegeneratePOST replays the seed that produced a stored workout.
func (app *application) workoutRegeneratePOST(w http.ResponseWriter, r *http.Request) {
	workout, err := app.service.RegenerateFromWorkout(r.Context(), r.PathValue("id"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workout)
}

// seedRegeneratePOST replays a stored seed token directly.
func (app *application) seedRegeneratePOST(w http.ResponseWriter, r *http.Request) {
	workout, err := app.service.RegenerateFromToken(r.Context(), r.PathValue("token"))
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workout)
}

func (app *application) workoutHistoryGET(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			app.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid limit parameter"})
			return
		}
		limit = parsed
	}

	workouts, err := app.service.History(r.Context(), r.PathValue("userID"), limit)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, workouts)
}

// healthy responds with a JSON object indicating that the server is healthy.
func (app *application) healthy(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
