package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/storyverse/server/activity"
	"github.com/storyverse/server/auth"
	"github.com/storyverse/server/datekey"
	"github.com/storyverse/server/models"
)

// defaultRangeDays is the heatmap span used when no start is given.
const defaultRangeDays = 365

// NewActivity is the editor's autosave payload. WordCount is the total of
// the saved content, not the words added since the previous save.
type NewActivity struct {
	WordCount int    `json:"wordCount"`
	StoryID   string `json:"storyId,omitempty"`
}

func (h *Handler) RecordActivity(w http.ResponseWriter, r *http.Request) {
	userID, svc, ok := h.prepare(w, r)
	if !ok {
		return
	}

	var input NewActivity
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	svc.RecordWritingActivity(r.Context(), userID, input.WordCount, input.StoryID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ActivityDates(w http.ResponseWriter, r *http.Request) {
	userID, svc, ok := h.prepare(w, r)
	if !ok {
		return
	}

	end := svc.Now()
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := datekey.Parse(v, svc.Location())
		if err != nil {
			http.Error(w, "Invalid end date", http.StatusBadRequest)
			return
		}
		end = t
	}

	start := datekey.AddDays(end, -(defaultRangeDays - 1))
	if v := r.URL.Query().Get("start"); v != "" {
		t, err := datekey.Parse(v, svc.Location())
		if err != nil {
			http.Error(w, "Invalid start date", http.StatusBadRequest)
			return
		}
		start = t
	}

	dates := svc.FetchActivityDates(r.Context(), userID, start, end)
	writeJSON(w, http.StatusOK, models.ActivityRange{
		UserID: userID,
		Start:  datekey.Format(start),
		End:    datekey.Format(end),
		Dates:  dates.Sorted(),
	})
}

func (h *Handler) Streak(w http.ResponseWriter, r *http.Request) {
	userID, svc, ok := h.prepare(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, svc.Summary(r.Context(), userID))
}

// prepare authorises the path user and resolves the optional tz parameter.
func (h *Handler) prepare(w http.ResponseWriter, r *http.Request) (string, *activity.Service, bool) {
	userID := chi.URLParam(r, "userID")
	if !h.authDisabled && !auth.Owns(r.Context(), userID) {
		http.Error(w, "Access denied", http.StatusForbidden)
		return "", nil, false
	}

	svc := h.activity
	if tz := r.URL.Query().Get("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			http.Error(w, "Unknown timezone", http.StatusBadRequest)
			return "", nil, false
		}
		svc = svc.In(loc)
	}

	return userID, svc, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
