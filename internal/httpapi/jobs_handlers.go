package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/store"
)

type JobsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

// List serves GET /jobs. Irrelevant postings are hidden unless the
// caller asks for them with all=1.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := store.ListJobsOpts{
		Category:     q.Get("category"),
		Company:      q.Get("company"),
		Search:       q.Get("search"),
		NewOnly:      q.Get("new") == "1" || q.Get("new") == "true",
		RelevantOnly: !(q.Get("all") == "1" || q.Get("all") == "true"),
	}
	if t := q.Get("tier"); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil || n < 1 || n > 3 {
			WriteError(w, r, http.StatusBadRequest, "bad_tier", "tier must be 1, 2, or 3")
			return
		}
		opts.Tier = n
	}

	jobs, err := store.ListJobs(r.Context(), h.DB, opts, time.Now())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.JobPosting{}
	}
	writeJSON(w, jobs)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatusByPath serves PATCH /jobs/{key}/status.
func (h JobsHandler) UpdateStatusByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	key, ok := strings.CutSuffix(rest, "/status")
	if !ok || key == "" || strings.Contains(key, "/") {
		WriteError(w, r, http.StatusBadRequest, "bad_path", "expected /jobs/{key}/status")
		return
	}

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}
	status := domain.Status(req.Status)
	if !domain.ValidStatus(status) {
		WriteError(w, r, http.StatusBadRequest, "bad_status", "status must be new, seen, applied, or skipped")
		return
	}

	if err := store.UpdateStatus(r.Context(), h.DB, key, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, r, http.StatusNotFound, "not_found", "no such job")
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobStatusChanged, 1, map[string]any{
		"key":    key,
		"status": string(status),
	}))
	writeJSON(w, map[string]any{"ok": true, "key": key, "status": string(status)})
}

func (h JobsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := store.GetStats(r.Context(), h.DB, time.Now())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, st)
}
