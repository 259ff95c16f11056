package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/outreach"
	"jobscout-engine/internal/store"
)

type OutreachHandler struct {
	DB     *sql.DB
	CfgVal *atomic.Value
}

// Companies serves GET /outreach/companies: unique companies on the
// board, best tier first, for picking an outreach target.
func (h OutreachHandler) Companies(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs(r.Context(), h.DB, store.ListJobsOpts{RelevantOnly: true}, time.Now())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, outreach.Companies(jobs))
}

type outreachMessageReq struct {
	Type      string `json:"type"` // team | hiring | coffee | followup
	Name      string `json:"name"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Specialty string `json:"specialty"`
	JobTitle  string `json:"jobTitle"`
}

type outreachMessageResp struct {
	Message   string `json:"message"`
	SearchURL string `json:"searchUrl"`
}

// Message serves POST /outreach/message: a ready-to-paste LinkedIn
// note plus a people-search URL for finding the target.
func (h OutreachHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req outreachMessageReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	if req.Company == "" {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "company is required")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	profile := outreach.Profile{
		Name:      cfg.Outreach.Name,
		School:    cfg.Outreach.School,
		Highlight: cfg.Outreach.Highlight,
	}
	person := outreach.Person{
		Name:      req.Name,
		Role:      req.Role,
		Company:   req.Company,
		Specialty: req.Specialty,
		JobTitle:  req.JobTitle,
	}

	var msg, search string
	switch req.Type {
	case "team":
		msg = outreach.TeamMemberMessage(profile, person)
		search = outreach.SearchURL(req.Company, "team", req.JobTitle)
	case "hiring":
		msg = outreach.HiringPosterMessage(profile, person)
		search = outreach.SearchURL(req.Company, "hiring", req.JobTitle)
	case "coffee":
		msg = outreach.CoffeeChatMessage(profile, person)
		search = outreach.SearchURL(req.Company, "leadership", req.JobTitle)
	case "followup":
		msg = outreach.FollowUpMessage(profile, person)
		search = outreach.SearchURL(req.Company, "team", req.JobTitle)
	default:
		WriteError(w, r, http.StatusBadRequest, "bad_type", "type must be team, hiring, coffee, or followup")
		return
	}

	writeJSON(w, outreachMessageResp{Message: msg, SearchURL: search})
}
