package domain

import "time"

type Source string

const (
	SourceGreenhouse Source = "greenhouse"
	SourceLever      Source = "lever"
	SourceAshby      Source = "ashby"
	SourceOther      Source = "other"
)

// Status is mutable; it is owned by the store and flipped from the dashboard.
type Status string

const (
	StatusNew     Status = "new"
	StatusSeen    Status = "seen"
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusSeen, StatusApplied, StatusSkipped:
		return true
	}
	return false
}

// JobPosting is the canonical unit flowing through the pipeline.
// Key is the stable identity hash used for dedupe across runs.
type JobPosting struct {
	Key           string    `json:"key"`
	Title         string    `json:"title"`
	Company       string    `json:"company"`
	Location      string    `json:"location"`
	URL           string    `json:"url"`
	SourceJobID   string    `json:"source_job_id"`
	Source        Source    `json:"source"`
	Tier          int       `json:"tier"`
	RoleCategory  string    `json:"role_category"`
	Relevant      bool      `json:"relevant"`
	YearsRequired *int      `json:"years_required"`
	Status        Status    `json:"status"`
	FirstSeen     time.Time `json:"first_seen"`
	IsNew         bool      `json:"is_new"`
}

// NewWindow is how long after first detection a posting keeps its NEW badge.
const NewWindow = 48 * time.Hour
