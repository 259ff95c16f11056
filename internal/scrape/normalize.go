package scrape

import (
	"jobscout-engine/internal/classify"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/util"
)

// Classifiers bundles the title/company classifiers every adapter needs.
type Classifiers struct {
	Experience *classify.Experience
	Tiers      *classify.Tiers
}

// RawPosting is what an adapter pulls off the wire before classification.
type RawPosting struct {
	Source      domain.Source
	Company     string
	Title       string
	Location    string
	URL         string
	SourceJobID string
	Description string
}

// BuildPosting classifies a raw posting and assembles the stored form.
// Interns are dropped outright; everything else is kept with Relevant
// recording the experience verdict so downstream filtering stays cheap.
func BuildPosting(raw RawPosting, cls Classifiers) (domain.JobPosting, bool) {
	title := util.CleanText(raw.Title)
	company := util.CleanText(raw.Company)
	if title == "" || company == "" {
		return domain.JobPosting{}, false
	}
	if classify.IsIntern(title) {
		return domain.JobPosting{}, false
	}

	relevant, years := cls.Experience.Classify(title, raw.Description)
	p := domain.JobPosting{
		Key:           util.JobKey(title, company, raw.URL),
		Title:         title,
		Company:       company,
		Location:      util.CleanText(raw.Location),
		URL:           raw.URL,
		SourceJobID:   raw.SourceJobID,
		Source:        raw.Source,
		Tier:          cls.Tiers.Classify(company),
		RoleCategory:  classify.CategorizeRole(title),
		Relevant:      relevant,
		YearsRequired: years,
		Status:        domain.StatusNew,
	}
	return p, true
}
