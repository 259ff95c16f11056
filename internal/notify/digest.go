package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"jobscout-engine/internal/classify"
	"jobscout-engine/internal/domain"
)

// Digest is one email's worth of postings, grouped tier first and role
// category second so the best companies sit at the top.
type Digest struct {
	Date  time.Time
	New   []domain.JobPosting
	Tiers []TierGroup
}

type TierGroup struct {
	Tier   int
	Label  string
	Groups []CategoryGroup
}

type CategoryGroup struct {
	Category string
	Jobs     []domain.JobPosting
}

func tierLabel(t int) string {
	switch t {
	case 1:
		return "Tier 1 · Top Companies"
	case 2:
		return "Tier 2 · Strong Companies"
	default:
		return "Other Companies"
	}
}

// BuildDigest groups postings for rendering. Irrelevant postings never
// reach the digest; callers filter before building.
func BuildDigest(now time.Time, newJobs, all []domain.JobPosting) Digest {
	d := Digest{Date: now, New: newJobs}

	byTier := map[int]map[string][]domain.JobPosting{}
	for _, p := range all {
		tier := p.Tier
		if tier < 1 || tier > 3 {
			tier = 3
		}
		if byTier[tier] == nil {
			byTier[tier] = map[string][]domain.JobPosting{}
		}
		byTier[tier][p.RoleCategory] = append(byTier[tier][p.RoleCategory], p)
	}

	for tier := 1; tier <= 3; tier++ {
		cats := byTier[tier]
		if len(cats) == 0 {
			continue
		}
		tg := TierGroup{Tier: tier, Label: tierLabel(tier)}
		ladder := classify.RoleCategories()
		inLadder := map[string]bool{}
		for _, cat := range ladder {
			inLadder[cat] = true
			if jobs := cats[cat]; len(jobs) > 0 {
				tg.Groups = append(tg.Groups, CategoryGroup{Category: cat, Jobs: jobs})
			}
		}
		// Categories not on the ladder still render, after it.
		var extra []string
		for cat := range cats {
			if !inLadder[cat] {
				extra = append(extra, cat)
			}
		}
		sort.Strings(extra)
		for _, cat := range extra {
			tg.Groups = append(tg.Groups, CategoryGroup{Category: cat, Jobs: cats[cat]})
		}
		d.Tiers = append(d.Tiers, tg)
	}
	return d
}

const digestTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; color: #1a202c; }
        .job { margin: 10px 0; padding: 10px 14px; border: 1px solid #ddd; border-radius: 5px; }
        .new { background-color: #e6ffe6; }
        .title { color: #2c5282; font-size: 16px; }
        .company { color: #4a5568; font-weight: bold; }
        .meta { color: #718096; font-size: 13px; }
        h2 { border-bottom: 2px solid #2c5282; padding-bottom: 4px; }
        h3 { color: #4a5568; }
    </style>
</head>
<body>
    <h1>Job Digest - {{.Date.Format "Jan 02, 2006"}}</h1>

    {{if .New}}
    <h2>New Since Last Digest ({{len .New}})</h2>
    {{range .New}}
    <div class="job new">
        <div class="title"><a href="{{.URL}}">{{.Title}}</a></div>
        <div class="company">{{.Company}}</div>
        <div class="meta">{{.Location}}{{if .YearsRequired}} · {{.YearsRequired}} yrs{{end}} · {{.Source}}</div>
    </div>
    {{end}}
    {{end}}

    {{range .Tiers}}
    <h2>{{.Label}}</h2>
    {{range .Groups}}
    <h3>{{.Category}} ({{len .Jobs}})</h3>
    {{range .Jobs}}
    <div class="job{{if .IsNew}} new{{end}}">
        <div class="title"><a href="{{.URL}}">{{.Title}}</a></div>
        <div class="company">{{.Company}}</div>
        <div class="meta">{{.Location}} · {{.Source}}</div>
    </div>
    {{end}}
    {{end}}
    {{end}}
</body>
</html>
`

func (d Digest) RenderHTML() (string, error) {
	tmpl, err := template.New("digest").Parse(digestTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// RenderText is the plain-text alternative for clients that won't show
// HTML.
func (d Digest) RenderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Job Digest - %s\n\n", d.Date.Format("Jan 02, 2006"))
	if len(d.New) > 0 {
		fmt.Fprintf(&b, "New since last digest (%d):\n", len(d.New))
		for _, p := range d.New {
			fmt.Fprintf(&b, "  * %s @ %s (%s)\n    %s\n", p.Title, p.Company, p.Location, p.URL)
		}
		b.WriteString("\n")
	}
	for _, tg := range d.Tiers {
		fmt.Fprintf(&b, "%s\n", tg.Label)
		for _, g := range tg.Groups {
			fmt.Fprintf(&b, "  %s (%d)\n", g.Category, len(g.Jobs))
			for _, p := range g.Jobs {
				fmt.Fprintf(&b, "    - %s @ %s\n      %s\n", p.Title, p.Company, p.URL)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
