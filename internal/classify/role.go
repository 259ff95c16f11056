package classify

import "strings"

// Role categories, best fit first. The ladder is ordered because titles hit
// multiple keyword groups ("Technical Program Manager, AI Safety"); the
// first matching rule wins.
const (
	RoleProductManager   = "Product Manager"
	RoleProgramManager   = "Program / Project Manager"
	RoleDataAnalytics    = "Data / Analytics"
	RoleOpsGTM           = "Ops / GTM / Marketing"
	RoleResearchSafety   = "Research / AI Safety"
	RoleSolutionsEng     = "Solutions / Sales Engineering"
	RoleSoftwareEng      = "Software Engineering"
	RoleOtherEngineering = "Other Engineering"
	RoleHRRecruiting     = "HR / Recruiting"
	RoleOther            = "Other"
)

type roleRule struct {
	category string
	any      []string
}

var roleLadder = []roleRule{
	{RoleProductManager, []string{"product manager", "product management", "apm", "associate product"}},
	{RoleProgramManager, []string{"program manager", "project manager", "tpm", "technical program"}},
	{RoleDataAnalytics, []string{"data analyst", "analytics", "data scientist", "business analyst", "business intelligence", "insights"}},
	{RoleOpsGTM, []string{"operations", "strategy", "gtm", "go-to-market", "marketing", "growth", "partnerships", "bizops"}},
	{RoleResearchSafety, []string{"research", "ai safety", "policy", "trust", "safety", "responsible ai"}},
	{RoleSolutionsEng, []string{"solutions engineer", "sales engineer", "technical account", "implementation", "support engineer"}},
	{RoleSoftwareEng, []string{"software engineer", "backend", "frontend", "full stack", "fullstack", "swe", "developer", "mobile engineer"}},
	{RoleOtherEngineering, []string{"engineer", "infrastructure", "platform", "sre", "devops", "security", "ml engineer", "data engineer"}},
	{RoleHRRecruiting, []string{"recruiter", "recruiting", "hr ", "human resources", "people ops", "talent", "admin", "coordinator"}},
}

// CategorizeRole maps a job title onto the category ladder.
func CategorizeRole(title string) string {
	t := strings.ToLower(title)
	for _, rule := range roleLadder {
		for _, kw := range rule.any {
			if strings.Contains(t, kw) {
				return rule.category
			}
		}
	}
	return RoleOther
}

// RoleCategories lists every category in ladder order, catch-all last.
// Consumers use it for stable display ordering.
func RoleCategories() []string {
	out := make([]string, 0, len(roleLadder)+1)
	for _, r := range roleLadder {
		out = append(out, r.category)
	}
	return append(out, RoleOther)
}
