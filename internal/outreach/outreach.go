// Package outreach generates LinkedIn connection messages for companies
// on the job board: teammates on the target team, people who posted
// that they're hiring, and general coffee-chat networking.
package outreach

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"jobscout-engine/internal/domain"
)

// Profile is the sender. Highlight should read as the middle of a
// sentence ("I <highlight>.").
type Profile struct {
	Name      string
	School    string
	Highlight string
}

// Person is the outreach target.
type Person struct {
	Name      string
	Role      string
	Company   string
	Specialty string
	JobTitle  string // the posting being applied to
}

// TeamMemberMessage targets someone on the team behind the posting.
func TeamMemberMessage(p Profile, t Person) string {
	theirWork := workPhrase(t.Role)
	specialtyPart := ""
	if t.Specialty != "" {
		specialtyPart = fmt.Sprintf("Your work on %s is inspiring. ", t.Specialty)
	}
	return fmt.Sprintf(
		"Hi %s, I'm %s, a %s. I %s. %sYour experience %s at %s caught my attention and I'd love to connect and learn from your journey.",
		t.Name, p.Name, p.School, p.Highlight, specialtyPart, theirWork, t.Company)
}

// HiringPosterMessage targets someone who posted that their team is hiring.
func HiringPosterMessage(p Profile, t Person) string {
	jobTitle := t.JobTitle
	if jobTitle == "" {
		jobTitle = "the open role"
	}
	return fmt.Sprintf(
		"Hi %s, I saw your post about hiring at %s and I'm very interested! I'm %s, a %s. I %s. Would love to connect and learn more about the %s opportunity.",
		t.Name, t.Company, p.Name, p.School, p.Highlight, jobTitle)
}

// CoffeeChatMessage is the general networking opener.
func CoffeeChatMessage(p Profile, t Person) string {
	return fmt.Sprintf(
		"Hi %s, I'm %s, a %s exploring opportunities in %s. I admire your journey at %s and would love to connect!",
		t.Name, p.Name, p.School, industryFor(t.Company), t.Company)
}

// FollowUpMessage is sent after a connection is accepted.
func FollowUpMessage(p Profile, t Person) string {
	return fmt.Sprintf(`Hi %s, thanks so much for connecting!

I'm %s, currently finishing my %s. I've been researching %s and am really impressed by the team's work.

Would you have 15-20 minutes for a quick virtual coffee chat? I'd love to hear about your experience and any advice you might have for someone breaking into the field.

Totally understand if you're busy. I appreciate any time you can spare!

Best,
%s`, t.Name, p.Name, p.School, t.Company, p.Name)
}

func workPhrase(role string) string {
	r := strings.ToLower(role)
	contains := func(kws ...string) bool {
		for _, kw := range kws {
			if strings.Contains(r, kw) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("data", "analytics", "scientist"):
		return "building data platforms"
	case contains("product", "pm"):
		return "shaping product strategy"
	case contains("engineer", "software"):
		return "building scalable systems"
	case contains("program", "tpm", "project"):
		return "driving complex initiatives"
	case contains("director", "head", "lead", "vp", "manager"):
		return "leading teams"
	case contains("ai", "ml", "machine learning", "research"):
		return "advancing AI/ML"
	default:
		return "your work"
	}
}

var (
	fintechCos = []string{"stripe", "plaid", "brex", "ramp", "coinbase", "robinhood", "affirm", "chime", "mercury"}
	aiCos      = []string{"anthropic", "openai", "deepmind", "cohere", "scale", "hugging face"}
)

func industryFor(company string) string {
	c := strings.ToLower(company)
	for _, f := range fintechCos {
		if strings.Contains(c, f) {
			return "fintech"
		}
	}
	for _, a := range aiCos {
		if strings.Contains(c, a) {
			return "AI"
		}
	}
	return "tech"
}

// Companies lists the unique companies on the board, best tier first,
// alphabetical within a tier.
func Companies(jobs []domain.JobPosting) []domain.Company {
	type entry struct {
		name string
		tier int
	}
	byName := map[string]entry{}
	for _, j := range jobs {
		if j.Company == "" {
			continue
		}
		e, ok := byName[j.Company]
		if !ok || j.Tier < e.tier {
			byName[j.Company] = entry{name: j.Company, tier: j.Tier}
		}
	}
	out := make([]entry, 0, len(byName))
	for _, e := range byName {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].tier != out[j].tier {
			return out[i].tier < out[j].tier
		}
		return out[i].name < out[j].name
	})
	cos := make([]domain.Company, 0, len(out))
	for _, e := range out {
		cos = append(cos, domain.Company{Name: e.name})
	}
	return cos
}

// SearchURL builds a LinkedIn people/content search for finding
// outreach targets at a company.
func SearchURL(company, searchType, jobTitle string) string {
	kw := func(parts ...string) string {
		return url.QueryEscape(strings.Join(parts, " "))
	}
	switch searchType {
	case "team":
		if rk := roleKeyword(jobTitle); rk != "" {
			return "https://www.linkedin.com/search/results/people/?keywords=" + kw(company, rk)
		}
		return "https://www.linkedin.com/search/results/people/?keywords=" + kw(company)
	case "hiring":
		return "https://www.linkedin.com/search/results/content/?keywords=" + kw(company, "hiring")
	case "recruiter":
		return "https://www.linkedin.com/search/results/people/?keywords=" + kw(company, "recruiter OR talent")
	case "leadership":
		return "https://www.linkedin.com/search/results/people/?keywords=" + kw(company, "director OR head of OR VP")
	default:
		return "https://www.linkedin.com/search/results/people/?keywords=" + kw(company)
	}
}

func roleKeyword(jobTitle string) string {
	t := strings.ToLower(jobTitle)
	switch {
	case strings.Contains(t, "product"):
		return "product manager"
	case strings.Contains(t, "program manager"), strings.Contains(t, "tpm"):
		return "program manager"
	case strings.Contains(t, "data analyst"), strings.Contains(t, "analytics"):
		return "data analyst"
	case strings.Contains(t, "data scientist"):
		return "data scientist"
	case strings.Contains(t, "data engineer"):
		return "data engineer"
	case strings.Contains(t, "software engineer"):
		return "software engineer"
	case strings.Contains(t, "research"):
		return "research"
	case strings.Contains(t, "operations"):
		return "operations"
	default:
		return ""
	}
}
