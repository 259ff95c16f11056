package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Titles containing any of these are never entry-level, whatever the
// description says.
var seniorTitleTokens = []string{
	"senior", "sr.", "sr ", "staff", "principal", "lead", "head of",
	"director", "vp", "vice president", "chief", "cto", "cfo", "ceo",
	"architect", "distinguished", "fellow", "executive", "partner",
	" iii", " iv", " v ", "level 3", "level 4", "level 5", "level 6",
	" l3", " l4", " l5", " l6", " l7",
}

// Qualifiers that mark a "manager" title as junior enough to keep.
var managerJuniorQualifiers = []string{
	"associate", "junior", "assistant", "apm", "i ", " i,", " 1",
}

// Phrasings for "N years of experience" in free-text descriptions. The
// patterns are deliberately loose; precedence is handled by taking the max
// over all matches.
var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*(?:to|-|–)?\s*\d*\s*years?\s*(?:of)?\s*(?:experience|exp)`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of)?\s*(?:experience|exp|work)`),
	regexp.MustCompile(`(\d+)\+?\s*yrs?\s*(?:of)?\s*(?:experience|exp)`),
	regexp.MustCompile(`(\d+)\+\s*years`),
	regexp.MustCompile(`(\d+)\s*\+\s*years`),
	regexp.MustCompile(`experience[:\s]+(\d+)\+?\s*years?`),
	regexp.MustCompile(`minimum\s*(?:of)?\s*(\d+)\s*years?`),
	regexp.MustCompile(`at\s*least\s*(\d+)\s*years?`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:in|of|working)`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:product|engineering|software|data|program)`),
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:professional|relevant|related)`),
	regexp.MustCompile(`(\d+)-\d+\s*years`),
	regexp.MustCompile(`(\d+)\s*to\s*\d+\s*years`),
}

// maxPlausibleYears filters noise like "over 20 years ago, the company...".
const maxPlausibleYears = 20

// entryLevelMaxYears is the cutoff for "entry-level".
const entryLevelMaxYears = 2

// Experience decides whether a posting is entry-level from its title and
// free-text description.
type Experience struct {
	seniorTokens []string
}

// NewExperience builds a classifier with the default senior indicators plus
// any configured extras.
func NewExperience(extraSenior []string) *Experience {
	tokens := make([]string, 0, len(seniorTitleTokens)+len(extraSenior))
	tokens = append(tokens, seniorTitleTokens...)
	for _, t := range extraSenior {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return &Experience{seniorTokens: tokens}
}

// IsIntern reports whether the title is an internship. Interns are dropped
// outright before classification.
func IsIntern(title string) bool {
	return strings.Contains(strings.ToLower(title), "intern")
}

// Classify returns whether the posting reads as entry-level (<=2 years) and
// the maximum years-of-experience figure found in the description, or nil
// when the description never mentions years. The title check wins over the
// description.
func (e *Experience) Classify(title, description string) (relevant bool, years *int) {
	if e.isSeniorTitle(title) {
		return false, nil
	}

	found, max := extractYears(description)
	if found {
		y := max
		return max <= entryLevelMaxYears, &y
	}

	// No years signal at all. Default-include, except for bare "manager"
	// titles with no junior qualifier: those are almost never entry-level.
	if isUnqualifiedManagerTitle(title) {
		return false, nil
	}
	return true, nil
}

func (e *Experience) isSeniorTitle(title string) bool {
	t := strings.ToLower(title)
	for _, tok := range e.seniorTokens {
		if strings.Contains(t, tok) {
			return true
		}
	}
	return false
}

func isUnqualifiedManagerTitle(title string) bool {
	t := strings.ToLower(title)
	if !strings.Contains(t, "manager") {
		return false
	}
	for _, q := range managerJuniorQualifiers {
		if strings.Contains(t, q) {
			return false
		}
	}
	return true
}

func extractYears(text string) (found bool, max int) {
	if text == "" {
		return false, 0
	}
	lower := strings.ToLower(text)
	for _, re := range yearsPatterns {
		for _, m := range re.FindAllStringSubmatch(lower, -1) {
			y, err := strconv.Atoi(m[1])
			if err != nil || y > maxPlausibleYears {
				continue
			}
			found = true
			if y > max {
				max = y
			}
		}
	}
	return found, max
}
