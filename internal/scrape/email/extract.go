package email_scrape

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/util"
)

// AlertJob is one job card extracted from an alert email.
type AlertJob struct {
	Source   domain.Source
	Title    string
	Company  string
	Location string
	URL      string
	SourceID string
}

// One pattern per alert sender we understand. The submatch, when
// present, is the job id on that platform.
var jobURLPatterns = []struct {
	source domain.Source
	re     *regexp.Regexp
	prefix string
}{
	{domain.SourceOther, regexp.MustCompile(`linkedin\.com/(?:comm/)?jobs/view/(\d+)`), "linkedin"},
	{domain.SourceOther, regexp.MustCompile(`google\.com/about/careers/applications/jobs/results/(\d+)`), "google"},
	{domain.SourceGreenhouse, regexp.MustCompile(`boards\.greenhouse\.io/([\w-]+)/jobs/(\d+)`), "greenhouse"},
	{domain.SourceGreenhouse, regexp.MustCompile(`job-boards\.greenhouse\.io/([\w-]+)/jobs/(\d+)`), "greenhouse"},
	{domain.SourceLever, regexp.MustCompile(`jobs\.lever\.co/([\w-]+)/([\w-]+)`), "lever"},
	{domain.SourceAshby, regexp.MustCompile(`jobs\.ashbyhq\.com/([\w-]+)/([\w-]+)`), "ashby"},
}

// ExtractAlertJobs walks every anchor in an alert email's HTML body and
// keeps those pointing at a job page we recognize. Multiple anchors for
// the same job (logo, title, apply button) collapse into one card.
func ExtractAlertJobs(htmlBody, fallbackCompany string) ([]AlertJob, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, err
	}

	byID := map[string]*AlertJob{}
	order := []string{}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		jobURL := unwrapRedirect(href)
		source, sourceID := matchJobURL(jobURL)
		if sourceID == "" {
			return
		}

		j, ok := byID[sourceID]
		if !ok {
			j = &AlertJob{
				Source:   source,
				URL:      util.StripQuery(jobURL),
				SourceID: sourceID,
				Company:  fallbackCompany,
			}
			byID[sourceID] = j
			order = append(order, sourceID)
		}

		if t := util.CleanText(a.Text()); betterTitle(t, j.Title) {
			j.Title = t
		}

		// Company and location usually sit near the anchor as
		// "Company · Location" in a sibling paragraph.
		card := a.Closest("table")
		if card.Length() == 0 {
			card = a.Closest("tr")
		}
		if card.Length() == 0 {
			card = a.Parent()
		}
		card.Find("p,td,span").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			t := util.CleanText(el.Text())
			if t == "" || !strings.Contains(t, " · ") {
				return true
			}
			// A cell's text aggregates its children, title included.
			// Keep walking until the innermost element carrying the
			// separator; document order reaches it right after.
			inner := false
			el.Children().Each(func(_ int, ch *goquery.Selection) {
				if strings.Contains(util.CleanText(ch.Text()), " · ") {
					inner = true
				}
			})
			if inner {
				return true
			}
			parts := strings.SplitN(t, " · ", 2)
			if j.Location == "" {
				j.Company = strings.TrimSpace(parts[0])
				j.Location = strings.TrimSpace(parts[1])
			}
			return false
		})
	})

	out := make([]AlertJob, 0, len(byID))
	for _, id := range order {
		j := byID[id]
		if j.Title == "" || j.URL == "" {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func matchJobURL(u string) (domain.Source, string) {
	lu := strings.ToLower(u)
	for _, p := range jobURLPatterns {
		m := p.re.FindStringSubmatch(lu)
		if m == nil {
			continue
		}
		return p.source, p.prefix + ":" + strings.Join(m[1:], ":")
	}
	return domain.SourceOther, ""
}

// unwrapRedirect follows tracking wrappers one level deep: ?url= style
// wrappers and google /url?q= redirects.
func unwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if raw := u.Query().Get("url"); raw != "" {
		if uu, err := url.Parse(raw); err == nil && uu.Host != "" {
			return uu.String()
		}
	}
	if strings.Contains(strings.ToLower(u.Host), "google.") && strings.HasPrefix(u.Path, "/url") {
		if q := u.Query().Get("q"); q != "" {
			if uu, err := url.Parse(q); err == nil && uu.Host != "" {
				return uu.String()
			}
		}
	}
	return href
}

func betterTitle(candidate, current string) bool {
	c := strings.TrimSpace(candidate)
	if c == "" || len(c) < 5 {
		return false
	}
	low := strings.ToLower(c)
	for _, junk := range []string{"apply", "view job", "see more", "unsubscribe"} {
		if low == junk {
			return false
		}
	}
	letters := 0
	for _, r := range c {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	if letters < 5 {
		return false
	}
	return len(c) > len(strings.TrimSpace(current))
}
