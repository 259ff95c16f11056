package email_scrape

import (
	"testing"

	"jobscout-engine/internal/domain"
)

const alertHTML = `
<html><body>
<table><tr>
  <td><a href="https://www.linkedin.com/comm/jobs/view/4012345678?trk=alert"><img src="logo.png"/></a></td>
  <td>
    <a href="https://www.linkedin.com/comm/jobs/view/4012345678?trk=alert">Software Engineer, Early Career</a>
    <p>Stripe · San Francisco, CA</p>
  </td>
</tr></table>
<table><tr>
  <td>
    <a href="https://boards.greenhouse.io/acme/jobs/555123?gh_src=email">Backend Engineer</a>
    <p>Acme · Remote - US</p>
  </td>
</tr></table>
<p><a href="https://example.com/unsubscribe">Unsubscribe</a></p>
</body></html>`

func TestExtractAlertJobs(t *testing.T) {
	jobs, err := ExtractAlertJobs(alertHTML, "LinkedIn")
	if err != nil {
		t.Fatalf("ExtractAlertJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}

	li := jobs[0]
	if li.SourceID != "linkedin:4012345678" {
		t.Errorf("linkedin source id = %q", li.SourceID)
	}
	if li.Title != "Software Engineer, Early Career" {
		t.Errorf("title = %q", li.Title)
	}
	if li.Company != "Stripe" || li.Location != "San Francisco, CA" {
		t.Errorf("card fields: company=%q location=%q", li.Company, li.Location)
	}
	if li.URL != "https://www.linkedin.com/comm/jobs/view/4012345678" {
		t.Errorf("tracking params should be stripped, got %q", li.URL)
	}

	gh := jobs[1]
	if gh.Source != domain.SourceGreenhouse {
		t.Errorf("source = %q", gh.Source)
	}
	if gh.SourceID != "greenhouse:acme:555123" {
		t.Errorf("greenhouse source id = %q", gh.SourceID)
	}
}

func TestExtractAlertJobsMergesAnchors(t *testing.T) {
	// Logo anchor first, titled anchor second; one card comes out.
	jobs, err := ExtractAlertJobs(alertHTML, "LinkedIn")
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]int{}
	for _, j := range jobs {
		seen[j.SourceID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("job %s emitted %d times", id, n)
		}
	}
}

func TestUnwrapRedirect(t *testing.T) {
	cases := []struct{ in, want string }{
		{
			"https://www.google.com/url?q=https://jobs.lever.co/acme/abc-123&sa=D",
			"https://jobs.lever.co/acme/abc-123",
		},
		{
			"https://tracker.example.com/c?url=https%3A%2F%2Fjobs.ashbyhq.com%2Facme%2Fdef-456",
			"https://jobs.ashbyhq.com/acme/def-456",
		},
		{
			"https://boards.greenhouse.io/acme/jobs/1",
			"https://boards.greenhouse.io/acme/jobs/1",
		},
	}
	for _, tc := range cases {
		if got := unwrapRedirect(tc.in); got != tc.want {
			t.Errorf("unwrapRedirect(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatchJobURL(t *testing.T) {
	cases := []struct {
		url    string
		source domain.Source
		id     string
	}{
		{"https://www.linkedin.com/jobs/view/123", domain.SourceOther, "linkedin:123"},
		{"https://jobs.lever.co/acme/abc-1", domain.SourceLever, "lever:acme:abc-1"},
		{"https://jobs.ashbyhq.com/acme/xyz", domain.SourceAshby, "ashby:acme:xyz"},
		{"https://example.com/careers", domain.SourceOther, ""},
	}
	for _, tc := range cases {
		src, id := matchJobURL(tc.url)
		if id != tc.id {
			t.Errorf("matchJobURL(%q) id = %q, want %q", tc.url, id, tc.id)
			continue
		}
		if id != "" && src != tc.source {
			t.Errorf("matchJobURL(%q) source = %q, want %q", tc.url, src, tc.source)
		}
	}
}

func TestSenderAllowed(t *testing.T) {
	senders := []string{"jobalerts-noreply@linkedin.com", "no-reply@ashbyhq.com"}
	if !senderAllowed("LinkedIn Job Alerts <jobalerts-noreply@linkedin.com>", senders) {
		t.Error("listed sender should pass")
	}
	if senderAllowed("spam@example.com", senders) {
		t.Error("unlisted sender should be skipped")
	}
	if !senderAllowed("anyone@example.com", nil) {
		t.Error("empty list allows all")
	}
}

func TestCompanyFromSender(t *testing.T) {
	if got := companyFromSender(`"Greenhouse" <no-reply@greenhouse.io>`); got != "Greenhouse" {
		t.Errorf("friendly name: got %q", got)
	}
	if got := companyFromSender("no-reply@stripe.com"); got != "Stripe" {
		t.Errorf("domain fallback: got %q", got)
	}
}
