package notify

import (
	"strings"
	"testing"
	"time"

	"jobscout-engine/internal/domain"
)

func mkJob(title, company string, tier int, cat string, isNew bool) domain.JobPosting {
	return domain.JobPosting{
		Key:          title + company,
		Title:        title,
		Company:      company,
		Location:     "Remote - US",
		URL:          "https://x.test/" + company,
		Source:       domain.SourceGreenhouse,
		Tier:         tier,
		RoleCategory: cat,
		Relevant:     true,
		IsNew:        isNew,
	}
}

func TestBuildDigestGrouping(t *testing.T) {
	all := []domain.JobPosting{
		mkJob("SWE", "Meta", 1, "Software Engineering", true),
		mkJob("PM", "Meta", 1, "Product Manager", false),
		mkJob("SWE", "Plaid", 2, "Software Engineering", false),
		mkJob("Analyst", "Acme", 3, "Data / Analytics", false),
		mkJob("Odd", "Startup", 0, "Other", false), // out-of-range tier folds into 3
	}
	d := BuildDigest(time.Now(), all[:1], all)

	if len(d.Tiers) != 3 {
		t.Fatalf("got %d tier groups, want 3", len(d.Tiers))
	}
	if d.Tiers[0].Tier != 1 || d.Tiers[2].Tier != 3 {
		t.Errorf("tier order: %d, %d, %d", d.Tiers[0].Tier, d.Tiers[1].Tier, d.Tiers[2].Tier)
	}

	// Tier 1 groups follow role ladder order: PM before SWE.
	t1 := d.Tiers[0]
	if len(t1.Groups) != 2 {
		t.Fatalf("tier 1 groups: %d", len(t1.Groups))
	}
	if t1.Groups[0].Category != "Product Manager" || t1.Groups[1].Category != "Software Engineering" {
		t.Errorf("category order: %q, %q", t1.Groups[0].Category, t1.Groups[1].Category)
	}

	// Tier 3 holds both the analyst and the tier-0 oddball.
	t3 := d.Tiers[2]
	n := 0
	for _, g := range t3.Groups {
		n += len(g.Jobs)
	}
	if n != 2 {
		t.Errorf("tier 3 jobs: %d, want 2", n)
	}
}

func TestRenderHTML(t *testing.T) {
	all := []domain.JobPosting{
		mkJob("Software Engineer, New Grad", "Meta", 1, "Software Engineering", true),
	}
	d := BuildDigest(time.Now(), all, all)

	html, err := d.RenderHTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"New Since Last Digest (1)",
		"Software Engineer, New Grad",
		"Tier 1",
		`href="https://x.test/Meta"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	j := mkJob(`<script>alert("x")</script>`, "Acme", 3, "Other", false)
	d := BuildDigest(time.Now(), nil, []domain.JobPosting{j})
	html, err := d.RenderHTML()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("title not escaped")
	}
}

func TestRenderText(t *testing.T) {
	all := []domain.JobPosting{mkJob("SWE", "Plaid", 2, "Software Engineering", true)}
	d := BuildDigest(time.Now(), all, all)
	text := d.RenderText()
	if !strings.Contains(text, "SWE @ Plaid") {
		t.Errorf("text digest missing job line:\n%s", text)
	}
	if !strings.Contains(text, "Tier 2") {
		t.Errorf("text digest missing tier header")
	}
}
