package lever

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobscout-engine/internal/classify"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape"
)

func testClassifiers() scrape.Classifiers {
	return scrape.Classifiers{
		Experience: classify.NewExperience(nil),
		Tiers:      classify.NewTiers(nil, nil),
	}
}

const postingsBody = `[
  {"id":"abc-1","text":"Backend Engineer","hostedUrl":"https://jobs.lever.co/acme/abc-1",
   "categories":{"location":"Remote - US"},
   "descriptionPlain":"We build things.",
   "lists":[{"text":"Requirements","content":"2+ years of experience with Go"}]},
  {"id":"abc-2","text":"Data Science Intern","hostedUrl":"https://jobs.lever.co/acme/abc-2",
   "categories":{"location":"NYC"},"descriptionPlain":""},
  {"id":"abc-3","text":"Engineering Manager","hostedUrl":"",
   "categories":{"location":"Austin, TX"},"descriptionPlain":"Lead a team."}
]`

func TestFetchParsesPostings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0/postings/acme" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(postingsBody))
	}))
	defer srv.Close()
	old := baseURL
	baseURL = srv.URL
	defer func() { baseURL = old }()

	s := New(Config{Companies: []domain.Company{{Slug: "acme", Name: "Acme"}}}, testClassifiers(), nil)
	res, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Postings) != 2 {
		t.Fatalf("got %d postings, want 2 (intern dropped)", len(res.Postings))
	}

	byID := map[string]domain.JobPosting{}
	for _, p := range res.Postings {
		byID[p.SourceJobID] = p
	}
	be := byID["lever:acme:abc-1"]
	if !be.Relevant || be.YearsRequired == nil || *be.YearsRequired != 2 {
		t.Errorf("years from requirement list not picked up: %+v", be)
	}
	em := byID["lever:acme:abc-3"]
	if em.Relevant {
		t.Error("bare manager title without years should not be relevant")
	}
	if em.URL != "https://jobs.lever.co/acme/abc-3" {
		t.Errorf("hostedUrl fallback, got %q", em.URL)
	}
}

func TestFetchAllBoardsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	old := baseURL
	baseURL = srv.URL
	defer func() { baseURL = old }()

	s := New(Config{Companies: []domain.Company{{Slug: "a"}, {Slug: "b"}, {Slug: "c"}}}, testClassifiers(), nil)
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("want error when every board fails")
	}
}
