package greenhouse

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

const boardBody = `{"jobs":[
  {"id":101,"title":"Software Engineer, New Grad","location":{"name":"San Francisco, CA"},
   "absolute_url":"https://boards.greenhouse.io/acme/jobs/101","content":"Join us. 0-2 years of experience."},
  {"id":102,"title":"Senior Staff Engineer","location":{"name":"Remote - US"},
   "absolute_url":"https://boards.greenhouse.io/acme/jobs/102","content":"10+ years"},
  {"id":103,"title":"Software Engineering Intern","location":{"name":"NYC"},
   "absolute_url":"https://boards.greenhouse.io/acme/jobs/103","content":""},
  {"id":104,"title":"Product Manager","location":{"name":"Austin, TX"},
   "absolute_url":"","content":"&lt;p&gt;Ship things&lt;/p&gt;"}
]}`

func TestFetchParsesBoard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/boards/acme/jobs" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("content") != "true" {
			t.Error("expected content=true")
		}
		w.Write([]byte(boardBody))
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
	if res.Source != "greenhouse" {
		t.Errorf("source = %q", res.Source)
	}
	// Intern dropped; senior posting kept but marked not relevant.
	if len(res.Postings) != 3 {
		t.Fatalf("got %d postings, want 3", len(res.Postings))
	}

	byID := map[string]domain.JobPosting{}
	for _, p := range res.Postings {
		byID[p.SourceJobID] = p
	}
	ng := byID["greenhouse:acme:101"]
	if !ng.Relevant || ng.YearsRequired == nil || *ng.YearsRequired != 2 {
		t.Errorf("new grad posting misclassified: %+v", ng)
	}
	if sr := byID["greenhouse:acme:102"]; sr.Relevant {
		t.Errorf("senior posting should not be relevant")
	}
	pm := byID["greenhouse:acme:104"]
	if pm.URL != "https://boards.greenhouse.io/acme/jobs/104" {
		t.Errorf("missing absolute_url fallback, got %q", pm.URL)
	}
	if pm.RoleCategory != classify.RoleProductManager {
		t.Errorf("role = %q", pm.RoleCategory)
	}
}

func TestFetchAllBoardsFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()
	old := baseURL
	baseURL = srv.URL
	defer func() { baseURL = old }()

	s := New(Config{Companies: []domain.Company{{Slug: "a"}, {Slug: "b"}}}, testClassifiers(), nil)
	if _, err := s.Fetch(context.Background()); err == nil {
		t.Fatal("want error when every board fails")
	}
}

func TestFetchPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/boards/bad/jobs" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		w.Write([]byte(boardBody))
	}))
	defer srv.Close()
	old := baseURL
	baseURL = srv.URL
	defer func() { baseURL = old }()

	s := New(Config{Companies: []domain.Company{
		{Slug: "bad", Name: "Bad"},
		{Slug: "acme", Name: "Acme"},
	}}, testClassifiers(), nil)
	res, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("partial failure should not error: %v", err)
	}
	if len(res.Postings) != 3 {
		t.Errorf("got %d postings from surviving board, want 3", len(res.Postings))
	}
}
