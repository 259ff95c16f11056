package poll

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape/types"
	"jobscout-engine/internal/scrape/util"
	"jobscout-engine/internal/store"
)

type fakeFetcher struct {
	name     string
	postings []domain.JobPosting
	err      error
}

func (f *fakeFetcher) Name() string { return f.name }
func (f *fakeFetcher) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	if f.err != nil {
		return types.ScrapeResult{}, f.err
	}
	return types.ScrapeResult{Source: f.name, Postings: f.postings}, nil
}

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "poll.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}
	return db
}

func fakePosting(title, company, loc string, relevant bool) domain.JobPosting {
	url := "https://x.test/" + company + "/" + title
	return domain.JobPosting{
		Key:          util.JobKey(title, company, url),
		Title:        title,
		Company:      company,
		Location:     loc,
		URL:          url,
		Source:       domain.SourceGreenhouse,
		Tier:         3,
		RoleCategory: "Software Engineer",
		Relevant:     relevant,
		Status:       domain.StatusNew,
	}
}

func TestRunOnceFiltersAndMerges(t *testing.T) {
	db := testDB(t)

	fetchers := []types.Fetcher{
		&fakeFetcher{name: "greenhouse", postings: []domain.JobPosting{
			fakePosting("Engineer A", "Acme", "Remote - US", true),
			fakePosting("Engineer B", "Acme", "London, UK", true),
			fakePosting("Senior Engineer", "Acme", "NYC", false),
		}},
		&fakeFetcher{name: "lever", err: errors.New("down")},
	}

	res, err := runOnce(db.Pool, config.Config{}, fetchers)
	if err != nil {
		t.Fatalf("one healthy source should suffice: %v", err)
	}
	if res.Total != 1 || res.Added != 1 {
		t.Fatalf("total=%d added=%d, want 1/1 (UK and senior filtered)", res.Total, res.Added)
	}
	if res.All[0].Title != "Engineer A" {
		t.Errorf("kept %q", res.All[0].Title)
	}
}

func TestRunOnceAllSourcesFailed(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	// Seed an active set, then fail every source.
	seed := []domain.JobPosting{fakePosting("Engineer A", "Acme", "Remote - US", true)}
	if _, err := store.MergeActive(context.Background(), db.Pool, seed, now); err != nil {
		t.Fatal(err)
	}

	fetchers := []types.Fetcher{
		&fakeFetcher{name: "greenhouse", err: errors.New("down")},
		&fakeFetcher{name: "lever", err: errors.New("down")},
	}
	_, err := runOnce(db.Pool, config.Config{}, fetchers)
	if !errors.Is(err, ErrNoSourcesSucceeded) {
		t.Fatalf("err = %v, want ErrNoSourcesSucceeded", err)
	}

	// Active set must be untouched.
	jobs, err := store.ListJobs(context.Background(), db.Pool, store.ListJobsOpts{}, now)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 {
		t.Fatalf("active set wiped on total failure: %d jobs", len(jobs))
	}
}

func TestRunOnceNoFetchers(t *testing.T) {
	db := testDB(t)
	if _, err := runOnce(db.Pool, config.Config{}, nil); !errors.Is(err, ErrNoSourcesSucceeded) {
		t.Fatalf("err = %v", err)
	}
}

func TestBuildFetchers(t *testing.T) {
	var cfg config.Config
	cfg.Sources.Greenhouse.Enabled = true
	cfg.Sources.Greenhouse.Companies = []config.Company{{Slug: "acme", Name: "Acme"}}
	cfg.Sources.Ashby.Enabled = true
	cfg.Sources.Ashby.Companies = []config.Company{{Slug: "ramp", Name: "Ramp"}}
	// Lever enabled but empty roster: no fetcher.
	cfg.Sources.Lever.Enabled = true

	fetchers := buildFetchers(cfg)
	if len(fetchers) != 2 {
		t.Fatalf("got %d fetchers, want 2", len(fetchers))
	}
	names := map[string]bool{}
	for _, f := range fetchers {
		names[f.Name()] = true
	}
	if !names["greenhouse"] || !names["ashby"] {
		t.Errorf("fetchers = %v", names)
	}
}
