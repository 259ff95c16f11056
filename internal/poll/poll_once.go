package poll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"jobscout-engine/internal/classify"
	"jobscout-engine/internal/config"
	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/ashby"
	email_scrape "jobscout-engine/internal/scrape/email"
	"jobscout-engine/internal/scrape/greenhouse"
	"jobscout-engine/internal/scrape/lever"
	"jobscout-engine/internal/scrape/types"
	"jobscout-engine/internal/scrape/util"
	"jobscout-engine/internal/secrets"
	"jobscout-engine/internal/store"
)

// ErrNoSourcesSucceeded means every enabled source failed outright. The
// active set is left untouched in that case so a transient outage can't
// wipe the board and resurrect everything as "new" on the next run.
var ErrNoSourcesSucceeded = errors.New("poll: no sources succeeded")

// PollOnce runs all enabled sources, filters, and merges into the store.
func PollOnce(db *sql.DB, cfg config.Config) (store.MergeResult, error) {
	return runOnce(db, cfg, buildFetchers(cfg))
}

func buildFetchers(cfg config.Config) []types.Fetcher {
	limiter := util.NewHostLimiter(10, 2)
	cls := scrape.Classifiers{
		Experience: classify.NewExperience(cfg.Classify.SeniorExtra),
		Tiers:      classify.NewTiers(cfg.Classify.Tier1Extra, cfg.Classify.Tier2Extra),
	}

	var fetchers []types.Fetcher
	if cfg.Sources.Greenhouse.Enabled && len(cfg.Sources.Greenhouse.Companies) > 0 {
		fetchers = append(fetchers, greenhouse.New(
			greenhouse.Config{Companies: roster(cfg.Sources.Greenhouse.Companies)}, cls, limiter))
	}
	if cfg.Sources.Lever.Enabled && len(cfg.Sources.Lever.Companies) > 0 {
		fetchers = append(fetchers, lever.New(
			lever.Config{Companies: roster(cfg.Sources.Lever.Companies)}, cls, limiter))
	}
	if cfg.Sources.Ashby.Enabled && len(cfg.Sources.Ashby.Companies) > 0 {
		fetchers = append(fetchers, ashby.New(
			ashby.Config{Companies: roster(cfg.Sources.Ashby.Companies)}, cls, limiter))
	}
	if cfg.Email.Enabled {
		account := secrets.IMAPKeyringAccount(cfg)
		fetchers = append(fetchers, email_scrape.New(email_scrape.FetcherConfig{
			Addr:         fmt.Sprintf("%s:%d", cfg.Email.IMAPHost, cfg.Email.IMAPPort),
			Username:     cfg.Email.Username,
			Mailbox:      cfg.Email.Mailbox,
			LookbackDays: cfg.Email.LookbackDays,
			Senders:      cfg.Email.Senders,
		}, cls, func() (string, error) { return secrets.GetIMAPPassword(account) }))
	}
	return fetchers
}

func roster(in []config.Company) []domain.Company {
	out := make([]domain.Company, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Company{Slug: c.Slug, Name: c.Name})
	}
	return out
}

func runOnce(db *sql.DB, cfg config.Config, fetchers []types.Fetcher) (store.MergeResult, error) {
	if len(fetchers) == 0 {
		return store.MergeResult{}, ErrNoSourcesSucceeded
	}

	parent := context.Background()
	results := make(chan types.ScrapeResult, len(fetchers))
	var succeeded atomic.Int32

	var g errgroup.Group
	for _, f := range fetchers {
		f := f
		g.Go(func() error {
			timeout := 5 * time.Minute
			if f.Name() == "email" {
				timeout = 2 * time.Minute
			}
			fctx, cancel := context.WithTimeout(parent, timeout)
			defer cancel()

			log.Printf("[%s] running...", f.Name())
			res, err := f.Fetch(fctx)
			if err != nil {
				log.Printf("[source:%s] error: %v", f.Name(), err)
				return nil // best-effort: don't cancel siblings
			}
			succeeded.Add(1)
			results <- res
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	if succeeded.Load() == 0 {
		return store.MergeResult{}, ErrNoSourcesSucceeded
	}

	locFilter := scrape.NewLocationFilter(cfg.Filters.LocationsBlock, cfg.Filters.LocationsAllow)

	var fresh []domain.JobPosting
	for res := range results {
		kept := 0
		for _, p := range res.Postings {
			if !p.Relevant {
				continue
			}
			if !locFilter.IsUS(p.Location) {
				continue
			}
			fresh = append(fresh, p)
			kept++
		}
		log.Printf("[poll] source=%s fetched=%d kept=%d", res.Source, len(res.Postings), kept)
	}

	mctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	merged, err := store.MergeActive(mctx, db, fresh, time.Now())
	if err != nil {
		return store.MergeResult{}, fmt.Errorf("merge: %w", err)
	}
	log.Printf("[poll] merged total=%d new=%d removed=%d", merged.Total, merged.Added, merged.Removed)
	return merged, nil
}
