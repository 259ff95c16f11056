package lever

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/types"
	"jobscout-engine/internal/scrape/util"
)

// Overridable for tests.
var baseURL = "https://api.lever.co"

type Config struct {
	Companies []domain.Company
}

type Scraper struct {
	cfg     Config
	cls     scrape.Classifiers
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(cfg Config, cls scrape.Classifiers, limiter *util.HostLimiter) *Scraper {
	return &Scraper{
		cfg:     cfg,
		cls:     cls,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

func (s *Scraper) Name() string { return "lever" }

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	HostedURL  string `json:"hostedUrl"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
	DescriptionPlain string `json:"descriptionPlain"`
	Lists            []struct {
		Text    string `json:"text"`
		Content string `json:"content"`
	} `json:"lists"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	const workers = 8

	companies := s.cfg.Companies
	jobsCh := make(chan []domain.JobPosting, len(companies))
	workCh := make(chan domain.Company)

	var failed int64
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for co := range workCh {
				cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
				jobs, err := s.fetchCompany(cctx, co)
				cancel()

				if err != nil {
					log.Printf("[ats:lever] company=%q slug=%q err=%v", co.Name, co.Slug, err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				if len(jobs) > 0 {
					jobsCh <- jobs
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, co := range companies {
			select {
			case <-ctx.Done():
				return
			case workCh <- co:
			}
		}
	}()

	wg.Wait()
	close(jobsCh)

	if len(companies) > 0 && failed == int64(len(companies)) {
		return types.ScrapeResult{}, fmt.Errorf("lever: all %d boards failed", failed)
	}

	var out []domain.JobPosting
	for batch := range jobsCh {
		out = append(out, batch...)
	}

	log.Printf("[lever] boards=%d failed=%d postings=%d", len(companies), failed, len(out))
	return types.ScrapeResult{Source: "lever", Postings: out}, nil
}

func (s *Scraper) fetchCompany(ctx context.Context, co domain.Company) ([]domain.JobPosting, error) {
	apiURL := fmt.Sprintf("%s/v0/postings/%s?mode=json", baseURL, co.Slug)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "JobScout/1.0 (+local)")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("lever status %d", res.StatusCode)
	}

	var postings []leverPosting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		if p.ID == "" || strings.TrimSpace(p.Text) == "" {
			continue
		}
		u := p.HostedURL
		if u == "" {
			u = fmt.Sprintf("https://jobs.lever.co/%s/%s", co.Slug, p.ID)
		}
		raw := scrape.RawPosting{
			Source:      domain.SourceLever,
			Company:     co.Name,
			Title:       p.Text,
			Location:    p.Categories.Location,
			URL:         u,
			SourceJobID: fmt.Sprintf("lever:%s:%s", co.Slug, p.ID),
			Description: describe(p),
		}
		if built, ok := scrape.BuildPosting(raw, s.cls); ok {
			out = append(out, built)
		}
	}
	return out, nil
}

// Years requirements on Lever usually hide inside the requirement lists,
// not the top-level descriptionPlain, so flatten everything.
func describe(p leverPosting) string {
	var b strings.Builder
	b.WriteString(p.DescriptionPlain)
	for _, l := range p.Lists {
		b.WriteString("\n")
		b.WriteString(l.Text)
		b.WriteString("\n")
		b.WriteString(l.Content)
	}
	return b.String()
}
