package ashby

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/types"
	"jobscout-engine/internal/scrape/util"
)

// Overridable for tests.
var baseURL = "https://api.ashbyhq.com"

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

func (s *Scraper) Name() string { return "ashby" }

type ashbyJob struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Location         string `json:"location"`
	JobURL           string `json:"jobUrl"`
	DescriptionPlain string `json:"descriptionPlain"`
}

type ashbyBoard struct {
	Jobs []ashbyJob `json:"jobs"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	var out []domain.JobPosting
	failed := 0
	for _, co := range s.cfg.Companies {
		jobs, err := s.fetchCompany(ctx, co)
		if err != nil {
			log.Printf("[ats:ashby] company=%q slug=%q err=%v", co.Name, co.Slug, err)
			failed++
			continue
		}
		out = append(out, jobs...)
	}
	if len(s.cfg.Companies) > 0 && failed == len(s.cfg.Companies) {
		return types.ScrapeResult{}, fmt.Errorf("ashby: all %d boards failed", failed)
	}

	log.Printf("[ashby] boards=%d failed=%d postings=%d", len(s.cfg.Companies), failed, len(out))
	return types.ScrapeResult{Source: "ashby", Postings: out}, nil
}

func (s *Scraper) fetchCompany(ctx context.Context, co domain.Company) ([]domain.JobPosting, error) {
	apiURL := fmt.Sprintf("%s/posting-api/job-board/%s", baseURL, co.Slug)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "JobScout/1.0 (+local)")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ashby get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("ashby status %d", res.StatusCode)
	}

	var board ashbyBoard
	if err := json.NewDecoder(res.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("ashby decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(board.Jobs))
	for _, j := range board.Jobs {
		if j.ID == "" || strings.TrimSpace(j.Title) == "" {
			continue
		}
		u := j.JobURL
		if u == "" {
			u = fmt.Sprintf("https://jobs.ashbyhq.com/%s/%s", co.Slug, j.ID)
		}
		raw := scrape.RawPosting{
			Source:      domain.SourceAshby,
			Company:     co.Name,
			Title:       j.Title,
			Location:    j.Location,
			URL:         u,
			SourceJobID: fmt.Sprintf("ashby:%s:%s", co.Slug, j.ID),
			Description: j.DescriptionPlain,
		}
		if p, ok := scrape.BuildPosting(raw, s.cls); ok {
			out = append(out, p)
		}
	}
	return out, nil
}
