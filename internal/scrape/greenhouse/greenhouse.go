package greenhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
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
var baseURL = "https://boards-api.greenhouse.io"

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

func (s *Scraper) Name() string { return "greenhouse" }

type ghJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	AbsoluteURL string `json:"absolute_url"`
	Content     string `json:"content"`
}

type ghBoard struct {
	Jobs []ghJob `json:"jobs"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	var out []domain.JobPosting
	failed := 0
	for _, co := range s.cfg.Companies {
		jobs, err := s.fetchCompany(ctx, co)
		if err != nil {
			log.Printf("[ats:greenhouse] company=%q slug=%q err=%v", co.Name, co.Slug, err)
			failed++
			continue
		}
		out = append(out, jobs...)
	}
	if len(s.cfg.Companies) > 0 && failed == len(s.cfg.Companies) {
		return types.ScrapeResult{}, fmt.Errorf("greenhouse: all %d boards failed", failed)
	}

	log.Printf("[greenhouse] boards=%d failed=%d postings=%d", len(s.cfg.Companies), failed, len(out))
	return types.ScrapeResult{Source: "greenhouse", Postings: out}, nil
}

func (s *Scraper) fetchCompany(ctx context.Context, co domain.Company) ([]domain.JobPosting, error) {
	apiURL := fmt.Sprintf("%s/v1/boards/%s/jobs?content=true", baseURL, co.Slug)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "JobScout/1.0 (+local)")

	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("greenhouse status %d", res.StatusCode)
	}

	var board ghBoard
	if err := json.NewDecoder(res.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(board.Jobs))
	for _, j := range board.Jobs {
		if j.ID == 0 || strings.TrimSpace(j.Title) == "" {
			continue
		}
		u := j.AbsoluteURL
		if u == "" {
			u = fmt.Sprintf("https://boards.greenhouse.io/%s/jobs/%d", co.Slug, j.ID)
		}
		raw := scrape.RawPosting{
			Source:      domain.SourceGreenhouse,
			Company:     co.Name,
			Title:       j.Title,
			Location:    j.Location.Name,
			URL:         u,
			SourceJobID: fmt.Sprintf("greenhouse:%s:%d", co.Slug, j.ID),
			// Content arrives HTML-escaped from the boards API.
			Description: html.UnescapeString(j.Content),
		}
		if p, ok := scrape.BuildPosting(raw, s.cls); ok {
			out = append(out, p)
		}
	}
	return out, nil
}
