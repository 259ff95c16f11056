package email_scrape

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/scrape"
	"jobscout-engine/internal/scrape/types"
)

type FetcherConfig struct {
	Addr         string // host:port
	Username     string
	Mailbox      string
	LookbackDays int
	// Senders limits which From addresses are parsed. Empty means all.
	Senders []string
}

// Fetcher turns job-alert emails into postings. It satisfies the same
// interface as the board scrapers so the runner treats it like any
// other source.
type Fetcher struct {
	cfg      FetcherConfig
	cls      scrape.Classifiers
	password func() (string, error)
}

func New(cfg FetcherConfig, cls scrape.Classifiers, password func() (string, error)) *Fetcher {
	return &Fetcher{cfg: cfg, cls: cls, password: password}
}

func (f *Fetcher) Name() string { return "email" }

func (f *Fetcher) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	pw, err := f.password()
	if err != nil {
		return types.ScrapeResult{}, fmt.Errorf("email password: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	c, err := DialAndLogin(ctx, f.cfg.Addr, f.cfg.Username, pw)
	if err != nil {
		return types.ScrapeResult{}, err
	}
	defer LogoutAndClose(c)

	if err := SelectMailbox(c, f.cfg.Mailbox); err != nil {
		return types.ScrapeResult{}, err
	}

	msgs, err := FetchUnseen(ctx, c, f.cfg.LookbackDays, 200)
	if err != nil {
		return types.ScrapeResult{}, err
	}

	var out []domain.JobPosting
	processed := make([]imap.UID, 0, len(msgs))
	for _, m := range msgs {
		if !senderAllowed(m.From, f.cfg.Senders) {
			continue
		}
		htmlBody, _, subj := parseRFC822(m.Raw, m.Subject)
		if htmlBody == "" {
			processed = append(processed, m.UID)
			continue
		}

		alerts, perr := ExtractAlertJobs(htmlBody, companyFromSender(m.From))
		if perr != nil {
			log.Printf("[email] parse uid=%d subject=%q err=%v", m.UID, subj, perr)
			processed = append(processed, m.UID)
			continue
		}
		for _, a := range alerts {
			raw := scrape.RawPosting{
				Source:      a.Source,
				Company:     a.Company,
				Title:       a.Title,
				Location:    a.Location,
				URL:         a.URL,
				SourceJobID: a.SourceID,
			}
			if p, ok := scrape.BuildPosting(raw, f.cls); ok {
				out = append(out, p)
			}
		}
		processed = append(processed, m.UID)
	}

	if len(processed) > 0 {
		if err := MarkSeen(c, processed); err != nil {
			log.Printf("[email] mark seen: %v", err)
		}
	}

	log.Printf("[email] messages=%d parsed=%d postings=%d", len(msgs), len(processed), len(out))
	return types.ScrapeResult{Source: "email", Postings: out}, nil
}

func senderAllowed(from string, senders []string) bool {
	if len(senders) == 0 {
		return true
	}
	lf := strings.ToLower(from)
	for _, s := range senders {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && strings.Contains(lf, s) {
			return true
		}
	}
	return false
}

// companyFromSender is a last resort for cards that never name the
// company: use the sender's friendly name or domain.
func companyFromSender(from string) string {
	from = strings.TrimSpace(from)
	if i := strings.Index(from, "<"); i > 0 {
		if name := strings.Trim(strings.TrimSpace(from[:i]), `"`); name != "" {
			return name
		}
	}
	if at := strings.LastIndex(from, "@"); at >= 0 {
		d := strings.Trim(from[at+1:], "> ")
		if dot := strings.Index(d, "."); dot > 0 {
			d = d[:dot]
		}
		if d != "" {
			return strings.ToUpper(d[:1]) + d[1:]
		}
	}
	return "Unknown"
}
