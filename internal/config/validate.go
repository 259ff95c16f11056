package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a cleaned copy plus everything wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Polling.ScrapeSeconds < 60 {
		res.addWarn("polling.scrape_seconds below 60 hammers the boards; raising to 60")
		out.Polling.ScrapeSeconds = 60
	}

	out.Filters.LocationsAllow = trimList(out.Filters.LocationsAllow)
	out.Filters.LocationsBlock = trimList(out.Filters.LocationsBlock)
	out.Classify.Tier1Extra = trimList(out.Classify.Tier1Extra)
	out.Classify.Tier2Extra = trimList(out.Classify.Tier2Extra)
	out.Classify.SeniorExtra = trimList(out.Classify.SeniorExtra)
	out.Email.Senders = trimList(out.Email.Senders)

	checkRoster := func(source string, companies []Company) []Company {
		kept := companies[:0]
		for i, c := range companies {
			c.Slug = strings.TrimSpace(c.Slug)
			c.Name = strings.TrimSpace(c.Name)
			if c.Slug == "" {
				res.addErr("sources.%s.companies[%d].slug is required", source, i)
				continue
			}
			if c.Name == "" {
				c.Name = c.Slug
			}
			kept = append(kept, c)
		}
		return kept
	}
	out.Sources.Greenhouse.Companies = checkRoster("greenhouse", out.Sources.Greenhouse.Companies)
	out.Sources.Lever.Companies = checkRoster("lever", out.Sources.Lever.Companies)
	out.Sources.Ashby.Companies = checkRoster("ashby", out.Sources.Ashby.Companies)

	if out.Email.Enabled {
		if out.Email.IMAPHost == "" || out.Email.Username == "" {
			res.addErr("email.enabled requires imap_host and username")
		}
		if out.Email.Mailbox == "" {
			out.Email.Mailbox = "INBOX"
		}
		if out.Email.LookbackDays <= 0 {
			out.Email.LookbackDays = 1
		}
	}

	if out.Notify.Enabled {
		if out.Notify.SMTPHost == "" || out.Notify.From == "" || out.Notify.To == "" {
			res.addErr("notify.enabled requires smtp_host, from, and to")
		}
		if out.Notify.SMTPPort == 0 {
			out.Notify.SMTPPort = 587
		}
	}

	return out, res
}

func trimList(xs []string) []string {
	seen := map[string]bool{}
	var ys []string
	for _, x := range xs {
		x = strings.TrimSpace(x)
		if x == "" {
			continue
		}
		key := strings.ToLower(x)
		if seen[key] {
			continue
		}
		seen[key] = true
		ys = append(ys, x)
	}
	return ys
}
