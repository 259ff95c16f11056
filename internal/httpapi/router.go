package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach extra routes.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodPatch: jh.UpdateStatusByPath, // expects /jobs/{key}/status
	}))
	mux.HandleFunc("/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Stats,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		Hub:         d.Hub,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetIMAPPassword,
	}))
	mux.HandleFunc("/api/secrets/smtp", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetSMTPPassword,
	}))

	// Scrape
	sch := ScrapeHandler{
		ScrapeStatus: d.ScrapeStatus,
		RunPoll:      d.RunPoll,
	}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	// Outreach
	oh := OutreachHandler{DB: d.DB, CfgVal: d.CfgVal}
	mux.HandleFunc("/outreach/companies", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: oh.Companies,
	}))
	mux.HandleFunc("/outreach/message", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: oh.Message,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	hh := HealthHandler{DB: d.DB}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
