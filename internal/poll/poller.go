package poll

import (
	"context"
	"database/sql"
	"log"
	"sync/atomic"
	"time"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/scheduler"
	"jobscout-engine/internal/store"
)

type ScrapeStatus struct {
	Running   bool   `json:"running"`
	LastRunAt string `json:"lastRunAt,omitempty"`
	LastOkAt  string `json:"lastOkAt,omitempty"`
	LastError string `json:"lastError,omitempty"`
	LastTotal int    `json:"lastTotal"`
	LastNew   int    `json:"lastNew"`
}

// StartPoller scrapes on an interval. Config is re-read every tick so a
// roster edit takes effect without a restart; the interval itself is
// fixed at startup. onNew fires after a merge that found new postings.
func StartPoller(db *sql.DB, cfgVal, scrapeStatus *atomic.Value, hub *events.Hub, onNew func(config.Config, store.MergeResult)) {
	interval := 30 * time.Minute
	if cfgAny := cfgVal.Load(); cfgAny != nil {
		if s := cfgAny.(config.Config).Polling.ScrapeSeconds; s > 0 {
			interval = time.Duration(s) * time.Second
		}
	}

	go scheduler.Every(context.Background(), interval, "poll", func(ctx context.Context) error {
		RunNow(db, cfgVal, scrapeStatus, hub, onNew)
		return nil
	})
}

// RunNow executes one scrape cycle unless one is already in flight.
func RunNow(db *sql.DB, cfgVal, scrapeStatus *atomic.Value, hub *events.Hub, onNew func(config.Config, store.MergeResult)) {
	cfgAny := cfgVal.Load()
	if cfgAny == nil {
		return
	}
	cfg := cfgAny.(config.Config)

	st := loadStatus(scrapeStatus)
	if st.Running {
		return
	}
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	scrapeStatus.Store(st)
	hub.Publish(events.MakeEvent("", events.TypeScrapeStarted, 1, nil))

	res, err := PollOnce(db, cfg)

	st = loadStatus(scrapeStatus)
	st.Running = false
	if err != nil {
		st.LastError = err.Error()
		log.Printf("[poll] error: %v", err)
		scrapeStatus.Store(st)
		hub.Publish(events.MakeEvent("", events.TypeScrapeFailed, 1, map[string]string{"error": err.Error()}))
		return
	}

	st.LastError = ""
	st.LastOkAt = time.Now().Format(time.RFC3339)
	st.LastTotal = res.Total
	st.LastNew = res.Added
	scrapeStatus.Store(st)
	hub.Publish(events.MakeEvent("", events.TypeScrapeFinished, 1, map[string]int{
		"total": res.Total,
		"new":   res.Added,
	}))

	if res.Added > 0 && onNew != nil {
		onNew(cfg, res)
	}
}

func loadStatus(v *atomic.Value) ScrapeStatus {
	if any := v.Load(); any != nil {
		return any.(ScrapeStatus)
	}
	return ScrapeStatus{}
}
