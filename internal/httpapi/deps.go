package httpapi

import (
	"database/sql"
	"sync/atomic"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	ScrapeStatus *atomic.Value // stores poll.ScrapeStatus

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Scrape entrypoint (inject for testability)
	RunPoll func()
}
