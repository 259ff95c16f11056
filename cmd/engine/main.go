package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"jobscout-engine/internal/config"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/httpapi"
	"jobscout-engine/internal/notify"
	"jobscout-engine/internal/poll"
	"jobscout-engine/internal/scheduler"
	"jobscout-engine/internal/secrets"
	"jobscout-engine/internal/store"
)

func main() {
	// Data dir: env wins (a desktop shell can pass one), else local.
	dataDir := os.Getenv("JOBSCOUT_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir, or two pollers fight over the same db.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock %s: %v", lock.Path(), err)
	}
	if !locked {
		log.Fatalf("another engine already holds %s", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobscout.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	var scrapeStatus atomic.Value
	scrapeStatus.Store(poll.ScrapeStatus{})

	onNew := func(cfg config.Config, res store.MergeResult) {
		if !cfg.Notify.Enabled {
			return
		}
		pw, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
		if err != nil {
			log.Printf("[notify] skipped: %v", err)
			return
		}
		d := notify.BuildDigest(time.Now(), res.New, res.All)
		if err := notify.SendDigest(notify.EmailConfig{
			SMTPHost: cfg.Notify.SMTPHost,
			SMTPPort: cfg.Notify.SMTPPort,
			From:     cfg.Notify.From,
			To:       cfg.Notify.To,
			Password: pw,
		}, d); err != nil {
			log.Printf("[notify] send failed: %v", err)
		}
	}

	poll.StartPoller(db.Pool, &cfgVal, &scrapeStatus, hub, onNew)

	// Historical memory grows forever otherwise. Applied/skipped rows survive.
	go scheduler.Every(context.Background(), 24*time.Hour, "prune", func(ctx context.Context) error {
		n, err := store.PruneSeenJobs(db.Pool, 180*24*time.Hour)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Printf("[prune] removed=%d", n)
		}
		return nil
	})

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db.Pool,
		Hub:          hub,
		CfgVal:       &cfgVal,
		ScrapeStatus: &scrapeStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunPoll: func() {
			poll.RunNow(db.Pool, &cfgVal, &scrapeStatus, hub, onNew)
		},
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(cfg.App.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Recover,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}
