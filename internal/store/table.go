package store

import "database/sql"

// Migrate brings the schema to the current version. The jobs table is
// the active set, rewritten wholesale on every successful scrape; the
// seen_jobs table is the append-only memory that keeps first_seen and
// status stable across runs and across postings that disappear and
// come back.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  job_key TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL,
  source_job_id TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL,
  tier INTEGER NOT NULL,
  role_category TEXT NOT NULL,
  relevant INTEGER NOT NULL DEFAULT 1,
  years_required INTEGER,
  status TEXT NOT NULL DEFAULT 'new',
  first_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS seen_jobs (
  job_key TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  company TEXT NOT NULL,
  url TEXT NOT NULL,
  tier INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'new',
  first_seen TEXT NOT NULL,
  last_seen TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_tier ON jobs(tier);
`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_first_seen ON jobs(first_seen);
`); err != nil {
		return err
	}
	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_seen_jobs_last_seen ON seen_jobs(last_seen);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
