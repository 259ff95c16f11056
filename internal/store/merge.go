package store

import (
	"context"
	"database/sql"
	"time"

	"jobscout-engine/internal/domain"
)

// MergeResult is what one scrape run changed.
type MergeResult struct {
	All     []domain.JobPosting
	New     []domain.JobPosting
	Total   int
	Added   int
	Removed int
}

type seenRow struct {
	firstSeen time.Time
	status    string
}

// MergeActive replaces the active jobs table with the fresh scrape in a
// single transaction. Postings already in seen_jobs keep their original
// first_seen and status; anything else is new. The fresh slice may
// contain the same key from several sources; the first occurrence wins.
func MergeActive(ctx context.Context, db *sql.DB, fresh []domain.JobPosting, now time.Time) (MergeResult, error) {
	var res MergeResult

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer func() { _ = tx.Rollback() }()

	prior := map[string]seenRow{}
	rows, err := tx.QueryContext(ctx, `SELECT job_key, first_seen, status FROM seen_jobs;`)
	if err != nil {
		return res, err
	}
	for rows.Next() {
		var key, fs, status string
		if err := rows.Scan(&key, &fs, &status); err != nil {
			rows.Close()
			return res, err
		}
		t, _ := time.Parse(time.RFC3339, fs)
		prior[key] = seenRow{firstSeen: t, status: status}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return res, err
	}
	rows.Close()

	var before int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&before); err != nil {
		return res, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM jobs;`); err != nil {
		return res, err
	}

	insertJob, err := tx.PrepareContext(ctx, `
INSERT INTO jobs(job_key, title, company, location, url, source_job_id, source,
                 tier, role_category, relevant, years_required, status, first_seen)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?);`)
	if err != nil {
		return res, err
	}
	defer insertJob.Close()

	upsertSeen, err := tx.PrepareContext(ctx, `
INSERT INTO seen_jobs(job_key, title, company, url, tier, status, first_seen, last_seen)
VALUES(?,?,?,?,?,?,?,?)
ON CONFLICT(job_key) DO UPDATE SET
  title = excluded.title,
  company = excluded.company,
  url = excluded.url,
  tier = excluded.tier,
  last_seen = excluded.last_seen;`)
	if err != nil {
		return res, err
	}
	defer upsertSeen.Close()

	inBatch := map[string]bool{}
	nowStr := now.UTC().Format(time.RFC3339)
	for _, p := range fresh {
		if p.Key == "" || inBatch[p.Key] {
			continue
		}
		inBatch[p.Key] = true

		isNew := false
		if old, ok := prior[p.Key]; ok {
			p.FirstSeen = old.firstSeen
			p.Status = domain.Status(old.status)
		} else {
			p.FirstSeen = now.UTC()
			p.Status = domain.StatusNew
			isNew = true
		}
		p.IsNew = now.Sub(p.FirstSeen) < domain.NewWindow

		var years any
		if p.YearsRequired != nil {
			years = *p.YearsRequired
		}
		relevant := 0
		if p.Relevant {
			relevant = 1
		}
		if _, err := insertJob.ExecContext(ctx,
			p.Key, p.Title, p.Company, p.Location, p.URL, p.SourceJobID, string(p.Source),
			p.Tier, p.RoleCategory, relevant, years, string(p.Status),
			p.FirstSeen.UTC().Format(time.RFC3339),
		); err != nil {
			return res, err
		}
		if _, err := upsertSeen.ExecContext(ctx,
			p.Key, p.Title, p.Company, p.URL, p.Tier, string(p.Status),
			p.FirstSeen.UTC().Format(time.RFC3339), nowStr,
		); err != nil {
			return res, err
		}

		res.All = append(res.All, p)
		if isNew {
			res.New = append(res.New, p)
		}
	}

	if err := tx.Commit(); err != nil {
		return res, err
	}

	res.Total = len(res.All)
	res.Added = len(res.New)
	if gone := before - (res.Total - res.Added); gone > 0 {
		res.Removed = gone
	}
	return res, nil
}
