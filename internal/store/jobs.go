package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobscout-engine/internal/domain"
)

var ErrNotFound = errors.New("store: job not found")

type ListJobsOpts struct {
	Tier     int    // 0 means all tiers
	Category string // exact role category
	Company  string // case-insensitive substring
	Search   string // case-insensitive substring over title+company
	NewOnly  bool
	// RelevantOnly drops postings the experience filter rejected.
	// The API defaults this on; the digest always sets it.
	RelevantOnly bool
	Limit        int
}

const jobCols = `job_key, title, company, location, url, source_job_id, source,
tier, role_category, relevant, years_required, status, first_seen`

// ListJobs reads the active set. IsNew is recomputed against now on
// every read so a posting ages out of "new" without a write.
func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts, now time.Time) ([]domain.JobPosting, error) {
	var conds []string
	var args []any

	if opts.Tier > 0 {
		conds = append(conds, "tier = ?")
		args = append(args, opts.Tier)
	}
	if opts.Category != "" {
		conds = append(conds, "role_category = ?")
		args = append(args, opts.Category)
	}
	if opts.Company != "" {
		conds = append(conds, "instr(lower(company), lower(?)) > 0")
		args = append(args, opts.Company)
	}
	if opts.Search != "" {
		conds = append(conds, "(instr(lower(title), lower(?)) > 0 OR instr(lower(company), lower(?)) > 0)")
		args = append(args, opts.Search, opts.Search)
	}
	if opts.NewOnly {
		conds = append(conds, "first_seen >= ?")
		args = append(args, now.Add(-domain.NewWindow).UTC().Format(time.RFC3339))
	}
	if opts.RelevantOnly {
		conds = append(conds, "relevant = 1")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	limit := opts.Limit
	if limit <= 0 || limit > 2000 {
		limit = 1000
	}

	query := fmt.Sprintf(`
SELECT %s FROM jobs
%s
ORDER BY tier ASC, first_seen DESC, company ASC, title ASC
LIMIT ?;`, jobCols, where)
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.JobPosting
	for rows.Next() {
		p, err := scanJob(rows, now)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func GetJob(ctx context.Context, db *sql.DB, key string, now time.Time) (domain.JobPosting, error) {
	row := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM jobs WHERE job_key = ?;`, jobCols), key)
	p, err := scanJob(row, now)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.JobPosting{}, ErrNotFound
	}
	return p, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner, now time.Time) (domain.JobPosting, error) {
	var p domain.JobPosting
	var source, status, firstSeen string
	var relevant int
	var years sql.NullInt64
	if err := s.Scan(
		&p.Key, &p.Title, &p.Company, &p.Location, &p.URL, &p.SourceJobID, &source,
		&p.Tier, &p.RoleCategory, &relevant, &years, &status, &firstSeen,
	); err != nil {
		return p, err
	}
	p.Source = domain.Source(source)
	p.Status = domain.Status(status)
	p.Relevant = relevant == 1
	if years.Valid {
		y := int(years.Int64)
		p.YearsRequired = &y
	}
	p.FirstSeen, _ = time.Parse(time.RFC3339, firstSeen)
	p.IsNew = now.Sub(p.FirstSeen) < domain.NewWindow
	return p, nil
}

// UpdateStatus writes the user's verdict to both tables so it survives
// the posting leaving and re-entering the active set.
func UpdateStatus(ctx context.Context, db *sql.DB, key string, status domain.Status) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("store: invalid status %q", status)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `UPDATE jobs SET status = ? WHERE job_key = ?;`, string(status), key)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()

	res2, err := tx.ExecContext(ctx, `UPDATE seen_jobs SET status = ? WHERE job_key = ?;`, string(status), key)
	if err != nil {
		return err
	}
	n2, _ := res2.RowsAffected()

	if n == 0 && n2 == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
