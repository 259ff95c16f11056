package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobscout-engine/internal/domain"
)

type Stats struct {
	Active   int            `json:"active"`
	NewLast  int            `json:"newInWindow"`
	Seen     int            `json:"seenTotal"`
	ByStatus map[string]int `json:"byStatus"`
	ByTier   map[int]int    `json:"byTier"`
}

func GetStats(ctx context.Context, db *sql.DB, now time.Time) (Stats, error) {
	st := Stats{ByStatus: map[string]int{}, ByTier: map[int]int{}}

	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&st.Active); err != nil {
		return st, err
	}
	cutoff := now.Add(-domain.NewWindow).UTC().Format(time.RFC3339)
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM jobs WHERE first_seen >= ?;`, cutoff).Scan(&st.NewLast); err != nil {
		return st, err
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_jobs;`).Scan(&st.Seen); err != nil {
		return st, err
	}

	rows, err := db.QueryContext(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status;`)
	if err != nil {
		return st, err
	}
	for rows.Next() {
		var s string
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			rows.Close()
			return st, err
		}
		st.ByStatus[s] = n
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return st, err
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT tier, COUNT(*) FROM jobs GROUP BY tier;`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var tier, n int
		if err := rows.Scan(&tier, &n); err != nil {
			return st, err
		}
		st.ByTier[tier] = n
	}
	return st, rows.Err()
}

// PruneSeenJobs drops historical rows not seen within keep. Applied and
// skipped rows stay forever so a pruned-then-reposted job cannot come
// back as actionable.
func PruneSeenJobs(db *sql.DB, keep time.Duration) (int64, error) {
	cutoff := time.Now().Add(-keep).UTC().Format(time.RFC3339)
	res, err := db.Exec(`
DELETE FROM seen_jobs
WHERE last_seen < ? AND status NOT IN ('applied', 'skipped');`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune seen jobs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
