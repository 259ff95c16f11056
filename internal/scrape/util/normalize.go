package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// StripQuery drops the query string and fragment from a URL without
// otherwise touching it. Identity hashing wants the raw application URL
// minus tracking params, nothing cleverer.
func StripQuery(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

// JobKey is the identity of a posting across runs: a stable hash of the
// normalized title, normalized company, and query-stripped URL. Every
// posting gets this key regardless of whether its source exposes a native
// ID, so two variants of the same board never fork identities.
func JobKey(title, company, rawURL string) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(title)),
		strings.ToLower(strings.TrimSpace(company)),
		StripQuery(rawURL),
	}
	h := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(h[:])
}
