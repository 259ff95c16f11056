package classify

import "testing"

func TestClassifyCompanyTier(t *testing.T) {
	tiers := NewTiers(nil, nil)

	tests := []struct {
		name string
		want int
	}{
		{"Meta", 1},
		{"meta", 1},
		{"  Stripe  ", 1},
		{"Goldman Sachs", 1},
		{"Block (Square)", 1},
		{"Datadog", 2},
		{"McKinsey & Company", 2},
		{"Notion", 2},
		{"Random Startup LLC", 3},
		{"", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tiers.Classify(tt.name); got != tt.want {
				t.Errorf("Classify(%q) = %d, want %d", tt.name, got, tt.want)
			}
		})
	}
}

func TestClassifyCompanyBidirectional(t *testing.T) {
	tiers := NewTiers(nil, nil)

	// Roster entry contained in the name.
	if got := tiers.Classify("Anthropic PBC"); got != 1 {
		t.Errorf("roster-in-name: got %d, want 1", got)
	}
	// Name contained in the roster entry.
	if got := tiers.Classify("goldman"); got != 1 {
		t.Errorf("name-in-roster: got %d, want 1", got)
	}
	// Known imprecision: short roster names match inside longer ones.
	if got := tiers.Classify("Blockchain Startup"); got != 1 {
		t.Errorf("substring imprecision changed: got %d, want 1", got)
	}
}

func TestClassifyCompanyExtras(t *testing.T) {
	tiers := NewTiers([]string{"Initech"}, []string{"Hooli"})
	if got := tiers.Classify("Initech"); got != 1 {
		t.Errorf("tier1 extra: got %d, want 1", got)
	}
	if got := tiers.Classify("Hooli Inc"); got != 2 {
		t.Errorf("tier2 extra: got %d, want 2", got)
	}
}
