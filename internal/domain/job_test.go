package domain

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusSeen, StatusApplied, StatusSkipped} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []Status{"", "open", "NEW", "done"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}
