package util

import "testing"

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello   world  ", "hello world"},
		{"a b", "a b"},
		{"one\n two\t three", "one two three"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://boards.greenhouse.io/acme/jobs/1?gh_src=abc", "https://boards.greenhouse.io/acme/jobs/1"},
		{"https://jobs.lever.co/acme/x#apply", "https://jobs.lever.co/acme/x"},
		{"https://example.com/job", "https://example.com/job"},
	}
	for _, tt := range tests {
		if got := StripQuery(tt.in); got != tt.want {
			t.Errorf("StripQuery(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJobKeyStable(t *testing.T) {
	a := JobKey("Product Manager", "Acme", "https://boards.greenhouse.io/acme/jobs/1")
	b := JobKey("  product MANAGER ", " acme", "https://boards.greenhouse.io/acme/jobs/1?gh_src=x")
	if a != b {
		t.Errorf("normalization should collapse to one key: %s != %s", a, b)
	}

	c := JobKey("Product Manager", "Acme", "https://boards.greenhouse.io/acme/jobs/2")
	if a == c {
		t.Error("different URLs must produce different keys")
	}

	d := JobKey("Data Analyst", "Acme", "https://boards.greenhouse.io/acme/jobs/1")
	if a == d {
		t.Error("different titles must produce different keys")
	}
}
