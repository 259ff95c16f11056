package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
app:
  port: 38472
  data_dir: "."
polling:
  scrape_seconds: 3600
sources:
  greenhouse:
    enabled: true
    companies:
      - slug: anthropic
        name: Anthropic
      - slug: stripe
        name: Stripe
  lever:
    enabled: true
    companies:
      - slug: duolingo
        name: Duolingo
  ashby:
    enabled: false
    companies: []
filters:
  locations_allow: []
  locations_block: []
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTemp(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != 38472 {
		t.Errorf("port = %d, want 38472", cfg.App.Port)
	}
	if len(cfg.Sources.Greenhouse.Companies) != 2 {
		t.Fatalf("greenhouse companies = %d, want 2", len(cfg.Sources.Greenhouse.Companies))
	}
	if cfg.Sources.Greenhouse.Companies[0].Slug != "anthropic" {
		t.Errorf("slug = %q", cfg.Sources.Greenhouse.Companies[0].Slug)
	}
	if cfg.Sources.Ashby.Enabled {
		t.Error("ashby should be disabled")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	var cfg Config
	cfg.App.Port = 38472
	cfg.Polling.ScrapeSeconds = 10
	cfg.Sources.Greenhouse.Companies = []Company{
		{Slug: " acme ", Name: ""},
		{Slug: "", Name: "Missing Slug"},
	}
	cfg.Filters.LocationsBlock = []string{" UK ", "uk", ""}

	out, vr := NormalizeAndValidate(cfg)
	if vr.OK() {
		t.Fatal("expected an error for the empty slug")
	}
	if out.Polling.ScrapeSeconds != 60 {
		t.Errorf("scrape_seconds = %d, want clamped 60", out.Polling.ScrapeSeconds)
	}
	if len(out.Sources.Greenhouse.Companies) != 1 {
		t.Fatalf("companies = %d, want 1 after dropping empty slug", len(out.Sources.Greenhouse.Companies))
	}
	if got := out.Sources.Greenhouse.Companies[0]; got.Slug != "acme" || got.Name != "acme" {
		t.Errorf("company = %+v, want slug/name acme", got)
	}
	if len(out.Filters.LocationsBlock) != 1 {
		t.Errorf("blocklist = %v, want deduped single entry", out.Filters.LocationsBlock)
	}
}

func TestValidatePortRange(t *testing.T) {
	var cfg Config
	cfg.App.Port = 0
	if _, vr := NormalizeAndValidate(cfg); vr.OK() {
		t.Error("port 0 must fail validation")
	}
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	cfg.App.Port = 40000

	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.App.Port != 40000 {
		t.Errorf("port after save = %d, want 40000", again.App.Port)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Errorf("expected .bak backup: %v", err)
	}
}
