package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Company struct {
	Slug string `yaml:"slug" json:"slug"`
	Name string `yaml:"name" json:"name"`
}

type SourceConfig struct {
	Enabled   bool      `yaml:"enabled" json:"enabled"`
	Companies []Company `yaml:"companies" json:"companies"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Polling struct {
		ScrapeSeconds int `yaml:"scrape_seconds" json:"scrape_seconds"`
	} `yaml:"polling" json:"polling"`

	Sources struct {
		Greenhouse SourceConfig `yaml:"greenhouse" json:"greenhouse"`
		Lever      SourceConfig `yaml:"lever" json:"lever"`
		Ashby      SourceConfig `yaml:"ashby" json:"ashby"`
	} `yaml:"sources" json:"sources"`

	// Email alert ingestion is a best-effort supplemental source.
	Email struct {
		Enabled        bool     `yaml:"enabled" json:"enabled"`
		IMAPHost       string   `yaml:"imap_host" json:"imap_host"`
		IMAPPort       int      `yaml:"imap_port" json:"imap_port"`
		Username       string   `yaml:"username" json:"username"`
		Mailbox        string   `yaml:"mailbox" json:"mailbox"`
		LookbackDays   int      `yaml:"lookback_days" json:"lookback_days"`
		Senders        []string `yaml:"senders" json:"senders"`
		KeyringAccount string   `yaml:"keyring_account" json:"keyring_account"`
	} `yaml:"email" json:"email"`

	Filters struct {
		LocationsAllow []string `yaml:"locations_allow" json:"locations_allow"`
		LocationsBlock []string `yaml:"locations_block" json:"locations_block"`
	} `yaml:"filters" json:"filters"`

	// Extensions to the built-in classifier tables.
	Classify struct {
		Tier1Extra  []string `yaml:"tier1_extra" json:"tier1_extra"`
		Tier2Extra  []string `yaml:"tier2_extra" json:"tier2_extra"`
		SeniorExtra []string `yaml:"senior_extra" json:"senior_extra"`
	} `yaml:"classify" json:"classify"`

	// Sender identity for generated networking messages.
	Outreach struct {
		Name      string `yaml:"name" json:"name"`
		School    string `yaml:"school" json:"school"`
		Highlight string `yaml:"highlight" json:"highlight"`
	} `yaml:"outreach" json:"outreach"`

	Notify struct {
		Enabled        bool   `yaml:"enabled" json:"enabled"`
		SMTPHost       string `yaml:"smtp_host" json:"smtp_host"`
		SMTPPort       int    `yaml:"smtp_port" json:"smtp_port"`
		From           string `yaml:"from" json:"from"`
		To             string `yaml:"to" json:"to"`
		KeyringAccount string `yaml:"keyring_account" json:"keyring_account"`
	} `yaml:"notify" json:"notify"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
