package classify

import "strings"

// Curated tier rosters. Matching is a bidirectional substring scan, which is
// knowingly imprecise for short names ("block" matches inside "blockchain
// startup"); that mirrors how the rosters were curated and is cheap to
// reason about, so it stays.

var tier1Companies = []string{
	// Big tech
	"google", "alphabet", "meta", "facebook", "amazon", "apple", "microsoft",
	"netflix", "nvidia",
	// AI labs
	"anthropic", "openai", "deepmind", "cohere", "mistral", "hugging face",
	"huggingface", "scale ai", "scaleai", "databricks", "xai",
	// Top fintech
	"stripe", "plaid", "paypal", "square", "block", "coinbase", "robinhood",
	"chime", "affirm", "sofi", "brex", "ramp", "ripple", "klarna", "revolut",
	// Other tech giants
	"salesforce", "adobe", "oracle", "cisco", "intel", "qualcomm", "ibm", "tesla",
	// Ride-sharing / gig
	"uber", "lyft", "airbnb", "doordash", "instacart",
	// Social / consumer
	"tiktok", "bytedance", "snap", "snapchat", "pinterest", "spotify", "discord",
	// Finance / banks
	"goldman sachs", "goldman", "jpmorgan", "jp morgan", "morgan stanley",
	"citadel", "two sigma", "jane street", "blackstone", "blackrock", "kkr",
	"evercore", "moelis", "visa", "mastercard", "capital one", "american express",
	"amex", "fidelity", "charles schwab", "citi", "citibank", "bank of america",
	"barclays", "deutsche bank", "ubs",
}

var tier2Companies = []string{
	// Growth fintech
	"marqeta", "toast", "bill.com", "checkout.com", "pagaya", "nova credit",
	"bilt", "mercury", "varo", "current", "acorns", "betterment", "wealthfront",
	"public.com", "fundrise", "figure", "anchorage", "circle", "fireblocks",
	"alchemy", "chainalysis",
	// Enterprise SaaS
	"snowflake", "datadog", "mongodb", "elastic", "twilio", "okta", "crowdstrike",
	"palo alto networks", "cloudflare", "hashicorp", "confluent", "palantir",
	"servicenow", "workday", "splunk", "figma", "notion", "airtable", "asana",
	"monday.com", "canva",
	// AI/ML startups
	"weights & biases", "wandb", "anyscale", "modal", "replicate", "pinecone",
	"weaviate", "inflection", "adept", "runway", "midjourney", "jasper",
	"copy.ai", "character.ai", "perplexity", "you.com", "glean", "harvey", "writer",
	// Consulting
	"mckinsey", "bain", "bcg", "boston consulting", "deloitte", "ey", "ernst young",
	"pwc", "kpmg", "accenture", "capgemini", "oliver wyman", "kearney",
	// Other tech
	"shopify", "atlassian", "zoom", "slack", "docusign", "dropbox", "box",
	"zendesk", "hubspot", "intuit", "autodesk", "unity", "epic games", "roblox",
	"ea", "electronic arts", "activision",
}

const TierOther = 3

// Tiers maps a company display name to its desirability tier (1/2/3).
type Tiers struct {
	tier1 []string
	tier2 []string
}

func NewTiers(tier1Extra, tier2Extra []string) *Tiers {
	return &Tiers{
		tier1: appendLowered(tier1Companies, tier1Extra),
		tier2: appendLowered(tier2Companies, tier2Extra),
	}
}

func appendLowered(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	for _, e := range extra {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Classify returns 1, 2, or 3. Tier is a pure function of the name and is
// recomputed freely on every run.
func (t *Tiers) Classify(name string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return TierOther
	}
	if matchRoster(t.tier1, n) {
		return 1
	}
	if matchRoster(t.tier2, n) {
		return 2
	}
	return TierOther
}

func matchRoster(roster []string, name string) bool {
	for _, co := range roster {
		if strings.Contains(name, co) || strings.Contains(co, name) {
			return true
		}
	}
	return false
}
