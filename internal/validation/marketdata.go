package validation

import "strings"

// categoryProfile holds curated market figures for a category: approximate
// market size in billions of USD, annual growth percentage, representative
// competitors, and a current trend summary.
type categoryProfile struct {
	MarketSizeB float64
	GrowthPct   float64
	Competitors []string
	Trend       string
}

var categoryProfiles = map[string]categoryProfile{
	"ai-ml": {
		MarketSizeB: 95, GrowthPct: 18,
		Competitors: []string{"Hugging Face", "OpenAI", "DataRobot"},
		Trend:       "Enterprise adoption of applied AI is accelerating across every vertical.",
	},
	"fintech": {
		MarketSizeB: 65, GrowthPct: 15,
		Competitors: []string{"Stripe", "Plaid", "Revolut"},
		Trend:       "Embedded finance and payment infrastructure keep attracting capital.",
	},
	"healthtech": {
		MarketSizeB: 45, GrowthPct: 22,
		Competitors: []string{"Teladoc", "Oscar Health", "Ro"},
		Trend:       "Telehealth and remote monitoring demand remains elevated post-pandemic.",
	},
	"edtech": {
		MarketSizeB: 35, GrowthPct: 16,
		Competitors: []string{"Coursera", "Duolingo", "Khan Academy"},
		Trend:       "Personalized and cohort-based learning models are displacing static courseware.",
	},
	"e-commerce": {
		MarketSizeB: 120, GrowthPct: 12,
		Competitors: []string{"Shopify", "Amazon", "BigCommerce"},
		Trend:       "Social commerce and niche marketplaces continue to take share from generalists.",
	},
	"saas": {
		MarketSizeB: 85, GrowthPct: 14,
		Competitors: []string{"Salesforce", "HubSpot", "Notion"},
		Trend:       "Buyers consolidate tools; vertical SaaS with clear ROI still closes quickly.",
	},
	"mobile-app": {
		MarketSizeB: 55, GrowthPct: 13,
		Competitors: []string{"Meta", "ByteDance", "Snap"},
		Trend:       "Subscription monetization outperforms ads for utility and wellness apps.",
	},
	"web-app": {
		MarketSizeB: 40, GrowthPct: 11,
		Competitors: []string{"Vercel", "Netlify", "Webflow"},
		Trend:       "Browser-first tools with instant onboarding win against installed software.",
	},
	"hardware": {
		MarketSizeB: 30, GrowthPct: 25,
		Competitors: []string{"Raspberry Pi", "Arduino", "Particle"},
		Trend:       "Connected devices and edge compute drive renewed hardware investment.",
	},
	"service": {
		MarketSizeB: 25, GrowthPct: 28,
		Competitors: []string{"Fiverr", "Upwork", "Thumbtack"},
		Trend:       "Productized services with transparent pricing are outgrowing bespoke agencies.",
	},
}

const defaultCategory = "saas"

// normalizeCategory maps free-form category input onto a known profile key.
func normalizeCategory(category string) string {
	key := strings.ToLower(strings.TrimSpace(category))
	key = strings.ReplaceAll(key, " ", "-")
	key = strings.ReplaceAll(key, "_", "-")
	if _, ok := categoryProfiles[key]; ok {
		return key
	}
	return defaultCategory
}

// profileFor returns the market profile for a category, defaulting when the
// category is unknown.
func profileFor(category string) categoryProfile {
	return categoryProfiles[normalizeCategory(category)]
}
