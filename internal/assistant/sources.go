// internal/assistant/sources.go
package assistant

// Connector identifiers. These are the stable ids the connector store and the
// suggestion catalog refer to.
const (
	SourceStripe          = "stripe"
	SourceHubSpot         = "hubspot"
	SourceSalesforce      = "salesforce"
	SourceGoogleAnalytics = "google-analytics"
	SourceMetaAds         = "meta-ads"
	SourceGoogleAds       = "google-ads"
	SourceLinkedInAds     = "linkedin-ads"
	SourceShopify         = "shopify"
	SourceMailchimp       = "mailchimp"
)

type sourceKeywords struct {
	source   string
	keywords []string
}

// dataSourceKeywords is scanned in declaration order, so detection results
// always follow this order regardless of where the keywords appear in a query.
// Keywords are lowercase substrings, so each one must be specific enough not
// to occur inside unrelated words ("meta" in "metadata", "deals" in "ideals").
var dataSourceKeywords = []sourceKeywords{
	{SourceStripe, []string{"stripe", "mrr", "subscription", "churn", "billing", "invoice"}},
	{SourceHubSpot, []string{"hubspot", "open deals", "closed deals", "won deals", "deal stage", "deal velocity", "pipeline", "lifecycle stage", "contacts"}},
	{SourceSalesforce, []string{"salesforce", "sfdc", "opportunit"}},
	{SourceGoogleAnalytics, []string{"google analytics", "ga4", "sessions", "pageview", "page views", "bounce rate", "traffic"}},
	{SourceMetaAds, []string{"meta ad", "meta campaign", "facebook", "instagram"}},
	{SourceGoogleAds, []string{"google ads", "adwords", "search ads", "ppc"}},
	{SourceLinkedInAds, []string{"linkedin"}},
	{SourceShopify, []string{"shopify", "store orders", "online orders", "order volume", "abandoned cart", "cart abandonment", "aov"}},
	{SourceMailchimp, []string{"mailchimp", "email campaign", "open rate", "newsletter"}},
}

var connectorNames = map[string]string{
	SourceStripe:          "Stripe",
	SourceHubSpot:         "HubSpot",
	SourceSalesforce:      "Salesforce",
	SourceGoogleAnalytics: "Google Analytics",
	SourceMetaAds:         "Meta Ads",
	SourceGoogleAds:       "Google Ads",
	SourceLinkedInAds:     "LinkedIn Ads",
	SourceShopify:         "Shopify",
	SourceMailchimp:       "Mailchimp",
}

// sourceCapabilities completes the sentence "Once connected, I can help with ...".
// Sources without an entry skip that sentence.
var sourceCapabilities = map[string]string{
	SourceStripe:          "MRR trends, revenue forecasting, churn analysis, customer cohorts, and subscription metrics",
	SourceHubSpot:         "pipeline health, deal velocity, lead conversion, and marketing attribution",
	SourceSalesforce:      "opportunity tracking, sales forecasting, win rates, and rep performance",
	SourceGoogleAnalytics: "traffic sources, user behavior, conversion funnels, and landing page performance",
	SourceMetaAds:         "campaign performance, ROAS, audience insights, and creative effectiveness",
	SourceGoogleAds:       "keyword performance, cost per click, conversion tracking, and budget pacing",
	SourceShopify:         "order trends, average order value, product performance, and repeat purchase rates",
	SourceMailchimp:       "open rates, click-through rates, list growth, and campaign engagement",
}

// similarQueries lists example questions answerable from a single connected source.
var similarQueries = map[string][]string{
	SourceStripe: {
		"What's our MRR trend over the last 6 months?",
		"Which plans have the highest churn rate?",
		"Show revenue by customer cohort",
	},
	SourceHubSpot: {
		"How many deals are in each pipeline stage?",
		"What's our lead-to-customer conversion rate?",
		"Which campaigns generated the most new contacts?",
	},
	SourceSalesforce: {
		"Show open opportunities by stage",
		"What's our average sales cycle length?",
		"Which reps closed the most revenue this quarter?",
	},
	SourceGoogleAnalytics: {
		"What are our top traffic sources?",
		"Show sessions and bounce rate by landing page",
		"How has organic traffic changed this month?",
	},
	SourceMetaAds: {
		"What's our ROAS by Meta campaign?",
		"Which ad sets have the lowest cost per acquisition?",
		"Show Meta Ads spend over time",
	},
	SourceGoogleAds: {
		"Which keywords drive the most conversions?",
		"Show cost per click by campaign",
		"What's our Google Ads ROAS this month?",
	},
	SourceLinkedInAds: {
		"Which LinkedIn campaigns generate the most leads?",
		"Show LinkedIn Ads cost per lead by audience",
	},
	SourceShopify: {
		"What's our average order value this month?",
		"Which products sell best?",
		"Show repeat purchase rate by month",
	},
	SourceMailchimp: {
		"Which email campaigns had the highest open rate?",
		"Show click rate trend for newsletters",
		"How fast is our audience list growing?",
	},
}

// crossSourceAnalogies maps a missing source to the connected sources that can
// answer a comparable question, keyed missing -> connected -> phrase.
var crossSourceAnalogies = map[string]map[string]string{
	SourceMetaAds: {
		SourceGoogleAds:       "paid campaign performance and ROAS",
		SourceLinkedInAds:     "paid social campaign performance",
		SourceGoogleAnalytics: "traffic and conversions from paid social referrals",
	},
	SourceGoogleAds: {
		SourceMetaAds:         "paid campaign performance and ROAS",
		SourceGoogleAnalytics: "paid search traffic and conversions",
	},
	SourceLinkedInAds: {
		SourceMetaAds: "paid social campaign performance",
		SourceHubSpot: "lead sources and campaign attribution",
	},
	SourceSalesforce: {
		SourceHubSpot: "pipeline stages and deal velocity",
	},
	SourceHubSpot: {
		SourceSalesforce: "pipeline stages and opportunity trends",
	},
	SourceShopify: {
		SourceStripe: "revenue and customer purchase trends",
	},
	SourceStripe: {
		SourceShopify: "order revenue and repeat purchase trends",
		SourceHubSpot: "closed-won deal revenue",
	},
	SourceMailchimp: {
		SourceHubSpot: "email engagement and contact lifecycle",
	},
}

// GetConnectorName returns the display name for a source id, or the id itself
// when the source is unknown.
func GetConnectorName(id string) string {
	if name, ok := connectorNames[id]; ok {
		return name
	}
	return id
}

// IsKnownSource reports whether id is in the connector directory.
func IsKnownSource(id string) bool {
	_, ok := connectorNames[id]
	return ok
}

// KnownSources returns every connector id in detection order.
func KnownSources() []string {
	out := make([]string, 0, len(dataSourceKeywords))
	for _, entry := range dataSourceKeywords {
		out = append(out, entry.source)
	}
	return out
}
