// internal/assistant/catalog.go
package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrCatalogNotFound = errors.New("CATALOG_NOT_FOUND")
	ErrCatalogInvalid  = errors.New("CATALOG_INVALID")
)

const catalogSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "query", "category", "dataSources", "requiredSources", "requiresReconciliation"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "query": {"type": "string", "minLength": 1},
      "category": {"type": "string", "enum": ["single-source", "multi-source", "cross-source"]},
      "dataSources": {"type": "array", "items": {"type": "string"}},
      "requiredSources": {"type": "array", "items": {"type": "string", "minLength": 1}},
      "requiresReconciliation": {"type": "boolean"}
    }
  }
}`

var defaultCatalog = []ChatSuggestion{
	{
		ID:          "weekly-summary",
		Query:       "Summarize this week's key metrics",
		Category:    CategorySingleSource,
		DataSources: []string{},
	},
	{
		ID:          "biggest-changes",
		Query:       "What changed the most since last week?",
		Category:    CategorySingleSource,
		DataSources: []string{},
	},
	{
		ID:              "mrr-trend",
		Query:           "What's our MRR trend over the last 6 months?",
		Category:        CategorySingleSource,
		DataSources:     []string{"Stripe"},
		RequiredSources: []string{SourceStripe},
	},
	{
		ID:              "top-traffic-sources",
		Query:           "What are our top traffic sources?",
		Category:        CategorySingleSource,
		DataSources:     []string{"Google Analytics"},
		RequiredSources: []string{SourceGoogleAnalytics},
	},
	{
		ID:              "pipeline-by-stage",
		Query:           "How many deals are in each pipeline stage?",
		Category:        CategorySingleSource,
		DataSources:     []string{"HubSpot"},
		RequiredSources: []string{SourceHubSpot},
	},
	{
		ID:              "meta-roas",
		Query:           "What's our ROAS by Meta campaign?",
		Category:        CategorySingleSource,
		DataSources:     []string{"Meta Ads"},
		RequiredSources: []string{SourceMetaAds},
	},
	{
		ID:              "spend-vs-revenue",
		Query:           "Compare ad spend with revenue over time",
		Category:        CategoryMultiSource,
		DataSources:     []string{"Meta Ads", "Stripe"},
		RequiredSources: []string{SourceMetaAds, SourceStripe},
	},
	{
		ID:              "traffic-to-leads",
		Query:           "How does website traffic translate into new leads?",
		Category:        CategoryMultiSource,
		DataSources:     []string{"Google Analytics", "HubSpot"},
		RequiredSources: []string{SourceGoogleAnalytics, SourceHubSpot},
	},
	{
		ID:              "paid-channel-comparison",
		Query:           "Compare Meta Ads and Google Ads performance",
		Category:        CategoryMultiSource,
		DataSources:     []string{"Meta Ads", "Google Ads"},
		RequiredSources: []string{SourceMetaAds, SourceGoogleAds},
	},
	{
		ID:                     "ltv-by-channel",
		Query:                  "What's customer lifetime value by acquisition channel?",
		Category:               CategoryCrossSource,
		DataSources:            []string{"HubSpot", "Stripe", "Google Analytics"},
		RequiredSources:        []string{SourceHubSpot, SourceStripe, SourceGoogleAnalytics},
		RequiresReconciliation: true,
	},
	{
		ID:                     "campaigns-to-customers",
		Query:                  "Which campaigns drive the most paying customers?",
		Category:               CategoryCrossSource,
		DataSources:            []string{"Meta Ads", "HubSpot", "Stripe"},
		RequiredSources:        []string{SourceMetaAds, SourceHubSpot, SourceStripe},
		RequiresReconciliation: true,
	},
	{
		ID:                     "deal-to-first-payment",
		Query:                  "How long does it take from closed deal to first payment?",
		Category:               CategoryCrossSource,
		DataSources:            []string{"HubSpot", "Stripe"},
		RequiredSources:        []string{SourceHubSpot, SourceStripe},
		RequiresReconciliation: true,
	},
}

// DefaultCatalog returns a copy of the built-in suggestion catalog.
func DefaultCatalog() []ChatSuggestion {
	out := make([]ChatSuggestion, len(defaultCatalog))
	for i, s := range defaultCatalog {
		s.DataSources = cloneStrings(s.DataSources)
		s.RequiredSources = cloneStrings(s.RequiredSources)
		out[i] = s
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// LoadCatalog reads a JSON suggestion catalog from path and validates it. An
// empty path returns the built-in catalog.
func LoadCatalog(path string) ([]ChatSuggestion, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return ParseCatalog(data)
}

// ParseCatalog validates raw catalog JSON against the catalog schema and the
// semantic rules in ValidateCatalog.
func ParseCatalog(data []byte) ([]ChatSuggestion, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, errs)
	}

	var suggestions []ChatSuggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogInvalid, err)
	}

	if err := ValidateCatalog(suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// ValidateCatalog checks that ids are unique, every required source is a known
// connector, and cross-source suggestions require reconciliation.
func ValidateCatalog(suggestions []ChatSuggestion) error {
	seen := make(map[string]struct{}, len(suggestions))
	for _, s := range suggestions {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate suggestion id %q", ErrCatalogInvalid, s.ID)
		}
		seen[s.ID] = struct{}{}

		for _, source := range s.RequiredSources {
			if !IsKnownSource(source) {
				return fmt.Errorf("%w: suggestion %q requires unknown source %q", ErrCatalogInvalid, s.ID, source)
			}
		}

		if s.Category == CategoryCrossSource && !s.RequiresReconciliation {
			return fmt.Errorf("%w: cross-source suggestion %q must require reconciliation", ErrCatalogInvalid, s.ID)
		}
	}
	return nil
}
