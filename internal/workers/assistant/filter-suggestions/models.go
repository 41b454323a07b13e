// internal/workers/assistant/filter-suggestions/models.go
package filtersuggestions

import "insights-workers/internal/assistant"

type Input struct {
	WorkspaceID string                       `json:"workspaceId,omitempty"`
	Context     *assistant.SuggestionContext `json:"context,omitempty"`
	Limit       *int                         `json:"limit,omitempty"`
}

type Output struct {
	Suggestions []assistant.SuggestionView `json:"suggestions"`
	// Total counts relevant suggestions before the limit is applied.
	Total         int `json:"total"`
	UnlockedCount int `json:"unlockedCount"`
}

const inputSchema = `{
  "type": "object",
  "properties": {
    "workspaceId": {"type": "string"},
    "limit": {"type": ["integer", "null"], "minimum": 0},
    "context": {
      "type": ["object", "null"],
      "properties": {
        "connectedSources": {"type": ["array", "null"], "items": {"type": "string"}},
        "isReconciled": {"type": ["boolean", "null"]},
        "hasMultipleSources": {"type": ["boolean", "null"]}
      }
    }
  }
}`
