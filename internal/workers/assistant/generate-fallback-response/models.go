// internal/workers/assistant/generate-fallback-response/models.go
package generatefallbackresponse

import "insights-workers/internal/assistant"

type Input struct {
	Question    string                       `json:"question"`
	WorkspaceID string                       `json:"workspaceId,omitempty"`
	Context     *assistant.SuggestionContext `json:"context,omitempty"`
}

type Output struct {
	Message         assistant.Message        `json:"message"`
	DetectedSources []string                 `json:"detectedSources"`
	Strategy        assistant.Strategy       `json:"strategy"`
	Source          assistant.ResponseSource `json:"source"`
}

const inputSchema = `{
  "type": "object",
  "required": ["question"],
  "properties": {
    "question": {"type": "string"},
    "workspaceId": {"type": "string"},
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
