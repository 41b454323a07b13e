// internal/assistant/suggestions.go
package assistant

import "fmt"

// Category groups suggestions by how many sources they draw on.
type Category string

const (
	CategorySingleSource Category = "single-source"
	CategoryMultiSource  Category = "multi-source"
	CategoryCrossSource  Category = "cross-source"
)

// ChatSuggestion is a canned question shown in the suggested questions panel.
type ChatSuggestion struct {
	ID       string   `json:"id"`
	Query    string   `json:"query"`
	Category Category `json:"category"`
	// DataSources are display names for badges only.
	DataSources            []string `json:"dataSources"`
	RequiredSources        []string `json:"requiredSources"`
	RequiresReconciliation bool     `json:"requiresReconciliation"`
}

// SuggestionContext is the caller-supplied connector state. The zero value is
// the most restrictive context: nothing connected, not reconciled.
type SuggestionContext struct {
	ConnectedSources   []string `json:"connectedSources"`
	IsReconciled       bool     `json:"isReconciled"`
	HasMultipleSources bool     `json:"hasMultipleSources"`
}

// IsConnected reports whether source is in ConnectedSources.
func (c SuggestionContext) IsConnected(source string) bool {
	for _, s := range c.ConnectedSources {
		if s == source {
			return true
		}
	}
	return false
}

func (c SuggestionContext) missingSources(required []string) []string {
	var missing []string
	for _, source := range required {
		if !c.IsConnected(source) {
			missing = append(missing, source)
		}
	}
	return missing
}

// SuggestionView pairs a suggestion with its lock state for rendering.
type SuggestionView struct {
	ChatSuggestion
	Locked     bool   `json:"locked"`
	LockReason string `json:"lockReason,omitempty"`
}

// IsSuggestionLocked reports whether s cannot be answered in ctx. A suggestion
// is locked when it needs reconciliation that has not happened, or when any of
// its required sources is not connected. Either condition alone locks it.
func IsSuggestionLocked(s ChatSuggestion, ctx SuggestionContext) bool {
	if s.RequiresReconciliation && !ctx.IsReconciled {
		return true
	}
	return len(ctx.missingSources(s.RequiredSources)) > 0
}

// LockReason returns tooltip text explaining why s is locked, or "" when it is
// unlocked.
func LockReason(s ChatSuggestion, ctx SuggestionContext) string {
	if missing := ctx.missingSources(s.RequiredSources); len(missing) > 0 {
		return fmt.Sprintf("Connect %s to unlock", joinNames(displayNames(missing)))
	}
	if s.RequiresReconciliation && !ctx.IsReconciled {
		return "Complete data reconciliation to unlock cross-source insights"
	}
	return ""
}

// FilterSuggestions narrows the catalog to suggestions relevant to ctx,
// preserving catalog order within each group.
//
// With nothing connected only suggestions without source requirements remain.
// Otherwise a suggestion is kept when it has no requirements or at least one
// required source is connected; unlocked suggestions come first, followed by
// the locked remainder. Locked items are kept so the panel can show them
// disabled. This ranking is a reconstruction of the dashboard's behavior and
// callers should not depend on the relative order of locked items.
func FilterSuggestions(all []ChatSuggestion, ctx SuggestionContext) []ChatSuggestion {
	if len(ctx.ConnectedSources) == 0 {
		out := make([]ChatSuggestion, 0, len(all))
		for _, s := range all {
			if len(s.RequiredSources) == 0 {
				out = append(out, s)
			}
		}
		return out
	}

	unlocked := make([]ChatSuggestion, 0, len(all))
	var locked []ChatSuggestion
	for _, s := range all {
		if !isRelevant(s, ctx) {
			continue
		}
		if IsSuggestionLocked(s, ctx) {
			locked = append(locked, s)
		} else {
			unlocked = append(unlocked, s)
		}
	}
	return append(unlocked, locked...)
}

func isRelevant(s ChatSuggestion, ctx SuggestionContext) bool {
	if len(s.RequiredSources) == 0 {
		return true
	}
	for _, source := range s.RequiredSources {
		if ctx.IsConnected(source) {
			return true
		}
	}
	return false
}

// Annotate computes lock state for each suggestion in order.
func Annotate(suggestions []ChatSuggestion, ctx SuggestionContext) []SuggestionView {
	views := make([]SuggestionView, len(suggestions))
	for i, s := range suggestions {
		views[i] = SuggestionView{
			ChatSuggestion: s,
			Locked:         IsSuggestionLocked(s, ctx),
			LockReason:     LockReason(s, ctx),
		}
	}
	return views
}
