// internal/assistant/fallback.go
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAssistant   = "assistant"
	MessageTypeText = "text"

	fallbackIDPrefix = "fallback-"

	// maxSimilarQueries caps the example list in the unconnected and
	// alternative source replies. Guided replies list everything.
	maxSimilarQueries = 3
)

// Strategy names the branch used to compose a fallback reply.
type Strategy string

const (
	StrategyUnconnectedSource Strategy = "unconnected-source"
	StrategyAlternativeSource Strategy = "alternative-source"
	StrategyGuidedSuggestions Strategy = "guided-suggestions"
)

// Message is an assistant chat bubble. It is not modified after construction.
type Message struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
}

// Fallback is a fallback reply along with how it was chosen.
type Fallback struct {
	Message         Message  `json:"message"`
	Strategy        Strategy `json:"strategy"`
	DetectedSources []string `json:"detectedSources"`
}

// GenerateFallbackResponse builds the assistant reply for input that has no
// canned answer.
func GenerateFallbackResponse(input string, ctx SuggestionContext) Message {
	return ComposeFallback(input, ctx).Message
}

// ComposeFallback detects the sources mentioned in input and picks one of
// three reply strategies, in priority order:
//
//  1. exactly one source detected and it is not connected
//  2. some detected source is not connected and something else is
//  3. guided suggestions for everything else
func ComposeFallback(input string, ctx SuggestionContext) Fallback {
	detected := DetectDataSources(input)
	missing := ctx.missingSources(detected)

	var (
		strategy Strategy
		content  string
	)
	switch {
	case len(detected) == 1 && len(missing) == 1:
		strategy = StrategyUnconnectedSource
		content = buildUnconnectedSourceMessage(missing[0], ctx)
	case len(missing) > 0 && len(ctx.ConnectedSources) > 0:
		strategy = StrategyAlternativeSource
		content = buildAlternativeSourceMessage(missing[0], ctx)
	default:
		strategy = StrategyGuidedSuggestions
		content = buildGuidedSuggestions(ctx)
	}

	return Fallback{
		Message:         newMessage(fallbackIDPrefix, content),
		Strategy:        strategy,
		DetectedSources: detected,
	}
}

func buildUnconnectedSourceMessage(source string, ctx SuggestionContext) string {
	name := GetConnectorName(source)
	parts := []string{
		fmt.Sprintf("%s isn't connected yet. Answering this requires connecting your %s account.", name, name),
	}

	if capabilities, ok := sourceCapabilities[source]; ok {
		parts = append(parts, fmt.Sprintf("Once connected, I can help with %s.", capabilities))
	}

	if len(ctx.ConnectedSources) > 0 {
		if queries := collectSimilarQueries(ctx.ConnectedSources, maxSimilarQueries); len(queries) > 0 {
			parts = append(parts, fmt.Sprintf("In the meantime, here's what I can answer from %s:\n%s",
				joinNames(displayNames(ctx.ConnectedSources)), bulletList(queries)))
		}
	}

	return strings.Join(parts, "\n\n")
}

func buildAlternativeSourceMessage(missing string, ctx SuggestionContext) string {
	parts := []string{
		fmt.Sprintf("I don't have access to %s data yet.", GetConnectorName(missing)),
	}

	if analogies, ok := crossSourceAnalogies[missing]; ok {
		for _, connected := range ctx.ConnectedSources {
			if phrase, ok := analogies[connected]; ok {
				parts = append(parts, fmt.Sprintf("However, I can show you %s using %s.", phrase, GetConnectorName(connected)))
				break
			}
		}
	}

	if queries := collectSimilarQueries(ctx.ConnectedSources, maxSimilarQueries); len(queries) > 0 {
		parts = append(parts, "Here are some questions you can ask right now:\n"+bulletList(queries))
	}

	return strings.Join(parts, "\n\n")
}

func buildGuidedSuggestions(ctx SuggestionContext) string {
	if len(ctx.ConnectedSources) == 0 {
		return "I couldn't find a specific answer for that. To get started, connect a data source " +
			"from the Connectors page and I'll be able to answer questions about your data."
	}

	names := joinNames(displayNames(ctx.ConnectedSources))
	var parts []string
	if queries := collectSimilarQueries(ctx.ConnectedSources, 0); len(queries) > 0 {
		parts = append(parts, fmt.Sprintf("I'm not sure how to answer that yet. Here are some questions I can answer with %s:\n%s",
			names, bulletList(queries)))
	} else {
		parts = append(parts, fmt.Sprintf("I'm not sure how to answer that yet. Try asking about trends, comparisons, or top performers in %s.", names))
	}

	if ctx.HasMultipleSources {
		parts = append(parts, "With multiple sources connected, you can also run reconciliation to unlock "+
			"cross-source insights like end-to-end attribution and customer lifetime value.")
	}

	return strings.Join(parts, "\n\n")
}

// collectSimilarQueries flattens the example questions of sources in order.
// limit <= 0 means no limit.
func collectSimilarQueries(sources []string, limit int) []string {
	var queries []string
	for _, source := range sources {
		for _, q := range similarQueries[source] {
			if limit > 0 && len(queries) == limit {
				return queries
			}
			queries = append(queries, q)
		}
	}
	return queries
}

func displayNames(ids []string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = GetConnectorName(id)
	}
	return names
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

// joinNames renders "A", "A and B" or "A, B, and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// newMessage stamps content with a fresh id. The uuid suffix keeps ids
// distinct for calls within the same millisecond.
func newMessage(prefix, content string) Message {
	now := time.Now()
	return Message{
		ID:        fmt.Sprintf("%s%d-%s", prefix, now.UnixMilli(), uuid.NewString()),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: now,
		Type:      MessageTypeText,
	}
}
