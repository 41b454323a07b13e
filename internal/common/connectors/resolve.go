package connectors

import (
	"context"

	"insights-workers/internal/assistant"
)

// Source supplies the stored context for a workspace. *Store satisfies it.
type Source interface {
	Context(ctx context.Context, workspaceID string) (assistant.SuggestionContext, error)
}

// Resolve picks the context for a job: an explicit context wins, then the
// workspace's stored state, then the zero context. A store failure is
// returned together with the zero context so the caller can log it and carry
// on with the most restrictive context.
func Resolve(ctx context.Context, src Source, explicit *assistant.SuggestionContext, workspaceID string) (assistant.SuggestionContext, error) {
	if explicit != nil {
		resolved := *explicit
		if resolved.ConnectedSources == nil {
			resolved.ConnectedSources = []string{}
		}
		return resolved, nil
	}

	zero := assistant.SuggestionContext{ConnectedSources: []string{}}
	if workspaceID == "" || src == nil {
		return zero, nil
	}

	stored, err := src.Context(ctx, workspaceID)
	if err != nil {
		return zero, err
	}
	return stored, nil
}
