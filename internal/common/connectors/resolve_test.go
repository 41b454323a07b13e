package connectors

import (
	"context"
	stderrors "errors"
	"testing"

	"insights-workers/internal/assistant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	ctx   assistant.SuggestionContext
	err   error
	calls int
}

func (s *stubSource) Context(_ context.Context, _ string) (assistant.SuggestionContext, error) {
	s.calls++
	return s.ctx, s.err
}

func TestResolve(t *testing.T) {
	stored := assistant.SuggestionContext{
		ConnectedSources:   []string{assistant.SourceStripe, assistant.SourceHubSpot},
		HasMultipleSources: true,
	}
	explicit := &assistant.SuggestionContext{ConnectedSources: []string{assistant.SourceShopify}}

	tests := []struct {
		name        string
		src         *stubSource
		explicit    *assistant.SuggestionContext
		workspaceID string
		expected    assistant.SuggestionContext
		wantErr     bool
		storeCalls  int
	}{
		{
			name:        "explicit context wins over the store",
			src:         &stubSource{ctx: stored},
			explicit:    explicit,
			workspaceID: "ws-1",
			expected:    *explicit,
			storeCalls:  0,
		},
		{
			name:        "store consulted by workspace",
			src:         &stubSource{ctx: stored},
			workspaceID: "ws-1",
			expected:    stored,
			storeCalls:  1,
		},
		{
			name:       "no workspace gives the zero context",
			src:        &stubSource{ctx: stored},
			expected:   assistant.SuggestionContext{ConnectedSources: []string{}},
			storeCalls: 0,
		},
		{
			name:        "store failure degrades to the zero context",
			src:         &stubSource{err: stderrors.New("redis down")},
			workspaceID: "ws-1",
			expected:    assistant.SuggestionContext{ConnectedSources: []string{}},
			wantErr:     true,
			storeCalls:  1,
		},
		{
			name:     "explicit context with null sources",
			src:      &stubSource{},
			explicit: &assistant.SuggestionContext{IsReconciled: true},
			expected: assistant.SuggestionContext{ConnectedSources: []string{}, IsReconciled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(context.Background(), tt.src, tt.explicit, tt.workspaceID)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.storeCalls, tt.src.calls)
		})
	}
}

func TestResolve_NilSource(t *testing.T) {
	got, err := Resolve(context.Background(), nil, nil, "ws-1")
	require.NoError(t, err)
	assert.Empty(t, got.ConnectedSources)
}
