package connectors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"insights-workers/internal/assistant"
	"insights-workers/internal/common/errors"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "assistant:connectors"

func newMiniredisStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, testPrefix, ttl)
	store.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return store, mr
}

// ==========================
// Reads
// ==========================

func TestStore_Context_MissingKeyIsZeroContext(t *testing.T) {
	store, _ := newMiniredisStore(t, 0)

	ctx, err := store.Context(context.Background(), "ws-new")
	require.NoError(t, err)
	assert.Empty(t, ctx.ConnectedSources)
	assert.NotNil(t, ctx.ConnectedSources)
	assert.False(t, ctx.IsReconciled)
	assert.False(t, ctx.HasMultipleSources)
}

func TestStore_Context_ExactCommands(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, testPrefix, 0)

	stored, _ := json.Marshal(State{
		ConnectedSources: []string{assistant.SourceHubSpot, assistant.SourceStripe},
		IsReconciled:     true,
	})
	mock.ExpectGet("assistant:connectors:ws-1").SetVal(string(stored))

	got, err := store.Context(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Equal(t, assistant.SuggestionContext{
		ConnectedSources:   []string{assistant.SourceHubSpot, assistant.SourceStripe},
		IsReconciled:       true,
		HasMultipleSources: true,
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Context_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(mock redismock.ClientMock)
		code  errors.ErrorCode
	}{
		{
			name: "redis unavailable",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet("assistant:connectors:ws-1").SetErr(stderrors.New("dial tcp: connection refused"))
			},
			code: errors.ErrCodeConnectorStateUnavailable,
		},
		{
			name: "corrupt document",
			setup: func(mock redismock.ClientMock) {
				mock.ExpectGet("assistant:connectors:ws-1").SetVal("{not json")
			},
			code: errors.ErrCodeConnectorStateUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := redismock.NewClientMock()
			tt.setup(mock)

			_, err := NewStore(db, testPrefix, 0).Context(context.Background(), "ws-1")
			require.Error(t, err)

			var stdErr *errors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.code, stdErr.Code)
			assert.True(t, stdErr.Retryable)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_Context_RequiresWorkspace(t *testing.T) {
	db, mock := redismock.NewClientMock()

	_, err := NewStore(db, testPrefix, 0).Context(context.Background(), "")

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Writes
// ==========================

func TestStore_ConnectDisconnect(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	bg := context.Background()

	state, err := store.Connect(bg, "ws-1", assistant.SourceStripe)
	require.NoError(t, err)
	assert.Equal(t, []string{assistant.SourceStripe}, state.ConnectedSources)

	_, err = store.Connect(bg, "ws-1", assistant.SourceHubSpot)
	require.NoError(t, err)

	state, err = store.Connect(bg, "ws-1", assistant.SourceStripe)
	require.NoError(t, err)
	assert.Equal(t, []string{assistant.SourceHubSpot, assistant.SourceStripe}, state.ConnectedSources)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), state.UpdatedAt)

	raw, err := mr.Get("assistant:connectors:ws-1")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"connectedSources":["hubspot","stripe"],"isReconciled":false,"updatedAt":"2024-05-01T12:00:00Z"}`, raw)

	state, err = store.Disconnect(bg, "ws-1", assistant.SourceHubSpot)
	require.NoError(t, err)
	assert.Equal(t, []string{assistant.SourceStripe}, state.ConnectedSources)

	sctx, err := store.Context(bg, "ws-1")
	require.NoError(t, err)
	assert.Equal(t, []string{assistant.SourceStripe}, sctx.ConnectedSources)
	assert.False(t, sctx.HasMultipleSources)
}

func TestStore_Connect_UnknownSource(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)

	_, err := store.Connect(context.Background(), "ws-1", "oracle")
	assert.ErrorIs(t, err, ErrUnknownSource)
	assert.False(t, mr.Exists("assistant:connectors:ws-1"))
}

func TestStore_Reconciliation(t *testing.T) {
	store, _ := newMiniredisStore(t, 0)
	bg := context.Background()

	_, err := store.Connect(bg, "ws-1", assistant.SourceStripe)
	require.NoError(t, err)

	_, err = store.SetReconciled(bg, "ws-1", true)
	assert.ErrorIs(t, err, ErrNotEnoughSources)

	_, err = store.Connect(bg, "ws-1", assistant.SourceHubSpot)
	require.NoError(t, err)

	state, err := store.SetReconciled(bg, "ws-1", true)
	require.NoError(t, err)
	assert.True(t, state.IsReconciled)

	// Reconnecting an existing source keeps reconciliation.
	state, err = store.Connect(bg, "ws-1", assistant.SourceHubSpot)
	require.NoError(t, err)
	assert.True(t, state.IsReconciled)

	// Any change to the source set clears it.
	state, err = store.Connect(bg, "ws-1", assistant.SourceGoogleAnalytics)
	require.NoError(t, err)
	assert.False(t, state.IsReconciled)

	_, err = store.SetReconciled(bg, "ws-1", true)
	require.NoError(t, err)
	state, err = store.Disconnect(bg, "ws-1", assistant.SourceGoogleAnalytics)
	require.NoError(t, err)
	assert.False(t, state.IsReconciled)

	// Disconnecting a source that is not connected changes nothing.
	_, err = store.SetReconciled(bg, "ws-1", true)
	require.NoError(t, err)
	state, err = store.Disconnect(bg, "ws-1", assistant.SourceShopify)
	require.NoError(t, err)
	assert.True(t, state.IsReconciled)

	sctx, err := store.Context(bg, "ws-1")
	require.NoError(t, err)
	assert.True(t, sctx.IsReconciled)
	assert.True(t, sctx.HasMultipleSources)
}

func TestStore_TTL(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Hour)

	_, err := store.Connect(context.Background(), "ws-1", assistant.SourceStripe)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, mr.TTL("assistant:connectors:ws-1"))

	mr.FastForward(2 * time.Hour)

	sctx, err := store.Context(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Empty(t, sctx.ConnectedSources)
}

func TestStore_ConcurrentConnects(t *testing.T) {
	store, _ := newMiniredisStore(t, 0)
	sources := []string{
		assistant.SourceStripe,
		assistant.SourceHubSpot,
		assistant.SourceMetaAds,
		assistant.SourceShopify,
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(sources))
	for _, source := range sources {
		wg.Add(1)
		go func(source string) {
			defer wg.Done()
			_, err := store.Connect(context.Background(), "ws-1", source)
			errs <- err
		}(source)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	state, err := store.State(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, sources, state.ConnectedSources)
}

func TestStore_WriteFailure(t *testing.T) {
	store, mr := newMiniredisStore(t, 0)
	mr.Close()

	_, err := store.Connect(context.Background(), "ws-1", assistant.SourceStripe)

	var stdErr *errors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, errors.ErrCodeConnectorStateUnavailable, stdErr.Code)
}
