// Package connectors keeps per-workspace connector state in Redis and turns
// it into the suggestion context the assistant core consumes.
package connectors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"time"

	"insights-workers/internal/assistant"
	"insights-workers/internal/common/errors"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 5

var (
	ErrUnknownSource    = stderrors.New("UNKNOWN_SOURCE")
	ErrNotEnoughSources = stderrors.New("NOT_ENOUGH_SOURCES")
)

// State is the JSON document stored per workspace.
type State struct {
	ConnectedSources []string  `json:"connectedSources"`
	IsReconciled     bool      `json:"isReconciled"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// SuggestionContext derives the core's context. HasMultipleSources is
// computed, never stored.
func (s State) SuggestionContext() assistant.SuggestionContext {
	connected := make([]string, len(s.ConnectedSources))
	copy(connected, s.ConnectedSources)
	return assistant.SuggestionContext{
		ConnectedSources:   connected,
		IsReconciled:       s.IsReconciled,
		HasMultipleSources: len(connected) > 1,
	}
}

// Store reads and writes connector state under "<prefix>:<workspaceID>".
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewStore creates a Store. ttl 0 keeps state without expiry.
func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Store) key(workspaceID string) string {
	return s.prefix + ":" + workspaceID
}

// State returns the stored state. A workspace with no stored state has the
// zero State.
func (s *Store) State(ctx context.Context, workspaceID string) (State, error) {
	if workspaceID == "" {
		return State{}, errors.NewInvalidInputError("workspaceId is required")
	}
	state, err := decode(s.client.Get(ctx, s.key(workspaceID)))
	if err != nil {
		return State{}, errors.NewConnectorStateUnavailableError(workspaceID, err)
	}
	return state, nil
}

// Context returns the suggestion context for workspaceID.
func (s *Store) Context(ctx context.Context, workspaceID string) (assistant.SuggestionContext, error) {
	state, err := s.State(ctx, workspaceID)
	if err != nil {
		return assistant.SuggestionContext{}, err
	}
	return state.SuggestionContext(), nil
}

// Connect adds source to the workspace. Changing the source set clears
// reconciliation.
func (s *Store) Connect(ctx context.Context, workspaceID, source string) (State, error) {
	if !assistant.IsKnownSource(source) {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	return s.update(ctx, workspaceID, func(state *State) error {
		for _, existing := range state.ConnectedSources {
			if existing == source {
				return nil
			}
		}
		state.ConnectedSources = append(state.ConnectedSources, source)
		state.IsReconciled = false
		return nil
	})
}

// Disconnect removes source from the workspace. Changing the source set
// clears reconciliation.
func (s *Store) Disconnect(ctx context.Context, workspaceID, source string) (State, error) {
	return s.update(ctx, workspaceID, func(state *State) error {
		kept := state.ConnectedSources[:0]
		for _, existing := range state.ConnectedSources {
			if existing != source {
				kept = append(kept, existing)
			}
		}
		if len(kept) != len(state.ConnectedSources) {
			state.IsReconciled = false
		}
		state.ConnectedSources = kept
		return nil
	})
}

// SetReconciled records the outcome of a reconciliation run. Marking a
// workspace reconciled needs at least two connected sources.
func (s *Store) SetReconciled(ctx context.Context, workspaceID string, reconciled bool) (State, error) {
	return s.update(ctx, workspaceID, func(state *State) error {
		if reconciled && len(state.ConnectedSources) < 2 {
			return fmt.Errorf("%w: %d connected", ErrNotEnoughSources, len(state.ConnectedSources))
		}
		state.IsReconciled = reconciled
		return nil
	})
}

// update applies fn under WATCH so concurrent writers do not lose changes.
func (s *Store) update(ctx context.Context, workspaceID string, fn func(*State) error) (State, error) {
	if workspaceID == "" {
		return State{}, errors.NewInvalidInputError("workspaceId is required")
	}
	key := s.key(workspaceID)

	var result State
	txf := func(tx *redis.Tx) error {
		state, err := decode(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		if err := fn(&state); err != nil {
			return err
		}
		if state.ConnectedSources == nil {
			state.ConnectedSources = []string{}
		}
		sort.Strings(state.ConnectedSources)
		state.UpdatedAt = s.now().UTC()

		data, err := json.Marshal(state)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		if err == nil {
			result = state
		}
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return result, nil
		case stderrors.Is(err, redis.TxFailedErr):
			continue
		case stderrors.Is(err, ErrNotEnoughSources):
			return State{}, err
		default:
			return State{}, errors.NewConnectorStateUnavailableError(workspaceID, err)
		}
	}
	return State{}, errors.NewConnectorStateUnavailableError(workspaceID,
		fmt.Errorf("transaction retries exhausted after %d attempts", maxTxRetries))
}

func decode(cmd *redis.StringCmd) (State, error) {
	raw, err := cmd.Bytes()
	if stderrors.Is(err, redis.Nil) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return State{}, fmt.Errorf("decode connector state: %w", err)
	}
	return state, nil
}
