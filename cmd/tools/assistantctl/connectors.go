package main

import (
	"context"
	"time"

	"insights-workers/internal/common/config"
	"insights-workers/internal/common/connectors"
	"insights-workers/internal/common/database"

	"github.com/spf13/cobra"
)

type storeFlags struct {
	redisAddress string
	prefix       string
	ttl          time.Duration
	workspace    string
}

func (f *storeFlags) open() (*connectors.Store, func(), error) {
	rc := database.NewRedis(config.RedisConfig{Address: f.redisAddress, PoolSize: 2})
	closeFn := func() { _ = rc.Close() }

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return connectors.NewStore(rc.Client, f.prefix, f.ttl), closeFn, nil
}

func newConnectorsCmd() *cobra.Command {
	flags := &storeFlags{}
	cmd := &cobra.Command{
		Use:   "connectors",
		Short: "Read and change a workspace's connector state",
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.redisAddress, "redis-address", "localhost:6379", "Redis address")
	pf.StringVar(&flags.prefix, "prefix", "assistant:connectors", "connector state key prefix")
	pf.DurationVar(&flags.ttl, "ttl", 0, "state expiry on write, 0 keeps it forever")
	pf.StringVar(&flags.workspace, "workspace", "", "workspace id")
	_ = cmd.MarkPersistentFlagRequired("workspace")

	// withStore opens the store for one command and prints the resulting state.
	withStore := func(fn func(ctx context.Context, s *connectors.Store) (connectors.State, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			store, closeFn, err := flags.open()
			if err != nil {
				return err
			}
			defer closeFn()

			state, err := fn(cmd.Context(), store)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), state)
		}
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored state",
		Args:  cobra.NoArgs,
		RunE: withStore(func(ctx context.Context, s *connectors.Store) (connectors.State, error) {
			return s.State(ctx, flags.workspace)
		}),
	}

	connect := &cobra.Command{
		Use:   "connect SOURCE",
		Short: "Mark a source as connected",
		Args:  cobra.ExactArgs(1),
	}
	connect.RunE = func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *connectors.Store) (connectors.State, error) {
			return s.Connect(ctx, flags.workspace, args[0])
		})(cmd, args)
	}

	disconnect := &cobra.Command{
		Use:   "disconnect SOURCE",
		Short: "Mark a source as disconnected",
		Args:  cobra.ExactArgs(1),
	}
	disconnect.RunE = func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *connectors.Store) (connectors.State, error) {
			return s.Disconnect(ctx, flags.workspace, args[0])
		})(cmd, args)
	}

	var undo bool
	reconcile := &cobra.Command{
		Use:   "reconcile",
		Short: "Mark the workspace's data as reconciled",
		Args:  cobra.NoArgs,
		RunE: withStore(func(ctx context.Context, s *connectors.Store) (connectors.State, error) {
			return s.SetReconciled(ctx, flags.workspace, !undo)
		}),
	}
	reconcile.Flags().BoolVar(&undo, "undo", false, "clear the reconciled flag instead")

	cmd.AddCommand(show, connect, disconnect, reconcile)
	return cmd
}
