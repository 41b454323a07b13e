package main

import (
	"fmt"

	"insights-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the worker activity registry",
	}

	var path string
	cmd.PersistentFlags().StringVar(&path, "path", "configs/activity-registry.json", "activity registry file")

	load := func() (*registry.ActivityRegistry, error) {
		reg, err := registry.LoadRegistry(path)
		if err != nil {
			return nil, err
		}
		return reg, reg.Validate()
	}

	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check ids, task types, timeouts and schemas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registry ok: %d activities (version %s)\n", len(reg.Activities), reg.Version)
			return nil
		},
	}

	var variables string
	show := &cobra.Command{
		Use:   "show TASK_TYPE",
		Short: "Print an activity, optionally checking job variables against its input schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			activity, ok := reg.Find(args[0])
			if !ok {
				return fmt.Errorf("no activity registered for task type %q", args[0])
			}
			if variables == "" {
				return printJSON(cmd.OutOrStdout(), activity)
			}

			violations, err := activity.ValidateInput(variables)
			if err != nil {
				return err
			}
			if len(violations) > 0 {
				for _, v := range violations {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
				return fmt.Errorf("%d input violations", len(violations))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "variables ok")
			return nil
		},
	}
	show.Flags().StringVar(&variables, "variables", "", "job variables JSON to check")

	cmd.AddCommand(validate, show)
	return cmd
}
