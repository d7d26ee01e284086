package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"goTweetStatus/config"
)

func newSearchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search recent posts (bearer token)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			res, err := c.SearchRecent(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newUpdateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "update <text>",
		Short: "Post a status update (OAuth 1.0a signed)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.client()
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()

			res, err := c.UpdateStatus(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newCheckConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the configuration and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "✓ Configuration is valid!")
			fmt.Fprintln(out, cfg)
			return nil
		},
	}
}
