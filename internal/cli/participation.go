package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParticipationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participation",
		Short: "Inspect participation records",
	}
	cmd.AddCommand(newParticipationGetCmd())
	cmd.AddCommand(newParticipationListCmd())
	cmd.AddCommand(newParticipationPurgeCmd())
	return cmd
}

func newParticipationGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player>",
		Short: "Show one player's participation record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.close()

			participation, res := rt.client.Participation(cmd.Context(), args[0])
			if !res.OK() {
				return resultErr(res)
			}
			return printJSON(cmd.OutOrStdout(), participation)
		},
	}
}

func newParticipationListCmd() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List participation records (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			participations, res := rt.client.Participations(cmd.Context(), from, to)
			if !res.OK() {
				return resultErr(res)
			}
			return printJSON(cmd.OutOrStdout(), participations)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "lower date bound")
	cmd.Flags().StringVar(&to, "to", "", "upper date bound")
	return cmd
}

func newParticipationPurgeCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all participation records (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to purge without --yes")
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if res := rt.client.PurgeParticipations(cmd.Context()); !res.OK() {
				return resultErr(res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Participations purged.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the purge")
	return cmd
}
