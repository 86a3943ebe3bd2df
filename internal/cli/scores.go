package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScoresCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the scoreboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.close()

			entries, res := rt.client.Scores(cmd.Context(), limit)
			if !res.OK() {
				return resultErr(res)
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scores yet.")
				return nil
			}
			for i, entry := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d. %-20s %d/%d\n", i+1, entry.Player, entry.Score, entry.Total)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum entries to fetch")
	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check backend reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.close()

			if res := rt.client.Health(cmd.Context()); !res.OK() {
				return fmt.Errorf("backend unhealthy (status %d)", res.Status)
			}
			info, res := rt.client.QuizInfo(cmd.Context())
			if res.OK() {
				fmt.Fprintf(cmd.OutOrStdout(), "Backend healthy; quiz has %d questions.\n", info.Size)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Backend healthy.")
			}
			return nil
		},
	}
}
