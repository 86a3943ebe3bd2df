package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kormazd/DevWeb/internal/sampledata"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Push the built-in sample questions to the backend (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			created := 0
			for _, question := range sampledata.Questions() {
				question.ID = 0 // the backend assigns identifiers
				if _, res := rt.client.CreateQuestion(cmd.Context(), question); !res.OK() {
					return fmt.Errorf("seed %q: %w", question.Title, resultErr(res))
				}
				created++
			}
			rt.cache.Invalidate()
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d questions.\n", created)
			return nil
		},
	}
}
