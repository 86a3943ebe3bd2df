package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	baseURL    string
	statePath  string
	verbose    bool
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envURL := os.Getenv("QUIZ_API_URL")
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}
	envState := os.Getenv("QUIZ_STATE_PATH")

	cmd := &cobra.Command{
		Use:   "quizctl",
		Short: "Trivia quiz player and admin toolkit",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().StringVar(&baseURL, "base-url", envURL, "quiz backend base URL")
	cmd.PersistentFlags().StringVar(&statePath, "state", envState, "path to the local state file")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newPlayCmd())
	cmd.AddCommand(newLoginCmd())
	cmd.AddCommand(newLogoutCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newQuestionCmd())
	cmd.AddCommand(newParticipationCmd())
	cmd.AddCommand(newScoresCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}
