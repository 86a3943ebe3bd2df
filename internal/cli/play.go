package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kormazd/DevWeb/internal/domain"
	"github.com/Kormazd/DevWeb/internal/quiz"
	"github.com/Kormazd/DevWeb/internal/sideimage"
)

func newPlayCmd() *cobra.Command {
	var (
		playerName string
		resume     bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play through the quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			defer rt.close()
			return runPlay(cmd.Context(), rt, cmd.InOrStdin(), cmd.OutOrStdout(), playerName, resume)
		},
	}
	cmd.Flags().StringVar(&playerName, "name", "", "player name (prompted when empty)")
	cmd.Flags().BoolVar(&resume, "resume", false, "resume an interrupted playthrough")
	return cmd
}

func runPlay(ctx context.Context, rt *runtime, in io.Reader, out io.Writer, playerName string, resume bool) error {
	qs, err := rt.cache.Questions(ctx)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		return domain.ErrNoQuestions
	}

	reader := bufio.NewScanner(in)
	if playerName == "" {
		fmt.Fprint(out, "Player name: ")
		playerName = readLine(reader)
	}
	if playerName == "" {
		playerName = "anonymous"
	}

	engine := quiz.New()
	engine.SetPlayerName(playerName)

	resumed := false
	if resume {
		snapshot, err := rt.sessions.Session(ctx)
		if err == nil && snapshot.PlayerName == playerName &&
			len(snapshot.Answers) > 0 && len(snapshot.Answers) < len(qs) {
			if err := engine.Resume(qs, snapshot); err == nil {
				resumed = true
				fmt.Fprintf(out, "Resuming at question %d of %d.\n", len(snapshot.Answers)+1, len(qs))
			} else {
				rt.log.Warn("resume failed, starting over", zap.Error(err))
			}
		}
	}
	if !resumed {
		if err := engine.Start(qs); err != nil {
			return err
		}
		if err := rt.sessions.SaveSession(ctx, engine.Session()); err != nil {
			rt.log.Warn("persist session", zap.Error(err))
		}
	}

	picker := sideimage.NewPicker(nil)
	left, right := "", ""

	for engine.State() == quiz.StateInProgress {
		question, err := engine.CurrentQuestion()
		if err != nil {
			return err
		}

		left, right = picker.PickTwo(left, right)
		fmt.Fprintf(out, "\n%s\n", question.Title)
		if question.Text != "" {
			fmt.Fprintln(out, question.Text)
		}
		if question.Image != "" {
			fmt.Fprintf(out, "[illustration: %s]\n", sideimage.NormalizeURL(question.Image))
		}
		rt.log.Debug("side images", zap.String("left", left), zap.String("right", right))

		for i, answer := range question.Answers {
			fmt.Fprintf(out, "  %d) %s\n", i+1, answer.Text)
		}

		choice := promptChoice(reader, out, len(question.Answers))
		if choice == 0 {
			fmt.Fprintln(out, "\nQuiz interrupted; progress saved. Re-run with --resume to continue.")
			return nil
		}

		result, err := engine.SubmitAnswer(question.Answers[choice-1].ID)
		if err != nil {
			return err
		}
		if err := rt.sessions.SaveSession(ctx, engine.Session()); err != nil {
			rt.log.Warn("persist session", zap.Error(err))
		}

		if result.Correct {
			fmt.Fprintf(out, "Correct! +%d points\n", quiz.PointsPerCorrect)
		} else if want, ok := question.CorrectAnswer(); ok {
			fmt.Fprintf(out, "Wrong. The answer was: %s\n", want.Text)
		} else {
			fmt.Fprintln(out, "Wrong.")
		}
		if result.IsLastQuestion {
			fmt.Fprintln(out, "That was the last question.")
		}

		if err := engine.Advance(); err != nil {
			return err
		}
	}

	summary, err := engine.Summary()
	if err != nil {
		return err
	}
	if err := rt.sessions.SaveSession(ctx, engine.Session()); err != nil {
		rt.log.Warn("persist session", zap.Error(err))
	}

	fmt.Fprintf(out, "\n=== Results for %s ===\n", playerName)
	fmt.Fprintf(out, "Score: %d (%d/%d correct, %d%% accuracy)\n",
		summary.Score, summary.CorrectCount, summary.TotalQuestions, summary.AccuracyPercent)
	fmt.Fprintf(out, "Achievement: %s\n", domain.TierFor(summary.AccuracyPercent))

	// Best effort: the result stays local when the backend is unreachable.
	if res := rt.client.SaveParticipation(ctx, playerName, engine.Session().Answers); !res.OK() {
		fmt.Fprintf(out, "Could not submit participation (status %d): %s\n", res.Status, res.ErrorMessage())
	}
	if res := rt.client.PostScore(ctx, playerName, summary.Score, summary.TotalQuestions); !res.OK() {
		fmt.Fprintf(out, "Could not post score (status %d): %s\n", res.Status, res.ErrorMessage())
	}
	return nil
}

// promptChoice reads a 1-based answer index, returning 0 on EOF.
func promptChoice(reader *bufio.Scanner, out io.Writer, count int) int {
	for {
		fmt.Fprintf(out, "Your answer [1-%d]: ", count)
		if !reader.Scan() {
			return 0
		}
		raw := strings.TrimSpace(reader.Text())
		choice, err := strconv.Atoi(raw)
		if err == nil && choice >= 1 && choice <= count {
			return choice
		}
		fmt.Fprintln(out, "Invalid choice.")
	}
}

func readLine(reader *bufio.Scanner) string {
	if !reader.Scan() {
		return ""
	}
	return strings.TrimSpace(reader.Text())
}
