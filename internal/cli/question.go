package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Kormazd/DevWeb/internal/api"
	"github.com/Kormazd/DevWeb/internal/domain"
)

func newQuestionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Manage the question collection (admin)",
	}
	cmd.AddCommand(newQuestionListCmd())
	cmd.AddCommand(newQuestionGetCmd())
	cmd.AddCommand(newQuestionCreateCmd())
	cmd.AddCommand(newQuestionUpdateCmd())
	cmd.AddCommand(newQuestionDeleteCmd())
	cmd.AddCommand(newQuestionPublishCmd())
	cmd.AddCommand(newQuestionReorderCmd())
	cmd.AddCommand(newQuestionExportCmd())
	cmd.AddCommand(newQuestionImportCmd())
	cmd.AddCommand(newQuestionUploadImageCmd())
	return cmd
}

func newQuestionListCmd() *cobra.Command {
	var position int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			var filter *int
			if cmd.Flags().Changed("position") {
				filter = &position
			}
			questions, res := rt.client.Questions(cmd.Context(), filter)
			if !res.OK() {
				return resultErr(res)
			}
			return printJSON(cmd.OutOrStdout(), questions)
		},
	}
	cmd.Flags().IntVar(&position, "position", 0, "filter to the question at this position")
	return cmd
}

func newQuestionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			question, res := rt.client.Question(cmd.Context(), id)
			if !res.OK() {
				return resultErr(res)
			}
			return printJSON(cmd.OutOrStdout(), question)
		},
	}
}

func newQuestionCreateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a question from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readQuestionFile(file)
			if err != nil {
				return err
			}
			if err := validateQuestion(question); err != nil {
				return err
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			created, res := rt.client.CreateQuestion(cmd.Context(), question)
			if !res.OK() {
				return resultErr(res)
			}
			return printJSON(cmd.OutOrStdout(), created)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "question JSON file ('-' for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newQuestionUpdateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a question from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			question, err := readQuestionFile(file)
			if err != nil {
				return err
			}
			if err := validateQuestion(question); err != nil {
				return err
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			updated, res := rt.client.UpdateQuestion(cmd.Context(), id, question)
			if !res.OK() {
				return resultErr(res)
			}
			return printJSON(cmd.OutOrStdout(), updated)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "question JSON file ('-' for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newQuestionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if res := rt.client.DeleteQuestion(cmd.Context(), id); !res.OK() {
				return resultErr(res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newQuestionPublishCmd() *cobra.Command {
	var published bool
	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Toggle a question's publish flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if res := rt.client.SetPublished(cmd.Context(), id, published); !res.OK() {
				return resultErr(res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Question %d published=%t.\n", id, published)
			return nil
		},
	}
	cmd.Flags().BoolVar(&published, "published", true, "publish state to set")
	return cmd
}

func newQuestionReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <id> [id...]",
		Short: "Rewrite display order to match the given IDs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, 0, len(args))
			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("invalid question id %q", arg)
				}
				ids = append(ids, id)
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if res := rt.client.ReorderQuestions(cmd.Context(), ids); !res.OK() {
				return resultErr(res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reordered.")
			return nil
		},
	}
}

func newQuestionExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the question collection as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			questions, res := rt.client.ExportQuestions(cmd.Context())
			if !res.OK() {
				return resultErr(res)
			}
			if out == "" || out == "-" {
				return printJSON(cmd.OutOrStdout(), questions)
			}
			raw, err := json.MarshalIndent(questions, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d questions to %s.\n", len(questions), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	return cmd
}

func newQuestionImportCmd() *cobra.Command {
	var (
		file     string
		override bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import questions from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readFileOrStdin(file)
			if err != nil {
				return err
			}
			var questions []domain.Question
			if err := json.Unmarshal(raw, &questions); err != nil {
				return fmt.Errorf("parse import file: %w", err)
			}
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			if res := rt.client.ImportQuestions(cmd.Context(), questions, override); !res.OK() {
				return resultErr(res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d questions (override=%t).\n", len(questions), override)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "questions JSON file ('-' for stdin)")
	cmd.Flags().BoolVar(&override, "override", false, "replace the existing collection")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newQuestionUploadImageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload-image <path>",
		Short: "Upload a question illustration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close()

			rt, err := newRuntime(true)
			if err != nil {
				return err
			}
			defer rt.close()

			uploaded, res := rt.client.UploadImage(cmd.Context(), filepath.Base(args[0]), f)
			if !res.OK() {
				return resultErr(res)
			}
			location := uploaded.URL
			if location == "" {
				location = uploaded.Path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded: %s\n", location)
			return nil
		},
	}
}

// validateQuestion enforces the exactly-one-correct-answer invariant before
// the question leaves the admin workflow.
func validateQuestion(q domain.Question) error {
	if q.Title == "" {
		return fmt.Errorf("question title is required")
	}
	correct := 0
	for _, a := range q.Answers {
		if a.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("question must have exactly one correct answer, got %d", correct)
	}
	return nil
}

func readQuestionFile(path string) (domain.Question, error) {
	raw, err := readFileOrStdin(path)
	if err != nil {
		return domain.Question{}, err
	}
	var question domain.Question
	if err := json.Unmarshal(raw, &question); err != nil {
		return domain.Question{}, fmt.Errorf("parse question file: %w", err)
	}
	return question, nil
}

func readFileOrStdin(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

func printJSON(out io.Writer, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(raw))
	return err
}

func resultErr(res api.Result) error {
	return fmt.Errorf("request failed with status %d: %s", res.Status, res.ErrorMessage())
}
