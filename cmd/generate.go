package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gapfill/internal/practice"
)

var generateCmd = &cobra.Command{
	Use:   "generate [file]",
	Short: "Generate a gap-fill exercise from a passage",
	Long: "Reads the passage from --text, from the given file, or from stdin, " +
		"then saves the rendered page and prints its path.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		passage, err := readPassage(cmd, args)
		if err != nil {
			return err
		}

		cfg, log, err := loadConfig(cmd, "console")
		if err != nil {
			return err
		}
		d, err := buildDeps(cmd.Context(), cmd, cfg, log)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
		defer cancel()

		res, err := d.generator.Generate(ctx, passage)
		if err != nil {
			return fmt.Errorf("generate: %w", err)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else {
			path, _ := d.artifacts.Resolve(res.Artifact)
			fmt.Fprintf(out, "Blanks:    %d\n", res.Exercise.BlankCount())
			if res.Fallback {
				fmt.Fprintln(out, "Page:      local template (model returned no HTML)")
			}
			fmt.Fprintf(out, "Saved:     %s\n", path)
		}

		if dest, _ := cmd.Flags().GetString("out"); dest != "" {
			if err := os.WriteFile(dest, []byte(res.HTML), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", dest, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", dest)
		}

		if drill, _ := cmd.Flags().GetBool("practice"); drill {
			return practice.Run(res.Exercise, nil, nil)
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a passage without generating an exercise",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		passage, err := readPassage(cmd, args)
		if err != nil {
			return err
		}

		cfg, log, err := loadConfig(cmd, "console")
		if err != nil {
			return err
		}
		d, err := buildDeps(cmd.Context(), cmd, cfg, log)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.LLM.Timeout)
		defer cancel()

		a, err := d.generator.Analyze(ctx, passage)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"analysis":           a,
			"difficulty_levels":  a.DifficultyLevels,
			"categories":         a.Categories,
			"contrastive_points": a.ContrastivePoints,
		})
	},
}

// readPassage takes the passage from --text, a file argument ("-" for
// stdin) or stdin.
func readPassage(cmd *cobra.Command, args []string) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", fmt.Errorf("open passage: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read passage: %w", err)
	}
	passage := strings.TrimSpace(string(data))
	if passage == "" {
		return "", fmt.Errorf("no passage given: use --text, a file or stdin")
	}
	return passage, nil
}

func init() {
	generateCmd.Flags().StringP("text", "t", "", "Passage text")
	generateCmd.Flags().StringP("out", "o", "", "Also write the HTML page to this path")
	generateCmd.Flags().Bool("json", false, "Print the full result as JSON")
	generateCmd.Flags().Bool("practice", false, "Start a practice drill on the new exercise")

	analyzeCmd.Flags().StringP("text", "t", "", "Passage text")
}
