package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/gapfill/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent exercise generations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().QueryGenerations(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query generations: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No generations found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-10s  %6s  %7s  %-4s  %s\n",
			"ID", "Timestamp", "Provider", "Blanks", "Ms", "OK", "Passage")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, e := range events {
			ok := "✓"
			switch {
			case !e.Success:
				ok = "✗ " + e.ErrorStage
			case e.Degraded:
				ok = "~"
			}
			fmt.Fprintf(out, "%-5d  %-19s  %-10s  %6d  %7d  %-4s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.Provider, 10),
				e.BlankCount,
				e.LatencyMs,
				ok,
				e.PassagePreview,
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one generation with its exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		e, err := s.EventRepo().GetGeneration(context.Background(), id)
		if err != nil {
			return fmt.Errorf("get generation: %w", err)
		}
		if e == nil {
			return fmt.Errorf("generation %d not found", id)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:         %d\n", e.ID)
		fmt.Fprintf(out, "Time:       %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Provider:   %s\n", e.Provider)
		fmt.Fprintf(out, "Passage:    %s\n", e.PassagePreview)
		fmt.Fprintf(out, "Hash:       %s\n", e.PassageHash)
		fmt.Fprintf(out, "Success:    %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Fprintf(out, "Error:      [%s] %s\n", e.ErrorStage, e.ErrorMessage)
		}
		fmt.Fprintf(out, "Blanks:     %d\n", e.BlankCount)
		if len(e.MisalignedTiers) > 0 {
			fmt.Fprintf(out, "Misaligned: %s\n", strings.Join(e.MisalignedTiers, ", "))
		}
		if e.Degraded {
			fmt.Fprintln(out, "Degraded:   true")
		}
		if e.Artifact != "" {
			fmt.Fprintf(out, "Artifact:   %s\n", e.Artifact)
		}
		fmt.Fprintf(out, "Latency:    %dms\n", e.LatencyMs)

		if e.ExerciseJSON != "" {
			sep := strings.Repeat("─", 60)
			fmt.Fprintln(out)
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, "EXERCISE")
			fmt.Fprintln(out, sep)
			fmt.Fprintln(out, e.ExerciseJSON)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of generations to show")
	historyCmd.AddCommand(historyViewCmd)
}
