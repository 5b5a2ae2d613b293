package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/gapfill/internal/exercise"
	"github.com/abhisek/gapfill/internal/practice"
	"github.com/abhisek/gapfill/internal/store"
)

var practiceCmd = &cobra.Command{
	Use:   "practice [exercise.json]",
	Short: "Drill an exercise in the terminal",
	Long: "Opens a saved exercise for practice. Pass a JSON file as printed by " +
		"'generate --json', or --event with a generation ID from 'history'. " +
		"Without either, the most recent successful generation is used.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ex *exercise.Exercise
		var err error
		if len(args) == 1 {
			ex, err = loadExerciseFile(args[0])
		} else {
			id, _ := cmd.Flags().GetInt("event")
			ex, err = loadExerciseEvent(cmd, id)
		}
		if err != nil {
			return err
		}
		return practice.Run(ex, nil, nil)
	},
}

// loadExerciseFile accepts either a bare exercise or a full generate
// result with the exercise under "gapfill".
func loadExerciseFile(path string) (*exercise.Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exercise: %w", err)
	}
	return decodeExercise(data)
}

func decodeExercise(data []byte) (*exercise.Exercise, error) {
	var wrapped struct {
		Gapfill json.RawMessage `json:"gapfill"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("decode exercise: %w", err)
	}
	if len(wrapped.Gapfill) > 0 {
		data = wrapped.Gapfill
	}
	ex := exercise.New()
	if err := json.Unmarshal(data, ex); err != nil {
		return nil, fmt.Errorf("decode exercise: %w", err)
	}
	return ex, nil
}

// loadExerciseEvent loads the exercise stored with a generation event. An
// id of zero picks the newest successful one.
func loadExerciseEvent(cmd *cobra.Command, id int) (*exercise.Exercise, error) {
	s, err := openStore(cmd)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer s.Close()

	ctx := context.Background()
	repo := s.EventRepo()

	var ev *store.GenerationEvent
	if id > 0 {
		ev, err = repo.GetGeneration(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get generation: %w", err)
		}
		if ev == nil {
			return nil, fmt.Errorf("generation %d not found", id)
		}
	} else {
		events, err := repo.QueryGenerations(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return nil, fmt.Errorf("query generations: %w", err)
		}
		for i := range events {
			if events[i].Success && events[i].ExerciseJSON != "" {
				ev = &events[i]
				break
			}
		}
		if ev == nil {
			return nil, fmt.Errorf("no saved exercise found; run 'gapfill generate' first")
		}
	}

	if ev.ExerciseJSON == "" {
		return nil, fmt.Errorf("generation %d has no saved exercise", ev.ID)
	}
	return decodeExercise([]byte(ev.ExerciseJSON))
}

func init() {
	practiceCmd.Flags().IntP("event", "e", 0, "Generation ID to practise (default: latest)")
}
