package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/gapfill/internal/exercise"
)

func passageCmd(stdin string) *cobra.Command {
	c := &cobra.Command{}
	c.Flags().String("text", "", "")
	c.SetIn(strings.NewReader(stdin))
	return c
}

func TestReadPassage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passage.txt")
	if err := os.WriteFile(path, []byte("  From a file.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := passageCmd("From stdin.")
	if got, err := readPassage(c, nil); err != nil || got != "From stdin." {
		t.Errorf("stdin: %q, %v", got, err)
	}
	if got, err := readPassage(c, []string{path}); err != nil || got != "From a file." {
		t.Errorf("file: %q, %v", got, err)
	}

	_ = c.Flags().Set("text", "From a flag.")
	if got, _ := readPassage(c, []string{path}); got != "From a flag." {
		t.Errorf("flag should win, got %q", got)
	}

	if _, err := readPassage(passageCmd(" \n "), nil); err == nil {
		t.Error("expected an error for an empty passage")
	}
}

func TestDecodeExercise(t *testing.T) {
	bare := `{"tiers":{"foundation":{"text":"a ___","answers":["x"]}}}`
	wrapped := `{"original_text":"a x","gapfill":` + bare + `,"fallback":false}`

	for name, doc := range map[string]string{"bare": bare, "wrapped": wrapped} {
		ex, err := decodeExercise([]byte(doc))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got := ex.Tier(exercise.Foundation).Answers; len(got) != 1 || got[0] != "x" {
			t.Errorf("%s: answers = %v", name, got)
		}
		if ex.Tier(exercise.Expert).Answers == nil {
			t.Errorf("%s: missing tiers should keep their empty defaults", name)
		}
	}

	if _, err := decodeExercise([]byte("not json")); err == nil {
		t.Error("expected a decode error")
	}
}
