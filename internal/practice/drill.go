// Package practice is a terminal drill over a generated exercise: pick a
// tier, fill each blank from the word bank, then review the score.
package practice

import (
	"errors"
	"strings"

	"github.com/abhisek/gapfill/internal/exercise"
)

// ErrNoItems is returned when a tier has no answers to practise.
var ErrNoItems = errors.New("tier has no answers")

// Item is one blank to fill. Blank and Hint are empty when the exercise
// carried fewer blanks or hints than answers.
type Item struct {
	Blank  string
	Answer string
	Hint   string
}

// Attempt records one submitted answer.
type Attempt struct {
	Item
	Given   string
	Correct bool
}

// Drill walks the items of one tier in order.
type Drill struct {
	Tier exercise.Tier
	Text string
	Bank []string

	items    []Item
	attempts []Attempt
}

// NewDrill builds a drill from the answers of tier t. Answers drive the
// item count; blanks and hints are paired by index when present.
func NewDrill(ex *exercise.Exercise, t exercise.Tier) (*Drill, error) {
	c := ex.Tier(t)
	if c == nil || len(c.Answers) == 0 {
		return nil, ErrNoItems
	}

	items := make([]Item, len(c.Answers))
	for i, ans := range c.Answers {
		items[i] = Item{Answer: ans}
		if i < len(c.Blanks) {
			items[i].Blank = c.Blanks[i]
		}
		if i < len(c.Hints) {
			items[i].Hint = c.Hints[i]
		}
	}

	bank := c.ShuffledAnswers
	if len(bank) != len(c.Answers) {
		bank = exercise.NewShuffler(nil).Permute(c.Answers)
	}

	return &Drill{Tier: t, Text: c.Text, Bank: bank, items: items}, nil
}

// Len returns the number of items.
func (d *Drill) Len() int { return len(d.items) }

// Position returns the zero-based index of the current item.
func (d *Drill) Position() int { return len(d.attempts) }

// Current returns the item awaiting an answer.
func (d *Drill) Current() (Item, bool) {
	if d.Done() {
		return Item{}, false
	}
	return d.items[len(d.attempts)], true
}

// Submit marks the current item and advances. Answers match when they are
// equal ignoring case and surrounding space.
func (d *Drill) Submit(given string) (Attempt, bool) {
	item, ok := d.Current()
	if !ok {
		return Attempt{}, false
	}
	a := Attempt{
		Item:    item,
		Given:   strings.TrimSpace(given),
		Correct: strings.EqualFold(strings.TrimSpace(given), strings.TrimSpace(item.Answer)),
	}
	d.attempts = append(d.attempts, a)
	return a, true
}

// Done reports whether every item has been answered.
func (d *Drill) Done() bool {
	return len(d.attempts) >= len(d.items)
}

// Attempts returns the answers so far.
func (d *Drill) Attempts() []Attempt {
	return d.attempts
}

// Score returns correct answers and items answered.
func (d *Drill) Score() (correct, answered int) {
	for _, a := range d.attempts {
		if a.Correct {
			correct++
		}
	}
	return correct, len(d.attempts)
}
