// Package session runs study sessions over a collection of flashcards.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/arcanaland/flashcards/internal/card"
	"github.com/arcanaland/flashcards/internal/render"
)

// Prompts shown while a card waits for the user
const (
	WritePrompt = "( ´ゝ`) Write ...)"
	ReadyPrompt = "Press [Enter] if you're ready"
)

// Display shows one draw of a card
type Display interface {
	Draw(lines []string) error
}

// Prompter blocks until the user responds
type Prompter interface {
	Confirm(message string) error
	PromptText(message string) (string, error)
}

// Recognizer turns speech into text. It never fails, a fallback text is
// returned when nothing could be recognized.
type Recognizer interface {
	Capture(ctx context.Context) string
}

// Store persists the cards of a session
type Store interface {
	Save(cards []*card.Card) error
}

// Options are the session switches
type Options struct {
	Ordered  bool
	Inverted bool
	Mode     Mode
	Border   rune
}

// Runner drives cards through their reveal one at a time
type Runner struct {
	opts       Options
	display    Display
	prompter   Prompter
	recognizer Recognizer
	store      Store
	rand       *rand.Rand
	logger     *zap.Logger
}

// NewRunner creates a runner. Speaking sessions also need WithRecognizer and
// answer collecting sessions need WithStore to keep the answers.
func NewRunner(opts Options, display Display, prompter Prompter, logger *zap.Logger) *Runner {
	return &Runner{
		opts:     opts,
		display:  display,
		prompter: prompter,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:   logger,
	}
}

// WithRecognizer sets the speech source shared by all cards
func (r *Runner) WithRecognizer(recognizer Recognizer) *Runner {
	r.recognizer = recognizer
	return r
}

// WithStore sets where collected answers are saved
func (r *Runner) WithStore(store Store) *Runner {
	r.store = store
	return r
}

// WithRand replaces the shuffle source
func (r *Runner) WithRand(rng *rand.Rand) *Runner {
	r.rand = rng
	return r
}

// Run plays every card in turn and saves the cards when answers were
// collected. Cards are shuffled in place unless the session is ordered.
// Nothing is saved when the session does not complete.
func (r *Runner) Run(ctx context.Context, cards []*card.Card) error {
	if r.opts.Mode == Speaking {
		if r.recognizer == nil {
			return errors.New("speaking mode needs a speech recognizer")
		}
		if closer, ok := r.recognizer.(io.Closer); ok {
			defer func() {
				if err := closer.Close(); err != nil {
					r.logger.Warn("failed to release speech recognizer", zap.Error(err))
				}
			}()
		}
	}

	if !r.opts.Ordered {
		Shuffle(cards, r.rand)
	}

	r.logger.Debug("starting session",
		zap.Int("cards", len(cards)),
		zap.Stringer("mode", r.opts.Mode),
		zap.Bool("ordered", r.opts.Ordered),
		zap.Bool("inverted", r.opts.Inverted))

	for i, c := range cards {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Play(ctx, c); err != nil {
			return fmt.Errorf("card %d (%s): %w", i+1, c.Topic, err)
		}
	}

	if !r.opts.Mode.CollectsAnswers() {
		return nil
	}
	if r.store == nil {
		r.logger.Warn("no store configured, answers are not saved")
		return nil
	}
	if err := r.store.Save(cards); err != nil {
		return fmt.Errorf("error saving answers: %w", err)
	}
	return nil
}

// Play takes one card from hidden to revealed
func (r *Runner) Play(ctx context.Context, c *card.Card) error {
	if err := r.draw(c, true); err != nil {
		return err
	}

	switch r.opts.Mode {
	case Passive:
		if err := r.prompter.Confirm(""); err != nil {
			return err
		}

	case Writing:
		answer, err := r.prompter.PromptText(WritePrompt)
		if err != nil {
			return err
		}
		c.SetAnswer(answer)

	case Speaking:
		if err := r.prompter.Confirm(ReadyPrompt); err != nil {
			return err
		}
		c.SetAnswer(r.recognizer.Capture(ctx))
		if err := r.prompter.Confirm(""); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown mode %s", r.opts.Mode)
	}

	if err := r.draw(c, false); err != nil {
		return err
	}
	return r.prompter.Confirm("")
}

func (r *Runner) draw(c *card.Card, hidden bool) error {
	opts := render.Options{Border: r.opts.Border}
	if hidden {
		opts.ShowPlaceholder = true
		opts.Inverted = r.opts.Inverted
	}

	lines, err := render.Compose(c, opts)
	if err != nil {
		return err
	}
	return r.display.Draw(lines)
}

// Shuffle permutes cards in place
func Shuffle(cards []*card.Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}
