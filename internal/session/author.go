package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arcanaland/flashcards/internal/card"
)

// Prompts used while writing a new deck
const (
	TopicPrompt    = "Please input topic) "
	ContinuePrompt = "Please [Enter] to proceed, otherwise input some characters) "
)

// ErrNoInputMode is returned when authoring is started in passive mode
var ErrNoInputMode = errors.New("specify writing or speaking to create cards")

// Author collects new cards from the user
type Author struct {
	mode       Mode
	prompter   Prompter
	recognizer Recognizer
	out        io.Writer
	logger     *zap.Logger
}

// NewAuthor creates an author. Speaking mode also needs WithRecognizer.
func NewAuthor(mode Mode, prompter Prompter, out io.Writer, logger *zap.Logger) *Author {
	return &Author{
		mode:     mode,
		prompter: prompter,
		out:      out,
		logger:   logger,
	}
}

// WithRecognizer sets the speech source for card contents
func (a *Author) WithRecognizer(recognizer Recognizer) *Author {
	a.recognizer = recognizer
	return a
}

// Collect asks for cards until the user stops. The cards gathered so far
// are returned together with any input error so callers can keep them.
// End of input at the topic prompt finishes cleanly.
func (a *Author) Collect(ctx context.Context) ([]*card.Card, error) {
	if !a.mode.CollectsAnswers() {
		return nil, ErrNoInputMode
	}
	if a.mode == Speaking && a.recognizer == nil {
		return nil, errors.New("speaking mode needs a speech recognizer")
	}

	var cards []*card.Card
	for {
		if err := ctx.Err(); err != nil {
			return cards, err
		}

		topic, err := a.prompter.PromptText(TopicPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return cards, nil
			}
			return cards, err
		}

		content, err := a.content(ctx)
		if err != nil {
			return cards, err
		}

		fmt.Fprintf(a.out, "topic: %s\n", topic)
		fmt.Fprintf(a.out, "content: %s\n", content)
		cards = append(cards, card.New(topic, content))
		a.logger.Debug("card collected", zap.String("topic", topic), zap.Int("total", len(cards)))

		next, err := a.prompter.PromptText(ContinuePrompt)
		if err != nil {
			return cards, err
		}
		if next != "" {
			return cards, nil
		}
	}
}

func (a *Author) content(ctx context.Context) (string, error) {
	if a.mode == Speaking {
		return a.recognizer.Capture(ctx), nil
	}
	return a.prompter.PromptText(WritePrompt)
}
