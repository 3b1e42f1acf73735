package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/flashcards/internal/config"
	"github.com/arcanaland/flashcards/internal/deck"
	"github.com/arcanaland/flashcards/internal/session"
	"github.com/arcanaland/flashcards/internal/terminal"
)

var (
	ordered  bool
	inverted bool
	writing  bool
	speaking bool
)

// studyCmd represents the study command
var studyCmd = &cobra.Command{
	Use:   "study [deck...]",
	Short: "Study the cards of one or more decks",
	Long: `Study shows every card of the given decks one at a time.
The topic is shown first and the content is revealed after [Enter]. With
--inverted the content is shown first. With --writing or --speaking your
answer is collected before the reveal and saved back to the deck.

If no deck is given, the default deck is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := session.ModeFromFlags(writing, speaking)
		if err != nil {
			return err
		}

		paths, err := resolveDecks(args)
		if err != nil {
			return err
		}

		store := deck.NewStore(cfg.Card.MaxWidth, cfg.Card.MinContentHeight)
		cards, err := store.Load(paths)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			fmt.Println("No cards found.")
			return nil
		}

		console := terminal.NewConsole(os.Stdin, os.Stdout, cfg.BorderRune())
		if w, ok := console.Width(); ok && w < cfg.Card.MaxWidth {
			logger.Warn("terminal is narrower than the card width, lines will wrap",
				zap.Int("terminal_width", w),
				zap.Int("card_width", cfg.Card.MaxWidth))
		}

		runner := session.NewRunner(session.Options{
			Ordered:  ordered,
			Inverted: inverted,
			Mode:     mode,
			Border:   cfg.BorderRune(),
		}, console, console, logger).WithStore(store)

		if mode == session.Speaking {
			runner.WithRecognizer(newListener(console.Out()))
		}

		return runner.Run(cmd.Context(), cards)
	},
}

// resolveDecks maps deck arguments to files, falling back to the default deck
func resolveDecks(names []string) ([]string, error) {
	if len(names) == 0 {
		if cfg.DefaultDeck == "" {
			return nil, errors.New("no deck given and no default deck set, see 'flashcards deck set-default'")
		}
		names = []string{cfg.DefaultDeck}
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path, err := config.GetDeckPath(name)
		if err != nil {
			return nil, err
		}
		logger.Debug("deck resolved", zap.String("name", name), zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

func init() {
	studyCmd.Flags().BoolVarP(&ordered, "ordered", "o", false, "Keep the deck order instead of shuffling")
	studyCmd.Flags().BoolVarP(&inverted, "inverted", "i", false, "Show the content first and hide the topic")
	studyCmd.Flags().BoolVarP(&writing, "writing", "W", false, "Type an answer for every card")
	studyCmd.Flags().BoolVarP(&speaking, "speaking", "S", false, "Speak an answer for every card")
	studyCmd.MarkFlagsMutuallyExclusive("writing", "speaking")
}
