package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/flashcards/internal/card"
	"github.com/arcanaland/flashcards/internal/config"
	"github.com/arcanaland/flashcards/internal/deck"
	"github.com/arcanaland/flashcards/internal/session"
	"github.com/arcanaland/flashcards/internal/terminal"
)

var (
	genWriting  bool
	genSpeaking bool
	genAppend   bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate [deck]",
	Short: "Write a new deck interactively",
	Long: `Generate asks for a topic and its content, card after card, and writes the
cards to the deck. Content is typed with --writing or spoken with --speaking.

A bare deck name is created in the deck library, anything path-like is used
as given. The deck is overwritten unless --append is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := session.ModeFromFlags(genWriting, genSpeaking)
		if err != nil {
			return err
		}
		if !mode.CollectsAnswers() {
			return session.ErrNoInputMode
		}

		path := config.GetNewDeckPath(args[0])

		var existing []*card.Card
		if genAppend {
			existing, err = deck.LoadCards(path)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
		}

		console := terminal.NewConsole(os.Stdin, os.Stdout, cfg.BorderRune())
		author := session.NewAuthor(mode, console, console.Out(), logger)
		if mode == session.Speaking {
			author.WithRecognizer(newListener(console.Out()))
		}

		collected, collectErr := author.Collect(cmd.Context())
		if len(collected) == 0 {
			if collectErr == nil {
				fmt.Println("No cards written.")
			}
			return collectErr
		}

		// Partial progress is kept even when input broke off
		saveErr := deck.SaveCards(path, append(existing, collected...))
		if saveErr == nil {
			logger.Debug("deck written", zap.String("path", path), zap.Int("new_cards", len(collected)))
			fmt.Printf("Wrote %d cards to %s\n", len(collected), path)
		}

		return errors.Join(collectErr, saveErr)
	},
}

func init() {
	generateCmd.Flags().BoolVarP(&genWriting, "writing", "W", false, "Type the content of every card")
	generateCmd.Flags().BoolVarP(&genSpeaking, "speaking", "S", false, "Speak the content of every card")
	generateCmd.Flags().BoolVar(&genAppend, "append", false, "Add the cards to an existing deck")
	generateCmd.MarkFlagsMutuallyExclusive("writing", "speaking")
}
