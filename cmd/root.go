package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/flashcards/internal/config"
	"github.com/arcanaland/flashcards/internal/logging"
)

var (
	// Global flags
	verbose   bool
	width     int
	minHeight int

	// Set up before any subcommand runs
	logger *zap.Logger
	cfg    *config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Study flashcards in the terminal",
	Long: `Flashcards is a command-line tool for studying topic/content cards.
Cards are read from YAML or TOML deck files, shown one at a time inside a
bordered box, and answers can be typed or spoken and saved back to the deck.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load()

		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
		if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
			logger.Warn("failed to load .env file", zap.Error(envErr))
		}

		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		if cmd.Flags().Changed("width") {
			cfg.Card.MaxWidth = width
		}
		if cmd.Flags().Changed("min-height") {
			cfg.Card.MinContentHeight = minHeight
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger.Debug("configuration loaded",
			zap.String("path", config.GetConfigFilePath()),
			zap.Int("max_width", cfg.Card.MaxWidth),
			zap.Int("min_content_height", cfg.Card.MinContentHeight))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	RootCmd.PersistentFlags().IntVar(&width, "width", 0, "Card width in columns (overrides config)")
	RootCmd.PersistentFlags().IntVar(&minHeight, "min-height", 0, "Minimum content block height (overrides config)")

	RootCmd.AddCommand(studyCmd)
	RootCmd.AddCommand(generateCmd)
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
