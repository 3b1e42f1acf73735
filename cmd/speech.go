package cmd

import (
	"io"
	"time"

	"github.com/arcanaland/flashcards/internal/speech"
)

// newListener wires the configured recorder and speech service together
func newListener(out io.Writer) *speech.Listener {
	sc := cfg.Speech
	if sc.AppID == "" || sc.AccessToken == "" {
		logger.Warn("speech credentials are not set, every spoken answer will fall back to " + sc.FallbackText)
	}

	recorder := &speech.CommandRecorder{
		Command: sc.RecordCommand,
		Seconds: sc.RecordSeconds,
	}
	asr := speech.NewASRClient(
		sc.Endpoint,
		sc.AppID,
		sc.AccessToken,
		sc.ResourceID,
		sc.Language,
		time.Duration(sc.TimeoutSecs)*time.Second,
		logger,
	)

	return speech.NewListener(recorder, asr, sc.FallbackText, out, logger)
}
