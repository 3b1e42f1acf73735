// Package speech turns spoken answers into text.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// SpeakPrompt is printed when recording starts
const SpeakPrompt = "( ´ゝ`) Speak ...)"

// Recorder captures raw audio
type Recorder interface {
	Record(ctx context.Context) ([]byte, error)
}

// Transcriber converts audio to text
type Transcriber interface {
	Transcribe(ctx context.Context, pcm []byte) (string, error)
}

// SecondsPlaceholder in a record command is replaced by the recording length
const SecondsPlaceholder = "{seconds}"

// CommandRecorder records by running an external program that writes raw
// PCM to stdout, for example arecord.
type CommandRecorder struct {
	Command []string
	Seconds int
}

// Record runs the recorder until it exits. The process, and with it the
// audio device, is released before Record returns on every path.
func (r *CommandRecorder) Record(ctx context.Context) ([]byte, error) {
	if len(r.Command) == 0 {
		return nil, errors.New("no record command configured")
	}

	args := make([]string, 0, len(r.Command)-1)
	for _, arg := range r.Command[1:] {
		args = append(args, strings.ReplaceAll(arg, SecondsPlaceholder, strconv.Itoa(r.Seconds)))
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Command[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("recording failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("recording failed: %w", err)
	}

	return stdout.Bytes(), nil
}

// Listener records an answer and transcribes it. Failures never reach the
// caller, they are logged and the fallback text is returned instead.
type Listener struct {
	Recorder    Recorder
	Transcriber Transcriber
	Fallback    string

	out    io.Writer
	logger *zap.Logger
}

// NewListener creates a listener printing its prompts to out
func NewListener(recorder Recorder, transcriber Transcriber, fallback string, out io.Writer, logger *zap.Logger) *Listener {
	return &Listener{
		Recorder:    recorder,
		Transcriber: transcriber,
		Fallback:    fallback,
		out:         out,
		logger:      logger,
	}
}

// Capture records and transcribes one answer
func (l *Listener) Capture(ctx context.Context) string {
	fmt.Fprintln(l.out, SpeakPrompt)

	pcm, err := l.Recorder.Record(ctx)
	if err != nil {
		l.logger.Warn("could not record audio", zap.Error(err))
		fmt.Fprintln(l.out, "Could not record audio")
		return l.Fallback
	}

	text, err := l.Transcriber.Transcribe(ctx, pcm)
	if err != nil {
		l.logger.Warn("speech recognition request failed", zap.Error(err), zap.Int("audio_bytes", len(pcm)))
		fmt.Fprintf(l.out, "Could not request results from the speech recognition service; %v\n", err)
		return l.Fallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		l.logger.Warn("speech recognition returned no transcript", zap.Int("audio_bytes", len(pcm)))
		fmt.Fprintln(l.out, "Speech recognition could not understand audio")
		return l.Fallback
	}

	return text
}
