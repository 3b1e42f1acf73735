// Package terminal draws cards on the controlling terminal and reads answers.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// clearScreen moves the cursor home and erases the display
const clearScreen = "\033[H\033[2J"

// Console is a full-screen display plus a line-based prompter
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	border rune
	isTTY  bool
	fd     int

	frame  *color.Color
	prompt *color.Color
}

// NewConsole creates a console. Colors and screen clearing are only used
// when out is a terminal.
func NewConsole(in io.Reader, out io.Writer, border rune) *Console {
	c := &Console{
		in:     bufio.NewReader(in),
		out:    out,
		border: border,
		frame:  color.New(color.FgCyan),
		prompt: color.New(color.FgYellow, color.Bold),
	}

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		c.isTTY = true
		c.fd = int(f.Fd())
	} else {
		c.frame.DisableColor()
		c.prompt.DisableColor()
	}

	return c
}

// Out returns the writer the console prints to
func (c *Console) Out() io.Writer {
	return c.out
}

// Width returns the terminal width in columns, ok is false when unknown
func (c *Console) Width() (width int, ok bool) {
	if !c.isTTY {
		return 0, false
	}
	width, _, err := term.GetSize(c.fd)
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// Draw clears the screen and prints lines
func (c *Console) Draw(lines []string) error {
	var b strings.Builder
	if c.isTTY {
		b.WriteString(clearScreen)
	}
	for _, line := range lines {
		b.WriteString(c.paint(line))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(c.out, b.String())
	return err
}

// Confirm prints message and waits for Enter
func (c *Console) Confirm(message string) error {
	_, err := c.PromptText(message)
	return err
}

// PromptText prints message and returns the line typed by the user
func (c *Console) PromptText(message string) (string, error) {
	if message != "" {
		if _, err := fmt.Fprint(c.out, c.prompt.Sprint(message)); err != nil {
			return "", err
		}
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		// Accept a final line without a newline
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// paint colors the frame of a styled line
func (c *Console) paint(line string) string {
	runes := []rune(line)
	if len(runes) == 0 {
		return line
	}

	if strings.Trim(line, string(c.border)) == "" {
		return c.frame.Sprint(line)
	}

	first, last := runes[0], runes[len(runes)-1]
	if len(runes) < 2 || first != c.border || last != c.border {
		return line
	}
	return c.frame.Sprint(string(first)) + string(runes[1:len(runes)-1]) + c.frame.Sprint(string(last))
}
