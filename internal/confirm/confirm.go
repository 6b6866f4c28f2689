package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer is the yes/no gate in front of all destructive work.
// Production uses a terminal prompt; tests use Static.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// TerminalConfirmer prompts on out and reads exactly one line from in.
// Only "y" or "yes" (case-insensitive) counts as affirmative; anything
// else, including an empty line, declines. When Interactive is false
// (stdin is a pipe) the line is still read but no prompt is echoed.
type TerminalConfirmer struct {
	In          io.Reader
	Out         io.Writer
	Interactive bool
}

func (t *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	if t.Interactive {
		fmt.Fprintf(t.Out, "%s [y/N]: ", prompt)
	}

	reader := bufio.NewReader(t.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	return Affirmative(line), nil
}

// Affirmative reports whether a raw input line is a yes-style answer
func Affirmative(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// Static is a Confirmer with a fixed answer, used by tests and --yes
type Static bool

func (s Static) Confirm(string) (bool, error) {
	return bool(s), nil
}
