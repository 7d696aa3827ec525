package terminal

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"
)

// ttyPath returns the controlling terminal device for this platform.
func ttyPath() string {
	if runtime.GOOS == "windows" {
		return "CON"
	}
	return "/dev/tty"
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// WriteToTTY writes content directly to the terminal (bypassing stdout/stderr).
// On Unix, writes to /dev/tty. On Windows, writes to CON.
// Returns an error if the TTY cannot be opened.
func WriteToTTY(content string) error {
	tty, err := os.OpenFile(ttyPath(), os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("cannot open %s for writing: %w", ttyPath(), err)
	}
	defer tty.Close()

	if _, err := tty.WriteString(content); err != nil {
		return fmt.Errorf("failed to write to TTY: %w", err)
	}
	return nil
}

// ClearScreenAndScrollback clears the visible screen and the scrollback
// buffer using ANSI escape sequences, writing directly to the TTY so it
// works even when stdout is redirected. Falls back to stdout when no
// TTY is available so sensitive content is still overwritten.
func ClearScreenAndScrollback() error {
	// ESC[2J clears the visible screen, ESC[H homes the cursor,
	// ESC[3J clears the scrollback buffer.
	const seq = "\033[2J\033[H\033[3J"
	if err := WriteToTTY(seq); err != nil {
		_, werr := fmt.Fprint(os.Stdout, seq)
		if werr != nil {
			return err
		}
	}
	return nil
}

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// Screen adapts the TTY clear into the session's Screen interface.
type Screen struct{}

// Clear clears the visible screen and scrollback.
func (Screen) Clear() error {
	return ClearScreenAndScrollback()
}
