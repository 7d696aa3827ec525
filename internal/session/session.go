package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/trusteetool/trustee/internal/draw"
	terrors "github.com/trusteetool/trustee/internal/errors"
	logger "github.com/trusteetool/trustee/internal/logging"
	"github.com/trusteetool/trustee/internal/roster"
	"github.com/trusteetool/trustee/internal/ui"
)

// Screen clears the display between reveals. The real implementation
// writes ANSI sequences to the TTY; tests inject a fake.
type Screen interface {
	Clear() error
}

// WaitPolicy controls how long a reveal stays on screen before the
// unconditional clear.
type WaitPolicy struct {
	// Manual blocks until the viewer acknowledges with Enter.
	Manual bool
	// Timeout auto-clears after this delay when not manual. Zero clears
	// immediately with a one-line notice.
	Timeout time.Duration
}

// Options configures a reveal session.
type Options struct {
	// OneShot allows each participant at most one completed reveal.
	OneShot bool
	Wait    WaitPolicy
	// BackupPath is the sealed artifact the shares unlock. Empty
	// disables the share block of each reveal.
	BackupPath string
}

// Session drives the turn-based private reveal loop. It exclusively
// owns the viewed set; the assignment and shares are read-only.
type Session struct {
	roster *roster.Roster
	assign draw.Assignment
	shares []string // by enrollment position; nil without a backup
	opts   Options
	screen Screen
	in     *bufio.Reader
	out    io.Writer
	log    logger.Logger
	viewed map[string]bool
}

// New builds a session over the given roster and assignment. shares may
// be nil when no backup was created; otherwise it must hold one share
// per participant in enrollment order.
func New(r *roster.Roster, a draw.Assignment, shares []string, opts Options, screen Screen, in io.Reader, out io.Writer, log logger.Logger) *Session {
	return &Session{
		roster: r,
		assign: a,
		shares: shares,
		opts:   opts,
		screen: screen,
		in:     bufio.NewReader(in),
		out:    out,
		log:    log,
		viewed: make(map[string]bool),
	}
}

// Viewed reports whether the named participant has completed a reveal.
func (s *Session) Viewed(name string) bool {
	return s.viewed[name]
}

// Run executes the reveal loop until an end command, end of input, or
// context cancellation. The cancellation context is observed between
// prompts and during timed waits; the screen is cleared before Run
// returns from a cancelled reveal, so no sensitive content survives.
func (s *Session) Run(ctx context.Context) error {
	s.printIntro()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.out, "\nEnter your name: ")
		line, err := s.readLine()
		if err != nil {
			fmt.Fprintln(s.out, "\nEnd of input. Exiting.")
			return nil
		}

		query := strings.TrimSpace(line)
		if query == "" {
			fmt.Fprintln(s.out, "Please enter a non-empty name.")
			continue
		}
		if isEndCommand(query) {
			fmt.Fprintln(s.out, "Exiting. Temporary file cleaned up. Happy holidays!")
			return nil
		}

		p, err := s.roster.Resolve(query)
		switch {
		case err == nil:
			// resolved directly
		case errors.Is(err, terrors.ErrParticipantNotFound):
			fmt.Fprintln(s.out, "Name not found. Please re-check spelling and try again.")
			continue
		case errors.Is(err, terrors.ErrAmbiguousName):
			p, err = s.disambiguate(query)
			if err != nil {
				// Cancelled or input ended; back to the main prompt
				// without consuming a turn.
				continue
			}
		default:
			return err
		}

		if err := s.checkEligible(p); err != nil {
			if errors.Is(err, terrors.ErrAlreadyViewed) {
				fmt.Fprintln(s.out, "You have already viewed your assignment.")
				continue
			}
			return err
		}

		if err := s.reveal(ctx, p); err != nil {
			return err
		}
	}
}

// checkEligible enforces one-shot viewing.
func (s *Session) checkEligible(p roster.Participant) error {
	if s.opts.OneShot && s.viewed[p.Name] {
		s.log.Debugf("Rejected repeat view for %s", p.Name)
		return terrors.ErrAlreadyViewed
	}
	return nil
}

func (s *Session) printIntro() {
	fmt.Fprintln(s.out, "Assignments generated. Private reveal mode started.")
	fmt.Fprintln(s.out, "Type your NAME to see whom you gift to (case-insensitive).")
	fmt.Fprintln(s.out, "Type 'exit' or 'quit' to end (temporary file will be deleted).")
}

// disambiguate resolves a query that matched several case-variant
// participants. Accepts a 1-based index or an exact-case name; a cancel
// keyword aborts back to the main prompt. Invalid input re-prompts
// without limit.
func (s *Session) disambiguate(query string) (roster.Participant, error) {
	candidates := s.roster.Candidates(query)

	fmt.Fprintln(s.out, "Multiple participants match that entry:")
	for i, c := range candidates {
		fmt.Fprintf(s.out, "  %d. %s\n", i+1, c.Name)
	}

	for {
		fmt.Fprint(s.out, "Enter the number or exact name (or type 'cancel' to abort): ")
		line, err := s.readLine()
		if err != nil {
			return roster.Participant{}, terrors.ErrSelectionCancelled
		}

		selection := strings.TrimSpace(line)
		if selection == "" {
			fmt.Fprintln(s.out, "Please enter a selection.")
			continue
		}

		switch strings.ToLower(selection) {
		case "cancel", "abort", "back":
			fmt.Fprintln(s.out, "Selection cancelled. Returning to main prompt.")
			return roster.Participant{}, terrors.ErrSelectionCancelled
		}

		if idx, convErr := strconv.Atoi(selection); convErr == nil {
			if idx >= 1 && idx <= len(candidates) {
				return candidates[idx-1], nil
			}
			fmt.Fprintln(s.out, "Number out of range. Try again.")
			continue
		}

		if c, ok := exactMatch(candidates, selection); ok {
			return c, nil
		}
		fmt.Fprintln(s.out, "Input did not match any option. Try again.")
	}
}

// reveal shows the participant's receiver (and share, if any), marks
// them viewed, then waits per policy and clears. The clear runs on
// every path out of the reveal, including cancellation mid-wait.
func (s *Session) reveal(ctx context.Context, p roster.Participant) error {
	receiver, ok := s.assign.Receiver(p.Name)
	if !ok {
		return fmt.Errorf("no assignment recorded for %s", p.Name)
	}

	s.clearScreen()
	fmt.Fprintf(s.out, "*** ONLY FOR %s ***\n", p.Name)
	fmt.Fprintf(s.out, "\nYou will gift to: %s\n", ui.Highlight.Sprint(receiver))

	if s.shares != nil && p.Pos < len(s.shares) {
		fmt.Fprintf(s.out, "\n%s\n", strings.Repeat("=", 50))
		fmt.Fprintln(s.out, "YOUR PART OF THE BACKUP SECRET:")
		fmt.Fprintf(s.out, "[Part %d] %s\n", p.Pos+1, ui.Share.Sprint(s.shares[p.Pos]))
		fmt.Fprintf(s.out, "%s\n", strings.Repeat("=", 50))
		fmt.Fprintln(s.out, "\nSave this part securely!")
		fmt.Fprintln(s.out, "All participants must combine their parts (in order)")
		fmt.Fprintf(s.out, "to unlock: %s\n", ui.Path.Sprint(filepath.Base(s.opts.BackupPath)))
	}

	s.viewed[p.Name] = true
	s.log.Debugf("Revealed assignment for %s", p.Name)

	return s.waitThenClear(ctx)
}

func (s *Session) waitThenClear(ctx context.Context) error {
	switch {
	case s.opts.Wait.Manual:
		fmt.Fprint(s.out, "\n(Press Enter to clear, and pass to next person)")
		// End of input during the wait still falls through to the clear.
		_, _ = s.readLine()
	case s.opts.Wait.Timeout <= 0:
		fmt.Fprintln(s.out, "\n(Clearing now. Please pass the device to the next person.)")
	default:
		fmt.Fprintf(s.out, "\n(This message will be automatically cleared in %d seconds. Please pass the device to the next person afterward.)\n",
			int(s.opts.Wait.Timeout/time.Second))
		timer := time.NewTimer(s.opts.Wait.Timeout)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			s.clearScreen()
			return ctx.Err()
		}
	}

	s.clearScreen()
	return nil
}

func (s *Session) clearScreen() {
	if err := s.screen.Clear(); err != nil {
		s.log.Debugf("Failed to clear screen: %v", err)
	}
}

func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func exactMatch(candidates []roster.Participant, name string) (roster.Participant, bool) {
	for _, c := range candidates {
		if c.Name == name {
			return c, true
		}
	}
	return roster.Participant{}, false
}

func isEndCommand(query string) bool {
	switch strings.ToLower(query) {
	case "exit", "quit":
		return true
	}
	return false
}
