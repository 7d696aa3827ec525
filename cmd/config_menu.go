package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// menuChoice is the outcome of the interactive configuration menu.
type menuChoice struct {
	manualClear    bool
	timeoutSeconds int
	createBackup   bool
	saveAsDefaults bool
}

// showConfigurationMenu walks the organizer through the session options
// before any names are entered. The clear function is injected so tests
// can run without a TTY.
func showConfigurationMenu(in io.Reader, out io.Writer, clear func()) (menuChoice, error) {
	reader := bufio.NewReader(in)
	choice := menuChoice{manualClear: true, createBackup: true}

	clear()
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Trustee - Configuration Settings")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Option 1] Screen clearing after viewing results:")
	fmt.Fprintln(out, "  Enter 0: Manual mode - Press Enter to clear screen")
	fmt.Fprintln(out, "  Enter N (positive integer): Auto mode - Clear after N seconds")
	fmt.Fprintln(out)

	for {
		fmt.Fprint(out, "Enter timeout value (0 for manual) [default: 0]: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return choice, err
		}
		input := strings.TrimSpace(line)

		// Default to manual mode.
		if input == "" || input == "0" {
			choice.manualClear = true
			choice.timeoutSeconds = 0
			break
		}

		value, convErr := strconv.Atoi(input)
		if convErr != nil || value < 0 {
			fmt.Fprintln(out, "Invalid input. Please enter 0 or a positive integer.")
			continue
		}

		choice.manualClear = false
		choice.timeoutSeconds = value
		break
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintln(out, "[Option 2] Generate sealed backup file:")
	fmt.Fprintln(out, "  [1] Yes - Create sealed artifact, each person gets a secret part")
	fmt.Fprintln(out, "  [2] No  - Do not create backup file")
	fmt.Fprintln(out)

	for {
		fmt.Fprint(out, "Please choose (1/2) [default: 1]: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return choice, err
		}
		switch strings.TrimSpace(line) {
		case "", "1":
			choice.createBackup = true
		case "2":
			choice.createBackup = false
		default:
			fmt.Fprintln(out, "Invalid input. Please enter 1 or 2")
			continue
		}
		break
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "Configuration complete!")
	if choice.manualClear {
		fmt.Fprintln(out, "  - Screen clearing: Manual (Press Enter)")
	} else {
		fmt.Fprintf(out, "  - Screen clearing: Auto (Clear after %d seconds)\n", choice.timeoutSeconds)
	}
	if choice.createBackup {
		fmt.Fprintln(out, "  - Sealed backup: Enabled")
	} else {
		fmt.Fprintln(out, "  - Sealed backup: Disabled")
	}
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out)

	for {
		fmt.Fprint(out, "Save these choices as defaults for future runs? (y/N): ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return choice, nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			choice.saveAsDefaults = true
		case "", "n", "no":
			choice.saveAsDefaults = false
		default:
			fmt.Fprintln(out, "Please answer y or n.")
			continue
		}
		break
	}

	return choice, nil
}
