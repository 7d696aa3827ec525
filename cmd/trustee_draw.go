package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trusteetool/trustee/internal/backup"
	"github.com/trusteetool/trustee/internal/configs"
	"github.com/trusteetool/trustee/internal/draw"
	terrors "github.com/trusteetool/trustee/internal/errors"
	"github.com/trusteetool/trustee/internal/roster"
	"github.com/trusteetool/trustee/internal/scratch"
	"github.com/trusteetool/trustee/internal/secretshare"
	"github.com/trusteetool/trustee/internal/session"
	"github.com/trusteetool/trustee/internal/terminal"
	"github.com/trusteetool/trustee/internal/ui"
)

var (
	allowRepeat bool
	timeoutSec  int
	noEnter     bool
	drawSeed    int64
	noBackup    bool
	skipMenu    bool
	namesFlag   string
)

func init() {
	DrawCmd.Flags().BoolVar(&allowRepeat, "allow-repeat", false, "allow repeated views by the same participant")
	DrawCmd.Flags().IntVar(&timeoutSec, "timeout", 0, "auto-clear after N seconds (disables the 'press Enter' prompt)")
	DrawCmd.Flags().BoolVar(&noEnter, "no-enter", false, "clear immediately after each reveal (same as --timeout 0)")
	DrawCmd.Flags().Int64Var(&drawSeed, "seed", 0, "set the assignment RNG seed for reproducible draws")
	DrawCmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip creating the sealed backup artifact")
	DrawCmd.Flags().BoolVar(&skipMenu, "skip-menu", false, "skip the configuration menu and use flags or saved defaults")
	DrawCmd.Flags().StringVar(&namesFlag, "names", "", "comma-separated participant names (skips the enrollment prompt)")
}

// resetDrawCommandState resets the draw command's global state for testing.
func resetDrawCommandState() {
	allowRepeat = false
	timeoutSec = 0
	noEnter = false
	drawSeed = 0
	noBackup = false
	skipMenu = false
	namesFlag = ""
}

var DrawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Generate gift assignments and run the private reveal session",
	Long: `Enrolls the participants, pairs everyone so that nobody gifts to
themselves, optionally seals an encrypted backup whose secret is split
into one share per participant, and then runs the turn-based private
reveal loop on this device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting draw command")

		settings, err := configs.Load()
		if err != nil {
			Logger.Warnf("Failed to load saved defaults: %v", err)
			settings = configs.DefaultSettings()
		}

		timeoutSet := cmd.Flags().Changed("timeout")
		if timeoutSet && timeoutSec < 0 {
			return Logger.ErrorfAndReturn("--timeout must be 0 or a positive number of seconds, got %d", timeoutSec)
		}

		oneShot := !allowRepeat
		if !cmd.Flags().Changed("allow-repeat") {
			oneShot = !settings.Reveal.AllowRepeat
		}
		createBackup := !noBackup
		if !cmd.Flags().Changed("no-backup") {
			createBackup = !settings.Backup.Disabled
		}
		wait := resolveWaitPolicy(settings, noEnter, timeoutSet, timeoutSec)

		reader := bufio.NewReader(os.Stdin)

		// The menu only runs when no explicit wait flag was given, so
		// flags always win for scripted runs.
		if !skipMenu && !noEnter && !timeoutSet && terminal.IsTerminal() {
			choice, err := showConfigurationMenu(reader, os.Stdout, func() {
				if err := terminal.ClearScreenAndScrollback(); err != nil {
					Logger.Debugf("Failed to clear screen: %v", err)
				}
			})
			if err != nil {
				return Logger.ErrorfAndReturn("Configuration menu aborted: %v", err)
			}
			wait = session.WaitPolicy{
				Manual:  choice.manualClear,
				Timeout: time.Duration(choice.timeoutSeconds) * time.Second,
			}
			createBackup = choice.createBackup
			if choice.saveAsDefaults {
				if err := saveChoiceAsDefaults(choice, oneShot); err != nil {
					Logger.Warnf("Failed to save defaults: %v", err)
				} else {
					fmt.Println(ui.Success.Sprint("✓") + " Defaults saved.")
				}
			}
		}

		// The interrupt handler must be in place before the assignment
		// touches durable storage, so a Ctrl+C can never strand a
		// readable scratch copy or leave a reveal on screen.
		var storeRef atomic.Pointer[scratch.Store]
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			sig, ok := <-sigCh
			if !ok {
				return
			}
			cancel()
			if err := terminal.ClearScreenAndScrollback(); err != nil {
				Logger.Debugf("Failed to clear screen on %v: %v", sig, err)
			}
			if err := storeRef.Load().Remove(); err != nil {
				Logger.Debugf("Scratch cleanup on %v: %v", sig, err)
			}
			// The reveal loop may be blocked reading stdin, so exit
			// here rather than waiting for it to notice the context.
			os.Exit(130)
		}()

		names := roster.ParseNames(namesFlag)
		if namesFlag == "" {
			names, err = promptNames(reader)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read participant names: %v", err)
			}
		}

		r, err := roster.New(names)
		if err != nil {
			if errors.Is(err, terrors.ErrTooFewParticipants) {
				return Logger.ErrorfAndReturn("Need at least 2 distinct names. Exiting.")
			}
			return Logger.ErrorfAndReturn("Failed to enroll participants: %v", err)
		}
		Logger.Infof("Enrolled %d participants", r.Len())

		var seedPtr *int64
		if cmd.Flags().Changed("seed") {
			seedPtr = &drawSeed
			Logger.Debugf("Using fixed RNG seed %d", drawSeed)
		}
		assignment, err := draw.Derange(r.Names(), draw.NewRand(seedPtr))
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to generate assignments: %v", err)
		}

		store, err := scratch.Write(assignment)
		if err != nil {
			Logger.WarnfUser("Could not write the scratch copy of the assignments: %v", err)
		} else {
			storeRef.Store(store)
			Logger.Debugf("Scratch copy at %s (session %s)", store.Path(), store.SessionID())
		}
		defer func() {
			if err := store.Remove(); err != nil {
				Logger.Debugf("Scratch cleanup: %v", err)
			}
		}()

		shares, artifactPath := createSealedBackup(createBackup, assignment, r.Len())
		if createBackup {
			// Brief pause so the organizer sees the backup outcome
			// before the screen clears for reveal mode.
			time.Sleep(2 * time.Second)
		}

		if err := terminal.ClearScreenAndScrollback(); err != nil {
			Logger.Debugf("Failed to clear screen: %v", err)
		}
		banner := figure.NewColorFigure("Trustee", "", "green", true)
		banner.Print()
		fmt.Println()

		sess := session.New(r, assignment, shares, session.Options{
			OneShot:    oneShot,
			Wait:       wait,
			BackupPath: artifactPath,
		}, terminal.Screen{}, reader, os.Stdout, Logger)

		if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return Logger.ErrorfAndReturn("Reveal session failed: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Session ended. The scratch copy of the assignments has been deleted.")
		if artifactPath != "" {
			fmt.Println(ui.Info.Sprint("→") + " Sealed backup kept at " + ui.Path.Sprint(artifactPath))
		}
		return nil
	},
}

// resolveWaitPolicy maps flags and saved defaults onto the session wait
// policy. Flags win over saved defaults.
func resolveWaitPolicy(settings configs.Settings, noEnter, timeoutSet bool, timeoutSec int) session.WaitPolicy {
	switch {
	case noEnter:
		return session.WaitPolicy{Manual: false, Timeout: 0}
	case timeoutSet:
		return session.WaitPolicy{Manual: false, Timeout: time.Duration(timeoutSec) * time.Second}
	default:
		return session.WaitPolicy{
			Manual:  settings.Reveal.ManualClear,
			Timeout: time.Duration(settings.Reveal.TimeoutSeconds) * time.Second,
		}
	}
}

func saveChoiceAsDefaults(choice menuChoice, oneShot bool) error {
	return configs.Save(configs.Settings{
		Reveal: configs.RevealSettings{
			AllowRepeat:    !oneShot,
			ManualClear:    choice.manualClear,
			TimeoutSeconds: choice.timeoutSeconds,
		},
		Backup: configs.BackupSettings{Disabled: !choice.createBackup},
	})
}

func promptNames(reader *bufio.Reader) ([]string, error) {
	fmt.Println("Enter all participant names, comma-separated (at least 2):")
	fmt.Print("> ")
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return roster.ParseNames(line), nil
}

// createSealedBackup generates the 4n-digit secret, seals the listing,
// and splits the secret into one share per participant. Any failure
// degrades to no-backup mode with a single warning; the reveal flow
// must never be blocked by a missing backup.
func createSealedBackup(enabled bool, assignment draw.Assignment, n int) (shares []string, artifactPath string) {
	if !enabled {
		Logger.Infof("Sealed backup disabled")
		return nil, ""
	}

	spinner, cleanup := startSpinner("Creating sealed backup...", verbose)
	defer cleanup()

	secret, err := secretshare.Generate(n)
	if err != nil {
		spinner.FinalMSG = color.YellowString("⚠") + " Failed to create sealed backup: " + err.Error() + "\n" +
			color.CyanString("→") + " Continuing without backup; no shares will be shown."
		return nil, ""
	}

	wd, err := os.Getwd()
	if err != nil {
		spinner.FinalMSG = color.YellowString("⚠") + " Failed to create sealed backup: " + err.Error() + "\n" +
			color.CyanString("→") + " Continuing without backup; no shares will be shown."
		return nil, ""
	}

	artifact, err := backup.Seal(wd, assignment, secret)
	if err != nil {
		spinner.FinalMSG = color.YellowString("⚠") + " Failed to create sealed backup: " + err.Error() + "\n" +
			color.CyanString("→") + " Continuing without backup; no shares will be shown."
		return nil, ""
	}

	shares, err = secretshare.Split(secret, n)
	if err != nil {
		// The artifact exists but the shares cannot be handed out, so
		// it is unrecoverable; remove it rather than strand it.
		if rmErr := os.Remove(artifact.Path); rmErr != nil {
			Logger.Debugf("Failed to remove unusable artifact: %v", rmErr)
		}
		spinner.FinalMSG = color.YellowString("⚠") + " Failed to split the backup secret: " + err.Error() + "\n" +
			color.CyanString("→") + " Continuing without backup; no shares will be shown."
		return nil, ""
	}

	Logger.Infof("Sealed backup created at %s", artifact.Path)
	spinner.FinalMSG = color.GreenString("✓") + " Sealed backup created: " + color.YellowString(artifact.Path) + "\n" +
		color.CyanString("→") + " Each participant will receive one part of the secret during their reveal."

	return shares, artifact.Path
}
