package cmd

import (
	"errors"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/trusteetool/trustee/internal/backup"
	terrors "github.com/trusteetool/trustee/internal/errors"
	"github.com/trusteetool/trustee/internal/terminal"
)

var unsealSecret string

func init() {
	UnsealCmd.Flags().StringVar(&unsealSecret, "secret", "", "the combined secret (prompted for securely when omitted)")
}

// resetUnsealCommandState resets the unseal command's global state for testing.
func resetUnsealCommandState() {
	unsealSecret = ""
}

var UnsealCmd = &cobra.Command{
	Use:   "unseal <artifact>",
	Short: "Open a sealed backup with the combined secret",
	Long: `Decrypts a sealed backup artifact and prints the full assignment
listing. The secret is the concatenation of every participant's part, in
part order. All parts are required; no subset can open the artifact.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		artifactPath := args[0]
		Logger.Infof("Starting unseal command for %s", artifactPath)

		secret := strings.TrimSpace(unsealSecret)
		if secret == "" {
			entered, err := terminal.ReadPassphrase("Enter the combined secret (all parts, in order): ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to read secret: %v", err)
			}
			secret = strings.TrimSpace(string(entered))
		}
		if secret == "" {
			return Logger.ErrorfAndReturn("No secret entered")
		}

		spinner, cleanup := startSpinner("Opening sealed backup...", verbose)
		defer cleanup()

		listing, err := backup.Open(artifactPath, secret)
		if err != nil {
			switch {
			case errors.Is(err, terrors.ErrSealOpenFailed):
				spinner.FinalMSG = color.RedString("✗") + " The secret does not open this backup\n" +
					color.CyanString("→") + " Check that every part is present and in part order"
				return nil
			case errors.Is(err, terrors.ErrInvalidArtifact):
				spinner.FinalMSG = color.RedString("✗") + " " + color.YellowString(artifactPath) + " is not a valid sealed backup"
				return nil
			default:
				return Logger.ErrorfAndReturn("Failed to open backup: %v", err)
			}
		}

		Logger.Infof("Backup opened successfully")
		spinner.FinalMSG = color.GreenString("✓") + " Backup opened\n\n" + string(listing)
		return nil
	},
}
