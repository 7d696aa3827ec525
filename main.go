package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trusteetool/trustee/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "trustee",
	Short: "Trustee - A privacy-first Secret Santa helper for a single shared device.",
	Long: `Trustee pairs everyone in a group so that nobody gifts to themselves,
then lets each participant privately learn their recipient on a shared device.

Features:
  - Random gift assignments with no self-gifting (a derangement)
  - Turn-based private reveals with screen and scrollback clearing
  - Optional sealed backup unlocked by combining every participant's share

Usage:
  trustee <command> [flags]

Available Commands:
  draw       Generate assignments and run the private reveal session
  unseal     Open a sealed backup with the combined secret

Run 'trustee help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to Trustee! Run 'trustee --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.DrawCmd)
	rootCmd.AddCommand(cmd.UnsealCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
