package cli

import (
	"fmt"

	"github.com/ksyq12/hostprov/internal/input"
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/spf13/cobra"
)

var forceTerminate bool

var terminateCmd = &cobra.Command{
	Use:     "terminate <username>",
	Aliases: []string{"rm", "delete"},
	Short:   "Terminate an account",
	Long: `Permanently delete an account and its data.

Examples:
  hostprov terminate bob
  hostprov terminate bob --force`,
	Args: cobra.ExactArgs(1),
	RunE: runTerminate,
}

func init() {
	terminateCmd.Flags().BoolVarP(&forceTerminate, "force", "f", false, "Terminate without confirmation")

	rootCmd.AddCommand(terminateCmd)
}

func runTerminate(cmd *cobra.Command, args []string) error {
	username := args[0]

	svc, srv, err := loadService()
	if err != nil {
		return err
	}

	// Confirm termination if not forced
	if !forceTerminate {
		prompt := fmt.Sprintf("Terminate account '%s' on %s? All of its data will be deleted.", username, srv.Name)
		if !input.Confirm(deps.StdinReader, prompt) {
			output.Info("Termination cancelled")
			return nil
		}
	}

	progress("Terminating account %s...", username)
	res, err := svc.Terminate(commandContext(cmd), identity(username))
	if err != nil {
		return err
	}
	return outputResult(res, "Account %s terminated", username)
}
