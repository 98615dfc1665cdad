package cli

import (
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/spf13/cobra"
)

var suspendReason string

var suspendCmd = &cobra.Command{
	Use:   "suspend <username>",
	Short: "Suspend an account",
	Long: `Suspend an account. Suspending an account that is already suspended
changes nothing.

Examples:
  hostprov suspend bob --reason "Unpaid invoice"`,
	Args: cobra.ExactArgs(1),
	RunE: runSuspend,
}

var unsuspendCmd = &cobra.Command{
	Use:   "unsuspend <username>",
	Short: "Unsuspend an account",
	Long: `Lift the suspension of an account.

Examples:
  hostprov unsuspend bob`,
	Args: cobra.ExactArgs(1),
	RunE: runUnsuspend,
}

func init() {
	suspendCmd.Flags().StringVarP(&suspendReason, "reason", "r", "", "Suspension reason shown in the panel")

	rootCmd.AddCommand(suspendCmd)
	rootCmd.AddCommand(unsuspendCmd)
}

func runSuspend(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	info, err := svc.Suspend(commandContext(cmd), provision.SuspendParams{
		AccountIdentity: identity(args[0]),
		Reason:          suspendReason,
	})
	if err != nil {
		return err
	}
	return outputAccount(info, "Account %s suspended", args[0])
}

func runUnsuspend(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	info, err := svc.Unsuspend(commandContext(cmd), identity(args[0]))
	if err != nil {
		return err
	}
	return outputAccount(info, "Account %s unsuspended", args[0])
}
