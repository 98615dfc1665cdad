package cli

import (
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:     "info <username>",
	Aliases: []string{"show"},
	Short:   "Show an account",
	Long: `Show the current state of an account as the panel reports it.

Examples:
  hostprov info bob
  hostprov info bob@example.com -s enhance1 --customer-id 4e7c... --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

var usageCmd = &cobra.Command{
	Use:   "usage <username>",
	Short: "Show resource usage of an account",
	Long: `Show disk, bandwidth and other quota usage of an account. Resellers also
get the totals of their sub-accounts.

Examples:
  hostprov usage bob
  hostprov usage bob --json`,
	Args: cobra.ExactArgs(1),
	RunE: runUsage,
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(usageCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	info, err := svc.GetInfo(commandContext(cmd), identity(args[0]))
	if err != nil {
		return err
	}
	return outputAccount(info, "")
}

func runUsage(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	usage, err := svc.GetUsage(commandContext(cmd), identity(args[0]))
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(usage)
	}
	output.Usage(usage)
	return nil
}
