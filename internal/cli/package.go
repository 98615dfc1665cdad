package cli

import (
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:     "package <username> <package>",
	Aliases: []string{"upgrade", "downgrade"},
	Short:   "Move an account to another package",
	Long: `Move an account to another package or plan.

Examples:
  hostprov package bob Platinum
  hostprov package bob@example.com "Business Plus" -s enhance1`,
	Args: cobra.ExactArgs(2),
	RunE: runPackage,
}

func init() {
	rootCmd.AddCommand(packageCmd)
}

func runPackage(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	info, err := svc.ChangePackage(commandContext(cmd), provision.ChangePackageParams{
		AccountIdentity: identity(args[0]),
		PackageName:     args[1],
	})
	if err != nil {
		return err
	}
	return outputAccount(info, "Account %s moved to package %s", args[0], args[1])
}
