package cli

import (
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/spf13/cobra"
)

var resellerCmd = &cobra.Command{
	Use:   "reseller",
	Short: "Manage reseller privileges",
	Long: `Grant or revoke reseller privileges. Only WHM supports resellers.

Examples:
  hostprov reseller grant bob
  hostprov reseller revoke bob`,
}

var resellerGrantCmd = &cobra.Command{
	Use:   "grant <username>",
	Short: "Make an account a reseller",
	Args:  cobra.ExactArgs(1),
	RunE:  runResellerGrant,
}

var resellerRevokeCmd = &cobra.Command{
	Use:   "revoke <username>",
	Short: "Remove reseller privileges from an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runResellerRevoke,
}

func init() {
	resellerCmd.AddCommand(resellerGrantCmd)
	resellerCmd.AddCommand(resellerRevokeCmd)

	rootCmd.AddCommand(resellerCmd)
}

func runResellerGrant(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	res, err := svc.GrantReseller(commandContext(cmd), identity(args[0]))
	if err != nil {
		return err
	}
	return outputReseller(res, "Account %s is now a reseller", args[0])
}

func runResellerRevoke(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	res, err := svc.RevokeReseller(commandContext(cmd), identity(args[0]))
	if err != nil {
		return err
	}
	return outputReseller(res, "Account %s is no longer a reseller", args[0])
}

func outputReseller(res *provision.ResellerPrivileges, successMsg string, username string) error {
	if jsonOutput {
		return output.JSON(res)
	}
	output.Success(successMsg, username)
	return nil
}
