package cli

import (
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/spf13/cobra"
)

var newPassword string

var passwordCmd = &cobra.Command{
	Use:     "password <username>",
	Aliases: []string{"passwd"},
	Short:   "Change an account password",
	Long: `Change the password of an account. Without --password the new password is
read from the terminal twice with echo disabled.

Examples:
  hostprov password bob
  hostprov passwd bob --password 'N3w!Passw0rd'`,
	Args: cobra.ExactArgs(1),
	RunE: runPassword,
}

func init() {
	passwordCmd.Flags().StringVar(&newPassword, "password", "", "New password (default: prompt)")

	rootCmd.AddCommand(passwordCmd)
}

func runPassword(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	pw := newPassword
	if pw == "" {
		if pw, err = readNewPassword(); err != nil {
			return err
		}
	}

	res, err := svc.ChangePassword(commandContext(cmd), provision.ChangePasswordParams{
		AccountIdentity: identity(args[0]),
		Password:        pw,
	})
	if err != nil {
		return err
	}
	return outputResult(res, "Password changed for %s", args[0])
}
