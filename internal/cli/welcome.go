package cli

import (
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/ksyq12/hostprov/internal/template"
	"github.com/spf13/cobra"
)

var welcomeIP string

var welcomeCmd = &cobra.Command{
	Use:   "welcome <username>",
	Short: "Print a welcome message for an account",
	Long: `Print a welcome message with the account's login details, ready to be sent
to the customer. With --ip the message includes a one-time login URL for
that address.

Examples:
  hostprov welcome bob
  hostprov welcome bob --ip 203.0.113.9`,
	Args: cobra.ExactArgs(1),
	RunE: runWelcome,
}

func init() {
	welcomeCmd.Flags().StringVar(&welcomeIP, "ip", "", "Include a login URL for this IP address")

	rootCmd.AddCommand(welcomeCmd)
}

func runWelcome(cmd *cobra.Command, args []string) error {
	svc, srv, err := loadService()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	id := identity(args[0])
	info, err := svc.GetInfo(ctx, id)
	if err != nil {
		return err
	}

	var login *provision.LoginURL
	if welcomeIP != "" {
		login, err = svc.GetLoginURL(ctx, provision.GetLoginURLParams{AccountIdentity: id, UserIP: welcomeIP})
		if err != nil {
			return err
		}
	}
	return printWelcome(srv.Provider, info, login)
}

// printWelcome renders the provider's welcome template for info
func printWelcome(provider string, info *provision.AccountInfo, login *provision.LoginURL) error {
	msg, err := template.Render(provider, template.NewWelcomeData(info, login, ""))
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(map[string]string{"message": msg})
	}
	output.Print("%s", msg)
	return nil
}
