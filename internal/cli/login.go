package cli

import (
	"runtime"

	"github.com/ksyq12/hostprov/internal/executor"
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/spf13/cobra"
)

var (
	loginIP   string
	loginOpen bool
)

var loginURLCmd = &cobra.Command{
	Use:   "login-url <username>",
	Short: "Create a one-time login URL",
	Long: `Create a pre-authenticated control panel URL for an account.

--ip is the address of the user who will open the link. Panels that bind
sessions to an address reject the URL from anywhere else.

Examples:
  hostprov login-url bob --ip 203.0.113.9
  hostprov login-url bob --ip 203.0.113.9 --open`,
	Args: cobra.ExactArgs(1),
	RunE: runLoginURL,
}

func init() {
	loginURLCmd.Flags().StringVar(&loginIP, "ip", "", "IP address of the user (required)")
	loginURLCmd.Flags().BoolVar(&loginOpen, "open", false, "Open the URL in the default browser")

	rootCmd.AddCommand(loginURLCmd)
}

func runLoginURL(cmd *cobra.Command, args []string) error {
	svc, _, err := loadService()
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	login, err := svc.GetLoginURL(ctx, provision.GetLoginURLParams{
		AccountIdentity: identity(args[0]),
		UserIP:          loginIP,
	})
	if err != nil {
		return err
	}

	if loginOpen {
		if err := executor.OpenURL(ctx, deps.Executor, runtime.GOOS, login.LoginURL); err != nil {
			output.Warn("Could not open browser: %v", err)
		}
	}

	if jsonOutput {
		return output.JSON(login)
	}
	output.Print("%s", login.LoginURL)
	if login.Expires != nil {
		output.Info("Expires %s", login.Expires.Local().Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
