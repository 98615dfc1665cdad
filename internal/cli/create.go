package cli

import (
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/spf13/cobra"
)

var (
	createDomain       string
	createEmail        string
	createPackage      string
	createUsername     string
	createPassword     string
	createCustomerName string
	createOwner        string
	createOwnsItself   bool
	createReseller     bool
	createACL          string
	createAccountLimit int
	createIP           string
	createLocation     string
	createWelcome      bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a hosting account",
	Long: `Create a hosting account on the selected server.

If --password is omitted the password is read from the terminal. A missing
--username is derived from the domain (WHM, Plesk). On failure every object
created so far is removed again.

Examples:
  hostprov create --domain example.com --email bob@example.com --package Gold
  hostprov create -s whm1 --domain shop.example.com --email bob@example.com --package Gold --reseller --acl default
  hostprov create -s enhance1 --email bob@example.com --package Business --customer-name "Bob Ltd" --welcome`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func init() {
	f := createCmd.Flags()
	f.StringVarP(&createDomain, "domain", "d", "", "Primary domain")
	f.StringVarP(&createEmail, "email", "e", "", "Contact email address (required)")
	f.StringVarP(&createPackage, "package", "p", "", "Package or plan name (required)")
	f.StringVarP(&createUsername, "username", "u", "", "Username (default: derived from the domain)")
	f.StringVar(&createPassword, "password", "", "Account password (default: prompt)")
	f.StringVar(&createCustomerName, "customer-name", "", "Customer display name")
	f.StringVar(&createOwner, "owner", "", "Owning reseller or customer login")
	f.BoolVar(&createOwnsItself, "owns-itself", false, "Make the new reseller own its own account (WHM)")
	f.BoolVar(&createReseller, "reseller", false, "Create the account as a reseller")
	f.StringVar(&createACL, "acl", "", "Reseller ACL name (WHM)")
	f.IntVar(&createAccountLimit, "account-limit", 0, "Maximum number of accounts for a reseller (0 = panel default)")
	f.StringVar(&createIP, "ip", "", "Dedicated IP address")
	f.StringVar(&createLocation, "location", "", "Server location hint")
	f.BoolVar(&createWelcome, "welcome", false, "Print a welcome message for the new account")

	rootCmd.AddCommand(createCmd)
}

func createParams() provision.CreateParams {
	params := provision.CreateParams{
		Username:      createUsername,
		OwnerUsername: createOwner,
		OwnsItself:    createOwnsItself,
		Email:         createEmail,
		CustomerName:  createCustomerName,
		Password:      createPassword,
		Domain:        createDomain,
		PackageName:   createPackage,
		AsReseller:    createReseller,
		CustomIP:      createIP,
		Location:      createLocation,
	}
	if createReseller && (createACL != "" || createAccountLimit > 0) {
		params.ResellerOptions = &provision.ResellerOptions{ACLName: createACL}
		if createAccountLimit > 0 {
			limit := createAccountLimit
			params.ResellerOptions.AccountLimit = &limit
		}
	}
	return params
}

func runCreate(cmd *cobra.Command, args []string) error {
	params := createParams()

	svc, srv, err := loadService()
	if err != nil {
		return err
	}

	// Validate before prompting so bad input fails fast
	if err := params.Validate(svc.Provider().Capabilities()); err != nil {
		return err
	}

	if params.Password == "" {
		if params.Password, err = readNewPassword(); err != nil {
			return err
		}
	}

	progress("Creating account on %s (%s)...", srv.Name, srv.Provider)
	info, err := svc.Create(commandContext(cmd), params)
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(info)
	}
	if err := outputAccount(info, "Account %s created", info.Username); err != nil {
		return err
	}
	if createWelcome {
		output.Print("")
		return printWelcome(srv.Provider, info, nil)
	}
	return nil
}
