package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ksyq12/hostprov/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of environment variables that stand in for
// global flags, e.g. HOSTPROV_SERVER or HOSTPROV_CUSTOMER_ID
const envPrefix = "HOSTPROV"

var (
	serverName     string
	configPath     string
	jsonOutput     bool
	verbose        bool
	customerID     string
	subscriptionID string
	version        = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hostprov",
	Short: "Shared hosting account provisioning CLI",
	Long: `hostprov manages shared hosting accounts on cPanel/WHM, Plesk and Enhance
through one set of commands.

Servers are configured in ~/.config/hostprov/config.yaml (see "hostprov servers").
Every global flag can also be set through the environment, for example
HOSTPROV_SERVER=whm1 or HOSTPROV_JSON=true.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initSettings,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(err)
		stop()
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	addGlobalFlags(rootCmd)
}

// addGlobalFlags registers the flags shared by every command on cmd
func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&serverName, "server", "s", "", "Server name from the config (default: default_server)")
	flags.StringVar(&configPath, "config", "", "Config file (default ~/.config/hostprov/config.yaml)")
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	flags.StringVar(&customerID, "customer-id", "", "Customer id for panels that address accounts by id")
	flags.StringVar(&subscriptionID, "subscription-id", "", "Subscription id for panels that address accounts by id")
}

// initSettings resolves global flags against the environment and
// initializes the logger
func initSettings(cmd *cobra.Command, args []string) error {
	if err := loadSettings(cmd); err != nil {
		return err
	}
	logger.Init(verbose)
	return nil
}

// loadSettings fills the global flag variables. Explicit flags win over
// HOSTPROV_* variables.
func loadSettings(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return err
	}

	serverName = v.GetString("server")
	configPath = v.GetString("config")
	jsonOutput = v.GetBool("json")
	verbose = v.GetBool("verbose")
	customerID = v.GetString("customer-id")
	subscriptionID = v.GetString("subscription-id")
	return nil
}
