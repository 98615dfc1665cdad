package cli

import (
	"fmt"
	"strconv"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/input"
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/spf13/cobra"
)

var (
	addProvider string
	addHostname string
	addPort     int
	addUsername string
	addPassword string
	addAPIToken string
	addOrgID    string
	addInsecure bool
	addDefault  bool

	forceRemoveServer bool
)

var serversCmd = &cobra.Command{
	Use:     "servers",
	Aliases: []string{"server"},
	Short:   "List configured servers",
	Long: `List the panel servers in the config file and whether their settings are
complete.

Examples:
  hostprov servers
  hostprov servers --json`,
	Args: cobra.NoArgs,
	RunE: runServersList,
}

var serversAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a server",
	Long: `Add a panel server to the config file. A missing API token (or Plesk
password) is read from the terminal.

Examples:
  hostprov servers add whm1 --provider whm --hostname whm.example.com --username root
  hostprov servers add plesk1 --provider plesk --hostname plesk.example.com --username admin
  hostprov servers add enhance1 --provider enhance --hostname cp.example.com --org-id 4e7c...`,
	Args: cobra.ExactArgs(1),
	RunE: runServersAdd,
}

var serversRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a server",
	Args:    cobra.ExactArgs(1),
	RunE:    runServersRemove,
}

var serversDefaultCmd = &cobra.Command{
	Use:   "default <name>",
	Short: "Set the default server",
	Args:  cobra.ExactArgs(1),
	RunE:  runServersDefault,
}

func init() {
	f := serversAddCmd.Flags()
	f.StringVar(&addProvider, "provider", "", "Panel type: whm, plesk or enhance (required)")
	f.StringVar(&addHostname, "hostname", "", "Panel hostname or base URL (required)")
	f.IntVar(&addPort, "port", 0, "API port (default: provider default)")
	f.StringVar(&addUsername, "username", "", "API user")
	f.StringVar(&addPassword, "password", "", "API password (Plesk)")
	f.StringVar(&addAPIToken, "api-token", "", "API token")
	f.StringVar(&addOrgID, "org-id", "", "Reseller organisation id (Enhance)")
	f.BoolVar(&addInsecure, "insecure", false, "Skip TLS certificate verification")
	f.BoolVar(&addDefault, "default", false, "Make this the default server")

	serversRemoveCmd.Flags().BoolVarP(&forceRemoveServer, "force", "f", false, "Remove without confirmation")

	serversCmd.AddCommand(serversAddCmd)
	serversCmd.AddCommand(serversRemoveCmd)
	serversCmd.AddCommand(serversDefaultCmd)

	rootCmd.AddCommand(serversCmd)
}

type serverListItem struct {
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Hostname string `json:"hostname"`
	Port     int    `json:"port"`
	Default  bool   `json:"default"`
	Valid    bool   `json:"valid"`
	Problem  string `json:"problem,omitempty"`
}

func runServersList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	items := make([]serverListItem, 0, len(cfg.Servers))
	for _, srv := range cfg.ListServers() {
		item := serverListItem{
			Name:     srv.Name,
			Provider: srv.Provider,
			Hostname: srv.Hostname,
			Port:     srv.EffectivePort(),
			Default:  srv.Name == cfg.DefaultServer,
			Valid:    true,
		}
		if err := srv.Validate(); err != nil {
			item.Valid = false
			item.Problem = err.Error()
		}
		items = append(items, item)
	}

	if jsonOutput {
		return output.JSON(items)
	}

	if len(items) == 0 {
		output.Info("No servers configured. Add one with: hostprov servers add <name>")
		return nil
	}

	headers := []string{"NAME", "PROVIDER", "HOSTNAME", "PORT", "DEFAULT", "STATUS"}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		def := ""
		if item.Default {
			def = "*"
		}
		status := "ok"
		if !item.Valid {
			status = item.Problem
		}
		rows = append(rows, []string{
			item.Name,
			item.Provider,
			item.Hostname,
			strconv.Itoa(item.Port),
			def,
			status,
		})
	}

	output.Table(headers, rows)
	return nil
}

func runServersAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	srv := &config.Server{
		Name:     args[0],
		Provider: addProvider,
		Hostname: addHostname,
		Port:     addPort,
		Username: addUsername,
		Password: addPassword,
		APIToken: addAPIToken,
		OrgID:    addOrgID,
		Insecure: addInsecure,
	}

	if err := promptServerSecret(srv); err != nil {
		return err
	}

	if err := cfg.AddServer(srv); err != nil {
		return err
	}
	if addDefault {
		cfg.DefaultServer = srv.Name
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"server":  srv.Name,
			"default": cfg.DefaultServer == srv.Name,
		},
		"Server %s added", srv.Name,
	)
}

// promptServerSecret reads the credential the provider needs when it was
// not given on the command line
func promptServerSecret(srv *config.Server) error {
	if srv.APIToken != "" || srv.Password != "" || !config.IsValidProvider(srv.Provider) {
		return nil
	}

	prompt := "API token: "
	if srv.Provider == config.ProviderPlesk && srv.Username != "" {
		prompt = "Password: "
	}
	secret, err := deps.PasswordReader.ReadPassword(prompt)
	if err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	if prompt == "Password: " {
		srv.Password = secret
	} else {
		srv.APIToken = secret
	}
	return nil
}

func runServersRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := cfg.GetServer(name); err != nil {
		return err
	}

	if !forceRemoveServer {
		if !input.Confirm(deps.StdinReader, fmt.Sprintf("Remove server '%s' from the config?", name)) {
			output.Info("Removal cancelled")
			return nil
		}
	}

	if err := cfg.RemoveServer(name); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}

	return outputResult(
		map[string]interface{}{
			"success": true,
			"server":  name,
			"removed": true,
		},
		"Server %s removed", name,
	)
}

func runServersDefault(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := cfg.GetServer(name); err != nil {
		return err
	}

	cfg.DefaultServer = name
	if err := saveConfig(cfg); err != nil {
		return err
	}
	return outputResult(
		map[string]interface{}{
			"success": true,
			"default": name,
		},
		"Default server set to %s", name,
	)
}
