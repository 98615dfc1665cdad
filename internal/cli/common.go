package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/spf13/cobra"
)

// loadConfig loads the config selected by --config
func loadConfig() (*config.Config, error) {
	cfg, err := deps.ConfigLoader.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// saveConfig saves the config and returns error instead of just warning
func saveConfig(cfg *config.Config) error {
	if err := deps.ConfigLoader.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// loadService builds the provisioning service for the selected server
func loadService() (*provision.Service, *config.Server, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	srv, err := cfg.GetServer(serverName)
	if err != nil {
		return nil, nil, err
	}
	p, err := deps.ProviderFactory.Create(srv)
	if err != nil {
		return nil, nil, err
	}
	return provision.NewService(p, srv.Secrets()), srv, nil
}

// identity addresses username, adding the global id flags
func identity(username string) provision.AccountIdentity {
	return provision.AccountIdentity{
		CustomerID:     customerID,
		SubscriptionID: subscriptionID,
		Username:       username,
	}
}

// commandContext returns the command's context, which carries signal
// cancellation when run through Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// progress prints an info line unless JSON output is requested
func progress(format string, args ...interface{}) {
	if !jsonOutput {
		output.Info(format, args...)
	}
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// outputAccount prints an account snapshot. When the service made no
// change (such as an already suspended account) its message replaces
// successMsg.
func outputAccount(info *provision.AccountInfo, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(info)
	}
	if info.Unchanged() {
		output.Info("%s", info.Message)
	} else if successMsg != "" {
		output.Success(successMsg, args...)
	}
	output.Account(info)
	return nil
}

// readNewPassword prompts for a password twice
func readNewPassword() (string, error) {
	pw, err := deps.PasswordReader.ReadPassword("New password: ")
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", errors.Validation("Password is required")
	}
	again, err := deps.PasswordReader.ReadPassword("Confirm password: ")
	if err != nil {
		return "", err
	}
	if pw != again {
		return "", errors.Validation("Passwords do not match")
	}
	return pw, nil
}

// errorBody is the JSON shape of a failed command
type errorBody struct {
	Code    errors.ErrorCode `json:"code,omitempty"`
	Message string           `json:"message"`
	Data    map[string]any   `json:"data,omitempty"`
	Debug   map[string]any   `json:"debug,omitempty"`
}

// printError reports err on stdout. Debug details are only shown with
// --verbose.
func printError(err error) {
	body := errorBody{Message: err.Error()}
	var perr *errors.ProvisionError
	if errors.As(err, &perr) {
		body = errorBody{Code: perr.Code, Message: perr.Message, Data: perr.Data}
		if verbose {
			body.Debug = perr.Debug
		}
	}

	if jsonOutput {
		_ = output.JSON(map[string]errorBody{"error": body})
		return
	}

	if body.Code != "" {
		output.Error("%s [%s]", body.Message, body.Code)
	} else {
		output.Error("%s", body.Message)
	}
	printDetails(body.Data)
	printDetails(body.Debug)
}

func printDetails(m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		output.Print("  %s: %v", k, m[k])
	}
}
