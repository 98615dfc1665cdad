package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and panel connectivity",
	Long: `Run diagnostic checks on the configuration and the configured panels.

Checks:
  - Config file presence and permissions
  - Server settings completeness
  - Network reachability of each panel API

Examples:
  hostprov doctor
  hostprov doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// ServerStatus represents the status of a single server
type ServerStatus struct {
	Name   string        `json:"name"`
	Checks []CheckResult `json:"checks"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	Configuration []CheckResult  `json:"configuration"`
	Servers       []ServerStatus `json:"servers"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report := &DoctorReport{}
	report.Configuration = checkConfiguration(cfg)
	report.Servers = checkServers(commandContext(cmd), cfg)

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

func checkConfiguration(cfg *config.Config) []CheckResult {
	results := []CheckResult{}

	path := configPath
	if path == "" {
		p, err := cfg.Path()
		if err != nil {
			return append(results, CheckResult{
				Status:  "error",
				Message: "Could not determine config path",
			})
		}
		path = p
	}

	// Use ~ notation for display
	displayPath := path
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		displayPath = strings.Replace(path, home, "~", 1)
	}

	info, err := os.Stat(path)
	if err != nil {
		return append(results, CheckResult{
			Status:  "error",
			Message: fmt.Sprintf("Config file not found (%s)", displayPath),
		})
	}
	results = append(results, CheckResult{
		Status:  "success",
		Message: fmt.Sprintf("Config file exists (%s)", displayPath),
	})

	if mode := info.Mode().Perm(); mode&0o077 != 0 {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: fmt.Sprintf("Config file holds credentials but has mode %04o; run chmod 600 %s", mode, displayPath),
		})
	}

	if len(cfg.Servers) == 0 {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: "No servers configured",
		})
	} else if cfg.DefaultServer == "" && len(cfg.Servers) > 1 {
		results = append(results, CheckResult{
			Status:  "warning",
			Message: "No default server set; pass --server on every command",
		})
	}

	return results
}

// checkServers validates every server and probes the valid ones in
// parallel
func checkServers(ctx context.Context, cfg *config.Config) []ServerStatus {
	servers := cfg.ListServers()
	statuses := make([]ServerStatus, len(servers))

	g, gctx := errgroup.WithContext(ctx)
	for i, srv := range servers {
		statuses[i] = ServerStatus{Name: srv.Name, Checks: []CheckResult{}}

		if err := srv.Validate(); err != nil {
			statuses[i].Checks = append(statuses[i].Checks, CheckResult{
				Status:  "error",
				Message: err.Error(),
			})
			continue
		}

		address, err := apiAddress(srv)
		if err != nil {
			statuses[i].Checks = append(statuses[i].Checks, CheckResult{
				Status:  "error",
				Message: err.Error(),
			})
			continue
		}

		g.Go(func() error {
			if err := deps.Prober.Probe(gctx, address); err != nil {
				statuses[i].Checks = append(statuses[i].Checks, CheckResult{
					Status:  "error",
					Message: fmt.Sprintf("%s unreachable: %v", address, err),
				})
				return nil
			}
			statuses[i].Checks = append(statuses[i].Checks, CheckResult{
				Status:  "success",
				Message: fmt.Sprintf("%s API reachable at %s", srv.Provider, address),
			})
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}

// apiAddress returns the host:port the panel API listens on
func apiAddress(srv *config.Server) (string, error) {
	u, err := url.Parse(srv.BaseURL())
	if err != nil {
		return "", fmt.Errorf("invalid hostname %q: %w", srv.Hostname, err)
	}
	if u.Port() != "" {
		return u.Host, nil
	}
	if u.Scheme == "http" {
		return u.Host + ":80", nil
	}
	return u.Host + ":443", nil
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Checking configuration...")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
	output.Print("")

	if len(report.Servers) == 0 {
		return
	}

	output.Print("Checking servers...")
	for _, srv := range report.Servers {
		for _, check := range srv.Checks {
			displayCheck(CheckResult{
				Status:  check.Status,
				Message: fmt.Sprintf("%s - %s", srv.Name, check.Message),
			})
		}
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case "success":
		output.Success("%s", check.Message)
	case "warning":
		output.Warn("%s", check.Message)
	case "error":
		output.Error("%s", check.Message)
	}
}
