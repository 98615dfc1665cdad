package cli

import (
	"context"
	"net"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/executor"
	"github.com/ksyq12/hostprov/internal/input"
	"github.com/ksyq12/hostprov/internal/provider"
	"github.com/ksyq12/hostprov/internal/provision"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader    ConfigLoader
	ProviderFactory ProviderFactory
	StdinReader     input.Reader
	PasswordReader  input.PasswordReader
	Executor        executor.CommandExecutor
	Prober          Prober
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	// Load reads the config at path, or the default location when path
	// is empty
	Load(path string) (*config.Config, error)
	Save(cfg *config.Config) error
}

// ProviderFactory creates panel adapters
type ProviderFactory interface {
	Create(srv *config.Server) (provision.Provider, error)
}

// Prober checks that a panel endpoint accepts connections
type Prober interface {
	Probe(ctx context.Context, address string) error
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:    &realConfigLoader{},
	ProviderFactory: &realProviderFactory{},
	StdinReader:     input.NewStdinReader(),
	PasswordReader:  input.NewTerminalPasswordReader(),
	Executor:        executor.NewSystemExecutor(),
	Prober:          &tcpProber{},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Load(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	return cfg.Save()
}

type realProviderFactory struct{}

func (r *realProviderFactory) Create(srv *config.Server) (provision.Provider, error) {
	return provider.New(srv)
}

type tcpProber struct{}

func (p *tcpProber) Probe(ctx context.Context, address string) error {
	d := net.Dialer{Timeout: config.ConnectTimeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return err
	}
	return conn.Close()
}
