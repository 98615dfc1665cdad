package cli

import (
	"context"
	"sync"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/executor"
	"github.com/ksyq12/hostprov/internal/input"
	"github.com/ksyq12/hostprov/internal/provision"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
	LoadPaths []string
}

func (m *MockConfigLoader) Load(path string) (*config.Config, error) {
	m.LoadPaths = append(m.LoadPaths, path)
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockProviderFactory is a test double for ProviderFactory
type MockProviderFactory struct {
	Provider provision.Provider
	Err      error
	Servers  []*config.Server
}

func (m *MockProviderFactory) Create(srv *config.Server) (provision.Provider, error) {
	m.Servers = append(m.Servers, srv)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Provider != nil {
		return m.Provider, nil
	}
	return provision.NewMockProvider(srv.Provider), nil
}

// MockProber is a test double for Prober
type MockProber struct {
	mu    sync.Mutex
	Errs  map[string]error // by address
	Calls []string
}

func (m *MockProber) Probe(ctx context.Context, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, address)
	return m.Errs[address]
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:    &MockConfigLoader{Cfg: config.New()},
			ProviderFactory: &MockProviderFactory{},
			StdinReader:     input.NewStringReader("y\n"),
			PasswordReader:  &input.StaticPasswordReader{},
			Executor:        &executor.MockExecutor{},
			Prober:          &MockProber{},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithProvider makes the factory return p for every server
func (b *MockDependenciesBuilder) WithProvider(p provision.Provider) *MockDependenciesBuilder {
	b.deps.ProviderFactory = &MockProviderFactory{Provider: p}
	return b
}

// WithProviderFactory sets a custom provider factory
func (b *MockDependenciesBuilder) WithProviderFactory(factory ProviderFactory) *MockDependenciesBuilder {
	b.deps.ProviderFactory = factory
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(inputs ...string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(inputs...)
	return b
}

// WithPasswords sets the answers to password prompts
func (b *MockDependenciesBuilder) WithPasswords(passwords ...string) *MockDependenciesBuilder {
	b.deps.PasswordReader = &input.StaticPasswordReader{Passwords: passwords}
	return b
}

// WithExecutor sets the command executor
func (b *MockDependenciesBuilder) WithExecutor(e executor.CommandExecutor) *MockDependenciesBuilder {
	b.deps.Executor = e
	return b
}

// WithProber sets the connectivity prober
func (b *MockDependenciesBuilder) WithProber(p Prober) *MockDependenciesBuilder {
	b.deps.Prober = p
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
	}
	OldDeps      *Dependencies
	MockProvider *provision.MockProvider
	MockConfig   *MockConfigLoader
	MockFactory  *MockProviderFactory
	MockExecutor *executor.MockExecutor
	MockProber   *MockProber
}

// NewTestHelper installs mock dependencies with one configured server
// named "whm1" backed by a MockProvider, and resets the global flags
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}) *TestHelper {
	t.Helper()

	cfg := config.New()
	cfg.Servers["whm1"] = &config.Server{
		Name:     "whm1",
		Provider: config.ProviderWHM,
		Hostname: "whm.example.com",
		Username: "root",
		APIToken: "WHMTOKEN",
	}
	cfg.DefaultServer = "whm1"

	helper := &TestHelper{
		T:            t,
		OldDeps:      deps,
		MockProvider: provision.NewMockProvider(config.ProviderWHM),
		MockConfig:   &MockConfigLoader{Cfg: cfg},
		MockExecutor: &executor.MockExecutor{},
		MockProber:   &MockProber{Errs: map[string]error{}},
	}
	helper.MockFactory = &MockProviderFactory{Provider: helper.MockProvider}

	deps = NewMockDeps().
		WithConfigLoader(helper.MockConfig).
		WithProviderFactory(helper.MockFactory).
		WithExecutor(helper.MockExecutor).
		WithProber(helper.MockProber).
		Build()

	resetGlobalFlags()

	// Cleanup function to restore original deps
	t.Cleanup(func() {
		deps = helper.OldDeps
		resetGlobalFlags()
	})

	return helper
}

// SetStdinInput sets the stdin input
func (h *TestHelper) SetStdinInput(inputs ...string) {
	deps.StdinReader = input.NewStringReader(inputs...)
}

// SetPasswords sets the answers to password prompts
func (h *TestHelper) SetPasswords(passwords ...string) *input.StaticPasswordReader {
	r := &input.StaticPasswordReader{Passwords: passwords}
	deps.PasswordReader = r
	return r
}

// AddServer adds a server to the mock config
func (h *TestHelper) AddServer(srv *config.Server) {
	h.MockConfig.Cfg.Servers[srv.Name] = srv
}

// GetConfig returns the current mock config
func (h *TestHelper) GetConfig() *config.Config {
	return h.MockConfig.Cfg
}

func resetGlobalFlags() {
	serverName = ""
	configPath = ""
	jsonOutput = false
	verbose = false
	customerID = ""
	subscriptionID = ""
}
