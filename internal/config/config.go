package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DefaultServer string             `yaml:"default_server,omitempty"`
	Servers       map[string]*Server `yaml:"servers"`

	path string
}

// configDir is the default config directory
const configDir = ".config/hostprov"
const configFile = "config.yaml"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Servers: make(map[string]*Server),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from the default location
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from path. A missing file yields an empty config
// that will be saved to path.
func LoadFrom(path string) (*Config, error) {
	cfg := New()
	cfg.path = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Servers == nil {
		cfg.Servers = make(map[string]*Server)
	}
	for name, srv := range cfg.Servers {
		if srv == nil {
			return nil, fmt.Errorf("server %s has no settings", name)
		}
		srv.Name = name
	}

	return cfg, nil
}

// Path returns the file the config is saved to
func (c *Config) Path() (string, error) {
	if c.path != "" {
		return c.path, nil
	}
	return ConfigPath()
}

// Save writes the config to disk. The file holds credentials so it is
// written with owner-only permissions.
func (c *Config) Save() error {
	path, err := c.Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// AddServer adds a server to the config
func (c *Config) AddServer(srv *Server) error {
	if _, exists := c.Servers[srv.Name]; exists {
		return fmt.Errorf("server %s already exists", srv.Name)
	}
	if err := srv.Validate(); err != nil {
		return err
	}
	c.Servers[srv.Name] = srv
	if c.DefaultServer == "" {
		c.DefaultServer = srv.Name
	}
	return nil
}

// GetServer returns a server by name. An empty name selects the default
// server, or the only server when exactly one is configured.
func (c *Config) GetServer(name string) (*Server, error) {
	if name == "" {
		name = c.DefaultServer
	}
	if name == "" && len(c.Servers) == 1 {
		for n := range c.Servers {
			name = n
		}
	}
	if name == "" {
		return nil, fmt.Errorf("no server selected: pass --server or set default_server")
	}
	srv, exists := c.Servers[name]
	if !exists {
		return nil, fmt.Errorf("server %s not found", name)
	}
	return srv, nil
}

// RemoveServer removes a server from the config
func (c *Config) RemoveServer(name string) error {
	if _, exists := c.Servers[name]; !exists {
		return fmt.Errorf("server %s not found", name)
	}
	delete(c.Servers, name)
	if c.DefaultServer == name {
		c.DefaultServer = ""
	}
	return nil
}

// ListServers returns all servers sorted by name
func (c *Config) ListServers() []*Server {
	servers := make([]*Server, 0, len(c.Servers))
	for _, s := range c.Servers {
		servers = append(servers, s)
	}
	sort.Slice(servers, func(i, j int) bool {
		return servers[i].Name < servers[j].Name
	})
	return servers
}
