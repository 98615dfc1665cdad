package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Provider names
const (
	ProviderWHM     = "whm"
	ProviderPlesk   = "plesk"
	ProviderEnhance = "enhance"
)

// Transport timeouts shared by every panel client.
const (
	ConnectTimeout = 10 * time.Second
	RequestTimeout = 60 * time.Second
)

// Server holds the credentials and connection settings for one panel.
type Server struct {
	Name     string            `yaml:"-"`
	Provider string            `yaml:"provider"`
	Hostname string            `yaml:"hostname"`
	Port     int               `yaml:"port,omitempty"`
	Username string            `yaml:"username,omitempty"`
	Password string            `yaml:"password,omitempty"`
	APIToken string            `yaml:"api_token,omitempty"`
	OrgID    string            `yaml:"org_id,omitempty"` // Enhance reseller organisation
	Insecure bool              `yaml:"insecure,omitempty"`
	Debug    bool              `yaml:"debug,omitempty"`
	Options  map[string]string `yaml:"options,omitempty"`
}

// ValidProviders returns all supported provider names
func ValidProviders() []string {
	return []string{ProviderWHM, ProviderPlesk, ProviderEnhance}
}

// IsValidProvider checks if the given provider is supported
func IsValidProvider(p string) bool {
	for _, valid := range ValidProviders() {
		if p == valid {
			return true
		}
	}
	return false
}

// defaultPorts maps providers to their usual API port
var defaultPorts = map[string]int{
	ProviderWHM:     2087,
	ProviderPlesk:   8443,
	ProviderEnhance: 443,
}

// EffectivePort returns the configured port or the provider default
func (s *Server) EffectivePort() int {
	if s.Port > 0 {
		return s.Port
	}
	return defaultPorts[s.Provider]
}

// BaseURL returns the https base URL of the panel API. A hostname that
// already carries a scheme is used as is.
func (s *Server) BaseURL() string {
	host := strings.TrimSuffix(s.Hostname, "/")
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host + ":" + strconv.Itoa(s.EffectivePort())
}

// Option returns a provider specific option or fallback
func (s *Server) Option(key, fallback string) string {
	if v, ok := s.Options[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Validate checks the provider specific credential requirements
func (s *Server) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("server name cannot be empty")
	}
	if !IsValidProvider(s.Provider) {
		return fmt.Errorf("server %s: invalid provider %q. Valid providers: %s",
			s.Name, s.Provider, strings.Join(ValidProviders(), ", "))
	}
	if s.Hostname == "" {
		return fmt.Errorf("server %s: hostname is required", s.Name)
	}
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("server %s: invalid port %d", s.Name, s.Port)
	}

	switch s.Provider {
	case ProviderWHM:
		if s.Username == "" || s.APIToken == "" {
			return fmt.Errorf("server %s: whm requires username and api_token", s.Name)
		}
	case ProviderPlesk:
		if s.APIToken == "" && (s.Username == "" || s.Password == "") {
			return fmt.Errorf("server %s: plesk requires api_token or username and password", s.Name)
		}
	case ProviderEnhance:
		if s.APIToken == "" || s.OrgID == "" {
			return fmt.Errorf("server %s: enhance requires api_token and org_id", s.Name)
		}
	}
	return nil
}

// Secrets returns the credential values that must never leave the process
// in errors or logs.
func (s *Server) Secrets() []string {
	var secrets []string
	for _, v := range []string{s.Password, s.APIToken} {
		if v != "" {
			secrets = append(secrets, v)
		}
	}
	return secrets
}
