// Package plesk implements provision.Provider for Plesk servers through the
// XML API at /enterprise/control/agent.php.
//
// A provisioned account is a Plesk customer owning one webspace
// (subscription). The webspace system user doubles as the account username;
// CustomerID and SubscriptionID carry the Plesk object ids when known.
package plesk

import (
	"time"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/ksyq12/hostprov/internal/transport"
)

// MaxUsernameLength bounds generated system user names
const MaxUsernameLength = 16

// Webspace status values
const (
	statusActive              = 0
	statusSuspendedByAdmin    = 16
	statusSuspendedByReseller = 32
	statusSuspendedByClient   = 64
	statusExpired             = 256
)

// IPCategories is the allocation priority for new webspaces
var IPCategories = []string{"shared", "exclusive"}

// Provider talks to one Plesk server
type Provider struct {
	client    *transport.Client
	baseURL   string
	hostname  string
	usernames *provision.UsernameGenerator
}

// New creates a Plesk provider for srv. An API key takes precedence over
// login and password.
func New(srv *config.Server) *Provider {
	headers := map[string]string{"HTTP_PRETTY_PRINT": "TRUE"}
	if srv.APIToken != "" {
		headers["KEY"] = srv.APIToken
	} else {
		headers["HTTP_AUTH_LOGIN"] = srv.Username
		headers["HTTP_AUTH_PASSWD"] = srv.Password
	}

	client := transport.NewClient(transport.Options{
		Name:           config.ProviderPlesk,
		BaseURL:        srv.BaseURL(),
		Headers:        headers,
		Insecure:       srv.Insecure,
		Debug:          srv.Debug,
		ConnectTimeout: config.ConnectTimeout,
		Timeout:        config.RequestTimeout,
		ErrorMessage:   errorMessage,
	})
	return NewWithClient(client, srv.BaseURL(), srv.Hostname)
}

// NewWithClient creates a Plesk provider with a custom client (for testing)
func NewWithClient(client *transport.Client, baseURL, hostname string) *Provider {
	return &Provider{
		client:    client,
		baseURL:   baseURL,
		hostname:  hostname,
		usernames: provision.NewUsernameGenerator(MaxUsernameLength, time.Now().UnixNano()),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return config.ProviderPlesk
}

// Capabilities returns the Plesk constraints
func (p *Provider) Capabilities() provision.Capabilities {
	return provision.Capabilities{
		RequiresDomain:    true,
		MaxUsernameLength: MaxUsernameLength,
	}
}

// ErrorRules classifies Plesk specific error wording
func (p *Provider) ErrorRules() []provision.TextRule {
	return []provision.TextRule{
		{Contains: "authentication failed", Code: errors.CodeAuthentication},
		{Contains: "permission denied", Code: errors.CodeAuthentication},
		{Contains: "is already used", Code: errors.CodeConflict},
		{Contains: "object not found", Code: errors.CodeNotFound},
		{Contains: "password is too simple", Code: errors.CodeValidation},
		{Contains: "incorrect value", Code: errors.CodeValidation},
	}
}

// suspendReason describes a non-active webspace status
func suspendReason(status int) string {
	switch status {
	case statusActive:
		return ""
	case statusSuspendedByAdmin:
		return "Suspended by administrator"
	case statusSuspendedByReseller:
		return "Suspended by reseller"
	case statusSuspendedByClient:
		return "Suspended by customer"
	case statusExpired:
		return "Subscription expired"
	}
	return "Suspended"
}

// Ensure Provider implements the provisioning interfaces
var (
	_ provision.Provider       = (*Provider)(nil)
	_ provision.TextClassifier = (*Provider)(nil)
)
