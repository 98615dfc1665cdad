// Package enhance implements provision.Provider for the Enhance control
// panel REST API.
//
// The configured organisation is a reseller (or the master org). Each
// provisioned account is a customer organisation with an owner login, one
// subscription to a plan and optionally one website. Accounts are addressed
// by CustomerID (customer org UUID) and SubscriptionID; Username is the
// owner's login email and is used to find the ids when they are not given.
package enhance

import (
	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/ksyq12/hostprov/internal/transport"
	"github.com/tidwall/gjson"
)

// DefaultAPIPath is where orchd serves the API
const DefaultAPIPath = "/api"

// pageSize is the page length used for listings
const pageSize = 100

// Provider talks to one Enhance cluster
type Provider struct {
	client   *transport.Client
	orgID    string
	hostname string
}

// New creates an Enhance provider for srv
func New(srv *config.Server) *Provider {
	client := transport.NewClient(transport.Options{
		Name:    config.ProviderEnhance,
		BaseURL: srv.BaseURL() + srv.Option("api_path", DefaultAPIPath),
		Headers: map[string]string{
			"Authorization": "Bearer " + srv.APIToken,
		},
		Insecure:       srv.Insecure,
		Debug:          srv.Debug,
		ConnectTimeout: config.ConnectTimeout,
		Timeout:        config.RequestTimeout,
		ErrorMessage:   errorMessage,
	})
	return NewWithClient(client, srv.OrgID, srv.Hostname)
}

// NewWithClient creates an Enhance provider with a custom client (for testing)
func NewWithClient(client *transport.Client, orgID, hostname string) *Provider {
	return &Provider{
		client:   client,
		orgID:    orgID,
		hostname: hostname,
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return config.ProviderEnhance
}

// Capabilities returns the Enhance constraints. Accounts are keyed by
// email, so there is no username limit.
func (p *Provider) Capabilities() provision.Capabilities {
	return provision.Capabilities{}
}

// ErrorRules classifies Enhance error codes echoed in messages
func (p *Provider) ErrorRules() []provision.TextRule {
	return []provision.TextRule{
		{Contains: "already_exists", Code: errors.CodeConflict},
		{Contains: "not_found", Code: errors.CodeNotFound},
		{Contains: "invalid_password", Code: errors.CodeValidation},
		{Contains: "unauthorized", Code: errors.CodeAuthentication},
	}
}

// errorMessage extracts the message of an Enhance error body, falling
// back to its code
func errorMessage(body []byte) string {
	r := gjson.ParseBytes(body)
	if msg := r.Get("message").String(); msg != "" {
		return msg
	}
	return r.Get("code").String()
}

// Ensure Provider implements the provisioning interfaces
var (
	_ provision.Provider       = (*Provider)(nil)
	_ provision.TextClassifier = (*Provider)(nil)
)
