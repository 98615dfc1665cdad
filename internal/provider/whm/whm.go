// Package whm implements provision.Provider for cPanel/WHM servers through
// the WHM JSON API version 1.
//
// Every call is a GET to /json-api/<function>?api.version=1 authenticated
// with an API token header. WHM reports most failures with HTTP 200 and
// metadata.result=0, which the adapter turns into transport panel errors so
// the normalizer classifies them by text.
package whm

import (
	"time"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/ksyq12/hostprov/internal/transport"
	"github.com/tidwall/gjson"
)

// MaxUsernameLength is the cPanel username limit
const MaxUsernameLength = 16

// Provider talks to one WHM server
type Provider struct {
	client    *transport.Client
	hostname  string
	usernames *provision.UsernameGenerator
}

// New creates a WHM provider for srv
func New(srv *config.Server) *Provider {
	client := transport.NewClient(transport.Options{
		Name:    config.ProviderWHM,
		BaseURL: srv.BaseURL(),
		Headers: map[string]string{
			"Authorization": "whm " + srv.Username + ":" + srv.APIToken,
		},
		Insecure:       srv.Insecure,
		Debug:          srv.Debug,
		ConnectTimeout: config.ConnectTimeout,
		Timeout:        config.RequestTimeout,
		ErrorMessage:   errorMessage,
	})
	return NewWithClient(client, srv.Hostname)
}

// NewWithClient creates a WHM provider with a custom client (for testing)
func NewWithClient(client *transport.Client, hostname string) *Provider {
	return &Provider{
		client:    client,
		hostname:  hostname,
		usernames: provision.NewUsernameGenerator(MaxUsernameLength, time.Now().UnixNano()),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return config.ProviderWHM
}

// Capabilities returns the WHM constraints
func (p *Provider) Capabilities() provision.Capabilities {
	return provision.Capabilities{
		RequiresDomain:    true,
		MaxUsernameLength: MaxUsernameLength,
		Reseller:          true,
	}
}

// ErrorRules classifies WHM specific error wording
func (p *Provider) ErrorRules() []provision.TextRule {
	return []provision.TextRule{
		{Contains: "is a reserved username", Code: errors.CodeValidation},
		{Contains: "is not a valid domain", Code: errors.CodeValidation},
		{Contains: "is not a reseller", Code: errors.CodeNotFound},
		{Contains: "package does not exist", Code: errors.CodeNotFound},
		{Contains: "already owns", Code: errors.CodeConflict},
	}
}

// errorMessage extracts the error text of a non-2xx WHM response
func errorMessage(body []byte) string {
	r := gjson.ParseBytes(body)
	for _, path := range []string{"metadata.reason", "cpanelresult.error", "error"} {
		if v := r.Get(path).String(); v != "" {
			return v
		}
	}
	return ""
}

// Ensure Provider implements the provisioning interfaces
var (
	_ provision.Provider       = (*Provider)(nil)
	_ provision.TextClassifier = (*Provider)(nil)
)
