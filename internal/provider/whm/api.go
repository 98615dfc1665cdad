package whm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/transport"
	"github.com/tidwall/gjson"
)

// call invokes a WHM API 1 function and returns its data node
func (p *Provider) call(ctx context.Context, function string, params url.Values) (gjson.Result, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api.version", "1")

	res, err := p.client.DoJSON(ctx, http.MethodGet, "/json-api/"+function, query, nil)
	if err != nil {
		return gjson.Result{}, err
	}

	meta := res.Get("metadata")
	if !meta.Exists() {
		return gjson.Result{}, transport.DecodeError([]byte(res.Raw), fmt.Errorf("%s: missing metadata", function))
	}
	if meta.Get("result").Int() != 1 {
		reason := strings.TrimSpace(meta.Get("reason").String())
		if reason == "" {
			reason = function + " failed"
		}
		return gjson.Result{}, transport.PanelError(reason, meta.Get("command").String())
	}
	return res.Get("data"), nil
}

// accountSummary fetches the accountsummary record of user
func (p *Provider) accountSummary(ctx context.Context, user string) (gjson.Result, error) {
	data, err := p.call(ctx, "accountsummary", url.Values{"user": {user}})
	if err != nil {
		return gjson.Result{}, err
	}
	acct := data.Get("acct.0")
	if !acct.Exists() {
		return gjson.Result{}, transport.PanelError("Account "+user+" does not exist", "")
	}
	return acct, nil
}

// usernameExists queries accountsummary; a "does not exist" answer means free
func (p *Provider) usernameExists(ctx context.Context, user string) (bool, error) {
	_, err := p.accountSummary(ctx, user)
	if err == nil {
		return true, nil
	}
	if isMissing(err) {
		return false, nil
	}
	return false, err
}

// nameservers fetches the server wide nameserver configuration
func (p *Provider) nameservers(ctx context.Context) ([]string, error) {
	data, err := p.call(ctx, "get_nameserver_config", nil)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, ns := range data.Get("nameservers").Array() {
		out = append(out, ns.String())
	}
	return out, nil
}

// isReseller reports whether user is in the reseller list
func (p *Provider) isReseller(ctx context.Context, user string) (bool, error) {
	data, err := p.call(ctx, "listresellers", nil)
	if err != nil {
		return false, err
	}
	for _, r := range data.Get("reseller").Array() {
		if r.String() == user {
			return true, nil
		}
	}
	return false, nil
}

// isMissing reports whether err is WHM's "account does not exist" answer
func isMissing(err error) bool {
	var terr *transport.Error
	if !errors.As(err, &terr) || terr.Kind != transport.KindPanel {
		return false
	}
	return strings.Contains(strings.ToLower(terr.Message), "does not exist")
}

// megabytes parses WHM size strings such as "150M", "2G" or "unlimited"
func megabytes(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "unlimited") {
		return nil, nil
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(raw, "G"):
		mult = 1024
		raw = strings.TrimSuffix(raw, "G")
	case strings.HasSuffix(raw, "M"):
		raw = strings.TrimSuffix(raw, "M")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid size %q: %w", raw, err)
	}
	v *= mult
	return &v, nil
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
