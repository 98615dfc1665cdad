package whm

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/ksyq12/hostprov/internal/provision"
)

// Create provisions a cPanel account. When AsReseller is set the account
// is promoted afterwards; a failed promotion removes the account again.
func (p *Provider) Create(ctx context.Context, params provision.CreateParams) (*provision.AccountInfo, error) {
	username := params.Username

	seq := provision.NewSequence("whm create").
		Resolve("username", func(ctx context.Context) error {
			if username != "" {
				return nil
			}
			var err error
			username, err = p.usernames.Generate(ctx, params.Domain, p.usernameExists)
			return err
		}).
		Create("account",
			func(ctx context.Context) error {
				_, err := p.call(ctx, "createacct", createQuery(username, params))
				return err
			},
			func(ctx context.Context) error {
				return p.removeAccount(ctx, username)
			})

	if params.AsReseller {
		seq.Create("reseller", func(ctx context.Context) error {
			return p.setupReseller(ctx, username, params.OwnsItself, params.ResellerOptions)
		}, nil)
	}

	if err := seq.Run(ctx); err != nil {
		return nil, err
	}

	return p.GetInfo(ctx, provision.AccountIdentity{Username: username})
}

// createQuery maps create input to createacct parameters
func createQuery(username string, params provision.CreateParams) url.Values {
	q := url.Values{
		"username":     {username},
		"domain":       {params.Domain},
		"plan":         {params.PackageName},
		"contactemail": {params.Email},
	}
	if params.Password != "" {
		q.Set("password", params.Password)
	}
	if params.CustomIP != "" {
		q.Set("customip", params.CustomIP)
	}
	if params.OwnerUsername != "" {
		q.Set("owner", params.OwnerUsername)
	}
	if params.Location != "" {
		q.Set("homedir", params.Location)
	}
	return q
}

// setupReseller promotes user and applies the optional ACL and limits
func (p *Provider) setupReseller(ctx context.Context, user string, ownsItself bool, opts *provision.ResellerOptions) error {
	if _, err := p.call(ctx, "setupreseller", url.Values{
		"user":      {user},
		"makeowner": {boolParam(ownsItself)},
	}); err != nil {
		return err
	}
	if opts == nil {
		return nil
	}

	if opts.ACLName != "" {
		if _, err := p.call(ctx, "setacls", url.Values{
			"reseller": {user},
			"acllist":  {opts.ACLName},
		}); err != nil {
			return err
		}
	}

	limits := url.Values{"user": {user}}
	if opts.AccountLimit != nil {
		limits.Set("enable_account_limit", "1")
		limits.Set("account_limit", strconv.Itoa(*opts.AccountLimit))
	}
	if opts.DiskLimitMB != nil || opts.BandwidthLimit != nil {
		limits.Set("enable_resource_limits", "1")
		if opts.DiskLimitMB != nil {
			limits.Set("diskspace_limit", strconv.Itoa(*opts.DiskLimitMB))
		}
		if opts.BandwidthLimit != nil {
			limits.Set("bandwidth_limit", strconv.Itoa(*opts.BandwidthLimit))
		}
	}
	if len(limits) == 1 {
		return nil
	}
	_, err := p.call(ctx, "setresellerlimits", limits)
	return err
}

func (p *Provider) removeAccount(ctx context.Context, user string) error {
	_, err := p.call(ctx, "removeacct", url.Values{"user": {user}})
	return err
}

// GetLoginURL creates a single use cPanel session
func (p *Provider) GetLoginURL(ctx context.Context, params provision.GetLoginURLParams) (*provision.LoginURL, error) {
	data, err := p.call(ctx, "create_user_session", url.Values{
		"user":    {params.Username},
		"service": {"cpaneld"},
	})
	if err != nil {
		return nil, err
	}

	login := &provision.LoginURL{
		LoginURL: data.Get("url").String(),
		ForIP:    params.UserIP,
	}
	if ts := data.Get("expires").Int(); ts > 0 {
		expires := time.Unix(ts, 0).UTC()
		login.Expires = &expires
	}
	return login, nil
}

// ChangePassword sets a new cPanel password
func (p *Provider) ChangePassword(ctx context.Context, params provision.ChangePasswordParams) (*provision.EmptyResult, error) {
	if _, err := p.call(ctx, "passwd", url.Values{
		"user":     {params.Username},
		"password": {params.Password},
	}); err != nil {
		return nil, err
	}
	return &provision.EmptyResult{Message: "Password changed"}, nil
}

// ChangePackage applies another hosting package
func (p *Provider) ChangePackage(ctx context.Context, params provision.ChangePackageParams) (*provision.AccountInfo, error) {
	if _, err := p.call(ctx, "changepackage", url.Values{
		"user": {params.Username},
		"pkg":  {params.PackageName},
	}); err != nil {
		return nil, err
	}
	return p.GetInfo(ctx, params.AccountIdentity)
}

// Suspend suspends the account with an optional reason
func (p *Provider) Suspend(ctx context.Context, params provision.SuspendParams) (*provision.AccountInfo, error) {
	q := url.Values{"user": {params.Username}}
	if params.Reason != "" {
		q.Set("reason", params.Reason)
	}
	if _, err := p.call(ctx, "suspendacct", q); err != nil {
		return nil, err
	}
	return p.GetInfo(ctx, params.AccountIdentity)
}

// Unsuspend lifts a suspension
func (p *Provider) Unsuspend(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
	if _, err := p.call(ctx, "unsuspendacct", url.Values{"user": {id.Username}}); err != nil {
		return nil, err
	}
	return p.GetInfo(ctx, id)
}

// Terminate removes the account and its data
func (p *Provider) Terminate(ctx context.Context, id provision.AccountIdentity) (*provision.EmptyResult, error) {
	if err := p.removeAccount(ctx, id.Username); err != nil {
		return nil, err
	}
	return &provision.EmptyResult{Message: "Account terminated"}, nil
}

// GrantReseller promotes the account to reseller
func (p *Provider) GrantReseller(ctx context.Context, id provision.AccountIdentity) (*provision.ResellerPrivileges, error) {
	if err := p.setupReseller(ctx, id.Username, false, nil); err != nil {
		return nil, err
	}
	return &provision.ResellerPrivileges{Reseller: true, Message: "Reseller privileges granted"}, nil
}

// RevokeReseller demotes a reseller to a regular account
func (p *Provider) RevokeReseller(ctx context.Context, id provision.AccountIdentity) (*provision.ResellerPrivileges, error) {
	if _, err := p.call(ctx, "unsetupreseller", url.Values{"user": {id.Username}}); err != nil {
		return nil, err
	}
	return &provision.ResellerPrivileges{Reseller: false, Message: "Reseller privileges revoked"}, nil
}
