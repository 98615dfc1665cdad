package enhance

import (
	"context"
	"net/http"
	"net/url"

	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// Create provisions a customer org with an owner login, a subscription and,
// when a domain is given, a website. Each created object is removed again
// if a later step fails. The owner membership goes away with the org.
func (p *Provider) Create(ctx context.Context, params provision.CreateParams) (*provision.AccountInfo, error) {
	var (
		planID         int64
		customerID     string
		loginID        string
		subscriptionID string
		websiteID      string
	)

	name := params.CustomerName
	if name == "" {
		name = params.Email
	}

	seq := provision.NewSequence("enhance create").
		Resolve("plan", func(ctx context.Context) error {
			plan, err := p.planByName(ctx, params.PackageName)
			if err != nil {
				return err
			}
			planID = plan.Get(fieldPlanID).Int()
			return nil
		}).
		Create("customer",
			func(ctx context.Context) error {
				res, err := p.post(ctx, orgPath(p.orgID, "customers"), map[string]any{"name": name})
				if err != nil {
					return err
				}
				customerID = res.Get("id").String()
				return nil
			},
			func(ctx context.Context) error {
				return p.delete(ctx, orgPath(customerID))
			}).
		Create("login",
			func(ctx context.Context) error {
				login, err := p.client.DoJSON(ctx, http.MethodPost, "/logins", url.Values{"orgId": {customerID}}, map[string]any{
					"email":    params.Email,
					"name":     name,
					"password": params.Password,
				})
				if err != nil {
					return err
				}
				loginID = login.Get("id").String()
				return nil
			},
			func(ctx context.Context) error {
				return p.delete(ctx, "/logins"+joinPath(loginID))
			}).
		Create("membership", func(ctx context.Context) error {
			_, err := p.post(ctx, orgPath(customerID, "members"), map[string]any{
				"loginId": loginID,
				"roles":   []string{"Owner"},
			})
			return err
		}, nil).
		Create("subscription",
			func(ctx context.Context) error {
				res, err := p.post(ctx, orgPath(p.orgID, "customers", customerID, "subscriptions"),
					map[string]any{"planId": planID})
				if err != nil {
					return err
				}
				subscriptionID = res.Get("id").String()
				return nil
			},
			func(ctx context.Context) error {
				return p.delete(ctx, orgPath(customerID, "subscriptions", subscriptionID))
			})

	if params.Domain != "" {
		seq.Create("website",
			func(ctx context.Context) error {
				res, err := p.post(ctx, orgPath(customerID, "websites"), map[string]any{
					"domain":         params.Domain,
					"subscriptionId": subscriptionID,
				})
				if err != nil {
					return err
				}
				websiteID = res.Get("id").String()
				return nil
			},
			func(ctx context.Context) error {
				return p.delete(ctx, orgPath(customerID, "websites", websiteID))
			})
	}

	if err := seq.Run(ctx); err != nil {
		return nil, err
	}

	return p.info(ctx, &account{
		customerID:     customerID,
		subscriptionID: subscriptionID,
		email:          params.Email,
	})
}

// GetLoginURL returns a single sign-on URL for the owner login
func (p *Provider) GetLoginURL(ctx context.Context, params provision.GetLoginURLParams) (*provision.LoginURL, error) {
	acct, err := p.resolve(ctx, params.AccountIdentity)
	if err != nil {
		return nil, err
	}
	owner, err := p.owner(ctx, acct)
	if err != nil {
		return nil, err
	}
	res, err := p.get(ctx, orgPath(acct.customerID, "members", owner.Get("id").String(), "sso"), nil)
	if err != nil {
		return nil, err
	}

	loginURL := res.String()
	if res.IsObject() {
		loginURL = res.Get("url").String()
	}
	return &provision.LoginURL{LoginURL: loginURL, ForIP: params.UserIP}, nil
}

// ChangePassword sets the owner login password
func (p *Provider) ChangePassword(ctx context.Context, params provision.ChangePasswordParams) (*provision.EmptyResult, error) {
	acct, err := p.resolve(ctx, params.AccountIdentity)
	if err != nil {
		return nil, err
	}
	owner, err := p.owner(ctx, acct)
	if err != nil {
		return nil, err
	}
	if err := p.patch(ctx, "/logins"+joinPath(owner.Get("loginId").String()),
		map[string]any{"password": params.Password}); err != nil {
		return nil, err
	}
	return &provision.EmptyResult{Message: "Password changed"}, nil
}

// ChangePackage moves the subscription to another plan on the same
// platform
func (p *Provider) ChangePackage(ctx context.Context, params provision.ChangePackageParams) (*provision.AccountInfo, error) {
	acct, err := p.resolve(ctx, params.AccountIdentity)
	if err != nil {
		return nil, err
	}

	var current, target gjson.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sub, err := p.get(gctx, acct.subscriptionPath(), nil)
		if err != nil {
			return err
		}
		current, err = p.planByID(gctx, sub.Get(fieldSubPlanID).Int())
		return err
	})
	g.Go(func() error {
		var err error
		target, err = p.planByName(gctx, params.PackageName)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	from := current.Get(fieldPlanPlatform).String()
	to := target.Get(fieldPlanPlatform).String()
	if from != "" && to != "" && from != to {
		return nil, errors.Unsupported("Changing to a plan on a different platform is not supported").
			WithData("current_platform", from).
			WithData("target_platform", to)
	}

	if err := p.patch(ctx, acct.subscriptionPath(), map[string]any{
		"planId": target.Get(fieldPlanID).Int(),
	}); err != nil {
		return nil, err
	}
	return p.info(ctx, acct)
}

// Suspend suspends the subscription
func (p *Provider) Suspend(ctx context.Context, params provision.SuspendParams) (*provision.AccountInfo, error) {
	return p.setSuspended(ctx, params.AccountIdentity, true)
}

// Unsuspend lifts the subscription suspension
func (p *Provider) Unsuspend(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
	return p.setSuspended(ctx, id, false)
}

func (p *Provider) setSuspended(ctx context.Context, id provision.AccountIdentity, suspended bool) (*provision.AccountInfo, error) {
	acct, err := p.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.patch(ctx, acct.subscriptionPath(), map[string]any{"isSuspended": suspended}); err != nil {
		return nil, err
	}
	return p.info(ctx, acct)
}

// Terminate deletes the subscription, then the customer org once it has
// no subscriptions left
func (p *Provider) Terminate(ctx context.Context, id provision.AccountIdentity) (*provision.EmptyResult, error) {
	acct, err := p.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.delete(ctx, acct.subscriptionPath()); err != nil {
		return nil, err
	}

	remaining, err := p.get(ctx, orgPath(acct.customerID, "subscriptions"), nil)
	if err != nil {
		return nil, err
	}
	if len(remaining.Get("items").Array()) == 0 {
		if err := p.delete(ctx, orgPath(acct.customerID)); err != nil {
			return nil, err
		}
	}
	return &provision.EmptyResult{Message: "Account terminated"}, nil
}

// GrantReseller is not offered for Enhance customers
func (p *Provider) GrantReseller(ctx context.Context, id provision.AccountIdentity) (*provision.ResellerPrivileges, error) {
	return nil, errors.Unsupported("Reseller privileges are not supported by Enhance customers")
}

// RevokeReseller is not offered for Enhance customers
func (p *Provider) RevokeReseller(ctx context.Context, id provision.AccountIdentity) (*provision.ResellerPrivileges, error) {
	return nil, errors.Unsupported("Reseller privileges are not supported by Enhance customers")
}
