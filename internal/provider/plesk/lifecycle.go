package plesk

import (
	"context"
	"encoding/base64"
	"net/url"

	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/logger"
	"github.com/ksyq12/hostprov/internal/provision"
)

// Create provisions a customer and webspace. An existing customer is
// reused and left in place on rollback; a customer created here is
// deleted again when the webspace cannot be added.
func (p *Provider) Create(ctx context.Context, params provision.CreateParams) (*provision.AccountInfo, error) {
	var (
		username   = params.Username
		ip         = params.CustomIP
		customerID string
		created    bool
		webspaceID string
	)

	seq := provision.NewSequence("plesk create").
		Resolve("plan", func(ctx context.Context) error {
			_, err := p.plan(ctx, filter{Name: params.PackageName})
			return err
		}).
		Resolve("ip", func(ctx context.Context) error {
			if ip != "" {
				return nil
			}
			pools, err := p.ipsByType(ctx)
			if err != nil {
				return err
			}
			ip, err = provision.AllocateIP(ctx, IPCategories, func(_ context.Context, category string) ([]string, error) {
				return pools[category], nil
			})
			return err
		}).
		Resolve("username", func(ctx context.Context) error {
			if username != "" {
				return nil
			}
			var err error
			username, err = p.usernames.Generate(ctx, params.Domain, p.customerExists)
			return err
		}).
		Create("customer",
			func(ctx context.Context) error {
				var err error
				customerID, created, err = p.findOrCreateCustomer(ctx, username, params)
				return err
			},
			func(ctx context.Context) error {
				if !created {
					return nil
				}
				return p.deleteCustomer(ctx, customerID)
			}).
		Create("webspace",
			func(ctx context.Context) error {
				res, err := p.first(ctx, &packet{Webspace: &webspaceOp{Add: &webspaceAdd{
					GenSetup: genSetup{
						Name:      params.Domain,
						OwnerID:   customerID,
						HType:     "vrt_hst",
						IPAddress: ip,
					},
					Hosting: hosting{VrtHst: vrtHst{
						Properties: []property{
							{Name: ftpLogin, Value: username},
							{Name: "ftp_password", Value: params.Password},
						},
						IPAddress: ip,
					}},
					PlanName: params.PackageName,
				}}}, "Webspace")
				if err != nil {
					return err
				}
				webspaceID = res.ID
				return nil
			},
			func(ctx context.Context) error {
				return p.deleteWebspace(ctx, webspaceID)
			})

	if err := seq.Run(ctx); err != nil {
		return nil, err
	}

	return p.GetInfo(ctx, provision.AccountIdentity{
		CustomerID:     customerID,
		SubscriptionID: webspaceID,
		Username:       username,
	})
}

// findOrCreateCustomer returns the id of the owning customer. The owner is
// OwnerUsername when given, otherwise a customer with the account's login.
func (p *Provider) findOrCreateCustomer(ctx context.Context, username string, params provision.CreateParams) (string, bool, error) {
	login := params.OwnerUsername
	if login == "" {
		login = username
	}

	existing, err := p.customer(ctx, login)
	if err == nil {
		logger.Debug("reusing plesk customer %s (id %s)", login, existing.ID)
		return existing.ID, false, nil
	}
	if !isNotFound(err) {
		return "", false, err
	}
	if params.OwnerUsername != "" {
		return "", false, errors.NotFound("Owner customer does not exist").
			WithData("owner_username", params.OwnerUsername)
	}

	name := params.CustomerName
	if name == "" {
		name = username
	}
	res, err := p.first(ctx, &packet{Customer: &customerOp{Add: &customerAdd{
		PName:  name,
		Login:  login,
		Passwd: params.Password,
		Email:  params.Email,
	}}}, "Customer")
	if err != nil {
		return "", false, err
	}
	return res.ID, true, nil
}

func (p *Provider) deleteCustomer(ctx context.Context, id string) error {
	_, err := p.call(ctx, &packet{Customer: &customerOp{Del: &delOp{Filter: filter{ID: id}}}})
	return err
}

func (p *Provider) deleteWebspace(ctx context.Context, id string) error {
	_, err := p.call(ctx, &packet{Webspace: &webspaceOp{Del: &delOp{Filter: filter{ID: id}}}})
	return err
}

// setWebspace applies values to the account's subscription
func (p *Provider) setWebspace(ctx context.Context, id provision.AccountIdentity, values webspaceValues) error {
	wsID, err := p.webspaceID(ctx, id)
	if err != nil {
		return err
	}
	_, err = p.call(ctx, &packet{Webspace: &webspaceOp{Set: &webspaceSet{
		Filter: filter{ID: wsID},
		Values: values,
	}}})
	return err
}

// GetLoginURL opens a panel session bound to the user's IP
func (p *Provider) GetLoginURL(ctx context.Context, params provision.GetLoginURLParams) (*provision.LoginURL, error) {
	res, err := p.first(ctx, &packet{Server: &serverOp{CreateSession: &createSession{
		Login:  params.Username,
		UserIP: base64.StdEncoding.EncodeToString([]byte(params.UserIP)),
	}}}, "Session")
	if err != nil {
		return nil, err
	}

	return &provision.LoginURL{
		LoginURL: p.baseURL + "/enterprise/rsession_init.php?" + url.Values{"PLESKSESSID": {res.ID}}.Encode(),
		ForIP:    params.UserIP,
	}, nil
}

// ChangePassword sets the system user password of the subscription
func (p *Provider) ChangePassword(ctx context.Context, params provision.ChangePasswordParams) (*provision.EmptyResult, error) {
	err := p.setWebspace(ctx, params.AccountIdentity, webspaceValues{
		Hosting: &hosting{VrtHst: vrtHst{Properties: []property{
			{Name: "ftp_password", Value: params.Password},
		}}},
	})
	if err != nil {
		return nil, err
	}
	return &provision.EmptyResult{Message: "Password changed"}, nil
}

// ChangePackage switches the subscription to another service plan
func (p *Provider) ChangePackage(ctx context.Context, params provision.ChangePackageParams) (*provision.AccountInfo, error) {
	plan, err := p.plan(ctx, filter{Name: params.PackageName})
	if err != nil {
		return nil, err
	}
	wsID, err := p.webspaceID(ctx, params.AccountIdentity)
	if err != nil {
		return nil, err
	}
	if _, err := p.call(ctx, &packet{Webspace: &webspaceOp{Switch: &switchPlanOp{
		Filter:   filter{ID: wsID},
		PlanGUID: plan.GUID,
	}}}); err != nil {
		return nil, err
	}

	id := params.AccountIdentity
	id.SubscriptionID = wsID
	return p.GetInfo(ctx, id)
}

// Suspend disables the subscription as administrator. The webspace status
// has no reason field, so params.Reason is not sent and GetInfo reports the
// status instead.
func (p *Provider) Suspend(ctx context.Context, params provision.SuspendParams) (*provision.AccountInfo, error) {
	return p.setStatus(ctx, params.AccountIdentity, statusSuspendedByAdmin)
}

// Unsuspend re-activates the subscription
func (p *Provider) Unsuspend(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
	return p.setStatus(ctx, id, statusActive)
}

func (p *Provider) setStatus(ctx context.Context, id provision.AccountIdentity, status int) (*provision.AccountInfo, error) {
	wsID, err := p.webspaceID(ctx, id)
	if err != nil {
		return nil, err
	}
	id.SubscriptionID = wsID
	if err := p.setWebspace(ctx, id, webspaceValues{
		GenSetup: &genSetup{Status: itoa(status)},
	}); err != nil {
		return nil, err
	}
	return p.GetInfo(ctx, id)
}

// Terminate deletes the subscription, then its customer once the customer
// owns no other subscription.
func (p *Provider) Terminate(ctx context.Context, id provision.AccountIdentity) (*provision.EmptyResult, error) {
	ws, err := p.webspace(ctx, id, &dataset{GenInfo: &empty{}})
	if err != nil {
		return nil, err
	}
	if err := p.deleteWebspace(ctx, ws.ID); err != nil {
		return nil, err
	}

	ownerID := ws.Data.GenInfo.OwnerID
	if ownerID == "" {
		return &provision.EmptyResult{Message: "Account terminated"}, nil
	}
	remaining, err := p.call(ctx, &packet{Webspace: &webspaceOp{
		Get: &getOp{Filter: filter{OwnerID: ownerID}, Dataset: &dataset{GenInfo: &empty{}}},
	}})
	if err != nil && !isNotFound(err) {
		return nil, err
	}
	if len(remaining) == 0 {
		if err := p.deleteCustomer(ctx, ownerID); err != nil {
			return nil, err
		}
	}
	return &provision.EmptyResult{Message: "Account terminated"}, nil
}

// GrantReseller is not offered for Plesk accounts
func (p *Provider) GrantReseller(ctx context.Context, id provision.AccountIdentity) (*provision.ResellerPrivileges, error) {
	return nil, errors.Unsupported("Reseller privileges are not supported by Plesk accounts")
}

// RevokeReseller is not offered for Plesk accounts
func (p *Provider) RevokeReseller(ctx context.Context, id provision.AccountIdentity) (*provision.ResellerPrivileges, error) {
	return nil, errors.Unsupported("Reseller privileges are not supported by Plesk accounts")
}
