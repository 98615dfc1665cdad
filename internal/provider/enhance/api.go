package enhance

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/tidwall/gjson"
)

// account is a resolved customer org and subscription
type account struct {
	customerID     string
	subscriptionID string
	email          string
}

// plan fields
const (
	fieldPlanID       = "id"
	fieldPlanName     = "name"
	fieldPlanPlatform = "platform"
)

// subscription fields
const (
	fieldSubPlanID    = "planId"
	fieldSubPlanName  = "planName"
	fieldSubStatus    = "status"
	fieldSubSuspended = "suspendedBy"
)

func (p *Provider) get(ctx context.Context, path string, query url.Values) (gjson.Result, error) {
	return p.client.DoJSON(ctx, http.MethodGet, path, query, nil)
}

func (p *Provider) post(ctx context.Context, path string, payload any) (gjson.Result, error) {
	return p.client.DoJSON(ctx, http.MethodPost, path, nil, payload)
}

func (p *Provider) patch(ctx context.Context, path string, payload any) error {
	_, err := p.client.DoJSON(ctx, http.MethodPatch, path, nil, payload)
	return err
}

func (p *Provider) delete(ctx context.Context, path string) error {
	_, err := p.client.DoJSON(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func orgPath(org string, parts ...string) string {
	return "/orgs/" + url.PathEscape(org) + joinPath(parts...)
}

func joinPath(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString("/")
		b.WriteString(url.PathEscape(part))
	}
	return b.String()
}

// paginate walks a listing and calls fn for each item until fn returns
// true or the listing is exhausted.
func (p *Provider) paginate(ctx context.Context, path string, query url.Values, fn func(item gjson.Result) bool) error {
	for offset := 0; ; offset += pageSize {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("offset", strconv.Itoa(offset))
		q.Set("limit", strconv.Itoa(pageSize))

		page, err := p.get(ctx, path, q)
		if err != nil {
			return err
		}
		items := page.Get("items").Array()
		for _, item := range items {
			if fn(item) {
				return nil
			}
		}
		total := int(page.Get("total").Int())
		if len(items) == 0 || offset+len(items) >= total {
			return nil
		}
	}
}

// planByName finds a plan of the reseller org by name
func (p *Provider) planByName(ctx context.Context, name string) (gjson.Result, error) {
	var found gjson.Result
	err := p.paginate(ctx, orgPath(p.orgID, "plans"), nil, func(item gjson.Result) bool {
		if strings.EqualFold(item.Get(fieldPlanName).String(), name) {
			found = item
			return true
		}
		return false
	})
	if err != nil {
		return gjson.Result{}, err
	}
	if !found.Exists() {
		return gjson.Result{}, errors.NotFound("Plan not found").WithData("package_name", name)
	}
	return found, nil
}

// planByID fetches one plan of the reseller org
func (p *Provider) planByID(ctx context.Context, id int64) (gjson.Result, error) {
	return p.get(ctx, orgPath(p.orgID, "plans", strconv.FormatInt(id, 10)), nil)
}

// resolve fills the customer and subscription ids of id, looking them up
// by owner email when absent.
func (p *Provider) resolve(ctx context.Context, id provision.AccountIdentity) (*account, error) {
	acct := &account{
		customerID:     id.CustomerID,
		subscriptionID: id.SubscriptionID,
		email:          id.Username,
	}

	if acct.customerID == "" {
		if err := p.paginate(ctx, orgPath(p.orgID, "customers"), url.Values{"search": {id.Username}}, func(item gjson.Result) bool {
			if strings.EqualFold(item.Get("ownerEmail").String(), id.Username) {
				acct.customerID = item.Get("id").String()
				return true
			}
			return false
		}); err != nil {
			return nil, err
		}
		if acct.customerID == "" {
			return nil, errors.NotFound("Customer not found").WithData("username", id.Username)
		}
	} else if _, err := uuid.Parse(acct.customerID); err != nil {
		return nil, errors.Validation("Customer ID must be a UUID").WithData("customer_id", acct.customerID)
	}

	if acct.subscriptionID == "" {
		subs, err := p.get(ctx, orgPath(acct.customerID, "subscriptions"), nil)
		if err != nil {
			return nil, err
		}
		first := subs.Get("items.0.id")
		if !first.Exists() {
			return nil, errors.NotFound("Subscription not found").WithData("customer_id", acct.customerID)
		}
		acct.subscriptionID = first.String()
	} else if _, err := strconv.ParseInt(acct.subscriptionID, 10, 64); err != nil {
		return nil, errors.Validation("Subscription ID must be numeric").WithData("subscription_id", acct.subscriptionID)
	}

	return acct, nil
}

// subscriptionPath addresses the account's subscription
func (a *account) subscriptionPath(parts ...string) string {
	return orgPath(a.customerID, append([]string{"subscriptions", a.subscriptionID}, parts...)...)
}

// owner returns the owner membership of the customer org
func (p *Provider) owner(ctx context.Context, acct *account) (gjson.Result, error) {
	var owner gjson.Result
	err := p.paginate(ctx, orgPath(acct.customerID, "members"), nil, func(item gjson.Result) bool {
		if acct.email != "" && strings.EqualFold(item.Get("email").String(), acct.email) {
			owner = item
			return true
		}
		for _, role := range item.Get("roles").Array() {
			if role.String() == "Owner" && !owner.Exists() {
				owner = item
			}
		}
		return false
	})
	if err != nil {
		return gjson.Result{}, err
	}
	if !owner.Exists() {
		return gjson.Result{}, errors.NotFound("Owner login not found").WithData("customer_id", acct.customerID)
	}
	return owner, nil
}
