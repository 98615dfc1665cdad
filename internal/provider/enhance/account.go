package enhance

import (
	"context"
	"net/url"

	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const mebibyte = 1024 * 1024

// resource-usage item names
const (
	resourceDisk      = "diskspace"
	resourceTransfer  = "transfer"
	resourceInodes    = "inodes"
	resourceWebsites  = "websites"
	resourceMailboxes = "mailboxes"
)

// GetInfo reads the subscription and its website concurrently
func (p *Provider) GetInfo(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
	acct, err := p.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.info(ctx, acct)
}

func (p *Provider) info(ctx context.Context, acct *account) (*provision.AccountInfo, error) {
	var sub, websites gjson.Result

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sub, err = p.get(gctx, acct.subscriptionPath(), nil)
		return err
	})
	g.Go(func() error {
		var err error
		websites, err = p.get(gctx, orgPath(acct.customerID, "websites"), url.Values{
			"subscriptionId": {acct.subscriptionID},
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	info := &provision.AccountInfo{
		CustomerID:     acct.customerID,
		SubscriptionID: acct.subscriptionID,
		Username:       acct.email,
		ServerHostname: p.hostname,
		PackageName:    sub.Get(fieldSubPlanName).String(),
		Suspended:      sub.Get(fieldSubStatus).String() == "suspended",
	}
	if info.Suspended {
		info.SuspendReason = "Suspended"
		if by := sub.Get(fieldSubSuspended).String(); by != "" {
			info.SuspendReason = "Suspended by " + by
		}
	}

	if site := websites.Get("items.0"); site.Exists() {
		info.Domain = websiteDomain(site)
		if php := site.Get("phpVersion").String(); php != "" {
			info.Software = map[string]string{"php": php}
		}
		info.IP = site.Get("serverIps.0").String()
		info.Location = site.Get("location").String()
	}
	return info, nil
}

// websiteDomain reads the primary domain, which newer releases nest in an
// object
func websiteDomain(site gjson.Result) string {
	d := site.Get("domain")
	if d.IsObject() {
		return d.Get("domain").String()
	}
	return d.String()
}

// GetUsage maps the subscription's resource usage
func (p *Provider) GetUsage(ctx context.Context, id provision.AccountIdentity) (*provision.UsageData, error) {
	acct, err := p.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := p.get(ctx, acct.subscriptionPath("resource-usage"), nil)
	if err != nil {
		return nil, err
	}

	usage := &provision.Usage{}
	for _, item := range res.Get("items").Array() {
		switch item.Get("name").String() {
		case resourceDisk:
			usage.DiskMB = consumed(item, mebibyte)
		case resourceTransfer:
			usage.BandwidthMB = consumed(item, mebibyte)
		case resourceInodes:
			usage.Inodes = consumed(item, 1)
		case resourceWebsites:
			usage.Websites = consumed(item, 1)
		case resourceMailboxes:
			usage.Mailboxes = consumed(item, 1)
		}
	}
	return &provision.UsageData{Usage: usage}, nil
}

// consumed converts a usage item; a missing or null total is unlimited
func consumed(item gjson.Result, unit float64) *provision.UnitsConsumed {
	var limit *float64
	if total := item.Get("total"); total.Exists() && total.Type != gjson.Null {
		limit = provision.Limit(total.Float() / unit)
	}
	return provision.NewUnitsConsumed(item.Get("usage").Float()/unit, limit)
}
