package plesk

import (
	"context"
	"strconv"

	"github.com/ksyq12/hostprov/internal/provision"
	"golang.org/x/sync/errgroup"
)

const mebibyte = 1024 * 1024

// Plesk limit names and their unlimited sentinel
const (
	limitDisk      = "disk_space"
	limitTraffic   = "max_traffic"
	limitMailboxes = "max_box"
	unlimited      = "-1"
)

const ftpLogin = "ftp_login"

// webspaceFilter addresses the subscription of an account
func webspaceFilter(id provision.AccountIdentity) filter {
	if id.SubscriptionID != "" {
		return filter{ID: id.SubscriptionID}
	}
	return filter{OwnerLogin: id.Username}
}

// webspace looks up the account's subscription with the given dataset
func (p *Provider) webspace(ctx context.Context, id provision.AccountIdentity, ds *dataset) (*result, error) {
	return p.first(ctx, &packet{Webspace: &webspaceOp{
		Get: &getOp{Filter: webspaceFilter(id), Dataset: ds},
	}}, "Subscription for "+id.Username)
}

// webspaceID resolves the subscription id of an account
func (p *Provider) webspaceID(ctx context.Context, id provision.AccountIdentity) (string, error) {
	if id.SubscriptionID != "" {
		return id.SubscriptionID, nil
	}
	ws, err := p.webspace(ctx, id, &dataset{GenInfo: &empty{}})
	if err != nil {
		return "", err
	}
	return ws.ID, nil
}

// GetInfo reads the subscription, then resolves its plan name and NS
// records concurrently.
func (p *Provider) GetInfo(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
	ws, err := p.webspace(ctx, id, &dataset{
		GenInfo:       &empty{},
		Hosting:       &empty{},
		Subscriptions: &empty{},
	})
	if err != nil {
		return nil, err
	}

	var (
		planName    string
		nameservers []string
	)
	g, gctx := errgroup.WithContext(ctx)
	if len(ws.Data.Subscriptions) > 0 && ws.Data.Subscriptions[0].PlanGUID != "" {
		guid := ws.Data.Subscriptions[0].PlanGUID
		g.Go(func() error {
			plan, err := p.plan(gctx, filter{GUID: guid})
			if err != nil {
				return err
			}
			planName = plan.Name
			return nil
		})
	}
	g.Go(func() error {
		var err error
		nameservers, err = p.nameservers(gctx, ws.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	gen := ws.Data.GenInfo
	info := &provision.AccountInfo{
		CustomerID:     gen.OwnerID,
		SubscriptionID: ws.ID,
		Username:       ws.Data.Hosting.property(ftpLogin),
		Domain:         gen.Name,
		ServerHostname: p.hostname,
		PackageName:    planName,
		Suspended:      gen.Status != statusActive,
		SuspendReason:  suspendReason(gen.Status),
		IP:             ws.Data.Hosting.VrtHst.IPAddress,
		Nameservers:    provision.NormalizeNameservers(nameservers),
	}
	if info.Username == "" {
		info.Username = id.Username
	}
	if info.IP == "" {
		info.IP = gen.DNSIP
	}
	return info, nil
}

// GetUsage reports disk, traffic and mailbox consumption of the subscription
func (p *Provider) GetUsage(ctx context.Context, id provision.AccountIdentity) (*provision.UsageData, error) {
	ws, err := p.webspace(ctx, id, &dataset{
		GenInfo: &empty{},
		Limits:  &empty{},
		Stat:    &empty{},
	})
	if err != nil {
		return nil, err
	}

	disk, err := limitOf(ws.Data, limitDisk, mebibyte)
	if err != nil {
		return nil, err
	}
	traffic, err := limitOf(ws.Data, limitTraffic, mebibyte)
	if err != nil {
		return nil, err
	}
	boxes, err := limitOf(ws.Data, limitMailboxes, 1)
	if err != nil {
		return nil, err
	}

	return &provision.UsageData{Usage: &provision.Usage{
		DiskMB:      provision.NewUnitsConsumed(float64(ws.Data.GenInfo.RealSize)/mebibyte, disk),
		BandwidthMB: provision.NewUnitsConsumed(float64(ws.Data.Stat.Traffic)/mebibyte, traffic),
		Mailboxes:   provision.NewUnitsConsumed(float64(ws.Data.Stat.Box), boxes),
	}}, nil
}

// limitOf parses a named limit and scales it down by unit. Missing limits
// and the -1 sentinel are unlimited.
func limitOf(d resultData, name string, unit float64) (*float64, error) {
	raw, ok := d.limit(name)
	if !ok {
		return nil, nil
	}
	v, err := provision.ParseQuota(raw, unlimited)
	if err != nil || v == nil {
		return nil, err
	}
	return provision.Limit(*v / unit), nil
}

// plan looks up a service plan
func (p *Provider) plan(ctx context.Context, f filter) (*result, error) {
	what := "Service plan " + f.Name
	if f.Name == "" {
		what = "Service plan " + f.GUID
	}
	return p.first(ctx, &packet{ServicePlan: &servicePlanOp{Get: &getOp{Filter: f}}}, what)
}

// nameservers returns the NS record values of a site
func (p *Provider) nameservers(ctx context.Context, siteID string) ([]string, error) {
	results, err := p.call(ctx, &packet{DNS: &dnsOp{GetRec: &delOp{Filter: filter{SiteID: siteID}}}})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, r := range results {
		if r.Data.Type == "NS" {
			out = append(out, r.Data.Value)
		}
	}
	return out, nil
}

// customer looks up a customer by login
func (p *Provider) customer(ctx context.Context, login string) (*result, error) {
	return p.first(ctx, &packet{Customer: &customerOp{
		Get: &getOp{Filter: filter{Login: login}, Dataset: &dataset{GenInfo: &empty{}}},
	}}, "Customer "+login)
}

// customerExists looks up a customer login for username generation
func (p *Provider) customerExists(ctx context.Context, login string) (bool, error) {
	_, err := p.customer(ctx, login)
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// ipsByType lists the server's IP addresses per type with one API call
func (p *Provider) ipsByType(ctx context.Context) (map[string][]string, error) {
	results, err := p.call(ctx, &packet{IP: &ipOp{Get: &empty{}}})
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, r := range results {
		for _, a := range r.Addresses {
			out[a.Type] = append(out[a.Type], a.Address)
		}
	}
	return out, nil
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
