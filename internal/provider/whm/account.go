package whm

import (
	"context"
	"net/url"
	"strings"

	"github.com/ksyq12/hostprov/internal/provision"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

const mebibyte = 1024 * 1024

// accountsummary fields
const (
	fieldUser          = "user"
	fieldDomain        = "domain"
	fieldPlan          = "plan"
	fieldSuspended     = "suspended"
	fieldSuspendReason = "suspendreason"
	fieldIP            = "ip"
	fieldTheme         = "theme"
	fieldDiskUsed      = "diskused"
	fieldDiskLimit     = "disklimit"
	fieldInodesUsed    = "inodesused"
	fieldInodesLimit   = "inodeslimit"
)

// GetInfo reads the account, the nameserver configuration and the reseller
// list concurrently.
func (p *Provider) GetInfo(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
	var (
		acct     gjson.Result
		ns       []string
		reseller bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		acct, err = p.accountSummary(gctx, id.Username)
		return err
	})
	g.Go(func() error {
		var err error
		ns, err = p.nameservers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		reseller, err = p.isReseller(gctx, id.Username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return p.mapAccount(acct, ns, reseller), nil
}

// mapAccount converts an accountsummary record
func (p *Provider) mapAccount(acct gjson.Result, ns []string, reseller bool) *provision.AccountInfo {
	info := &provision.AccountInfo{
		Username:       acct.Get(fieldUser).String(),
		Domain:         acct.Get(fieldDomain).String(),
		Reseller:       reseller,
		ServerHostname: p.hostname,
		PackageName:    acct.Get(fieldPlan).String(),
		Suspended:      acct.Get(fieldSuspended).Int() == 1,
		IP:             acct.Get(fieldIP).String(),
		Nameservers:    provision.NormalizeNameservers(ns),
	}
	if info.Suspended {
		info.SuspendReason = acct.Get(fieldSuspendReason).String()
	}
	if theme := acct.Get(fieldTheme).String(); theme != "" {
		info.Software = map[string]string{"theme": theme}
	}
	return info
}

// GetUsage reads disk and bandwidth consumption concurrently. Resellers
// also get the aggregate of their sub-accounts.
func (p *Provider) GetUsage(ctx context.Context, id provision.AccountIdentity) (*provision.UsageData, error) {
	var (
		acct     gjson.Result
		bw       gjson.Result
		reseller bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		acct, err = p.accountSummary(gctx, id.Username)
		return err
	})
	g.Go(func() error {
		data, err := p.call(gctx, "showbw", url.Values{
			"searchtype": {"user"},
			"search":     {"^" + id.Username + "$"},
		})
		if err != nil {
			return err
		}
		bw = data.Get("acct.0")
		return nil
	})
	g.Go(func() error {
		var err error
		reseller, err = p.isReseller(gctx, id.Username)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	usage, err := accountUsage(acct, bw)
	if err != nil {
		return nil, err
	}
	result := &provision.UsageData{Usage: usage}

	if reseller {
		data, err := p.call(ctx, "resellerstats", url.Values{"reseller": {id.Username}})
		if err != nil {
			return nil, err
		}
		result.ResellerUsage = resellerUsage(data.Get("reseller"))
	}
	return result, nil
}

func accountUsage(acct, bw gjson.Result) (*provision.Usage, error) {
	usage := &provision.Usage{}

	diskUsed, err := megabytes(acct.Get(fieldDiskUsed).String())
	if err != nil {
		return nil, err
	}
	diskLimit, err := megabytes(acct.Get(fieldDiskLimit).String())
	if err != nil {
		return nil, err
	}
	usage.DiskMB = provision.NewUnitsConsumed(deref(diskUsed), diskLimit)

	if used := acct.Get(fieldInodesUsed); used.Exists() {
		limit, err := provision.ParseQuota(acct.Get(fieldInodesLimit).String(), "unlimited", "")
		if err != nil {
			return nil, err
		}
		usage.Inodes = provision.NewUnitsConsumed(used.Float(), limit)
	}

	if bw.Exists() {
		usage.BandwidthMB = provision.NewUnitsConsumed(
			bw.Get("totalbytes").Float()/mebibyte,
			bandwidthLimit(bw.Get("limit")),
		)
	}
	return usage, nil
}

// bandwidthLimit converts the showbw byte limit; 0 and "unlimited" mean
// no limit
func bandwidthLimit(v gjson.Result) *float64 {
	if v.Type == gjson.String && strings.EqualFold(v.String(), "unlimited") {
		return nil
	}
	limit := provision.NumericQuota(v.Float(), 0)
	if limit == nil {
		return nil
	}
	return provision.Limit(*limit / mebibyte)
}

// resellerUsage maps a resellerstats record, whose sizes are already in MB
func resellerUsage(r gjson.Result) *provision.Usage {
	return &provision.Usage{
		DiskMB: provision.NewUnitsConsumed(
			r.Get("diskused").Float(),
			provision.NumericQuota(r.Get("diskquota").Float(), 0),
		),
		BandwidthMB: provision.NewUnitsConsumed(
			r.Get("totalbwused").Float(),
			provision.NumericQuota(r.Get("bandwidthlimit").Float(), 0),
		),
		SubAccounts: provision.NewUnitsConsumed(float64(len(r.Get("acct").Array())), nil),
	}
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
