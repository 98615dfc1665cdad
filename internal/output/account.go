package output

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ksyq12/hostprov/internal/provision"
)

// Account prints an account snapshot
func Account(info *provision.AccountInfo) {
	status := "active"
	if info.Suspended {
		status = "suspended"
		if info.SuspendReason != "" {
			status += " (" + info.SuspendReason + ")"
		}
	}

	Fields([][2]string{
		{"Username", info.Username},
		{"Customer ID", info.CustomerID},
		{"Subscription ID", info.SubscriptionID},
		{"Domain", info.Domain},
		{"Package", info.PackageName},
		{"Status", status},
		{"Reseller", yesNo(info.Reseller)},
		{"Server", info.ServerHostname},
		{"IP", info.IP},
		{"Nameservers", strings.Join(info.Nameservers, ", ")},
		{"Software", software(info.Software)},
		{"Location", info.Location},
	})
}

func software(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+m[k])
	}
	return strings.Join(parts, ", ")
}

// Usage prints the account usage and, for resellers, the aggregate of
// their sub-accounts
func Usage(data *provision.UsageData) {
	if data.Usage != nil {
		Table(usageHeaders, usageRows(data.Usage))
	}
	if data.ResellerUsage != nil {
		Print("")
		Info("Reseller totals")
		Table(usageHeaders, usageRows(data.ResellerUsage))
	}
}

var usageHeaders = []string{"RESOURCE", "USED", "LIMIT", "USED %"}

func usageRows(u *provision.Usage) [][]string {
	dims := []struct {
		name string
		val  *provision.UnitsConsumed
	}{
		{"Disk (MB)", u.DiskMB},
		{"Bandwidth (MB)", u.BandwidthMB},
		{"Inodes", u.Inodes},
		{"Websites", u.Websites},
		{"Mailboxes", u.Mailboxes},
		{"Sub-accounts", u.SubAccounts},
	}

	rows := make([][]string, 0, len(dims))
	for _, d := range dims {
		if d.val == nil {
			continue
		}
		limit := "unlimited"
		if d.val.Limit != nil {
			limit = number(*d.val.Limit)
		}
		pc := "-"
		if d.val.UsedPC != nil {
			pc = *d.val.UsedPC
		}
		rows = append(rows, []string{d.name, number(d.val.Used), limit, pc})
	}
	return rows
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
