package provision

import "time"

// AccountIdentity addresses one account within a panel. Panels that key
// accounts by id (Enhance) use CustomerID and SubscriptionID, the rest use
// Username alone.
type AccountIdentity struct {
	CustomerID     string `json:"customer_id,omitempty"`
	SubscriptionID string `json:"subscription_id,omitempty"`
	Username       string `json:"username"`
}

// ResellerOptions tunes reseller accounts on panels that support them
type ResellerOptions struct {
	ACLName        string `json:"acl_name,omitempty"`
	AccountLimit   *int   `json:"account_limit,omitempty"`
	DiskLimitMB    *int   `json:"disk_limit_mb,omitempty"`
	BandwidthLimit *int   `json:"bandwidth_limit_mb,omitempty"`
}

// CreateParams is the input to Create
type CreateParams struct {
	Username        string           `json:"username,omitempty"`
	OwnerUsername   string           `json:"owner_username,omitempty"`
	OwnsItself      bool             `json:"owns_itself,omitempty"`
	Email           string           `json:"email"`
	CustomerName    string           `json:"customer_name,omitempty"`
	Password        string           `json:"-"`
	Domain          string           `json:"domain,omitempty"`
	PackageName     string           `json:"package_name"`
	AsReseller      bool             `json:"as_reseller,omitempty"`
	ResellerOptions *ResellerOptions `json:"reseller_options,omitempty"`
	CustomIP        string           `json:"custom_ip,omitempty"`
	Location        string           `json:"location,omitempty"`
}

// GetLoginURLParams is the input to GetLoginURL
type GetLoginURLParams struct {
	AccountIdentity
	UserIP string `json:"user_ip"`
}

// ChangePasswordParams is the input to ChangePassword
type ChangePasswordParams struct {
	AccountIdentity
	Password string `json:"-"`
}

// ChangePackageParams is the input to ChangePackage
type ChangePackageParams struct {
	AccountIdentity
	PackageName string `json:"package_name"`
}

// SuspendParams is the input to Suspend
type SuspendParams struct {
	AccountIdentity
	Reason string `json:"reason,omitempty"`
}

// AccountInfo is a fresh snapshot of an account as the panel reports it
type AccountInfo struct {
	CustomerID     string            `json:"customer_id,omitempty"`
	SubscriptionID string            `json:"subscription_id,omitempty"`
	Username       string            `json:"username"`
	Domain         string            `json:"domain,omitempty"`
	Reseller       bool              `json:"reseller"`
	ServerHostname string            `json:"server_hostname"`
	PackageName    string            `json:"package_name"`
	Suspended      bool              `json:"suspended"`
	SuspendReason  string            `json:"suspend_reason,omitempty"`
	IP             string            `json:"ip,omitempty"`
	Nameservers    []string          `json:"nameservers,omitempty"`
	Software       map[string]string `json:"software,omitempty"`
	Location       string            `json:"location,omitempty"`
	Message        string            `json:"message"`

	unchanged bool
}

// Unchanged reports whether the operation returning info found the account
// already in the requested state and made no panel call
func (i *AccountInfo) Unchanged() bool {
	return i.unchanged
}

// Identity returns the identity of the account described by info
func (i *AccountInfo) Identity() AccountIdentity {
	return AccountIdentity{
		CustomerID:     i.CustomerID,
		SubscriptionID: i.SubscriptionID,
		Username:       i.Username,
	}
}

// Usage maps quota dimensions to their consumption. Nil dimensions are not
// reported by the panel.
type Usage struct {
	DiskMB      *UnitsConsumed `json:"disk_mb,omitempty"`
	BandwidthMB *UnitsConsumed `json:"bandwidth_mb,omitempty"`
	Inodes      *UnitsConsumed `json:"inodes,omitempty"`
	Websites    *UnitsConsumed `json:"websites,omitempty"`
	Mailboxes   *UnitsConsumed `json:"mailboxes,omitempty"`
	SubAccounts *UnitsConsumed `json:"sub_accounts,omitempty"`
}

// UsageData is the result of GetUsage. ResellerUsage is set for reseller
// accounts and aggregates their sub-accounts.
type UsageData struct {
	Usage         *Usage `json:"usage_data"`
	ResellerUsage *Usage `json:"reseller_usage_data,omitempty"`
}

// LoginURL is a pre-authenticated panel URL. Expires is enforced by the
// panel, not locally.
type LoginURL struct {
	LoginURL string     `json:"login_url"`
	ForIP    string     `json:"for_ip,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
}

// ResellerPrivileges is the result of GrantReseller and RevokeReseller
type ResellerPrivileges struct {
	Reseller bool   `json:"reseller"`
	Message  string `json:"message"`
}

// EmptyResult is returned by operations that produce no data
type EmptyResult struct {
	Message string `json:"message"`
}
