package provision

import "context"

// Provider is the interface every control panel adapter implements.
// Implementations hold their panel client and no per-call state.
type Provider interface {
	// Name returns the provider name (whm, plesk, enhance)
	Name() string

	// Capabilities describes panel specific constraints checked before dispatch
	Capabilities() Capabilities

	// Create provisions a new account and returns a fresh snapshot of it
	Create(ctx context.Context, params CreateParams) (*AccountInfo, error)

	// GetInfo returns the current state of an account
	GetInfo(ctx context.Context, id AccountIdentity) (*AccountInfo, error)

	// GetUsage returns quota consumption of an account
	GetUsage(ctx context.Context, id AccountIdentity) (*UsageData, error)

	// GetLoginURL returns a pre-authenticated panel URL
	GetLoginURL(ctx context.Context, params GetLoginURLParams) (*LoginURL, error)

	// ChangePassword sets a new account password
	ChangePassword(ctx context.Context, params ChangePasswordParams) (*EmptyResult, error)

	// ChangePackage moves an account to another package or plan
	ChangePackage(ctx context.Context, params ChangePackageParams) (*AccountInfo, error)

	// Suspend disables an account
	Suspend(ctx context.Context, params SuspendParams) (*AccountInfo, error)

	// Unsuspend re-enables an account
	Unsuspend(ctx context.Context, id AccountIdentity) (*AccountInfo, error)

	// Terminate permanently removes an account
	Terminate(ctx context.Context, id AccountIdentity) (*EmptyResult, error)

	// GrantReseller gives an account reseller privileges
	GrantReseller(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error)

	// RevokeReseller removes reseller privileges
	RevokeReseller(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error)
}

// Capabilities describes constraints of a panel
type Capabilities struct {
	RequiresDomain    bool // Create fails without a domain
	MaxUsernameLength int  // zero means the panel does not use usernames
	Reseller          bool // reseller accounts can be created and granted
}

// TextClassifier is implemented by providers whose panel reports errors as
// free text. The rules are consulted before the default rules.
type TextClassifier interface {
	ErrorRules() []TextRule
}
