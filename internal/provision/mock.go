package provision

import (
	"context"
	"sync"
)

// MockProvider is a test double for the Provider interface
type MockProvider struct {
	mu   sync.Mutex
	name string
	caps Capabilities

	// Function mocks - set these to customize behavior
	CreateFunc         func(ctx context.Context, params CreateParams) (*AccountInfo, error)
	GetInfoFunc        func(ctx context.Context, id AccountIdentity) (*AccountInfo, error)
	GetUsageFunc       func(ctx context.Context, id AccountIdentity) (*UsageData, error)
	GetLoginURLFunc    func(ctx context.Context, params GetLoginURLParams) (*LoginURL, error)
	ChangePasswordFunc func(ctx context.Context, params ChangePasswordParams) (*EmptyResult, error)
	ChangePackageFunc  func(ctx context.Context, params ChangePackageParams) (*AccountInfo, error)
	SuspendFunc        func(ctx context.Context, params SuspendParams) (*AccountInfo, error)
	UnsuspendFunc      func(ctx context.Context, id AccountIdentity) (*AccountInfo, error)
	TerminateFunc      func(ctx context.Context, id AccountIdentity) (*EmptyResult, error)
	GrantResellerFunc  func(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error)
	RevokeResellerFunc func(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error)

	// Rules returned from ErrorRules
	Rules []TextRule

	// Call tracking - check these to verify interactions
	CreateCalls         []CreateParams
	GetInfoCalls        []AccountIdentity
	GetUsageCalls       []AccountIdentity
	GetLoginURLCalls    []GetLoginURLParams
	ChangePasswordCalls []ChangePasswordParams
	ChangePackageCalls  []ChangePackageParams
	SuspendCalls        []SuspendParams
	UnsuspendCalls      []AccountIdentity
	TerminateCalls      []AccountIdentity
	GrantResellerCalls  []AccountIdentity
	RevokeResellerCalls []AccountIdentity
}

// NewMockProvider creates a MockProvider whose operations succeed with
// minimal results
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		name: name,
		caps: Capabilities{MaxUsernameLength: 16, Reseller: true},
	}
}

// WithCapabilities sets the capabilities reported by the mock
func (m *MockProvider) WithCapabilities(caps Capabilities) *MockProvider {
	m.caps = caps
	return m
}

// Name returns the provider name
func (m *MockProvider) Name() string {
	return m.name
}

// Capabilities returns the configured capabilities
func (m *MockProvider) Capabilities() Capabilities {
	return m.caps
}

// ErrorRules returns the configured rules
func (m *MockProvider) ErrorRules() []TextRule {
	return m.Rules
}

// TotalCalls returns the number of recorded operation calls
func (m *MockProvider) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CreateCalls) + len(m.GetInfoCalls) + len(m.GetUsageCalls) +
		len(m.GetLoginURLCalls) + len(m.ChangePasswordCalls) + len(m.ChangePackageCalls) +
		len(m.SuspendCalls) + len(m.UnsuspendCalls) + len(m.TerminateCalls) +
		len(m.GrantResellerCalls) + len(m.RevokeResellerCalls)
}

// Create records the call and invokes the mock function if set
func (m *MockProvider) Create(ctx context.Context, params CreateParams) (*AccountInfo, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, params)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &AccountInfo{Username: params.Username, Domain: params.Domain, PackageName: params.PackageName}, nil
}

// GetInfo records the call and invokes the mock function if set
func (m *MockProvider) GetInfo(ctx context.Context, id AccountIdentity) (*AccountInfo, error) {
	m.mu.Lock()
	m.GetInfoCalls = append(m.GetInfoCalls, id)
	m.mu.Unlock()
	if m.GetInfoFunc != nil {
		return m.GetInfoFunc(ctx, id)
	}
	return &AccountInfo{Username: id.Username}, nil
}

// GetUsage records the call and invokes the mock function if set
func (m *MockProvider) GetUsage(ctx context.Context, id AccountIdentity) (*UsageData, error) {
	m.mu.Lock()
	m.GetUsageCalls = append(m.GetUsageCalls, id)
	m.mu.Unlock()
	if m.GetUsageFunc != nil {
		return m.GetUsageFunc(ctx, id)
	}
	return &UsageData{Usage: &Usage{}}, nil
}

// GetLoginURL records the call and invokes the mock function if set
func (m *MockProvider) GetLoginURL(ctx context.Context, params GetLoginURLParams) (*LoginURL, error) {
	m.mu.Lock()
	m.GetLoginURLCalls = append(m.GetLoginURLCalls, params)
	m.mu.Unlock()
	if m.GetLoginURLFunc != nil {
		return m.GetLoginURLFunc(ctx, params)
	}
	return &LoginURL{LoginURL: "https://panel.example.com/login", ForIP: params.UserIP}, nil
}

// ChangePassword records the call and invokes the mock function if set
func (m *MockProvider) ChangePassword(ctx context.Context, params ChangePasswordParams) (*EmptyResult, error) {
	m.mu.Lock()
	m.ChangePasswordCalls = append(m.ChangePasswordCalls, params)
	m.mu.Unlock()
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, params)
	}
	return &EmptyResult{Message: "Password changed"}, nil
}

// ChangePackage records the call and invokes the mock function if set
func (m *MockProvider) ChangePackage(ctx context.Context, params ChangePackageParams) (*AccountInfo, error) {
	m.mu.Lock()
	m.ChangePackageCalls = append(m.ChangePackageCalls, params)
	m.mu.Unlock()
	if m.ChangePackageFunc != nil {
		return m.ChangePackageFunc(ctx, params)
	}
	return &AccountInfo{Username: params.Username, PackageName: params.PackageName}, nil
}

// Suspend records the call and invokes the mock function if set
func (m *MockProvider) Suspend(ctx context.Context, params SuspendParams) (*AccountInfo, error) {
	m.mu.Lock()
	m.SuspendCalls = append(m.SuspendCalls, params)
	m.mu.Unlock()
	if m.SuspendFunc != nil {
		return m.SuspendFunc(ctx, params)
	}
	return &AccountInfo{Username: params.Username, Suspended: true, SuspendReason: params.Reason}, nil
}

// Unsuspend records the call and invokes the mock function if set
func (m *MockProvider) Unsuspend(ctx context.Context, id AccountIdentity) (*AccountInfo, error) {
	m.mu.Lock()
	m.UnsuspendCalls = append(m.UnsuspendCalls, id)
	m.mu.Unlock()
	if m.UnsuspendFunc != nil {
		return m.UnsuspendFunc(ctx, id)
	}
	return &AccountInfo{Username: id.Username}, nil
}

// Terminate records the call and invokes the mock function if set
func (m *MockProvider) Terminate(ctx context.Context, id AccountIdentity) (*EmptyResult, error) {
	m.mu.Lock()
	m.TerminateCalls = append(m.TerminateCalls, id)
	m.mu.Unlock()
	if m.TerminateFunc != nil {
		return m.TerminateFunc(ctx, id)
	}
	return &EmptyResult{Message: "Account terminated"}, nil
}

// GrantReseller records the call and invokes the mock function if set
func (m *MockProvider) GrantReseller(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error) {
	m.mu.Lock()
	m.GrantResellerCalls = append(m.GrantResellerCalls, id)
	m.mu.Unlock()
	if m.GrantResellerFunc != nil {
		return m.GrantResellerFunc(ctx, id)
	}
	return &ResellerPrivileges{Reseller: true}, nil
}

// RevokeReseller records the call and invokes the mock function if set
func (m *MockProvider) RevokeReseller(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error) {
	m.mu.Lock()
	m.RevokeResellerCalls = append(m.RevokeResellerCalls, id)
	m.mu.Unlock()
	if m.RevokeResellerFunc != nil {
		return m.RevokeResellerFunc(ctx, id)
	}
	return &ResellerPrivileges{Reseller: false}, nil
}

// Ensure MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
