package provision

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/logger"
)

// Service is the entry point for account lifecycle operations. It validates
// input before any remote call, delegates to the provider and normalizes
// every error the provider returns.
type Service struct {
	provider   Provider
	normalizer *Normalizer
}

// NewService wraps provider. secrets are redacted from every error.
func NewService(provider Provider, secrets []string) *Service {
	var rules []TextRule
	if tc, ok := provider.(TextClassifier); ok {
		rules = tc.ErrorRules()
	}
	return &Service{
		provider:   provider,
		normalizer: NewNormalizer(secrets, rules...),
	}
}

// Success messages set when the provider leaves AccountInfo.Message blank
const (
	MessageCreated          = "Account created"
	MessagePackageChanged   = "Package changed"
	MessageSuspended        = "Account suspended"
	MessageUnsuspended      = "Account unsuspended"
	MessageAlreadySuspended = "Account already suspended"
	MessageNotSuspended     = "Account is not suspended"
)

// Provider returns the wrapped provider
func (s *Service) Provider() Provider {
	return s.provider
}

// call logs one operation and normalizes its error
func (s *Service) call(ctx context.Context, op, username string, fn func(ctx context.Context) error) error {
	requestID := uuid.NewString()
	fields := map[string]interface{}{
		"request_id": requestID,
		"provider":   s.provider.Name(),
		"operation":  op,
	}
	if username != "" {
		fields["username"] = username
	}
	logger.DebugFields("operation started", fields)

	start := time.Now()
	err := s.normalizer.Normalize(fn(ctx))
	fields["elapsed"] = time.Since(start).Round(time.Millisecond)
	if err != nil {
		fields["error"] = err
		logger.DebugFields("operation failed", fields)
		return err
	}
	logger.DebugFields("operation finished", fields)
	return nil
}

// withPassword returns a service that also redacts password, in plain and
// query-escaped form, from errors and log lines
func (s *Service) withPassword(password string) *Service {
	secrets := []string{password}
	if escaped := url.QueryEscape(password); escaped != password {
		secrets = append(secrets, escaped)
	}
	logger.RedactSecrets(secrets...)
	return &Service{provider: s.provider, normalizer: s.normalizer.WithSecrets(secrets...)}
}

// Create provisions a new account
func (s *Service) Create(ctx context.Context, params CreateParams) (*AccountInfo, error) {
	if err := params.Validate(s.provider.Capabilities()); err != nil {
		return nil, err
	}
	svc := s.withPassword(params.Password)

	var info *AccountInfo
	err := svc.call(ctx, "create", params.Username, func(ctx context.Context) error {
		var err error
		info, err = s.provider.Create(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return withMessage(info, MessageCreated), nil
}

// withMessage fills a blank result message
func withMessage(info *AccountInfo, msg string) *AccountInfo {
	if info != nil && info.Message == "" {
		info.Message = msg
	}
	return info
}

// GetInfo returns a fresh snapshot of an account
func (s *Service) GetInfo(ctx context.Context, id AccountIdentity) (*AccountInfo, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var info *AccountInfo
	err := s.call(ctx, "getInfo", id.Username, func(ctx context.Context) error {
		var err error
		info, err = s.provider.GetInfo(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

// GetUsage returns quota consumption of an account
func (s *Service) GetUsage(ctx context.Context, id AccountIdentity) (*UsageData, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var usage *UsageData
	err := s.call(ctx, "getUsage", id.Username, func(ctx context.Context) error {
		var err error
		usage, err = s.provider.GetUsage(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return usage, nil
}

// GetLoginURL returns a pre-authenticated panel URL
func (s *Service) GetLoginURL(ctx context.Context, params GetLoginURLParams) (*LoginURL, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var login *LoginURL
	err := s.call(ctx, "getLoginUrl", params.Username, func(ctx context.Context) error {
		var err error
		login, err = s.provider.GetLoginURL(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return login, nil
}

// ChangePassword sets a new account password
func (s *Service) ChangePassword(ctx context.Context, params ChangePasswordParams) (*EmptyResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	// The new password must not leak through panel error echoes either.
	svc := s.withPassword(params.Password)

	var res *EmptyResult
	err := svc.call(ctx, "changePassword", params.Username, func(ctx context.Context) error {
		var err error
		res, err = s.provider.ChangePassword(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ChangePackage moves an account to another package
func (s *Service) ChangePackage(ctx context.Context, params ChangePackageParams) (*AccountInfo, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	var info *AccountInfo
	err := s.call(ctx, "changePackage", params.Username, func(ctx context.Context) error {
		var err error
		info, err = s.provider.ChangePackage(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return withMessage(info, MessagePackageChanged), nil
}

// Suspend disables an account. An account that is already suspended is
// returned as is without a second suspend call.
func (s *Service) Suspend(ctx context.Context, params SuspendParams) (*AccountInfo, error) {
	if err := params.AccountIdentity.Validate(); err != nil {
		return nil, err
	}
	var info *AccountInfo
	err := s.call(ctx, "suspend", params.Username, func(ctx context.Context) error {
		current, err := s.provider.GetInfo(ctx, params.AccountIdentity)
		if err != nil && !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
		if current != nil && current.Suspended {
			current.Message = MessageAlreadySuspended
			current.unchanged = true
			info = current
			return nil
		}
		info, err = s.provider.Suspend(ctx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return withMessage(info, MessageSuspended), nil
}

// Unsuspend re-enables an account. An account that is not suspended is
// returned as is without an unsuspend call.
func (s *Service) Unsuspend(ctx context.Context, id AccountIdentity) (*AccountInfo, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var info *AccountInfo
	err := s.call(ctx, "unSuspend", id.Username, func(ctx context.Context) error {
		current, err := s.provider.GetInfo(ctx, id)
		if err != nil && !errors.Is(err, errors.ErrUnsupported) {
			return err
		}
		if current != nil && !current.Suspended {
			current.Message = MessageNotSuspended
			current.unchanged = true
			info = current
			return nil
		}
		info, err = s.provider.Unsuspend(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return withMessage(info, MessageUnsuspended), nil
}

// Terminate permanently removes an account
func (s *Service) Terminate(ctx context.Context, id AccountIdentity) (*EmptyResult, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var res *EmptyResult
	err := s.call(ctx, "terminate", id.Username, func(ctx context.Context) error {
		var err error
		res, err = s.provider.Terminate(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GrantReseller gives an account reseller privileges
func (s *Service) GrantReseller(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var res *ResellerPrivileges
	err := s.call(ctx, "grantReseller", id.Username, func(ctx context.Context) error {
		var err error
		res, err = s.provider.GrantReseller(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// RevokeReseller removes reseller privileges
func (s *Service) RevokeReseller(ctx context.Context, id AccountIdentity) (*ResellerPrivileges, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	var res *ResellerPrivileges
	err := s.call(ctx, "revokeReseller", id.Username, func(ctx context.Context) error {
		var err error
		res, err = s.provider.RevokeReseller(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
