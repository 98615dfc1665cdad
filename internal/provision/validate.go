package provision

import (
	"net"
	"net/mail"
	"strings"

	"github.com/ksyq12/hostprov/internal/errors"
)

// Validate checks create input against the panel's capabilities
func (p *CreateParams) Validate(caps Capabilities) error {
	if strings.TrimSpace(p.PackageName) == "" {
		return errors.Validation("Package name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.Validation("Email address is required")
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return errors.Validation("Email address is invalid").WithData("email", p.Email)
	}
	if caps.RequiresDomain && strings.TrimSpace(p.Domain) == "" {
		return errors.Validation("Domain name is required")
	}
	if p.Domain != "" {
		if err := validateDomain(p.Domain); err != nil {
			return err
		}
	}
	if caps.MaxUsernameLength > 0 && len(p.Username) > caps.MaxUsernameLength {
		return errors.Validation("Username is too long").
			WithData("max_length", caps.MaxUsernameLength)
	}
	if p.AsReseller && !caps.Reseller {
		return errors.Unsupported("Reseller accounts are not supported by this panel")
	}
	if p.CustomIP != "" && net.ParseIP(p.CustomIP) == nil {
		return errors.Validation("Custom IP address is invalid").WithData("ip", p.CustomIP)
	}
	return nil
}

// Validate checks that the account is addressed
func (id AccountIdentity) Validate() error {
	if strings.TrimSpace(id.Username) == "" {
		return errors.Validation("Username is required")
	}
	return nil
}

// Validate checks login URL input
func (p *GetLoginURLParams) Validate() error {
	if err := p.AccountIdentity.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.UserIP) == "" {
		return errors.Validation("User IP address is required")
	}
	if net.ParseIP(p.UserIP) == nil {
		return errors.Validation("User IP address is invalid").WithData("user_ip", p.UserIP)
	}
	return nil
}

// Validate checks password change input
func (p *ChangePasswordParams) Validate() error {
	if err := p.AccountIdentity.Validate(); err != nil {
		return err
	}
	if p.Password == "" {
		return errors.Validation("Password is required")
	}
	return nil
}

// Validate checks package change input
func (p *ChangePackageParams) Validate() error {
	if err := p.AccountIdentity.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.PackageName) == "" {
		return errors.Validation("Package name is required")
	}
	return nil
}

// validateDomain checks if domain is a plausible host name
func validateDomain(domain string) error {
	switch {
	case strings.Contains(domain, " "):
		return errors.Validation("Domain name cannot contain spaces").WithData("domain", domain)
	case strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-"):
		return errors.Validation("Domain name cannot start or end with hyphen").WithData("domain", domain)
	case !strings.Contains(domain, "."):
		return errors.Validation("Domain name must contain a dot").WithData("domain", domain)
	}
	return nil
}
