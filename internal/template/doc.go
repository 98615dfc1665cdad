// Package template renders account welcome messages from embedded Go
// templates.
//
// There is one template per panel, since each panel has its own login
// address and terminology:
//
//	welcome/whm.tmpl
//	welcome/plesk.tmpl
//	welcome/enhance.tmpl
//
// # Rendering
//
//	msg, err := template.Render("whm", template.NewWelcomeData(info, login, password))
//
// # Template Data
//
// Templates receive WelcomeData:
//   - Username, Domain, Package: account fields
//   - Hostname, IP, Nameservers: where the account lives
//   - LoginURL: a one-time login URL, empty when not requested
//   - Password: only set when the caller chose to include it
//
// # Custom Functions
//
//   - join: strings.Join
//   - upper: strings.ToUpper
package template
