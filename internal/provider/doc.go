// Package provider builds panel adapters from server configuration.
//
// Each supported control panel has its own subpackage implementing
// provision.Provider:
//
//   - whm: cPanel/WHM JSON API v1
//   - plesk: Plesk XML API
//   - enhance: Enhance REST API
//
// # Basic Usage
//
//	cfg, _ := config.Load()
//	srv, _ := cfg.GetServer("whm1")
//
//	p, err := provider.New(srv)
//	if err != nil {
//	    return err
//	}
//	svc := provision.NewService(p, srv.Secrets())
//	info, err := svc.GetInfo(ctx, provision.AccountIdentity{Username: "bob"})
//
// New validates the server and registers its credentials with the logger
// so they are masked in every log line. Wrapping the adapter in a
// provision.Service with the same secrets guarantees that every returned
// error is a sanitized *errors.ProvisionError.
//
// # Testing
//
// Commands depend on a factory rather than on this package directly, so
// tests substitute a provision.MockProvider:
//
//	mock := provision.NewMockProvider("whm")
//	svc := provision.NewService(mock, nil)
package provider
