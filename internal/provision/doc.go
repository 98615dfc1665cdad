// Package provision defines the uniform account lifecycle contract shared by
// all hosting control panel adapters.
//
// A Provider implements eleven operations (create, info, usage, login URL,
// password, package, suspend, unsuspend, terminate and reseller grant or
// revoke) against one panel. Service wraps a Provider: it validates input
// before any remote call, logs each operation under a request id and turns
// every failure into an *errors.ProvisionError through a Normalizer.
//
// # Multi-step create
//
// Panels that need several remote objects for one account build them with a
// Sequence. Resolve steps look things up and create nothing. Create steps
// register an undo which runs, newest first, when a later step fails:
//
//	err := provision.NewSequence("create").
//	    Resolve("plan", findPlan).
//	    Create("customer", createCustomer, deleteCustomer).
//	    Create("subscription", createSubscription, deleteSubscription).
//	    Run(ctx)
//
// The returned error unwraps to the step's original failure.
//
// # Shared helpers
//
//   - UsernameGenerator derives panel usernames from domains
//   - AllocateIP picks an address by category priority
//   - NewUnitsConsumed and NormalizeNameservers shape results
//
// # Testing
//
// MockProvider records every call and lets tests override each operation:
//
//	mock := provision.NewMockProvider("whm")
//	mock.GetInfoFunc = func(ctx context.Context, id provision.AccountIdentity) (*provision.AccountInfo, error) {
//	    return &provision.AccountInfo{Username: id.Username, Suspended: true}, nil
//	}
//	svc := provision.NewService(mock, nil)
package provision
