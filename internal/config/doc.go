// Package config manages the hostprov server registry stored in YAML format.
//
// Each entry describes one hosting control panel: which provider adapter
// talks to it, where it lives and the credentials to use. Configuration is
// stored in the user's home directory at ~/.config/hostprov/config.yaml and
// is written with 0600 permissions because it holds API tokens.
//
// Example config.yaml:
//
//	default_server: whm1
//	servers:
//	  whm1:
//	    provider: whm
//	    hostname: whm.example.com
//	    username: root
//	    api_token: XXXXXXXX
//	  plesk1:
//	    provider: plesk
//	    hostname: plesk.example.com
//	    port: 8443
//	    username: admin
//	    password: secret
//	  enhance1:
//	    provider: enhance
//	    hostname: https://cp.example.com/api
//	    api_token: XXXXXXXX
//	    org_id: 5ea6a2c4-5a2c-4a9d-9a35-1b0a6f1ed2d1
//
// # Providers
//
// Use the provider constants (ProviderWHM, ProviderPlesk, ProviderEnhance)
// instead of string literals. Server.Validate enforces the credentials each
// provider needs.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv, err := cfg.GetServer("") // default server
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Callers must implement their own
// synchronization if accessing Config from multiple goroutines.
package config
