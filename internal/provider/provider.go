package provider

import (
	"fmt"

	"github.com/ksyq12/hostprov/internal/config"
	"github.com/ksyq12/hostprov/internal/logger"
	"github.com/ksyq12/hostprov/internal/provider/enhance"
	"github.com/ksyq12/hostprov/internal/provider/plesk"
	"github.com/ksyq12/hostprov/internal/provider/whm"
	"github.com/ksyq12/hostprov/internal/provision"
)

// New creates the adapter for srv
func New(srv *config.Server) (provision.Provider, error) {
	if srv == nil {
		return nil, fmt.Errorf("server cannot be nil")
	}
	if err := srv.Validate(); err != nil {
		return nil, err
	}
	logger.RedactSecrets(srv.Secrets()...)

	switch srv.Provider {
	case config.ProviderWHM:
		return whm.New(srv), nil
	case config.ProviderPlesk:
		return plesk.New(srv), nil
	case config.ProviderEnhance:
		return enhance.New(srv), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", srv.Provider)
	}
}
