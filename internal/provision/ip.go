package provision

import (
	"context"

	"github.com/ksyq12/hostprov/internal/errors"
)

// IPLookup lists the addresses available in one IP status category
type IPLookup func(ctx context.Context, category string) ([]string, error)

// AllocateIP walks categories in priority order and returns the first
// address of the first non-empty category.
func AllocateIP(ctx context.Context, categories []string, lookup IPLookup) (string, error) {
	for _, category := range categories {
		ips, err := lookup(ctx, category)
		if err != nil {
			return "", err
		}
		for _, ip := range ips {
			if ip != "" {
				return ip, nil
			}
		}
	}
	return "", errors.NotFound("No free IP address available").
		WithData("categories", categories)
}
