package provision

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/ksyq12/hostprov/internal/errors"
)

// DefaultUsernameAttempts bounds the collision retries of Generate
const DefaultUsernameAttempts = 10

// UsernameExists reports whether a username is already taken on the panel
type UsernameExists func(ctx context.Context, username string) (bool, error)

// UsernameGenerator derives panel usernames from domain names
type UsernameGenerator struct {
	MaxLength int        // panel maximum, typically 8 to 16
	Attempts  int        // collision retries, DefaultUsernameAttempts when zero
	Rand      *rand.Rand // suffix source; seed it for reproducible names
}

// NewUsernameGenerator creates a generator seeded with seed
func NewUsernameGenerator(maxLength int, seed int64) *UsernameGenerator {
	return &UsernameGenerator{
		MaxLength: maxLength,
		Attempts:  DefaultUsernameAttempts,
		Rand:      rand.New(rand.NewSource(seed)),
	}
}

// Derive returns the base username for domain: lower-cased, reduced to
// [a-z0-9], stripped of any leading non-letters and truncated to MaxLength.
func (g *UsernameGenerator) Derive(domain string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(domain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	name := strings.TrimLeft(b.String(), "0123456789")
	if name == "" {
		return "", errors.Validation("Unable to derive a username from domain name").
			WithData("domain", domain)
	}
	if g.MaxLength > 0 && len(name) > g.MaxLength {
		name = name[:g.MaxLength]
	}
	return name, nil
}

// Generate derives a username and, while exists reports a collision,
// retries with a random numeric suffix. It fails with a conflict once the
// attempt budget is spent.
func (g *UsernameGenerator) Generate(ctx context.Context, domain string, exists UsernameExists) (string, error) {
	base, err := g.Derive(domain)
	if err != nil {
		return "", err
	}

	attempts := g.Attempts
	if attempts <= 0 {
		attempts = DefaultUsernameAttempts
	}

	candidate := base
	for i := 0; i < attempts; i++ {
		if i > 0 {
			candidate = g.withSuffix(base)
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", errors.Conflict("Unable to generate a unique username").
		WithData("domain", domain).
		WithDebug("attempts", attempts)
}

// withSuffix appends one to three random digits, shortening base so the
// result still fits MaxLength.
func (g *UsernameGenerator) withSuffix(base string) string {
	r := g.Rand
	if r == nil {
		r = rand.New(rand.NewSource(int64(len(base))))
		g.Rand = r
	}
	suffix := strconv.Itoa(r.Intn(1000))
	if g.MaxLength > 0 && len(base)+len(suffix) > g.MaxLength {
		// at least one character of base survives
		if len(suffix) > g.MaxLength-1 {
			suffix = suffix[:g.MaxLength-1]
		}
		base = base[:g.MaxLength-len(suffix)]
	}
	return base + suffix
}
