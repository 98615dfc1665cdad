package provision

import (
	"net/http"
	"sort"
	"strings"

	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/transport"
)

// Redacted replaces credential values in normalized errors
const Redacted = "********"

// TextRule classifies free-text panel errors by substring
type TextRule struct {
	Contains string // matched case-insensitively
	Code     errors.ErrorCode
}

// DefaultRules cover the wording shared by most panels
var DefaultRules = []TextRule{
	{Contains: "does not exist", Code: errors.CodeNotFound},
	{Contains: "not found", Code: errors.CodeNotFound},
	{Contains: "no such", Code: errors.CodeNotFound},
	{Contains: "already exists", Code: errors.CodeConflict},
	{Contains: "already in use", Code: errors.CodeConflict},
	{Contains: "is taken", Code: errors.CodeConflict},
	{Contains: "duplicate", Code: errors.CodeConflict},
	{Contains: "password strength", Code: errors.CodeValidation},
	{Contains: "password is too weak", Code: errors.CodeValidation},
	{Contains: "access denied", Code: errors.CodeAuthentication},
}

// Normalizer converts low-level failures into *errors.ProvisionError. It is
// the single place where panel error text is classified.
type Normalizer struct {
	secrets []string
	rules   []TextRule
}

// NewNormalizer creates a normalizer that redacts secrets and consults
// extra rules before DefaultRules.
func NewNormalizer(secrets []string, extra ...TextRule) *Normalizer {
	n := &Normalizer{rules: append(append([]TextRule{}, extra...), DefaultRules...)}
	for _, s := range secrets {
		if s != "" {
			n.secrets = append(n.secrets, s)
		}
	}
	sort.Slice(n.secrets, func(i, j int) bool {
		return len(n.secrets[i]) > len(n.secrets[j])
	})
	return n
}

// WithSecrets returns a copy of n that also redacts values
func (n *Normalizer) WithSecrets(values ...string) *Normalizer {
	secrets := append(append([]string{}, n.secrets...), values...)
	c := &Normalizer{rules: n.rules}
	for _, s := range secrets {
		if s != "" {
			c.secrets = append(c.secrets, s)
		}
	}
	sort.Slice(c.secrets, func(i, j int) bool {
		return len(c.secrets[i]) > len(c.secrets[j])
	})
	return c
}

// Normalize classifies err. Errors it does not recognise are returned
// unchanged so the caller's generic fault handling sees them.
func (n *Normalizer) Normalize(err error) error {
	if err == nil {
		return nil
	}

	var serr *SequenceError
	if errors.As(err, &serr) {
		inner := n.Normalize(serr.Err)
		var perr *errors.ProvisionError
		if !errors.As(inner, &perr) {
			return serr.Err
		}
		for k, v := range serr.Debug() {
			perr.WithDebug(k, v)
		}
		return n.sanitize(perr)
	}

	var perr *errors.ProvisionError
	if errors.As(err, &perr) {
		return n.sanitize(clone(perr))
	}

	var terr *transport.Error
	if errors.As(err, &terr) {
		return n.sanitize(n.fromTransport(terr))
	}

	return err
}

func (n *Normalizer) fromTransport(terr *transport.Error) *errors.ProvisionError {
	switch terr.Kind {
	case transport.KindConnection:
		return errors.Wrap(errors.CodeConnection, "Panel API connection error", terr).
			WithDebug("error", terr.Error())
	case transport.KindTimeout:
		return errors.Wrap(errors.CodeConnection, "Panel API request failed (request timed out)", terr).
			WithDebug("error", terr.Error())
	case transport.KindPanel:
		perr := errors.Wrap(n.Classify(terr.Message), terr.Message, terr)
		if terr.PanelCode != "" {
			perr.WithData("panel_code", terr.PanelCode)
		}
		return perr
	case transport.KindDecode:
		return errors.Wrap(errors.CodeUnexpected, "Unexpected panel API response", terr).
			WithDebug("body", terr.Body)
	}

	// KindHTTP
	var perr *errors.ProvisionError
	switch terr.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		perr = errors.Wrap(errors.CodeAuthentication, "Panel API authentication error", terr)
	case http.StatusNotFound:
		perr = errors.Wrap(errors.CodeNotFound, withSuffix(terr.Message, "not found"), terr)
	case http.StatusConflict:
		perr = errors.Wrap(errors.CodeConflict, withSuffix(terr.Message, "conflict"), terr)
	default:
		if terr.Message != "" {
			perr = errors.Wrap(n.Classify(terr.Message), terr.Message, terr)
		} else {
			perr = errors.Wrap(errors.CodeUnexpected, "Panel API request failed", terr)
		}
	}
	return perr.
		WithData("http_code", terr.StatusCode).
		WithDebug("body", terr.Body)
}

// clone copies perr so normalizing never mutates a shared error value
func clone(perr *errors.ProvisionError) *errors.ProvisionError {
	c := *perr
	c.Data = copyMap(perr.Data)
	c.Debug = copyMap(perr.Debug)
	return &c
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func withSuffix(msg, suffix string) string {
	if msg == "" {
		msg = "Panel API request failed"
	}
	return msg + " (" + suffix + ")"
}

// Classify maps free text to a code using the configured rules
func (n *Normalizer) Classify(text string) errors.ErrorCode {
	lower := strings.ToLower(text)
	for _, rule := range n.rules {
		if strings.Contains(lower, strings.ToLower(rule.Contains)) {
			return rule.Code
		}
	}
	return errors.CodeUnexpected
}

// Sanitize replaces every known credential value in s
func (n *Normalizer) Sanitize(s string) string {
	for _, secret := range n.secrets {
		s = strings.ReplaceAll(s, secret, Redacted)
	}
	return s
}

func (n *Normalizer) sanitize(perr *errors.ProvisionError) *errors.ProvisionError {
	if len(n.secrets) == 0 {
		return perr
	}
	perr.Message = n.Sanitize(perr.Message)
	perr.Data = n.sanitizeMap(perr.Data)
	perr.Debug = n.sanitizeMap(perr.Debug)
	return perr
}

func (n *Normalizer) sanitizeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case string:
			out[k] = n.Sanitize(val)
		case []string:
			clean := make([]string, len(val))
			for i, s := range val {
				clean[i] = n.Sanitize(s)
			}
			out[k] = clean
		case error:
			out[k] = n.Sanitize(val.Error())
		default:
			out[k] = v
		}
	}
	return out
}
