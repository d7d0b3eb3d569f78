package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// DefaultDevHost is the local development host the guard always allows.
const DefaultDevHost = "localhost"

var errNoDestination = errors.New("empty destination")

// NavigationGuard decides every navigation raised by loaded content. The
// module catalog origins are its only trust anchors.
type NavigationGuard struct {
	origins map[string]string // origin -> module id
	devHost string
	log     zerolog.Logger
}

// NewNavigationGuard indexes the catalog origins. An empty devHost disables
// the development host exception.
func NewNavigationGuard(catalog domain.Catalog, devHost string, log zerolog.Logger) *NavigationGuard {
	g := &NavigationGuard{
		origins: make(map[string]string),
		devHost: strings.ToLower(strings.TrimSpace(devHost)),
		log:     log,
	}
	for _, m := range catalog.Modules() {
		origin, _, err := Origin(m.OriginURL)
		if err != nil {
			log.Warn().Err(err).Str("module", m.ID).Msg("module origin ignored")
			continue
		}
		g.origins[origin] = m.ID
	}
	return g
}

// Evaluate returns the decision for one navigation attempt. It never blocks.
//
// Non-user-initiated navigations to unrecognized origins are allowed. This
// permissive default is kept on purpose until product decides otherwise.
func (g *NavigationGuard) Evaluate(req domain.NavigationRequest) domain.NavigationVerdict {
	origin, host, err := Origin(req.URL)
	if err != nil {
		v := domain.NavigationVerdict{
			Decision: domain.NavigationDeny,
			Reason:   "unparseable destination",
		}
		g.log.Debug().Err(err).Str("decision", string(v.Decision)).Msg("navigation evaluated")
		return v
	}

	v := domain.NavigationVerdict{Origin: origin, ScriptEnabled: true}
	switch moduleID, known := g.origins[origin]; {
	case known:
		v.Decision = domain.NavigationAllow
		v.ModuleID = moduleID
		v.Reason = "module origin"
	case g.devHost != "" && host == g.devHost:
		v.Decision = domain.NavigationAllow
		v.Reason = "development host"
	case req.Kind.UserInitiated():
		v.Decision = domain.NavigationHandoffExternal
		v.ScriptEnabled = false
		v.Reason = "user link to external origin"
	default:
		v.Decision = domain.NavigationAllow
		v.Reason = "unrecognized origin allowed by default"
	}

	g.log.Debug().
		Str("origin", origin).
		Str("kind", string(req.Kind)).
		Str("decision", string(v.Decision)).
		Msg("navigation evaluated")
	return v
}

// Origin normalizes raw to scheme://host[:port], dropping path, query,
// fragment, user info and default ports. URLs without a host (mailto:,
// about:blank) yield "scheme:". host is the lowercased host name.
func Origin(raw string) (origin, host string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", errNoDestination
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse destination: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		return "", "", fmt.Errorf("destination %q has no scheme", raw)
	}

	host = strings.ToLower(u.Hostname())
	if host == "" {
		return scheme + ":", "", nil
	}

	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	hostPart := host
	if strings.Contains(host, ":") {
		hostPart = "[" + host + "]"
	}
	if port != "" {
		hostPart += ":" + port
	}
	return scheme + "://" + hostPart, host, nil
}
