// Package opener hands navigations the shell will not render to the system.
package opener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"
)

var ErrUnsupportedScheme = errors.New("unsupported scheme for external handoff")

var allowedSchemes = map[string]struct{}{
	"http":   {},
	"https":  {},
	"mailto": {},
	"tel":    {},
}

// checkURL rejects anything the system handler should never be asked to open,
// such as file: or javascript: URLs.
func checkURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if _, ok := allowedSchemes[strings.ToLower(u.Scheme)]; !ok {
		return nil, fmt.Errorf("%q: %w", u.Scheme, ErrUnsupportedScheme)
	}
	return u, nil
}

// SystemOpener opens URLs with the platform's default handler.
type SystemOpener struct {
	open func(string) error
	log  zerolog.Logger
}

func NewSystemOpener(log zerolog.Logger) *SystemOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &SystemOpener{open: browser.OpenURL, log: log}
}

func (o *SystemOpener) Open(ctx context.Context, rawURL string) error {
	u, err := checkURL(rawURL)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := o.open(u.String()); err != nil {
		return fmt.Errorf("open %s: %w", u.Scheme, err)
	}
	o.log.Info().Str("scheme", u.Scheme).Str("host", u.Host).Msg("handed off to system")
	return nil
}

// LogOpener only records the handoff. Used when the UI host opens external
// URLs itself from the navigate response.
type LogOpener struct {
	log zerolog.Logger
}

func NewLogOpener(log zerolog.Logger) *LogOpener {
	return &LogOpener{log: log}
}

func (o *LogOpener) Open(_ context.Context, rawURL string) error {
	u, err := checkURL(rawURL)
	if err != nil {
		return err
	}
	o.log.Info().Str("scheme", u.Scheme).Str("host", u.Host).Msg("external handoff left to ui host")
	return nil
}
