package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

type stubTokens struct {
	token string
}

func (s *stubTokens) Token() (string, bool) { return s.token, s.token != "" }

type stubOpener struct {
	opened []string
	err    error
}

func (o *stubOpener) Open(_ context.Context, rawURL string) error {
	o.opened = append(o.opened, rawURL)
	return o.err
}

func newShell(tokens *stubTokens, opener *stubOpener) *ShellController {
	var op ports.ExternalOpener
	if opener != nil {
		op = opener
	}
	catalog := domain.DefaultCatalog(domain.EnvProduction)
	c := NewShellController(
		NewContentLoader(catalog, domain.DefaultQuickActions()),
		NewInjectionBridge(),
		NewNavigationGuard(catalog, DefaultDevHost, zerolog.Nop()),
		tokens,
		op,
		"EWBMobile-Shell/1.0",
		zerolog.Nop(),
	)
	n := 0
	c.newID = func() string {
		n++
		return fmt.Sprintf("view-%d", n)
	}
	return c
}

// openReady opens a module and drives it to Ready at epoch 1.
func openReady(t *testing.T, c *ShellController) domain.LoadTicket {
	t.Helper()
	ticket, err := c.Open(domain.ModuleBillsPayment)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := c.ConfirmInjected(ticket.ViewID, ticket.Epoch); err != nil {
		t.Fatalf("ConfirmInjected: %v", err)
	}
	if applied, err := c.Lifecycle(ticket.ViewID, ticket.Epoch, domain.LifecycleFinished, ""); err != nil || !applied {
		t.Fatalf("Lifecycle finished: applied=%v err=%v", applied, err)
	}
	return ticket
}

func TestShellController_Open(t *testing.T) {
	c := newShell(&stubTokens{token: "T1"}, nil)

	ticket, err := c.Open(domain.ModuleBillsPayment)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ticket.Epoch != 1 || ticket.Injection.Epoch != 1 {
		t.Fatalf("expected epoch 1, got %d/%d", ticket.Epoch, ticket.Injection.Epoch)
	}
	if ticket.StartURL != "https://bills.ewb-mobile.com" {
		t.Fatalf("unexpected start url %q", ticket.StartURL)
	}
	if !ticket.Injection.TokenSet || !strings.Contains(ticket.Injection.Script, `"T1"`) {
		t.Fatalf("expected token in payload, got %+v", ticket.Injection)
	}
	if ticket.UserAgent != "EWBMobile-Shell/1.0" {
		t.Fatalf("unexpected user agent %q", ticket.UserAgent)
	}
	if ticket.Navigation.Decision != domain.NavigationAllow {
		t.Fatalf("start url must be allowed, got %+v", ticket.Navigation)
	}

	snap, err := c.View(ticket.ViewID)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if snap.Phase != domain.LoadLoading || !snap.Signals.Busy || snap.Signals.InteractionEnabled {
		t.Fatalf("new view must be loading with interaction suppressed: %+v", snap)
	}
}

func TestShellController_Open_UnknownModule(t *testing.T) {
	c := newShell(&stubTokens{}, nil)
	if _, err := c.Open("crypto-wallet"); !errors.Is(err, domain.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}
}

func TestShellController_LifecycleBeforeInjection(t *testing.T) {
	c := newShell(&stubTokens{}, nil)
	ticket, _ := c.Open(domain.ModuleBuyLoad)

	if _, err := c.Lifecycle(ticket.ViewID, 1, domain.LifecycleStarted, ""); !errors.Is(err, domain.ErrInjectionPending) {
		t.Fatalf("expected ErrInjectionPending, got %v", err)
	}

	url, err := c.ConfirmInjected(ticket.ViewID, 1)
	if err != nil || url != "https://load.ewb-mobile.com" {
		t.Fatalf("ConfirmInjected = %q, %v", url, err)
	}
	if _, err := c.ConfirmInjected(ticket.ViewID, 2); !errors.Is(err, domain.ErrStaleEpoch) {
		t.Fatalf("confirming another epoch must fail, got %v", err)
	}
}

func TestShellController_FailedBeforeInjection(t *testing.T) {
	c := newShell(&stubTokens{token: "T1"}, nil)
	ticket, _ := c.Open(domain.ModuleBillsPayment)

	applied, err := c.Lifecycle(ticket.ViewID, 1, domain.LifecycleFailed, "could not install session payload")
	if err != nil || !applied {
		t.Fatalf("failure before injection must apply: applied=%v err=%v", applied, err)
	}
	snap, _ := c.View(ticket.ViewID)
	if snap.Phase != domain.LoadFailed || !snap.Signals.ShowRetry {
		t.Fatalf("view must offer retry: %+v", snap)
	}

	reloaded, err := c.Reload(ticket.ViewID)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reloaded.Epoch != 2 {
		t.Fatalf("expected epoch 2, got %d", reloaded.Epoch)
	}
	if _, err := c.Lifecycle(ticket.ViewID, 2, domain.LifecycleFinished, ""); !errors.Is(err, domain.ErrInjectionPending) {
		t.Fatalf("finished still requires injection, got %v", err)
	}
}

func TestShellController_FailedThenRetry(t *testing.T) {
	tokens := &stubTokens{token: "T1"}
	c := newShell(tokens, nil)
	ticket, _ := c.Open(domain.ModuleFundTransfer)
	if _, err := c.ConfirmInjected(ticket.ViewID, 1); err != nil {
		t.Fatalf("ConfirmInjected: %v", err)
	}

	if _, err := c.Lifecycle(ticket.ViewID, 1, domain.LifecycleFailed, "The Internet connection appears to be offline."); err != nil {
		t.Fatalf("Lifecycle failed: %v", err)
	}
	snap, _ := c.View(ticket.ViewID)
	if snap.Phase != domain.LoadFailed || !snap.Signals.ShowRetry || snap.Signals.Busy {
		t.Fatalf("failed view must offer retry: %+v", snap)
	}
	if snap.Signals.ErrorTitle != domain.LoadErrorTitle || snap.Signals.ErrorMessage != "The Internet connection appears to be offline." {
		t.Fatalf("unexpected error signals: %+v", snap.Signals)
	}

	tokens.token = "T2"
	reloaded, err := c.Reload(ticket.ViewID)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reloaded.Epoch != 2 {
		t.Fatalf("expected epoch 2, got %d", reloaded.Epoch)
	}
	if !strings.Contains(reloaded.Injection.Script, `"T2"`) {
		t.Fatalf("reload must rebuild the payload with the current token:\n%s", reloaded.Injection.Script)
	}
	snap, _ = c.View(ticket.ViewID)
	if snap.Phase != domain.LoadLoading || snap.Injected {
		t.Fatalf("reload must reset to loading and require a new injection: %+v", snap)
	}
}

func TestShellController_StaleEpochDiscarded(t *testing.T) {
	c := newShell(&stubTokens{}, nil)
	ticket := openReady(t, c)

	if _, err := c.Reload(ticket.ViewID); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if _, err := c.ConfirmInjected(ticket.ViewID, 2); err != nil {
		t.Fatalf("ConfirmInjected: %v", err)
	}

	applied, err := c.Lifecycle(ticket.ViewID, 1, domain.LifecycleFailed, "late failure")
	if err != nil {
		t.Fatalf("stale callback must not error: %v", err)
	}
	if applied {
		t.Fatalf("stale callback must be discarded")
	}
	snap, _ := c.View(ticket.ViewID)
	if snap.Phase != domain.LoadLoading || snap.Epoch != 2 {
		t.Fatalf("stale callback altered state: %+v", snap)
	}
}

func TestShellController_ReloadWhileLoading(t *testing.T) {
	c := newShell(&stubTokens{}, nil)
	ticket, _ := c.Open(domain.ModuleBillsPayment)

	if _, err := c.Reload(ticket.ViewID); !errors.Is(err, domain.ErrReloadBusy) {
		t.Fatalf("expected ErrReloadBusy, got %v", err)
	}
}

func TestShellController_NavigateHandoff(t *testing.T) {
	opener := &stubOpener{}
	c := newShell(&stubTokens{}, opener)
	ticket := openReady(t, c)

	v, err := c.Navigate(context.Background(), ticket.ViewID, domain.NavigationRequest{
		URL:  "https://news.example.com/article",
		Kind: domain.NavigationLinkActivated,
	})
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if v.Decision != domain.NavigationHandoffExternal {
		t.Fatalf("expected handoff, got %+v", v)
	}
	if len(opener.opened) != 1 || opener.opened[0] != "https://news.example.com/article" {
		t.Fatalf("expected external opener call, got %v", opener.opened)
	}

	v, _ = c.Navigate(context.Background(), ticket.ViewID, domain.NavigationRequest{
		URL:  "https://bills.ewb-mobile.com/history",
		Kind: domain.NavigationLinkActivated,
	})
	if v.Decision != domain.NavigationAllow || len(opener.opened) != 1 {
		t.Fatalf("module navigation must stay in content: %+v, opened=%v", v, opener.opened)
	}
}

func TestShellController_NavigateOpenerFailure(t *testing.T) {
	opener := &stubOpener{err: errors.New("no browser")}
	c := newShell(&stubTokens{}, opener)
	ticket := openReady(t, c)

	v, err := c.Navigate(context.Background(), ticket.ViewID, domain.NavigationRequest{
		URL:  "https://example.org",
		Kind: domain.NavigationLinkActivated,
	})
	if err != nil || v.Decision != domain.NavigationHandoffExternal {
		t.Fatalf("opener failure must not change the verdict: %+v, %v", v, err)
	}
}

func TestShellController_WatchAndClose(t *testing.T) {
	c := newShell(&stubTokens{}, nil)
	ticket, _ := c.Open(domain.ModuleBillsPayment)

	ch, cancel, err := c.Watch(ticket.ViewID)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer cancel()

	first := <-ch
	if first.Phase != domain.LoadLoading {
		t.Fatalf("expected initial loading snapshot, got %+v", first)
	}

	if _, err := c.ConfirmInjected(ticket.ViewID, 1); err != nil {
		t.Fatalf("ConfirmInjected: %v", err)
	}
	if got := <-ch; !got.Injected {
		t.Fatalf("expected injected snapshot, got %+v", got)
	}

	if err := c.Close(ticket.ViewID); err != nil {
		t.Fatalf("Close: %v", err)
	}
	last, ok := <-ch
	if !ok || !last.Closed {
		t.Fatalf("expected closing snapshot, got %+v (ok=%v)", last, ok)
	}
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed")
	}
	if _, err := c.View(ticket.ViewID); !errors.Is(err, domain.ErrViewNotFound) {
		t.Fatalf("expected ErrViewNotFound after close, got %v", err)
	}
}

func TestShellController_InvalidLifecycleEvent(t *testing.T) {
	c := newShell(&stubTokens{}, nil)
	ticket, _ := c.Open(domain.ModuleBillsPayment)
	if _, err := c.Lifecycle(ticket.ViewID, 1, "exploded", ""); !errors.Is(err, domain.ErrInvalidEvent) {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestContentLoader_QuickActions(t *testing.T) {
	catalog := domain.NewCatalog(domain.ModuleDescriptor{ID: domain.ModuleBillsPayment, OriginURL: "https://bills.ewb-mobile.com"})
	loader := NewContentLoader(catalog, domain.DefaultQuickActions())

	got := loader.QuickActions()
	if len(got) != 4 {
		t.Fatalf("expected bills shortcut and three native actions, got %+v", got)
	}
	if got[0].ModuleID != domain.ModuleBillsPayment || got[1].Native != "transaction-history" {
		t.Fatalf("unexpected quick actions: %+v", got)
	}
}
