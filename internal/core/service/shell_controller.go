package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
	"github.com/ewbmobile/hybrid-shell/internal/core/ports"
)

const watchBuffer = 8

type contentView struct {
	id       string
	module   domain.ModuleDescriptor
	epoch    uint64
	injected bool
	state    domain.LoadState
	watchers map[chan domain.ViewSnapshot]struct{}
}

func (v *contentView) snapshot() domain.ViewSnapshot {
	return domain.ViewSnapshot{
		ViewID:   v.id,
		ModuleID: v.module.ID,
		Epoch:    v.epoch,
		Injected: v.injected,
		Phase:    v.state.Phase,
		Signals:  v.state.Signals(),
	}
}

// ShellController tracks content views and their load epochs. Every view
// starts at epoch 1; a reload advances the epoch, resets the view to Loading
// and issues a fresh injection payload. Callbacks tagged with any other epoch
// are discarded.
//
// Page script may only run once the host has confirmed the payload for the
// current epoch with ConfirmInjected. Lifecycle callbacks before that are
// rejected with domain.ErrInjectionPending.
type ShellController struct {
	loader    *ContentLoader
	bridge    *InjectionBridge
	guard     *NavigationGuard
	tokens    ports.TokenSource
	opener    ports.ExternalOpener
	userAgent string
	log       zerolog.Logger
	newID     func() string

	mu    sync.Mutex
	views map[string]*contentView
}

// NewShellController wires the controller. opener may be nil, in which case
// external handoffs are only reported back to the caller.
func NewShellController(
	loader *ContentLoader,
	bridge *InjectionBridge,
	guard *NavigationGuard,
	tokens ports.TokenSource,
	opener ports.ExternalOpener,
	userAgent string,
	log zerolog.Logger,
) *ShellController {
	return &ShellController{
		loader:    loader,
		bridge:    bridge,
		guard:     guard,
		tokens:    tokens,
		opener:    opener,
		userAgent: userAgent,
		log:       log,
		newID:     uuid.NewString,
		views:     make(map[string]*contentView),
	}
}

func (c *ShellController) Modules() []domain.ModuleDescriptor {
	return c.loader.Modules()
}

func (c *ShellController) QuickActions() []domain.QuickAction {
	return c.loader.QuickActions()
}

// Open creates a view for moduleID and returns the ticket for epoch 1.
func (c *ShellController) Open(moduleID string) (domain.LoadTicket, error) {
	module, err := c.loader.Resolve(moduleID)
	if err != nil {
		return domain.LoadTicket{}, err
	}

	v := &contentView{
		id:       c.newID(),
		module:   module,
		epoch:    1,
		state:    domain.Loading(),
		watchers: make(map[chan domain.ViewSnapshot]struct{}),
	}
	ticket := c.ticket(v)
	if ticket.Navigation.Decision != domain.NavigationAllow {
		return domain.LoadTicket{}, fmt.Errorf("open %s: start url %q: %w", moduleID, module.OriginURL, domain.ErrInvalidRequest)
	}

	c.mu.Lock()
	c.views[v.id] = v
	c.mu.Unlock()

	c.log.Info().
		Str("view_id", v.id).
		Str("module", module.ID).
		Bool("token_set", ticket.Injection.TokenSet).
		Msg("view opened")
	return ticket, nil
}

// ConfirmInjected records that the payload for epoch is installed and
// returns the URL the host may now load.
func (c *ShellController) ConfirmInjected(viewID string, epoch uint64) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.lookup(viewID)
	if err != nil {
		return "", err
	}
	if epoch != v.epoch {
		return "", fmt.Errorf("confirm epoch %d, current %d: %w", epoch, v.epoch, domain.ErrStaleEpoch)
	}
	if !v.injected {
		v.injected = true
		c.notify(v)
	}
	return v.module.OriginURL, nil
}

// Lifecycle applies a host callback. It reports false without error when the
// callback belongs to another epoch. A failure is accepted before the payload
// is confirmed, since the host may be unable to install it.
func (c *ShellController) Lifecycle(viewID string, epoch uint64, event domain.LifecycleEvent, detail string) (bool, error) {
	if !event.Valid() {
		return false, fmt.Errorf("%q: %w", event, domain.ErrInvalidEvent)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.lookup(viewID)
	if err != nil {
		return false, err
	}
	if epoch != v.epoch {
		c.log.Debug().
			Str("view_id", viewID).
			Uint64("epoch", epoch).
			Uint64("current_epoch", v.epoch).
			Str("event", string(event)).
			Msg("stale lifecycle callback discarded")
		return false, nil
	}
	if !v.injected && event != domain.LifecycleFailed {
		return false, domain.ErrInjectionPending
	}

	switch event {
	case domain.LifecycleStarted:
		v.state = domain.Loading()
	case domain.LifecycleFinished:
		v.state = domain.Ready()
	case domain.LifecycleFailed:
		if detail == "" {
			detail = domain.DefaultLoadFailure
		}
		v.state = domain.Failed(errors.New(detail))
		c.log.Warn().Str("view_id", viewID).Uint64("epoch", epoch).Str("error", detail).Msg("content load failed")
	}
	c.notify(v)
	return true, nil
}

// Navigate evaluates a navigation raised by the view's content. A handoff is
// passed to the external opener; an opener failure does not change the verdict.
func (c *ShellController) Navigate(ctx context.Context, viewID string, req domain.NavigationRequest) (domain.NavigationVerdict, error) {
	c.mu.Lock()
	_, err := c.lookup(viewID)
	c.mu.Unlock()
	if err != nil {
		return domain.NavigationVerdict{}, err
	}

	verdict := c.guard.Evaluate(req)
	if verdict.Decision == domain.NavigationHandoffExternal && c.opener != nil {
		if err := c.opener.Open(ctx, req.URL); err != nil {
			c.log.Warn().Err(err).Str("view_id", viewID).Str("origin", verdict.Origin).Msg("external handoff failed")
		}
	}
	return verdict, nil
}

// Reload starts a new epoch. Views that are still loading cannot be reloaded.
func (c *ShellController) Reload(viewID string) (domain.LoadTicket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.lookup(viewID)
	if err != nil {
		return domain.LoadTicket{}, err
	}
	if v.state.Phase == domain.LoadLoading {
		return domain.LoadTicket{}, domain.ErrReloadBusy
	}

	v.epoch++
	v.injected = false
	v.state = domain.Loading()
	ticket := c.ticket(v)
	c.notify(v)

	c.log.Info().Str("view_id", viewID).Uint64("epoch", v.epoch).Msg("view reloaded")
	return ticket, nil
}

func (c *ShellController) View(viewID string) (domain.ViewSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.lookup(viewID)
	if err != nil {
		return domain.ViewSnapshot{}, err
	}
	return v.snapshot(), nil
}

// Watch streams snapshots of the view, starting with the current one. Slow
// readers only miss intermediate snapshots. The channel is closed when the
// view is closed or cancel is called.
func (c *ShellController) Watch(viewID string) (<-chan domain.ViewSnapshot, func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.lookup(viewID)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan domain.ViewSnapshot, watchBuffer)
	ch <- v.snapshot()
	v.watchers[ch] = struct{}{}

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := v.watchers[ch]; ok {
			delete(v.watchers, ch)
			close(ch)
		}
	}
	return ch, cancel, nil
}

func (c *ShellController) Close(viewID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, err := c.lookup(viewID)
	if err != nil {
		return err
	}
	delete(c.views, viewID)

	final := v.snapshot()
	final.Closed = true
	for ch := range v.watchers {
		send(ch, final)
		close(ch)
		delete(v.watchers, ch)
	}

	c.log.Info().Str("view_id", viewID).Msg("view closed")
	return nil
}

// lookup must be called with mu held.
func (c *ShellController) lookup(viewID string) (*contentView, error) {
	v, ok := c.views[viewID]
	if !ok {
		return nil, fmt.Errorf("view %q: %w", viewID, domain.ErrViewNotFound)
	}
	return v, nil
}

// ticket builds the load ticket for the view's current epoch.
func (c *ShellController) ticket(v *contentView) domain.LoadTicket {
	token, _ := c.tokens.Token()
	start := domain.NavigationRequest{URL: v.module.OriginURL, Kind: domain.NavigationOther}
	return domain.LoadTicket{
		ViewID:     v.id,
		Module:     v.module,
		Epoch:      v.epoch,
		StartURL:   v.module.OriginURL,
		UserAgent:  c.userAgent,
		Injection:  c.bridge.Build(v.epoch, token),
		Navigation: c.guard.Evaluate(start),
	}
}

// notify must be called with mu held.
func (c *ShellController) notify(v *contentView) {
	snap := v.snapshot()
	for ch := range v.watchers {
		send(ch, snap)
	}
}

// send never blocks. When the buffer is full the oldest snapshot is dropped.
func send(ch chan domain.ViewSnapshot, snap domain.ViewSnapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}
