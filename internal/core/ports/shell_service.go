package ports

import (
	"context"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// ShellService drives content views through their load epochs.
type ShellService interface {
	Modules() []domain.ModuleDescriptor
	QuickActions() []domain.QuickAction
	Open(moduleID string) (domain.LoadTicket, error)
	ConfirmInjected(viewID string, epoch uint64) (string, error)
	Lifecycle(viewID string, epoch uint64, event domain.LifecycleEvent, detail string) (bool, error)
	Navigate(ctx context.Context, viewID string, req domain.NavigationRequest) (domain.NavigationVerdict, error)
	Reload(viewID string) (domain.LoadTicket, error)
	View(viewID string) (domain.ViewSnapshot, error)
	Watch(viewID string) (<-chan domain.ViewSnapshot, func(), error)
	Close(viewID string) error
}
