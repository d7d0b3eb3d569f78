package service

import (
	"fmt"

	"github.com/ewbmobile/hybrid-shell/internal/core/domain"
)

// ContentLoader resolves module requests against the static catalog.
type ContentLoader struct {
	catalog      domain.Catalog
	quickActions []domain.QuickAction
}

func NewContentLoader(catalog domain.Catalog, quickActions []domain.QuickAction) *ContentLoader {
	qa := make([]domain.QuickAction, len(quickActions))
	copy(qa, quickActions)
	return &ContentLoader{catalog: catalog, quickActions: qa}
}

func (l *ContentLoader) Resolve(moduleID string) (domain.ModuleDescriptor, error) {
	m, ok := l.catalog.Lookup(moduleID)
	if !ok {
		return domain.ModuleDescriptor{}, fmt.Errorf("resolve %q: %w", moduleID, domain.ErrModuleNotFound)
	}
	return m, nil
}

func (l *ContentLoader) Modules() []domain.ModuleDescriptor {
	return l.catalog.Modules()
}

// QuickActions returns shortcuts whose module exists in the catalog, plus
// every native shortcut.
func (l *ContentLoader) QuickActions() []domain.QuickAction {
	out := make([]domain.QuickAction, 0, len(l.quickActions))
	for _, qa := range l.quickActions {
		if qa.ModuleID != "" {
			if _, ok := l.catalog.Lookup(qa.ModuleID); !ok {
				continue
			}
		}
		out = append(out, qa)
	}
	return out
}
