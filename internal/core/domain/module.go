package domain

import "strings"

// Environment selects which origin table the module catalog uses.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ParseEnvironment maps a config value to an Environment. Anything that is
// not explicitly production is treated as development.
func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return EnvProduction
	default:
		return EnvDevelopment
	}
}

// Module identifiers.
const (
	ModuleBillsPayment = "bills-payment"
	ModuleFundTransfer = "fund-transfer"
	ModuleBuyLoad      = "buy-load"
)

// ModuleDescriptor describes an externally hosted feature module.
// OriginURL is the only trust anchor the navigation guard has for the module.
type ModuleDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	AccentColor string `json:"accent_color"`
	OriginURL   string `json:"origin_url"`
}

// QuickAction is a home screen shortcut. It either opens a module or a
// native destination.
type QuickAction struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	ModuleID string `json:"module_id,omitempty"`
	Native   string `json:"native,omitempty"`
}

// Catalog is the immutable module table. The zero value is empty.
type Catalog struct {
	modules []ModuleDescriptor
	byID    map[string]int
}

func NewCatalog(modules ...ModuleDescriptor) Catalog {
	c := Catalog{
		modules: make([]ModuleDescriptor, len(modules)),
		byID:    make(map[string]int, len(modules)),
	}
	copy(c.modules, modules)
	for i, m := range c.modules {
		c.byID[m.ID] = i
	}
	return c
}

// Modules returns a copy of the catalog in display order.
func (c Catalog) Modules() []ModuleDescriptor {
	out := make([]ModuleDescriptor, len(c.modules))
	copy(out, c.modules)
	return out
}

func (c Catalog) Lookup(id string) (ModuleDescriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ModuleDescriptor{}, false
	}
	return c.modules[i], true
}

var moduleOrigins = map[Environment]map[string]string{
	EnvDevelopment: {
		ModuleBillsPayment: "http://localhost:3000",
		ModuleFundTransfer: "http://localhost:3001",
		ModuleBuyLoad:      "http://localhost:3002",
	},
	EnvProduction: {
		ModuleBillsPayment: "https://bills.ewb-mobile.com",
		ModuleFundTransfer: "https://transfer.ewb-mobile.com",
		ModuleBuyLoad:      "https://load.ewb-mobile.com",
	},
}

// DefaultCatalog returns the built-in modules with the origins for env.
func DefaultCatalog(env Environment) Catalog {
	origins, ok := moduleOrigins[env]
	if !ok {
		origins = moduleOrigins[EnvDevelopment]
	}
	return NewCatalog(
		ModuleDescriptor{
			ID:          ModuleBillsPayment,
			Name:        "Bills Payment",
			Description: "Pay your utility bills",
			Icon:        "doc.text.fill",
			AccentColor: "blue",
			OriginURL:   origins[ModuleBillsPayment],
		},
		ModuleDescriptor{
			ID:          ModuleFundTransfer,
			Name:        "Fund Transfer",
			Description: "Send money to other accounts",
			Icon:        "arrow.left.arrow.right",
			AccentColor: "green",
			OriginURL:   origins[ModuleFundTransfer],
		},
		ModuleDescriptor{
			ID:          ModuleBuyLoad,
			Name:        "Buy Load",
			Description: "Purchase prepaid mobile load",
			Icon:        "phone.fill",
			AccentColor: "orange",
			OriginURL:   origins[ModuleBuyLoad],
		},
	)
}

// DefaultQuickActions are the home screen shortcuts.
func DefaultQuickActions() []QuickAction {
	return []QuickAction{
		{ID: "pay-bills", Title: "Pay Bills", Icon: "doc.text", ModuleID: ModuleBillsPayment},
		{ID: "transfer", Title: "Transfer", Icon: "arrow.left.arrow.right", ModuleID: ModuleFundTransfer},
		{ID: "buy-load", Title: "Buy Load", Icon: "phone", ModuleID: ModuleBuyLoad},
		{ID: "history", Title: "History", Icon: "clock", Native: "transaction-history"},
		{ID: "account", Title: "Account", Icon: "person.crop.circle", Native: "account"},
		{ID: "settings", Title: "Settings", Icon: "gearshape", Native: "settings"},
	}
}
